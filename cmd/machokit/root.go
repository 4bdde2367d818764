package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/machokit/errors"
	"github.com/wippyai/machokit/macho"
)

// Exit codes.
const (
	exitFailure     = 1
	exitInvalidData = 2
)

// version is overridden at link time.
var version = "0.1.0-dev"

var (
	flagConfig string

	settings = newViper()
	cfg      *config
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "machokit",
	Short: "Inspect Mach-O images",
	Long: `machokit parses Mach-O binaries, thin or universal, with every address
computation checked, and prints their header, load commands and sections.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(settings, cmd); err != nil {
			return err
		}
		c, err := loadConfig(settings, flagConfig)
		if err != nil {
			return err
		}
		l, err := newLogger(c)
		if err != nil {
			return err
		}
		cfg, logger = c, l
		macho.SetLogger(l)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default: ./machokit.yaml or $XDG_CONFIG_HOME/machokit/machokit.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: console or json")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(describeCmd)
}

// exitCode maps malformed input onto its own exit status.
func exitCode(err error) int {
	switch errors.KindOf(err) {
	case errors.KindInvalidData, errors.KindNotFound, errors.KindOverflow, errors.KindUnderflow:
		return exitInvalidData
	default:
		return exitFailure
	}
}
