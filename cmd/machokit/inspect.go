package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/machokit"
	"github.com/wippyai/machokit/macho"
	"github.com/wippyai/machokit/vm"
)

var flagInteractive bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the header, load commands and sections of a Mach-O file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagInteractive {
			return runInteractive(args[0])
		}
		f, err := openImage(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return writeReport(cmd.OutOrStdout(), args[0], f.Image, cfg.ShowSections)
	},
}

func init() {
	f := inspectCmd.Flags()
	f.BoolVarP(&flagInteractive, "interactive", "i", false, "browse load commands in a terminal UI")
	f.Bool("sections", true, "list the sections of each segment")
	f.String("base", "", "address the file is considered mapped at (default 0)")
	f.String("arch", "", "slice of a universal binary to inspect (e.g. arm64)")
	f.Bool("strict", false, "reject sections only partially inside their segment")
}

// openImage maps and parses path using the loaded configuration. The caller
// closes the returned file once it is done with its records.
func openImage(path string) (*machokit.File, error) {
	opts := []macho.Option{
		macho.WithLogger(logger.With(zap.String("file", path))),
		macho.WithBase(vm.Address(cfg.BaseAddress)),
		macho.WithStrictSections(cfg.StrictSections),
	}
	if cfg.Arch != "" {
		cpu, _ := macho.ParseCPU(cfg.Arch)
		opts = append(opts, macho.WithArch(cpu))
	}

	f, err := machokit.MapFile(path, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened image",
		zap.String("file", path),
		zap.String("size", humanize.IBytes(uint64(f.Size()))),
		zap.Int("commands", len(f.Commands)))
	return f, nil
}
