package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wippyai/machokit/macho"
)

const (
	envPrefix      = "MACHOKIT"
	configFileName = "machokit"
	configFileType = "yaml"

	cfgKeyLogLevel       = "log.level"
	cfgKeyLogFormat      = "log.format"
	cfgKeyBaseAddress    = "inspect.base_address"
	cfgKeyShowSections   = "inspect.show_sections"
	cfgKeyStrictSections = "inspect.strict_sections"
	cfgKeyArch           = "inspect.arch"
)

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":  cfgKeyLogLevel,
	"log-format": cfgKeyLogFormat,
	"base":       cfgKeyBaseAddress,
	"sections":   cfgKeyShowSections,
	"strict":     cfgKeyStrictSections,
	"arch":       cfgKeyArch,
}

type config struct {
	LogLevel       string
	LogFormat      string
	Arch           string
	BaseAddress    uint64
	ShowSections   bool
	StrictSections bool
}

// newViper returns a viper instance with defaults and MACHOKIT_* environment
// overrides, e.g. MACHOKIT_LOG_LEVEL for log.level.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetDefault(cfgKeyLogFormat, "console")
	v.SetDefault(cfgKeyBaseAddress, "0")
	v.SetDefault(cfgKeyShowSections, true)
	v.SetDefault(cfgKeyStrictSections, false)
	v.SetDefault(cfgKeyArch, "")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// bindFlags binds whichever of the known flags cmd has.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// loadConfig reads the config file at path, or machokit.yaml from the
// working directory or the user config directory. Only an explicitly named
// file is required to exist.
func loadConfig(v *viper.Viper, path string) (*config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "machokit"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return decodeConfig(v)
}

func decodeConfig(v *viper.Viper) (*config, error) {
	base, err := strconv.ParseUint(v.GetString(cfgKeyBaseAddress), 0, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfgKeyBaseAddress, err)
	}

	c := &config{
		LogLevel:       v.GetString(cfgKeyLogLevel),
		LogFormat:      v.GetString(cfgKeyLogFormat),
		Arch:           v.GetString(cfgKeyArch),
		BaseAddress:    base,
		ShowSections:   v.GetBool(cfgKeyShowSections),
		StrictSections: v.GetBool(cfgKeyStrictSections),
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("%s: unknown format %q", cfgKeyLogFormat, c.LogFormat)
	}
	if c.Arch != "" {
		if _, ok := macho.ParseCPU(c.Arch); !ok {
			return nil, fmt.Errorf("%s: unknown architecture %q", cfgKeyArch, c.Arch)
		}
	}
	return c, nil
}
