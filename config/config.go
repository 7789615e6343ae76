// Package config carries the host supplied settings and resolves which
// SwiftFormat configuration file governs a run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the optional host config file looked up in the working
// directory. It configures the plugin itself, never the formatter.
const FileName = "swiftfmt.toml"

// Config captures what the host plugin runtime supplies: the executables to
// invoke, a default Swift version and the working directory.
type Config struct {
	FormatterBin     string `mapstructure:"formatter-bin" toml:"formatter-bin,omitempty"`
	FetcherBin       string `mapstructure:"fetcher-bin" toml:"fetcher-bin,omitempty"`
	SwiftVersion     string `mapstructure:"swift-version" toml:"swift-version,omitempty"`
	WorkingDirectory string `mapstructure:"working-dir" toml:"-"` // not allowed in config
}

// SetFlags appends our flags to the provided flag set, taking care to ensure
// each name matches the field name defined in the mapstructure tag.
func SetFlags(fs *pflag.FlagSet) {
	fs.String(
		"formatter-bin", "swiftformat",
		"The swiftformat executable to invoke. (env $SWIFTFMT_FORMATTER_BIN)",
	)
	fs.String(
		"fetcher-bin", "swiftformat-config",
		"The configuration template fetcher executable. (env $SWIFTFMT_FETCHER_BIN)",
	)
	fs.String(
		"swift-version", "5.10",
		"Swift version passed to the formatter when --swiftversion is not supplied. (env $SWIFTFMT_SWIFT_VERSION)",
	)
	fs.StringP(
		"working-dir", "C", ".",
		"Run as if swiftfmt was started in the specified working directory instead of the current working "+
			"directory. (env $SWIFTFMT_WORKING_DIR)",
	)
}

// NewViper creates a Viper instance pre-configured with the following options:
// * TOML config type
// * automatic env enabled
// * `SWIFTFMT_` env prefix for environment variables
// * replacement of `-` and `.` with `_` when mapping keys to env e.g. `swift-version` => `SWIFTFMT_SWIFT_VERSION`.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetConfigType("toml")

	v.SetEnvPrefix("swiftfmt")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("formatter-bin", "swiftformat")
	v.SetDefault("fetcher-bin", "swiftformat-config")
	v.SetDefault("swift-version", "5.10")
	v.SetDefault("working-dir", ".")

	return v
}

// FromViper takes a viper instance and produces a Config instance, merging in
// the optional swiftfmt.toml from the working directory.
func FromViper(v *viper.Viper) (*Config, error) {
	workingDir, err := filepath.Abs(v.GetString("working-dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for working directory: %w", err)
	}

	// merge the host config file if one exists
	configFile := filepath.Join(workingDir, FileName)
	if fileExists(configFile) {
		v.SetConfigFile(configFile)

		if err = v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read host config file '%s': %w", configFile, err)
		}
	}

	cfg := &Config{}

	if err = v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.WorkingDirectory = workingDir

	return cfg, nil
}

func fileExists(path string) bool {
	// Some broken filesystems like SSHFS return file information on stat() but
	// then cannot open the file. So we use os.Open.
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	// Next, check that the file is a regular file.
	fi, err := f.Stat()
	if err != nil {
		return false
	}

	return fi.Mode().IsRegular()
}
