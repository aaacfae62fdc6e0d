// Package config loads the process-wide tabular.toml settings file (§6).
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"tabular/internal/core"
)

// Config holds the small set of process-wide settings that live outside
// the data directory itself.
type Config struct {
	DataDir  string `toml:"data_dir"`
	TagsFile string `toml:"tags_file"`
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings used when no tabular.toml is
// present, or when a present file leaves a field unset.
func Default() Config {
	return Config{
		DataDir:  ".",
		TagsFile: "commands.tag",
		LogLevel: "info",
	}
}

// Load reads path and merges it over Default(). A missing file is not an
// error — configuration is optional, per §6.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, core.Wrap(core.IoError, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, core.Wrap(core.BadParameter, err)
	}
	return cfg, nil
}
