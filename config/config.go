package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	envPrefix = "FITS_PREVIEW"

	keyDefaultDirectory = "default_directory"
	keyLogLevel         = "logging.log_level"
	keyLogOutput        = "logging.output"
)

// Config is the persisted user configuration of the preview tool.
type Config struct {
	DefaultDirectory string
	Logging          Logging
}

// Logging selects the gLog level and destination.
type Logging struct {
	Level  int
	Output string
}

// DefaultPath is $HOME/.config/fits_preview/config.toml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fits_preview", "config.toml"), nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyDefaultDirectory, "")
	v.SetDefault(keyLogLevel, 0)
	v.SetDefault(keyLogOutput, "terminal")
	return v
}

// Load reads the configuration at path. A file that does not exist yields
// the defaults; environment variables prefixed FITS_PREVIEW_ apply either
// way.
func Load(path string) (Config, error) {
	v := newViper(path)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return Config{
		DefaultDirectory: v.GetString(keyDefaultDirectory),
		Logging: Logging{
			Level:  v.GetInt(keyLogLevel),
			Output: v.GetString(keyLogOutput),
		},
	}, nil
}

// Save writes cfg to path as TOML, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set(keyDefaultDirectory, cfg.DefaultDirectory)
	v.Set(keyLogLevel, cfg.Logging.Level)
	v.Set(keyLogOutput, cfg.Logging.Output)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
