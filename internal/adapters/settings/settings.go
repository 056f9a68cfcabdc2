// Package settings loads loom's runtime settings from loom.yaml and LOOM_* environment variables.
package settings

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// FileName is the settings file name looked up in the working directory, without extension.
	FileName = "loom"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "LOOM"

	defaultTimeout   = 30 * time.Second
	defaultStorePath = ".loom/vars.json"
)

// Settings holds everything the adapters need to be constructed.
type Settings struct {
	BaseURL         string        `mapstructure:"base_url"`
	Root            string        `mapstructure:"root"`
	Timeout         time.Duration `mapstructure:"timeout"`
	WithCredentials bool          `mapstructure:"with_credentials"`
	Reserved        []string      `mapstructure:"reserved"`
	Store           StoreSettings `mapstructure:"store"`
	Log             LogSettings   `mapstructure:"log"`
	Tracing         bool          `mapstructure:"tracing"`
}

// StoreSettings selects the placeholder variable store.
type StoreSettings struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the settings used when nothing is configured.
func Default() *Settings {
	return &Settings{
		Root:     ".",
		Timeout:  defaultTimeout,
		Reserved: domain.DefaultReservedIDs(),
		Store:    StoreSettings{Driver: "file", Path: defaultStorePath},
		Log:      LogSettings{Level: "info", Format: "console"},
	}
}

// Load reads settings from dir/loom.yaml (if present) and the environment.
func Load(dir string) (*Settings, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("base_url", defaults.BaseURL)
	v.SetDefault("root", defaults.Root)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("with_credentials", defaults.WithCredentials)
	v.SetDefault("reserved", defaults.Reserved)
	v.SetDefault("store.driver", defaults.Store.Driver)
	v.SetDefault("store.path", defaults.Store.Path)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("tracing", defaults.Tracing)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, zerr.With(zerr.Wrap(err, "failed to read settings"), "dir", dir)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, zerr.Wrap(err, "failed to parse settings")
	}

	return &s, nil
}
