// Package config loads taskflow settings from a config file, the
// environment, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config keys
const (
	KeyAPIURL      = "api_url"
	KeyDataDir     = "data_dir"
	KeyStorage     = "storage"
	KeyLogFile     = "log_file"
	KeyLogLevel    = "log_level"
	KeyTimeout     = "timeout"
	KeySeedSamples = "seed_samples"
)

// Config holds resolved settings
type Config struct {
	APIURL      string        `mapstructure:"api_url"`
	DataDir     string        `mapstructure:"data_dir"`
	Storage     string        `mapstructure:"storage"`
	LogFile     string        `mapstructure:"log_file"`
	LogLevel    string        `mapstructure:"log_level"`
	Timeout     time.Duration `mapstructure:"timeout"`
	SeedSamples bool          `mapstructure:"seed_samples"`

	// File is the config file that was read, empty if none
	File string `mapstructure:"-"`
}

// Options control where Load looks
type Options struct {
	// ConfigFile is an explicit file; it must exist
	ConfigFile string
	// Flags are bound over file and environment values by name, with
	// dashes instead of underscores (api-url, data-dir, ...)
	Flags *pflag.FlagSet
}

// Load resolves configuration: flags over TASKFLOW_* environment over the
// config file over defaults.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyAPIURL, "http://localhost:5000")
	v.SetDefault(KeyDataDir, defaultDataDir())
	v.SetDefault(KeyStorage, "sqlite")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTimeout, 10*time.Second)
	v.SetDefault(KeySeedSamples, true)

	v.SetEnvPrefix("TASKFLOW")
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("taskflow") // .yaml is implicit
		if override := os.Getenv("TASKFLOW_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		if dir := configHome(); dir != "" {
			v.AddConfigPath(filepath.Join(dir, "taskflow"))
		}
		v.AddConfigPath("./")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if opts.Flags != nil {
		for _, key := range []string{KeyAPIURL, KeyDataDir, KeyStorage, KeyLogFile, KeyLogLevel, KeyTimeout} {
			if f := opts.Flags.Lookup(flagName(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	var err error
	if cfg.DataDir, err = homedir.Expand(cfg.DataDir); err != nil {
		return nil, err
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "taskflow.log")
	}
	if cfg.LogFile, err = homedir.Expand(cfg.LogFile); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return cfg, cfg.Validate()
}

// Validate checks values that have a closed set of options
func (c *Config) Validate() error {
	switch c.Storage {
	case "sqlite", "diskv", "memory":
	default:
		return fmt.Errorf("unknown storage %q (want sqlite, diskv or memory)", c.Storage)
	}
	if c.APIURL == "" {
		return errors.New("api_url must not be empty")
	}
	return nil
}

func flagName(key string) string {
	b := []byte(key)
	for i := range b {
		if b[i] == '_' {
			b[i] = '-'
		}
	}
	return string(b)
}

// defaultDataDir uses the XDG data directory or falls back to ~/.local/share
func defaultDataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := homedir.Dir()
		if err != nil {
			return "taskflow-data"
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "taskflow")
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}
