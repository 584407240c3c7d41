// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config layers udtc settings from defaults, a YAML config file,
// UDTC_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/toeirei/udtc/internal/keysource"
)

// SkipBinding is a flag annotation that keeps NewViper from binding the
// flag. The command resolves such flags itself.
const SkipBinding = "udtc_skip_binding"

// Config holds the settings the command line consumes.
type Config struct {
	Simple       bool   `mapstructure:"simple" yaml:"simple"`
	Decrypt      bool   `mapstructure:"decrypt" yaml:"decrypt"`
	KeyMaxLength int    `mapstructure:"key_max_length" yaml:"key_max_length"`
	Zstd         bool   `mapstructure:"zstd" yaml:"zstd"`
	ZstdLevel    string `mapstructure:"zstd_level" yaml:"zstd_level"`
	Language     string `mapstructure:"language" yaml:"language"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
}

// Defaults returns the default value of every setting keyed by its config name.
func Defaults() map[string]any {
	return map[string]any{
		"simple":         false,
		"decrypt":        false,
		"key_max_length": keysource.DefaultMaxLen,
		"zstd":           false,
		"zstd_level":     "default",
		"language":       "en",
		"log_level":      "warn",
	}
}

// Default returns a Config populated from Defaults.
func Default() Config {
	return Config{
		KeyMaxLength: keysource.DefaultMaxLen,
		ZstdLevel:    "default",
		Language:     "en",
		LogLevel:     "warn",
	}
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "udtc")
		default: // Linux, macOS, etc.
			configDir = "/etc/udtc"
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(dir, "udtc")
	}

	return filepath.Join(configDir, "udtc.yaml"), nil
}

// FlagKey maps a flag name to its config key ("key-max-length" -> "key_max_length").
func FlagKey(name string) string { return strings.ReplaceAll(name, "-", "_") }

// NewViper builds the layered viper instance behind LoadConfig. An explicit
// file path takes precedence over the search locations; a missing file in
// the search locations is not an error.
func NewViper(cmd *cobra.Command, defaults map[string]any, additionalConfigFilePath *string) (*viper.Viper, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("udtc")
	v.SetConfigType("yaml")
	if additionalConfigFilePath != nil {
		v.SetConfigFile(*additionalConfigFilePath)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.SetEnvPrefix("udtc")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		var bindErr error
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if _, skip := f.Annotations[SkipBinding]; skip {
				return
			}
			if bindErr == nil {
				bindErr = v.BindPFlag(FlagKey(f.Name), f)
			}
		})
		if bindErr != nil {
			return nil, bindErr
		}
	}
	return v, nil
}

// LoadConfig unmarshals the layered configuration into T.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, additionalConfigFilePath *string) (T, error) {
	var c T
	v, err := NewViper(cmd, defaults, additionalConfigFilePath)
	if err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// WriteConfigFile writes c as YAML to the user (or system) config path and
// returns that path. Existing files are only replaced when overwrite is set.
func WriteConfigFile[T any](c *T, system, overwrite bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return path, os.ErrExist
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
