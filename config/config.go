// Package config loads the settings server configuration with the usual
// precedence: flags, then GLOWORM_* environment variables, then config.yaml,
// then defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Camera is a camera the device should always know about.
type Camera struct {
	Name string `mapstructure:"name"`
	Path string `mapstructure:"path"`
}

type Config struct {
	Addr         string   `mapstructure:"addr"`
	SettingsRoot string   `mapstructure:"settings_root"`
	IndexPath    string   `mapstructure:"index_path"`
	LogLevel     string   `mapstructure:"log_level"`
	LogFormat    string   `mapstructure:"log_format"`
	Cameras      []Camera `mapstructure:"cameras"`
}

const envPrefix = "GLOWORM"

// flag name -> config key
var flagKeys = map[string]string{
	"addr":          "addr",
	"settings-root": "settings_root",
	"index-path":    "index_path",
	"log-level":     "log_level",
	"log-format":    "log_format",
}

// BindFlags registers the configuration flags on cmd.
func BindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("config", "", "path to a config.yaml file")
	flags.String("addr", ":8080", "address to serve the settings API on")
	flags.String("settings-root", "settings", "directory holding the cameras folder")
	flags.String("index-path", "store.db", "path of the camera index database")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text or json)")
}

// SetViperDefaults sets the defaults used when neither a flag, the
// environment nor the config file sets a key.
func SetViperDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("settings_root", "settings")
	v.SetDefault("index_path", "store.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// SetViperEnvSettings maps keys to GLOWORM_* environment variables.
func SetViperEnvSettings(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// InitConfig reads the configuration for cmd.
func InitConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/gloworm")
	}

	SetViperEnvSettings(v)
	SetViperDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("error binding flag %q: %w", name, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks the values that can't be defaulted.
func (c Config) Validate() error {
	if c.SettingsRoot == "" {
		return errors.New("settings_root must not be empty")
	}
	if c.IndexPath == "" {
		return errors.New("index_path must not be empty")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	seen := make(map[string]struct{}, len(c.Cameras))
	for i, camera := range c.Cameras {
		if camera.Name == "" {
			return fmt.Errorf("camera %d has no name", i)
		}
		if _, ok := seen[camera.Name]; ok {
			return fmt.Errorf("camera %q listed twice", camera.Name)
		}
		seen[camera.Name] = struct{}{}
	}

	return nil
}

// NewLogger builds the logger described by the config.
func (c Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetLevel(level)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger, nil
}
