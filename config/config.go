package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the configuration implementation.
type Config struct {
	AppName     string       `validate:"required"`
	RunMode     string       `validate:"omitempty,oneof=debug release test"`
	Server      *Server      `validate:"required"`
	Logger      *Logger      `validate:"required"`
	Search      *Search      `validate:"required"`
	Meilisearch *Meilisearch
	Redis       *Redis
	Breaker     *Breaker     `validate:"required"`
	Tracer      *Tracer
	Sentry      *Sentry
	Sites       *Sites       `validate:"required"`
	Viper       *viper.Viper `validate:"-"`
}

var validate = validator.New()

// LoadConfig loads the configuration from the file.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		ex, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath("/etc/listing")
		v.AddConfigPath("$HOME/.listing")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Dir(ex))
	}
	v.SetEnvPrefix("listing")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return FromViper(v)
}

// FromViper builds and validates the configuration from v.
func FromViper(v *viper.Viper) (*Config, error) {
	sites, err := getSitesConfig(v)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		AppName:     getStringOrDefault(v, "app_name", "listing"),
		RunMode:     getStringOrDefault(v, "run_mode", "release"),
		Server:      getServerConfig(v),
		Logger:      getLoggerConfig(v),
		Search:      getSearchConfig(v),
		Meilisearch: getMeilisearchConfig(v),
		Redis:       getRedisConfig(v),
		Breaker:     getBreakerConfig(v),
		Tracer:      getTracerConfig(v),
		Sentry:      getSentryConfig(v),
		Sites:       sites,
		Viper:       v,
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Watch watches the configuration file and calls callback with the reloaded
// configuration. Invalid edits are reported through onError and ignored.
func Watch(cfg *Config, callback func(*Config), onError func(error)) {
	v := cfg.Viper
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next, err := FromViper(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("failed to reload config %s: %w", e.Name, err))
			}
			return
		}
		callback(next)
	})
	v.WatchConfig()
}
