// Package config loads settings from a YAML file, environment variables
// and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/cinerecomenda/movies"
	"github.com/s0up4200/cinerecomenda/pagination"
	"github.com/s0up4200/cinerecomenda/render"
	"github.com/s0up4200/cinerecomenda/validation"
)

// EnvPrefix prefixes environment overrides, as in CINERECOMENDA_API_URL
const EnvPrefix = "CINERECOMENDA"

// Load loads the configuration. An explicit path must exist; otherwise the
// standard locations are searched and defaults are used when nothing is found.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cinerecomenda"))
		}

		// Check /etc
		v.AddConfigPath("/etc/cinerecomenda/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.url", "http://localhost:8080")
	v.SetDefault("api.timeout", movies.DefaultTimeout)
	v.SetDefault("api.concurrency", movies.DefaultConcurrency)
	v.SetDefault("api.user_agent", movies.DefaultUserAgent)

	// Image defaults
	v.SetDefault("images.base_url", movies.DefaultImageBaseURL)
	v.SetDefault("images.placeholder", movies.DefaultPlaceholder)

	v.SetDefault("pagination.max_visible_pages", pagination.DefaultMaxVisible)

	// Display defaults
	v.SetDefault("display.color", true)
	v.SetDefault("display.details", false)
	v.SetDefault("display.title_limit", render.DefaultTitleLimit)
	v.SetDefault("display.overview_limit", render.DefaultOverviewLimit)
	v.SetDefault("display.response_language", "")

	v.SetDefault("match.presets", map[string]string{})

	v.SetDefault("server.listen", "127.0.0.1:3000")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if err := validation.Struct(cfg); err != nil {
		return err
	}

	for name, expression := range cfg.Match.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("match.presets.%s has an empty expression", name)
		}
	}

	return nil
}
