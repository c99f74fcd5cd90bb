package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Images     ImagesConfig     `mapstructure:"images"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Display    DisplayConfig    `mapstructure:"display"`
	Match      MatchConfig      `mapstructure:"match"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`

	// File is the config file that was read, empty when running on defaults
	File string `mapstructure:"-"`
}

// APIConfig holds recommendation API connection details
type APIConfig struct {
	URL         string        `mapstructure:"url" validate:"required,http_url"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Concurrency int           `mapstructure:"concurrency" validate:"min=1,max=32"`
	UserAgent   string        `mapstructure:"user_agent"`
}

// ImagesConfig controls how poster and backdrop URLs are built
type ImagesConfig struct {
	BaseURL     string `mapstructure:"base_url" validate:"required,http_url"`
	Placeholder string `mapstructure:"placeholder" validate:"required"`
}

// PaginationConfig controls the page strip
type PaginationConfig struct {
	MaxVisiblePages int `mapstructure:"max_visible_pages" validate:"min=5,max=21"`
}

// DisplayConfig controls terminal output
type DisplayConfig struct {
	Color            bool   `mapstructure:"color"`
	Details          bool   `mapstructure:"details"`
	TitleLimit       int    `mapstructure:"title_limit" validate:"min=0"`
	OverviewLimit    int    `mapstructure:"overview_limit" validate:"min=0"`
	ResponseLanguage string `mapstructure:"response_language"`
}

// MatchConfig contains named match expressions
type MatchConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// ServerConfig controls the web UI
type ServerConfig struct {
	Listen string `mapstructure:"listen" validate:"required,hostname_port"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
	Color  bool   `mapstructure:"color"`
}
