// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP client settings.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "elot743/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// TransliterationConfig holds engine options.
type TransliterationConfig struct {
	// NFC normalizes input to NFC before transliterating.
	NFC bool `json:"nfc" yaml:"nfc" mapstructure:"nfc"`
}

// ServerConfig holds settings for the HTTP adapter.
type ServerConfig struct {
	// Addr is the listen address (default ":8743").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// ReadHeaderTimeout bounds how long the server waits for request headers.
	ReadHeaderTimeout time.Duration `json:"read_header_timeout" yaml:"read_header_timeout" mapstructure:"read_header_timeout"`

	// ShutdownTimeout bounds graceful shutdown (default 5s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`

	// MaxTextBytes rejects larger greektext values with 413 (0 = no limit).
	MaxTextBytes int `json:"max_text_bytes" yaml:"max_text_bytes" mapstructure:"max_text_bytes"`

	// Token, when set, is required as a bearer token on conversion and
	// history endpoints. Usually loaded from .secrets/elot743-api-token.
	Token string `json:"-" yaml:"-" mapstructure:"token"`
}

// HistoryConfig holds settings for the conversion log.
type HistoryConfig struct {
	// Enabled turns on recording of server conversions.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// DBPath is the SQLite database file (default "data/history.db").
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`

	// MaxResults is the default number of rows returned by queries (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// BatchConfig holds settings for file conversion.
type BatchConfig struct {
	// OutputDir receives transliterated files (default "latin").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Ext selects input files in directory mode (default ".txt").
	Ext string `json:"ext" yaml:"ext" mapstructure:"ext"`

	// Force overwrites existing output files.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`
}

// ClientConfig holds settings for calling a remote elot743 server.
type ClientConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the server root, e.g. "http://localhost:8743".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// Token is sent as a bearer token when set.
	Token string `json:"-" yaml:"-" mapstructure:"token"`
}

// LogConfig selects log level and output format.
type LogConfig struct {
	// Level is a zerolog level name: debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "console" or "json" (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings.
type Config struct {
	Transliteration TransliterationConfig `json:"transliteration" yaml:"transliteration" mapstructure:"transliteration"`
	Server          ServerConfig          `json:"server" yaml:"server" mapstructure:"server"`
	History         HistoryConfig         `json:"history" yaml:"history" mapstructure:"history"`
	Batch           BatchConfig           `json:"batch" yaml:"batch" mapstructure:"batch"`
	Client          ClientConfig          `json:"client" yaml:"client" mapstructure:"client"`
	Log             LogConfig             `json:"log" yaml:"log" mapstructure:"log"`
}
