// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ProviderConfig selects a text-generation provider and carries one
// credential per known provider.
type ProviderConfig struct {
	// Default is the provider used when the caller does not override it
	// (DEFAULT_AI_PROVIDER). Empty means "openai".
	Default string `json:"default" yaml:"default"`

	// Credentials maps a provider name (e.g. "claude") to its API key.
	Credentials map[string]string `json:"-" yaml:"-"`

	// Models overrides the default model identifier per provider.
	Models map[string]string `json:"models,omitempty" yaml:"models,omitempty"`

	// BaseURLs overrides the API endpoint per provider. Used for
	// self-hosted gateways and tests.
	BaseURLs map[string]string `json:"base_urls,omitempty" yaml:"base_urls,omitempty"`

	// HTTPTimeout bounds each provider call. Zero leaves the transport
	// default in place.
	HTTPTimeout time.Duration `json:"http_timeout" yaml:"http_timeout"`
}

// StoreBackend identifies the profile store implementation.
type StoreBackend string

const (
	StoreFile     StoreBackend = "file"
	StoreDatabase StoreBackend = "database"
)

// StoreConfig holds settings for the profile store.
type StoreConfig struct {
	// Backend selects file or database storage.
	Backend StoreBackend `json:"backend" yaml:"backend"`

	// ClientsDir is the directory of profile files (default "clients").
	ClientsDir string `json:"clients_dir" yaml:"clients_dir"`

	// DatabaseURL is a postgres:// URL or a sqlite file path.
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`
}

// ExportConfig holds document styling and output settings.
type ExportConfig struct {
	// OutputDir is the directory for generated documents (default "output_briefs").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	FontName    string `json:"font_name" yaml:"font_name"`
	BodySize    int    `json:"body_size" yaml:"body_size"`
	HeadingSize int    `json:"heading_size" yaml:"heading_size"`

	// WriteRecord also writes a YAML copy of each record next to the document.
	WriteRecord bool `json:"write_record" yaml:"write_record"`
}

// ServerConfig holds web UI settings.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// AppConfig groups every component configuration.
type AppConfig struct {
	Provider ProviderConfig `json:"provider" yaml:"provider"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Export   ExportConfig   `json:"export" yaml:"export"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	LogLevel string         `json:"log_level" yaml:"log_level"`
}
