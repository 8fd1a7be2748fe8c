// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings for fetching a catalog over HTTP(S).
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 (0 uses the default).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// CatalogConfig holds settings for loading the dataset.
type CatalogConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Path is the catalog source: a CSV file, a SQLite snapshot (.db,
	// .sqlite) or an http(s) URL to a CSV file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Encodings lists the text encodings tried in order when parsing CSV
	// (default utf-8, iso-8859-1, gbk).
	Encodings []string `json:"encodings" yaml:"encodings" mapstructure:"encodings"`
}

// ServerConfig holds settings for the web host.
type ServerConfig struct {
	// Addr is the listen address (default ":8501").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// SessionTTL expires sessions idle longer than this (0 disables expiry).
	SessionTTL time.Duration `json:"session_ttl" yaml:"session_ttl" mapstructure:"session_ttl"`

	// Title is the page heading.
	Title string `json:"title" yaml:"title" mapstructure:"title"`

	// Footer is the copyright line shown at the bottom of the page.
	Footer string `json:"footer" yaml:"footer" mapstructure:"footer"`

	// SecretsDir holds the optional session-key used to sign cookies.
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir" mapstructure:"secrets_dir"`
}

// BrowseConfig holds settings for the terminal host.
type BrowseConfig struct {
	// TitleWidth is the display width of the title column.
	TitleWidth int `json:"title_width" yaml:"title_width" mapstructure:"title_width"`

	// AuthorsWidth is the display width of the authors column.
	AuthorsWidth int `json:"authors_width" yaml:"authors_width" mapstructure:"authors_width"`
}

// AppConfig groups all sections of journal-search.yaml.
type AppConfig struct {
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Browse  BrowseConfig  `json:"browse" yaml:"browse" mapstructure:"browse"`
}

// Defaults used when neither the config file nor flags set a value.
const (
	DefaultCatalogPath = "journals.csv"
	DefaultAddr        = ":8501"
	DefaultTitle       = "《澳门语言学刊》检索系统"
	DefaultFooter      = "Copyright © 2024-长期 版权所有：《澳门语言学刊》编辑部"
	DefaultUserAgent   = "journal-search/0.1"
)

// DefaultEncodings is the order in which CSV text encodings are attempted.
var DefaultEncodings = []string{"utf-8", "iso-8859-1", "gbk"}
