package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/w-vac/wikipedia-webscraper1.0/internal/log"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "wikiwalk"

	// DefaultBaseURL is the English Wikipedia origin.
	DefaultBaseURL = "https://en.wikipedia.org"

	// DefaultMinDelay and DefaultMaxDelay bound the random pause after each
	// fetched page.
	DefaultMinDelay = 1 * time.Second
	DefaultMaxDelay = 3 * time.Second

	// DefaultTimeout applies to each HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies wikiwalk in HTTP requests, as the
	// Wikimedia User-Agent policy asks.
	DefaultUserAgent = "wikiwalk/1.0 (+https://github.com/w-vac/wikipedia-webscraper)"

	// DefaultMaxBodySize limits how much of a response is read.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultOutputDir is where the CSV and XLSX files are written.
	DefaultOutputDir = "."

	// DefaultOutputBase is the file name of both artifacts without extension.
	DefaultOutputBase = "wiki_urls"
)

// Config holds all options of a run. It is populated from defaults, the
// configuration file, and CLI flags, in that order.
type Config struct {
	// BaseURL is the wiki origin that article links are resolved against
	// and that serves the random-article endpoint.
	BaseURL string

	// StartURL is the first page of the walk. Empty means a random article,
	// or the answer to the interactive prompt.
	StartURL string

	// MinDelay and MaxDelay bound the uniform random pause after each
	// fetched page.
	MinDelay time.Duration
	MaxDelay time.Duration

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes. 0 uses the default.
	MaxBodySize int64

	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" form.
	ProxyAddress string

	// OutputDir is the directory that receives the exported files.
	OutputDir string

	// OutputBase is the export file name without extension.
	OutputBase string

	// SaveHistory records the finished walk in the history database.
	SaveHistory bool

	// DBDir is the directory of the history database.
	// Defaults to the XDG data directory (~/.local/share/wikiwalk on Linux).
	DBDir string

	// NoPrompt disables all interactive questions. The start URL then comes
	// from StartURL or a random article, and no file is opened.
	NoPrompt bool

	// Verbose enables debug logging.
	Verbose bool

	// LogFormat is "text" or "json".
	LogFormat string

	// ConfigFilePath is the configuration file given on the command line.
	// If empty, .wikiwalk is searched in the current and home directories.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		MinDelay:    DefaultMinDelay,
		MaxDelay:    DefaultMaxDelay,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		Headers:     make(map[string]string),
		OutputDir:   DefaultOutputDir,
		OutputBase:  DefaultOutputBase,
		SaveHistory: true,
		DBDir:       XDGDataDir(),
		LogFormat:   string(log.FormatText),
	}
}

// XDGDataDir returns the XDG data directory for wikiwalk.
// On Linux: ~/.local/share/wikiwalk
// On macOS: ~/Library/Application Support/wikiwalk
// On Windows: %LOCALAPPDATA%\wikiwalk
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for wikiwalk.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ParsedBaseURL returns BaseURL as a URL. Call Validate first.
func (c *Config) ParsedBaseURL() (*url.URL, error) {
	return url.Parse(c.BaseURL)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if !isHTTPURL(c.BaseURL) {
		return ErrInvalidBaseURL
	}
	if c.StartURL != "" && !isHTTPURL(c.StartURL) {
		return ErrInvalidStartURL
	}
	if c.MinDelay < 0 || c.MaxDelay < 0 {
		return ErrInvalidDelay
	}
	if c.MaxDelay < c.MinDelay {
		return ErrInvalidDelayRange
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.OutputBase == "" || strings.ContainsAny(c.OutputBase, `/\`) {
		return ErrInvalidOutputBase
	}
	if _, err := log.ParseFormat(c.LogFormat); err != nil {
		return ErrInvalidLogFormat
	}
	return nil
}

// isHTTPURL reports whether s is an absolute http or https URL with a host.
func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
