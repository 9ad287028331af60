package config

import (
	"maps"
	"time"
)

// File represents the structure of the .wikiwalk configuration file.
// Fields left empty keep the value already in Config.
type File struct {
	// BaseURL selects another wiki, e.g. https://de.wikipedia.org.
	BaseURL string `yaml:"baseURL,omitempty"`

	// MinDelay and MaxDelay bound the pause between pages ("1s", "2500ms").
	MinDelay time.Duration `yaml:"minDelay,omitempty"`
	MaxDelay time.Duration `yaml:"maxDelay,omitempty"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// UserAgent replaces the default User-Agent.
	UserAgent string `yaml:"userAgent,omitempty"`

	// MaxBodySize is the response size limit in bytes.
	MaxBodySize int64 `yaml:"maxBodySize,omitempty"`

	// Cookie is sent as the Cookie header.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers included in every request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Proxy is a SOCKS5 proxy address in "host:port" form.
	Proxy string `yaml:"proxy,omitempty"`

	// Output configures where the exported files go.
	Output OutputFile `yaml:"output,omitempty"`

	// History configures the walk history database.
	History HistoryFile `yaml:"history,omitempty"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"logFormat,omitempty"`
}

// OutputFile is the output section of the configuration file.
type OutputFile struct {
	// Dir is the output directory.
	Dir string `yaml:"dir,omitempty"`

	// Name is the file name without extension.
	Name string `yaml:"name,omitempty"`
}

// HistoryFile is the history section of the configuration file.
type HistoryFile struct {
	// Enabled turns history recording on or off. Unset keeps the default.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Dir is the database directory.
	Dir string `yaml:"dir,omitempty"`
}

// ApplyTo copies every field set in the file onto c.
// Headers are merged; the Cookie field overrides a Cookie header.
func (f *File) ApplyTo(c *Config) {
	if f == nil || c == nil {
		return
	}
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.MinDelay != 0 {
		c.MinDelay = f.MinDelay
	}
	if f.MaxDelay != 0 {
		c.MaxDelay = f.MaxDelay
	}
	if f.Timeout != 0 {
		c.Timeout = f.Timeout
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.MaxBodySize != 0 {
		c.MaxBodySize = f.MaxBodySize
	}
	if len(f.Headers) > 0 || f.Cookie != "" {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		maps.Copy(c.Headers, f.Headers)
		if f.Cookie != "" {
			c.Headers["Cookie"] = f.Cookie
		}
	}
	if f.Proxy != "" {
		c.ProxyAddress = f.Proxy
	}
	if f.Output.Dir != "" {
		c.OutputDir = f.Output.Dir
	}
	if f.Output.Name != "" {
		c.OutputBase = f.Output.Name
	}
	if f.History.Enabled != nil {
		c.SaveHistory = *f.History.Enabled
	}
	if f.History.Dir != "" {
		c.DBDir = f.History.Dir
	}
	if f.LogFormat != "" {
		c.LogFormat = f.LogFormat
	}
}
