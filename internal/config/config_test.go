package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default BaseURL is English Wikipedia", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseURL != "https://en.wikipedia.org" {
			t.Errorf("expected BaseURL 'https://en.wikipedia.org', got '%s'", cfg.BaseURL)
		}
	})

	t.Run("default delay range is 1s to 3s", func(t *testing.T) {
		t.Parallel()
		if cfg.MinDelay != time.Second || cfg.MaxDelay != 3*time.Second {
			t.Errorf("expected 1s..3s, got %v..%v", cfg.MinDelay, cfg.MaxDelay)
		}
	})

	t.Run("default Timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default output is wiki_urls in current directory", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputDir != "." || cfg.OutputBase != "wiki_urls" {
			t.Errorf("unexpected output %q/%q", cfg.OutputDir, cfg.OutputBase)
		}
	})

	t.Run("history is enabled in the XDG data dir", func(t *testing.T) {
		t.Parallel()
		if !cfg.SaveHistory {
			t.Error("expected SaveHistory to be true")
		}
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("prompts enabled and no start URL", func(t *testing.T) {
		t.Parallel()
		if cfg.NoPrompt {
			t.Error("expected prompts to be enabled")
		}
		if cfg.StartURL != "" {
			t.Errorf("expected empty StartURL, got %q", cfg.StartURL)
		}
	})

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected defaults to validate, got %v", err)
		}
	})
}

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:    "relative base URL",
			modify:  func(c *Config) { c.BaseURL = "/wiki" },
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "ftp base URL",
			modify:  func(c *Config) { c.BaseURL = "ftp://en.wikipedia.org" },
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "start URL without scheme",
			modify:  func(c *Config) { c.StartURL = "en.wikipedia.org/wiki/Go" },
			wantErr: ErrInvalidStartURL,
		},
		{
			name:    "valid start URL",
			modify:  func(c *Config) { c.StartURL = "https://en.wikipedia.org/wiki/Go" },
			wantErr: nil,
		},
		{
			name:    "negative min delay",
			modify:  func(c *Config) { c.MinDelay = -time.Second },
			wantErr: ErrInvalidDelay,
		},
		{
			name:    "max below min",
			modify:  func(c *Config) { c.MinDelay, c.MaxDelay = 3*time.Second, time.Second },
			wantErr: ErrInvalidDelayRange,
		},
		{
			name:    "zero delay is allowed",
			modify:  func(c *Config) { c.MinDelay, c.MaxDelay = 0, 0 },
			wantErr: nil,
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative body size",
			modify:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
		{
			name:    "empty output name",
			modify:  func(c *Config) { c.OutputBase = "" },
			wantErr: ErrInvalidOutputBase,
		},
		{
			name:    "output name with separator",
			modify:  func(c *Config) { c.OutputBase = "out/wiki" },
			wantErr: ErrInvalidOutputBase,
		},
		{
			name:    "unknown log format",
			modify:  func(c *Config) { c.LogFormat = "yaml" },
			wantErr: ErrInvalidLogFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestFileApplyTo tests merging the configuration file into Config.
func TestFileApplyTo(t *testing.T) {
	t.Parallel()

	t.Run("set fields override defaults", func(t *testing.T) {
		t.Parallel()

		disabled := false
		f := &File{
			BaseURL:   "https://de.wikipedia.org",
			MinDelay:  500 * time.Millisecond,
			MaxDelay:  time.Second,
			UserAgent: "custom/1.0",
			Cookie:    "enwikiSession=abc",
			Headers:   map[string]string{"Accept-Language": "de", "Cookie": "ignored=1"},
			Proxy:     "127.0.0.1:9050",
			Output:    OutputFile{Dir: "out", Name: "walk"},
			History:   HistoryFile{Enabled: &disabled, Dir: "/tmp/hist"},
			LogFormat: "json",
		}

		cfg := NewConfig()
		f.ApplyTo(cfg)

		if cfg.BaseURL != "https://de.wikipedia.org" {
			t.Errorf("unexpected BaseURL %q", cfg.BaseURL)
		}
		if cfg.MinDelay != 500*time.Millisecond || cfg.MaxDelay != time.Second {
			t.Errorf("unexpected delays %v..%v", cfg.MinDelay, cfg.MaxDelay)
		}
		if cfg.Headers["Cookie"] != "enwikiSession=abc" {
			t.Errorf("expected cookie field to win, got %q", cfg.Headers["Cookie"])
		}
		if cfg.Headers["Accept-Language"] != "de" {
			t.Error("expected custom header to be merged")
		}
		if cfg.ProxyAddress != "127.0.0.1:9050" {
			t.Errorf("unexpected proxy %q", cfg.ProxyAddress)
		}
		if cfg.OutputDir != "out" || cfg.OutputBase != "walk" {
			t.Errorf("unexpected output %q/%q", cfg.OutputDir, cfg.OutputBase)
		}
		if cfg.SaveHistory || cfg.DBDir != "/tmp/hist" {
			t.Errorf("unexpected history settings %v %q", cfg.SaveHistory, cfg.DBDir)
		}
		if cfg.LogFormat != "json" {
			t.Errorf("unexpected log format %q", cfg.LogFormat)
		}
	})

	t.Run("empty file changes nothing", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		(&File{}).ApplyTo(cfg)

		want := NewConfig()
		if cfg.BaseURL != want.BaseURL || cfg.MinDelay != want.MinDelay || cfg.SaveHistory != want.SaveHistory {
			t.Error("expected defaults to be kept")
		}
		if len(cfg.Headers) != 0 {
			t.Errorf("expected no headers, got %v", cfg.Headers)
		}
	})

	t.Run("nil file is ignored", func(t *testing.T) {
		t.Parallel()

		var f *File
		f.ApplyTo(NewConfig())
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.wikiwalk")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".wikiwalk")
		content := `baseURL: https://fr.wikipedia.org
minDelay: 250ms
maxDelay: 2s
timeout: 1m
cookie: "frwikiSession=xyz"
headers:
  Accept-Language: fr
output:
  dir: results
  name: promenade
history:
  enabled: false
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.BaseURL != "https://fr.wikipedia.org" {
			t.Errorf("unexpected baseURL %q", cfg.BaseURL)
		}
		if cfg.MinDelay != 250*time.Millisecond || cfg.MaxDelay != 2*time.Second {
			t.Errorf("unexpected delays %v..%v", cfg.MinDelay, cfg.MaxDelay)
		}
		if cfg.Timeout != time.Minute {
			t.Errorf("unexpected timeout %v", cfg.Timeout)
		}
		if cfg.Headers["Accept-Language"] != "fr" {
			t.Error("expected Accept-Language header")
		}
		if cfg.Output.Name != "promenade" {
			t.Errorf("unexpected output name %q", cfg.Output.Name)
		}
		if cfg.History.Enabled == nil || *cfg.History.Enabled {
			t.Error("expected history to be explicitly disabled")
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".wikiwalk")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("returns error for invalid duration", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".wikiwalk")
		if err := os.WriteFile(configPath, []byte("minDelay: soon\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfigFile(configPath)
		if err == nil || !strings.Contains(err.Error(), configPath) {
			t.Errorf("expected parse error naming the file, got %v", err)
		}
	})
}

// TestLoad tests finding and applying the configuration file.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit path is applied", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("userAgent: tester/2\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg := NewConfig()
		cfg.ConfigFilePath = configPath
		used, err := Load(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if used != configPath {
			t.Errorf("expected %q, got %q", configPath, used)
		}
		if cfg.UserAgent != "tester/2" {
			t.Errorf("expected user agent from file, got %q", cfg.UserAgent)
		}
	})

	t.Run("missing explicit path is an error", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ConfigFilePath = filepath.Join(t.TempDir(), "missing.yaml")
		if _, err := Load(cfg); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})

	t.Run("finds file in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		t.Chdir(dir)

		result := FindConfigFile("")
		if filepath.Base(result) != DefaultConfigFile {
			t.Errorf("expected %s to be found, got %q", DefaultConfigFile, result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if dir := XDGDataDir(); !strings.HasSuffix(dir, AppName) {
		t.Errorf("expected data dir ending in %s, got %q", AppName, dir)
	}
	if dir := XDGConfigDir(); !strings.HasSuffix(dir, AppName) {
		t.Errorf("expected config dir ending in %s, got %q", AppName, dir)
	}
}
