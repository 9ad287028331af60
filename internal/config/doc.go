// Package config provides the configuration of a wikiwalk run: defaults,
// the optional YAML configuration file, validation, and XDG directories.
package config
