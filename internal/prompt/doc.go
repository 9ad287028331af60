// Package prompt reads line-oriented answers from an interactive terminal.
package prompt
