// Package opener opens files with the operating system's default application.
package opener
