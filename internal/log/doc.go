// Package log provides redacting structured logging built on log/slog.
//
// RedactingHandler wraps any slog.Handler and masks credentials before they
// reach the output. Request headers configured for the fetcher may carry a
// logged-in MediaWiki session or an API token, and those stay out of the log
// even in verbose mode. Cookie names are kept so that a misconfigured cookie
// can still be spotted.
//
// Text output is rendered by github.com/charmbracelet/log; JSON output uses
// slog's JSON handler.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose, log.FormatText)
//	logger.Debug("http client ready",
//	    log.Headers("headers", cfg.Headers), // Cookie: enwikiSession=***REDACTED***
//	    "user_agent", cfg.UserAgent,
//	)
//	slog.SetDefault(logger)
package log
