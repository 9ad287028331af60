package log

import (
	"context"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// Mask replaces a credential in log output.
const Mask = "***REDACTED***"

// credentialHeaders are request headers whose whole value is a credential.
var credentialHeaders = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"x-api-key":           true,
	"x-auth-token":        true,
	"x-csrf-token":        true,
}

// cookieHeaders hold name=value pairs. Cookie names stay readable.
var cookieHeaders = map[string]bool{
	"cookie":     true,
	"set-cookie": true,
}

// secretWords mark any other key as a credential when they occur in it.
var secretWords = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"credential",
	"session",
	"private",
}

var (
	// authSchemePattern matches Authorization style values.
	authSchemePattern = regexp.MustCompile(`(?i)^(bearer|basic)\s+\S+`)

	// jwtPattern matches a JSON Web Token.
	jwtPattern = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)

	// sessionCookiePattern matches MediaWiki login cookies such as
	// enwikiSession, enwikiUserID or centralauth_Token in a cookie string.
	sessionCookiePattern = regexp.MustCompile(`(?i)(^|;\s*)[a-z0-9_]*(session|token|userid)=`)
)

// RedactingHandler masks credentials in attributes before passing records on.
// Request headers from the configuration file are the usual source: they are
// logged with Headers and each one is judged by its header name.
type RedactingHandler struct {
	next slog.Handler
}

// NewRedactingHandler wraps next. A nil next uses the default slog handler.
func NewRedactingHandler(next slog.Handler) *RedactingHandler {
	if next == nil {
		next = slog.Default().Handler()
	}
	return &RedactingHandler{next: next}
}

// Enabled reports whether the wrapped handler handles level.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle redacts the attributes of r and passes it on.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(redactAttr(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

// WithAttrs redacts attrs once and adds them to the wrapped handler.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &RedactingHandler{next: h.next.WithAttrs(redacted)}
}

// WithGroup opens a group on the wrapped handler.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{next: h.next.WithGroup(name)}
}

// Headers returns h as a group attribute with one string per header, sorted
// by name, so that the handler can redact each header by its name.
func Headers(key string, h map[string]string) slog.Attr {
	attrs := make([]any, 0, len(h))
	for _, name := range slices.Sorted(maps.Keys(h)) {
		attrs = append(attrs, slog.String(name, h[name]))
	}
	return slog.Group(key, attrs...)
}

// redactAttr returns a with credentials masked, descending into groups.
func redactAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		group := v.Group()
		redacted := make([]slog.Attr, len(group))
		for i, ga := range group {
			redacted[i] = redactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	case slog.KindString:
		return slog.String(a.Key, redactString(a.Key, v.String()))
	default:
		if isCredentialKey(a.Key) {
			return slog.String(a.Key, Mask)
		}
		return slog.Attr{Key: a.Key, Value: v}
	}
}

// redactString masks value if key or value show it is a credential.
// Cookie strings keep their cookie names.
func redactString(key, value string) string {
	name := strings.ToLower(key)
	switch {
	case cookieHeaders[name], sessionCookiePattern.MatchString(value):
		return maskCookies(value)
	case isCredentialKey(key),
		authSchemePattern.MatchString(value),
		jwtPattern.MatchString(value):
		return Mask
	default:
		return value
	}
}

// isCredentialKey reports whether key names a credential header or contains
// a secret word.
func isCredentialKey(key string) bool {
	name := strings.ToLower(key)
	if credentialHeaders[name] || cookieHeaders[name] {
		return true
	}
	for _, word := range secretWords {
		if strings.Contains(name, word) {
			return true
		}
	}
	return false
}

// maskCookies replaces every cookie value in a "a=1; b=2" string. A value
// without any pair is masked whole.
func maskCookies(value string) string {
	pairs := strings.Split(value, ";")
	masked := false
	for i, pair := range pairs {
		if name, _, ok := strings.Cut(pair, "="); ok {
			pairs[i] = name + "=" + Mask
			masked = true
		}
	}
	if !masked {
		return Mask
	}
	return strings.Join(pairs, ";")
}
