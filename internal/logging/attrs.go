package logging

import (
	"log/slog"
	"time"
)

// Attr aliases slog.Attr so callers only import this package.
type Attr = slog.Attr

// Field keys shared by every component. The console handler prints the
// set-building keys in the order they appear here.
const (
	FieldComponent   = "component"
	FieldRunID       = "run_id"
	FieldEventType   = "event_type"
	FieldTuneID      = "tune_id"
	FieldPass        = "pass"
	FieldMatchAlbums = "match_albums"
	FieldMerged      = "merged"
	FieldChains      = "chains"
	FieldSource      = "source"
	FieldLine        = "line"
	FieldReason      = "reason"
	FieldError       = "error"
	FieldErrorHint   = "error_hint"
	FieldImpact      = "impact"
)

func String(key, value string) Attr { return slog.String(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

// Error attaches err under FieldError. A nil error is recorded as "none"
// so the key is still present when a caller logs unconditionally.
func Error(err error) Attr {
	if err == nil {
		return slog.String(FieldError, "none")
	}
	return slog.Any(FieldError, err)
}

// Args converts attrs to the variadic form slog.Logger methods take.
func Args(attrs ...Attr) []any {
	out := make([]any, len(attrs))
	for i, a := range attrs {
		out[i] = a
	}
	return out
}

// NewNop returns a logger that drops everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with component. A nil logger yields a no-op.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// HasAttrKey reports whether any attr uses key.
func HasAttrKey(attrs []Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// WarnWithContext logs a warning that always carries an event type, a hint
// and an impact so operators can act on it without reading code.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	defaults := []Attr{
		slog.String(FieldEventType, eventType),
		slog.String(FieldErrorHint, "see the surrounding log lines"),
		slog.String(FieldImpact, "the build continues"),
	}
	for _, d := range defaults {
		if !HasAttrKey(attrs, d.Key) {
			attrs = append(attrs, d)
		}
	}
	logger.Warn(msg, Args(attrs...)...)
}
