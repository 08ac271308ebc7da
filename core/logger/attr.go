package logger

import (
	"fmt"
	"log/slog"
	"time"
)

// Attribute helpers return an empty Attr for nil or empty input, so calls like
// log.Info("msg", logger.Error(err)) need no nil checks.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Action creates an attribute for action names.
func Action(action string) slog.Attr {
	return slog.String("action", action)
}

// Count creates a generic counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Key creates a generic key-value attribute.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// URL creates an attribute for an opened address.
func URL(raw string) slog.Attr {
	if raw == "" {
		return slog.Attr{}
	}
	return slog.String("url", raw)
}

// Pattern creates an attribute for a route pattern.
func Pattern(p string) slog.Attr {
	if p == "" {
		return slog.Attr{}
	}
	return slog.String("pattern", p)
}

// Scheme creates an attribute for an address scheme.
func Scheme(s string) slog.Attr {
	return slog.String("scheme", s)
}

// Outcome creates an attribute for a resolution outcome.
func Outcome(o fmt.Stringer) slog.Attr {
	if o == nil {
		return slog.Attr{}
	}
	return slog.String("outcome", o.String())
}

// TaskMode creates an attribute for a navigation task mode.
func TaskMode(m fmt.Stringer) slog.Attr {
	if m == nil {
		return slog.Attr{}
	}
	return slog.String("task_mode", m.String())
}
