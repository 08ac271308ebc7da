package router

import (
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/linkrouter/core/pattern"
	"github.com/dmitrymomot/linkrouter/core/taskstack"
)

// Option configures a Router during creation.
type Option func(*Router)

// WithAppScheme sets the scheme every dispatched address must carry.
// Invalid schemes are ignored; use SetAppScheme to get the error.
func WithAppScheme(scheme string) Option {
	return func(r *Router) {
		if s, err := normalizeScheme(scheme); err == nil {
			r.appScheme = s
		}
	}
}

// WithWildcard sets the token that marks a rest wildcard in patterns.
func WithWildcard(token string) Option {
	return func(r *Router) {
		if token != "" {
			r.wildcard = token
		}
	}
}

// WithDefaultTaskMode sets the mode used when neither the caller nor the
// address selects one.
func WithDefaultTaskMode(mode taskstack.Mode) Option {
	return func(r *Router) {
		if mode.Valid() {
			r.defaultMode = mode
		}
	}
}

// WithLogger sets a custom logger for the router.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records dispatch outcomes into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithTracerProvider sets the provider used for dispatch spans.
// The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Router) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithStack attaches the navigation stack reconciled for destination routes.
func WithStack(s *taskstack.Stack) Option {
	return func(r *Router) {
		r.stack = s
	}
}

// WithPresenter sets the collaborator that realises navigation transitions.
func WithPresenter(p Presenter) Option {
	return func(r *Router) {
		r.presenter = p
	}
}

// WithMiddleware adds middleware to the router.
func WithMiddleware(mw ...Middleware) Option {
	return func(r *Router) {
		r.middlewares = append(r.middlewares, mw...)
	}
}

// WithConfig applies an environment-loaded Config. Empty or invalid fields
// keep their defaults.
func WithConfig(cfg Config) Option {
	return func(r *Router) {
		if cfg.AppScheme != "" {
			WithAppScheme(cfg.AppScheme)(r)
		}
		WithWildcard(cfg.Wildcard)(r)
		if mode, err := taskstack.ParseMode(cfg.DefaultTaskMode); err == nil {
			r.defaultMode = mode
		}
	}
}

// normalizeScheme lower-cases scheme, trimming a trailing "://".
// The empty string is valid and disables scheme validation.
func normalizeScheme(scheme string) (string, error) {
	s := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(scheme), "://"))
	if s == "" {
		return "", nil
	}
	if !pattern.ValidScheme(s) {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidScheme, scheme)
	}
	return s, nil
}
