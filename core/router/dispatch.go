package router

import (
	"context"
	"maps"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/linkrouter/core/logger"
	"github.com/dmitrymomot/linkrouter/core/pattern"
	"github.com/dmitrymomot/linkrouter/core/taskstack"
)

const tracerName = "github.com/dmitrymomot/linkrouter/core/router"

// Operation labels for metrics and span names.
const (
	opOpen    = "open"
	opObject  = "object"
	opCanOpen = "can_open"
)

// OpenOption configures a single Open or Object call.
type OpenOption func(*openOptions)

type openOptions struct {
	userInfo   map[string]any
	completion func(any)
	mode       taskstack.Mode
	hasMode    bool
}

// WithUserInfo passes caller context to the handler under "userInfo".
func WithUserInfo(info map[string]any) OpenOption {
	return func(o *openOptions) { o.userInfo = info }
}

// WithCompletion stores fn under "completion" for action handlers. The router
// never calls it. Object ignores this option.
func WithCompletion(fn func(any)) OpenOption {
	return func(o *openOptions) { o.completion = fn }
}

// WithTaskMode selects the navigation mode, overriding the task_mode query item.
func WithTaskMode(mode taskstack.Mode) OpenOption {
	return func(o *openOptions) {
		if mode.Valid() {
			o.mode, o.hasMode = mode, true
		}
	}
}

// Open resolves rawURL and runs its handler. Object routes run too; their
// value is discarded. Handler panics propagate to the caller.
func (r *Router) Open(ctx context.Context, rawURL string, opts ...OpenOption) Outcome {
	o := openOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	ctx, span := r.startSpan(ctx, opOpen, rawURL)
	defer span.End()

	res := r.resolve(ctx, rawURL, false)
	if res.outcome == Dispatched {
		r.dispatchAction(ctx, res, o)
	}

	r.finish(span, opOpen, rawURL, res, time.Since(start))
	return res.outcome
}

// Object resolves rawURL and returns the value produced by its object handler.
// It returns KindMismatch without invoking anything when the address resolves
// to an action route.
func (r *Router) Object(ctx context.Context, rawURL string, opts ...OpenOption) (any, Outcome) {
	o := openOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	o.completion = nil

	start := time.Now()
	ctx, span := r.startSpan(ctx, opObject, rawURL)
	defer span.End()

	res := r.resolve(ctx, rawURL, false)

	var v any
	if res.outcome == Dispatched {
		if res.route.kind != ObjectRoute {
			res.outcome = KindMismatch
		} else {
			p := r.params(res, o)
			v = chain(res.slots.middlewares, res.route.handler())(ctx, p)
		}
	}

	r.finish(span, opObject, rawURL, res, time.Since(start))
	return v, res.outcome
}

// CanOpen reports whether Open would handle rawURL, without running any
// handler. The interceptor and special-scheme predicate are still consulted.
func (r *Router) CanOpen(rawURL string) bool {
	start := time.Now()
	res := r.resolve(context.Background(), rawURL, true)
	r.metrics.observe(opCanOpen, res.outcome, time.Since(start))
	return res.outcome == Dispatched || res.outcome == SpecialHandled
}

// IsInnerScheme reports whether rawURL carries the configured app scheme.
// It is false while no app scheme is set.
func (r *Router) IsInnerScheme(rawURL string) bool {
	scheme := r.AppScheme()
	if scheme == "" {
		return false
	}
	addr, err := pattern.ParseAddress(rawURL)
	return err == nil && strings.EqualFold(addr.Scheme, scheme)
}

// dispatchAction reconciles the stack for destination routes, runs the
// handler, then hands the transition to the presenter.
func (r *Router) dispatchAction(ctx context.Context, res resolution, o openOptions) {
	p := r.params(res, o)
	if o.completion != nil {
		p[KeyCompletion] = o.completion
	}

	var (
		t         taskstack.Transition
		navigated bool
	)
	if res.route.ident != identityNone && r.stack != nil {
		t, navigated = r.navigate(ctx, res, p)
	}

	chain(res.slots.middlewares, res.route.handler())(ctx, p)

	if navigated && r.presenter != nil {
		r.presenter.Present(ctx, t, p, r.stack)
	}
}

// navigate applies the destination to the stack before the handler runs.
func (r *Router) navigate(ctx context.Context, res resolution, p Params) (taskstack.Transition, bool) {
	id := res.route.pattern.String()
	if res.route.ident == identityURL {
		id = pattern.Canonical(res.addr.Raw)
	}

	mode, _ := p.TaskMode()
	t, err := r.stack.Apply(taskstack.NewDestination(id, maps.Clone(map[string]any(p))), mode)
	if err != nil {
		r.logger.WarnContext(ctx, "navigation skipped", logger.URL(res.addr.Raw), logger.Error(err))
		return taskstack.Transition{}, false
	}

	r.logger.DebugContext(ctx, "stack reconciled",
		logger.Pattern(res.route.pattern.String()),
		logger.TaskMode(mode),
		logger.Count("depth", len(t.Stack)),
		logger.Count("removed", len(t.Removed)),
	)
	return t, true
}

// params builds the fresh mapping for one invocation. Query items go in
// first, path variables overwrite them, reserved keys overwrite both.
func (r *Router) params(res resolution, o openOptions) Params {
	p := make(Params, len(res.addr.Query)+len(res.match.Variables)+6)

	for k, vs := range res.addr.Query {
		if len(vs) > 0 {
			p[k] = vs[0]
		}
	}
	for k, v := range res.match.Variables {
		p[k] = v
	}

	p[KeyURL] = res.addr.Raw
	p[KeyPreferPath] = res.route.pattern.String()
	p[KeyQuery] = res.addr.Query
	delete(p, KeyPathToEnd)
	delete(p, KeyUserInfo)
	delete(p, KeyCompletion)
	if res.match.HasTail {
		p[KeyPathToEnd] = res.match.PathToEnd
	}
	if o.userInfo != nil {
		p[KeyUserInfo] = o.userInfo
	}

	p[KeyTaskMode] = r.taskMode(res, o)
	return p
}

// taskMode picks the option, then the task_mode query item, then the default.
func (r *Router) taskMode(res resolution, o openOptions) taskstack.Mode {
	if o.hasMode {
		return o.mode
	}
	if raw := res.addr.Query.Get(KeyTaskMode); raw != "" {
		if m, err := taskstack.ParseMode(raw); err == nil {
			return m
		}
		r.logger.Debug("ignoring task mode", logger.URL(res.addr.Raw), logger.Key("value", raw))
	}
	return r.defaultMode
}

func (r *Router) startSpan(ctx context.Context, op, rawURL string) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, "linkrouter."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("linkrouter.url", rawURL)),
	)
}

// finish records the outcome on the span, in metrics and in the log.
func (r *Router) finish(span trace.Span, op, rawURL string, res resolution, d time.Duration) {
	span.SetAttributes(attribute.String("linkrouter.outcome", res.outcome.String()))
	if res.route != nil {
		span.SetAttributes(attribute.String("linkrouter.pattern", res.route.pattern.String()))
	}
	if !res.outcome.OK() {
		span.SetStatus(codes.Error, res.outcome.String())
	}

	r.metrics.observe(op, res.outcome, d)

	var pat string
	if res.route != nil {
		pat = res.route.pattern.String()
	}
	r.logger.Debug("address resolved",
		logger.Action(op),
		logger.URL(rawURL),
		logger.Pattern(pat),
		logger.Outcome(res.outcome),
		logger.Duration(d),
	)
}
