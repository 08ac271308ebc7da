package router

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"

	"github.com/dmitrymomot/linkrouter/core/logger"
	"github.com/dmitrymomot/linkrouter/core/pattern"
	"github.com/dmitrymomot/linkrouter/core/taskstack"
)

// ActionHandler handles an opened address. It returns nothing; asynchronous
// results go through the completion callback in Params.
type ActionHandler func(ctx context.Context, p Params)

// ObjectHandler produces a value for an address.
type ObjectHandler func(ctx context.Context, p Params) any

// RouteKind tells which handler shape a route carries.
type RouteKind uint8

const (
	ActionRoute RouteKind = iota
	ObjectRoute
)

// String returns "action" or "object".
func (k RouteKind) String() string {
	if k == ObjectRoute {
		return "object"
	}
	return "action"
}

// Route describes a registered route for introspection.
type Route struct {
	Pattern   string
	Scheme    string
	Kind      RouteKind
	Navigable bool
}

// identity selects how a navigable route names its stack entries.
type identity uint8

const (
	identityNone    identity = iota
	identityPattern          // the route pattern
	identityURL              // the canonical opened address
)

// route is a compiled pattern bound to exactly one handler. It is never
// mutated after registration; re-registration stores a new route.
type route struct {
	pattern *pattern.Pattern
	kind    RouteKind
	action  ActionHandler
	object  ObjectHandler
	seq     uint64
	ident   identity
}

// handler adapts the route's handler to the common Handler shape.
func (rt *route) handler() Handler {
	if rt.kind == ObjectRoute {
		return Handler(rt.object)
	}
	action := rt.action
	return func(ctx context.Context, p Params) any {
		action(ctx, p)
		return nil
	}
}

// RouteOption configures a single registration.
type RouteOption func(*route)

// AsDestination marks the route as a navigation destination whose stack
// identity is the route pattern, so every address it matches is one entry.
func AsDestination() RouteOption {
	return func(rt *route) { rt.ident = identityPattern }
}

// AsURLDestination marks the route as a navigation destination whose stack
// identity is the canonical opened address, so app://item/1 and app://item/2
// are distinct entries.
func AsURLDestination() RouteOption {
	return func(rt *route) { rt.ident = identityURL }
}

// specialScheme owns addresses whose scheme satisfies match.
type specialScheme struct {
	match  func(scheme string) bool
	handle func(ctx context.Context, rawURL string) bool
}

// Router maps addresses to handlers. All state is owned by the instance;
// the zero value is not usable, create routers with New.
type Router struct {
	mu          sync.RWMutex
	routes      map[string]*route
	trees       map[string]*node // by lower-case scheme, "" for scheme-less patterns
	middlewares []Middleware

	// slots, last write wins
	appScheme   string
	interceptor func(rawURL string) bool
	notFound    func(rawURL string) bool
	special     *specialScheme

	wildcard    string
	defaultMode taskstack.Mode
	stack       *taskstack.Stack
	presenter   Presenter
	logger      *slog.Logger
	metrics     *Metrics
	tracer      trace.Tracer

	seq atomic.Uint64
}

// New creates a router with the given options.
func New(opts ...Option) *Router {
	r := &Router{
		routes:   make(map[string]*route),
		trees:    make(map[string]*node),
		wildcard: pattern.DefaultWildcard,
		logger:   logger.Discard(),
		tracer:   otel.GetTracerProvider().Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register binds an action handler to pattern. Registering an identical
// pattern string again replaces the previous route.
func (r *Router) Register(raw string, h ActionHandler, opts ...RouteOption) error {
	if h == nil {
		return fmt.Errorf("%w: '%s'", ErrNilHandler, raw)
	}
	return r.register(raw, &route{kind: ActionRoute, action: h}, opts)
}

// RegisterObject binds an object handler to pattern.
func (r *Router) RegisterObject(raw string, h ObjectHandler, opts ...RouteOption) error {
	if h == nil {
		return fmt.Errorf("%w: '%s'", ErrNilHandler, raw)
	}
	return r.register(raw, &route{kind: ObjectRoute, object: h}, opts)
}

// MustRegister is like Register but panics on error.
func (r *Router) MustRegister(raw string, h ActionHandler, opts ...RouteOption) {
	if err := r.Register(raw, h, opts...); err != nil {
		panic(err)
	}
}

// MustRegisterObject is like RegisterObject but panics on error.
func (r *Router) MustRegisterObject(raw string, h ObjectHandler, opts ...RouteOption) {
	if err := r.RegisterObject(raw, h, opts...); err != nil {
		panic(err)
	}
}

func (r *Router) register(raw string, rt *route, opts []RouteOption) error {
	r.mu.RLock()
	wildcard := r.wildcard
	r.mu.RUnlock()

	p, err := pattern.Compile(raw, pattern.WithWildcard(wildcard))
	if err != nil {
		r.logger.Warn("route registration rejected", logger.Pattern(raw), logger.Error(err))
		return err
	}

	rt.pattern = p
	for _, opt := range opts {
		opt(rt)
	}

	rt.seq = r.seq.Inc()

	r.mu.Lock()
	segs := p.Segments()
	root := r.trees[p.Scheme()]
	if old, ok := r.routes[raw]; ok {
		root.remove(segs, old.pattern.String())
	}
	if root == nil {
		root = newNode()
		r.trees[p.Scheme()] = root
	}
	root.insert(segs, rt)
	r.routes[raw] = rt
	n := len(r.routes)
	r.mu.Unlock()

	r.metrics.setRoutes(n)
	r.logger.Debug("route registered",
		logger.Pattern(raw),
		logger.Key("kind", rt.kind.String()),
		logger.Count("routes", n),
	)
	return nil
}

// Deregister removes the route registered under the exact pattern string.
// It is a no-op when no such route exists.
func (r *Router) Deregister(raw string) {
	r.mu.Lock()
	rt, ok := r.routes[raw]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.routes, raw)
	scheme := rt.pattern.Scheme()
	if root := r.trees[scheme]; root != nil && root.remove(rt.pattern.Segments(), raw) {
		delete(r.trees, scheme)
	}
	n := len(r.routes)
	r.mu.Unlock()

	r.metrics.setRoutes(n)
	r.logger.Debug("route deregistered", logger.Pattern(raw), logger.Count("routes", n))
}

// Routes returns every registered route sorted by pattern.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	out := make([]Route, 0, len(r.routes))
	for raw, rt := range r.routes {
		out = append(out, Route{
			Pattern:   raw,
			Scheme:    rt.pattern.Scheme(),
			Kind:      rt.kind,
			Navigable: rt.ident != identityNone,
		})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Pattern < out[j].Pattern })
	return out
}

// Use appends middleware wrapping every handler invocation. Middleware added
// later wraps inside middleware added earlier.
func (r *Router) Use(mw ...Middleware) {
	r.mu.Lock()
	r.middlewares = append(r.middlewares, mw...)
	r.mu.Unlock()
}

// Generate builds an address from raw and positional params using the
// router's wildcard. It does not consult the registry.
func (r *Router) Generate(raw string, params ...any) (string, error) {
	r.mu.RLock()
	wildcard := r.wildcard
	r.mu.RUnlock()

	p, err := pattern.Compile(raw, pattern.WithWildcard(wildcard))
	if err != nil {
		return "", err
	}
	return p.Generate(params...)
}
