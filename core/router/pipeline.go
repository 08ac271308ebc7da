package router

import (
	"context"
	"strings"

	"github.com/dmitrymomot/linkrouter/core/logger"
	"github.com/dmitrymomot/linkrouter/core/pattern"
)

// SetInterceptor installs the global interceptor. It sees every raw address
// after the special-scheme stage; returning false refuses the address.
// Passing nil removes it.
func (r *Router) SetInterceptor(fn func(rawURL string) bool) {
	r.mu.Lock()
	r.interceptor = fn
	r.mu.Unlock()
}

// SetAppScheme sets the scheme dispatched addresses must carry.
// The empty string disables scheme validation.
func (r *Router) SetAppScheme(scheme string) error {
	s, err := normalizeScheme(scheme)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.appScheme = s
	r.mu.Unlock()
	return nil
}

// AppScheme returns the configured app scheme, or "".
func (r *Router) AppScheme() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.appScheme
}

// SetNotFoundHandler installs the handler run when no route matches.
// Its result decides between NotFoundHandled and NotFound.
func (r *Router) SetNotFoundHandler(fn func(rawURL string) bool) {
	r.mu.Lock()
	r.notFound = fn
	r.mu.Unlock()
}

// SetSpecialSchemeHandler installs a handler that fully owns addresses whose
// scheme satisfies match; matching is skipped for them. A nil match selects
// every scheme other than the app scheme, and nothing while no app scheme is
// set. A nil handle removes the stage.
func (r *Router) SetSpecialSchemeHandler(match func(scheme string) bool, handle func(ctx context.Context, rawURL string) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if handle == nil {
		r.special = nil
		return
	}
	r.special = &specialScheme{match: match, handle: handle}
}

// slots is a consistent snapshot of the pipeline configuration.
type slots struct {
	appScheme   string
	interceptor func(string) bool
	notFound    func(string) bool
	special     *specialScheme
	middlewares []Middleware
}

func (r *Router) snapshot() slots {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slots{
		appScheme:   r.appScheme,
		interceptor: r.interceptor,
		notFound:    r.notFound,
		special:     r.special,
		middlewares: r.middlewares[:len(r.middlewares):len(r.middlewares)],
	}
}

// ownsScheme reports whether the special-scheme stage claims scheme.
func (s slots) ownsScheme(scheme string) bool {
	if s.special == nil {
		return false
	}
	if s.special.match != nil {
		return s.special.match(scheme)
	}
	return s.appScheme != "" && !strings.EqualFold(scheme, s.appScheme)
}

// resolution is the pipeline result for one address.
type resolution struct {
	outcome Outcome
	addr    pattern.Address
	route   *route
	match   Match
	slots   slots
}

// resolve runs the interception pipeline and the matcher. With probe set it
// invokes neither the special-scheme handler nor the not-found handler.
// The outcome is Dispatched when a route was found; nothing has run yet.
func (r *Router) resolve(ctx context.Context, rawURL string, probe bool) resolution {
	res := resolution{slots: r.snapshot()}
	s := res.slots

	addr, parseErr := pattern.ParseAddress(rawURL)
	res.addr = addr

	if parseErr == nil && s.ownsScheme(addr.Scheme) {
		switch {
		case probe:
			res.outcome = SpecialHandled
		case s.special.handle(ctx, rawURL):
			res.outcome = SpecialHandled
		default:
			res.outcome = SpecialRefused
		}
		return res
	}

	if s.interceptor != nil && !s.interceptor(rawURL) {
		res.outcome = Intercepted
		return res
	}

	if parseErr != nil {
		r.logger.Debug("address rejected", logger.URL(rawURL), logger.Error(parseErr))
		res.outcome = SchemeRejected
		return res
	}
	if s.appScheme != "" && !strings.EqualFold(addr.Scheme, s.appScheme) {
		r.logger.Debug("foreign scheme rejected", logger.URL(rawURL), logger.Scheme(addr.Scheme))
		res.outcome = SchemeRejected
		return res
	}

	rt, m, ok := r.lookup(addr)
	if ok {
		res.route, res.match = rt, m
		res.outcome = Dispatched
		return res
	}

	res.outcome = NotFound
	if !probe && s.notFound != nil && s.notFound(rawURL) {
		res.outcome = NotFoundHandled
	}
	return res
}
