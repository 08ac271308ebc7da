package router_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/linkrouter/core/router"
)

// counter counts handler invocations.
type counter struct{ n atomic.Int32 }

func (c *counter) action(context.Context, router.Params) { c.n.Add(1) }

func (c *counter) predicate(result bool) func(string) bool {
	return func(string) bool {
		c.n.Add(1)
		return result
	}
}

func (c *counter) count() int { return int(c.n.Load()) }

func TestInterceptorRefusesEverything(t *testing.T) {
	t.Parallel()

	var handler, notFound counter
	r := router.New(router.WithAppScheme("app"))
	r.MustRegister("app://a/:id", handler.action)
	r.MustRegisterObject("app://obj", func(context.Context, router.Params) any {
		handler.n.Add(1)
		return "value"
	})
	r.SetInterceptor(func(string) bool { return false })
	r.SetNotFoundHandler(notFound.predicate(true))

	for _, url := range []string{"app://a/1", "app://obj", "app://missing", "web://a/1", "::bad"} {
		assert.False(t, r.CanOpen(url), url)
		assert.Equal(t, router.Intercepted, r.Open(context.Background(), url), url)

		v, outcome := r.Object(context.Background(), url)
		assert.Nil(t, v)
		assert.Equal(t, router.Intercepted, outcome, url)
	}

	assert.Zero(t, handler.count())
	assert.Zero(t, notFound.count(), "not-found never runs after interception")
}

func TestInterceptorSeesRawAddress(t *testing.T) {
	t.Parallel()

	var seen []string
	r := router.New()
	r.MustRegister("app://a", noop)
	r.SetInterceptor(func(raw string) bool {
		seen = append(seen, raw)
		return true
	})

	r.Open(context.Background(), "app://a?x=1#f")
	assert.Equal(t, []string{"app://a?x=1#f"}, seen)

	r.SetInterceptor(nil)
	assert.Equal(t, router.Dispatched, r.Open(context.Background(), "app://a"))
	assert.Len(t, seen, 1)
}

func TestNotFoundHandler(t *testing.T) {
	t.Parallel()

	t.Run("runs only on a miss", func(t *testing.T) {
		t.Parallel()

		var nf counter
		r := router.New()
		r.MustRegister("app://a", noop)
		r.SetNotFoundHandler(nf.predicate(true))

		assert.Equal(t, router.Dispatched, r.Open(context.Background(), "app://a"))
		assert.Zero(t, nf.count())

		assert.Equal(t, router.NotFoundHandled, r.Open(context.Background(), "app://b"))
		assert.Equal(t, 1, nf.count())
	})

	t.Run("result decides outcome", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		r.SetNotFoundHandler(func(string) bool { return false })
		assert.Equal(t, router.NotFound, r.Open(context.Background(), "app://b"))
		assert.False(t, router.NotFound.OK())
	})

	t.Run("missing handler", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		assert.Equal(t, router.NotFound, r.Open(context.Background(), "app://b"))
	})

	t.Run("can open never calls it", func(t *testing.T) {
		t.Parallel()

		var nf counter
		r := router.New()
		r.SetNotFoundHandler(nf.predicate(true))
		assert.False(t, r.CanOpen("app://b"))
		assert.Zero(t, nf.count())
	})
}

func TestSchemeValidation(t *testing.T) {
	t.Parallel()

	var nf counter
	r := router.New()
	require.NoError(t, r.SetAppScheme("App://"))
	assert.Equal(t, "app", r.AppScheme())

	r.MustRegister("item/:id", noop)
	r.SetNotFoundHandler(nf.predicate(true))

	assert.Equal(t, router.Dispatched, r.Open(context.Background(), "APP://item/1"))
	assert.Equal(t, router.SchemeRejected, r.Open(context.Background(), "web://item/1"))
	assert.Equal(t, router.SchemeRejected, r.Open(context.Background(), "item/1"))
	assert.Equal(t, router.SchemeRejected, r.Open(context.Background(), "b@d://item/1"))
	assert.Zero(t, nf.count())

	assert.True(t, r.CanOpen("app://item/1"))
	assert.False(t, r.CanOpen("web://item/1"))

	assert.ErrorIs(t, r.SetAppScheme("1nvalid"), router.ErrInvalidScheme)
	assert.Equal(t, "app", r.AppScheme(), "invalid scheme leaves the old one")

	require.NoError(t, r.SetAppScheme(""))
	assert.Equal(t, router.Dispatched, r.Open(context.Background(), "web://item/1"))
}

func TestIsInnerScheme(t *testing.T) {
	t.Parallel()

	r := router.New()
	assert.False(t, r.IsInnerScheme("app://a"), "no app scheme configured")

	r = router.New(router.WithAppScheme("app"))
	assert.True(t, r.IsInnerScheme("app://a"))
	assert.True(t, r.IsInnerScheme("APP://"))
	assert.False(t, r.IsInnerScheme("https://example.com"))
	assert.False(t, r.IsInnerScheme("a/b"))
}

func TestSpecialSchemeHandler(t *testing.T) {
	t.Parallel()

	t.Run("owns matching schemes before everything else", func(t *testing.T) {
		t.Parallel()

		var handled []string
		var interceptor, handler counter
		r := router.New(router.WithAppScheme("app"))
		r.MustRegister("tel://:number", handler.action)
		r.SetInterceptor(interceptor.predicate(false))
		r.SetSpecialSchemeHandler(
			func(scheme string) bool { return scheme == "tel" },
			func(_ context.Context, raw string) bool {
				handled = append(handled, raw)
				return raw != "tel://refuse"
			},
		)

		assert.Equal(t, router.SpecialHandled, r.Open(context.Background(), "tel://123"))
		assert.Equal(t, router.SpecialRefused, r.Open(context.Background(), "tel://refuse"))
		v, outcome := r.Object(context.Background(), "tel://456")
		assert.Nil(t, v)
		assert.Equal(t, router.SpecialHandled, outcome)

		assert.Equal(t, []string{"tel://123", "tel://refuse", "tel://456"}, handled)
		assert.Zero(t, interceptor.count())
		assert.Zero(t, handler.count())

		assert.True(t, r.CanOpen("tel://789"))
		assert.Len(t, handled, 3, "CanOpen does not invoke the handler")

		// other schemes still reach the interceptor
		assert.Equal(t, router.Intercepted, r.Open(context.Background(), "app://x"))
		assert.Equal(t, 1, interceptor.count())
	})

	t.Run("nil predicate selects foreign schemes", func(t *testing.T) {
		t.Parallel()

		var special counter
		r := router.New(router.WithAppScheme("app"))
		r.MustRegister("app://a", noop)
		r.SetSpecialSchemeHandler(nil, func(context.Context, string) bool {
			special.n.Add(1)
			return true
		})

		assert.Equal(t, router.SpecialHandled, r.Open(context.Background(), "https://example.com/x"))
		assert.Equal(t, router.Dispatched, r.Open(context.Background(), "app://a"))
		assert.Equal(t, 1, special.count())
	})

	t.Run("nil predicate without app scheme selects nothing", func(t *testing.T) {
		t.Parallel()

		r := router.New()
		r.SetSpecialSchemeHandler(nil, func(context.Context, string) bool { return true })
		assert.Equal(t, router.NotFound, r.Open(context.Background(), "https://example.com"))
	})

	t.Run("nil handle removes the stage", func(t *testing.T) {
		t.Parallel()

		r := router.New(router.WithAppScheme("app"))
		r.SetSpecialSchemeHandler(nil, func(context.Context, string) bool { return true })
		r.SetSpecialSchemeHandler(nil, nil)
		assert.Equal(t, router.SchemeRejected, r.Open(context.Background(), "https://example.com"))
	})
}

func TestSlotsLastWriteWins(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.SetNotFoundHandler(func(string) bool { return false })
	r.SetNotFoundHandler(func(string) bool { return true })
	assert.Equal(t, router.NotFoundHandled, r.Open(context.Background(), "app://x"))

	r.SetInterceptor(func(string) bool { return false })
	r.SetInterceptor(func(string) bool { return true })
	assert.Equal(t, router.NotFoundHandled, r.Open(context.Background(), "app://x"))
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dispatched", router.Dispatched.String())
	assert.Equal(t, "kind_mismatch", router.KindMismatch.String())
	assert.Equal(t, "outcome(42)", router.Outcome(42).String())
	assert.True(t, router.SpecialHandled.OK())
	assert.False(t, router.Intercepted.OK())
}
