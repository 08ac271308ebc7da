package router_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/linkrouter/core/pattern"
	"github.com/dmitrymomot/linkrouter/core/router"
)

func noop(context.Context, router.Params) {}

func TestMatchVariables(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.MustRegister("app://user/:uid/post/:pid", noop)

	m, ok := r.Match("app://user/42/post/hello%20world?x=1#top")
	require.True(t, ok)
	assert.Equal(t, "app://user/:uid/post/:pid", m.Pattern)
	assert.Equal(t, map[string]string{"uid": "42", "pid": "hello world"}, m.Variables)
	assert.False(t, m.HasTail)
}

func TestMatchSpecificity(t *testing.T) {
	t.Parallel()

	r := router.New()
	for _, p := range []string{
		"app://a/:id",
		"app://a/literal",
		"app://a/*",
		"app://a/:id/b",
		"app://a/x/*",
		"app://:section/list",
		"app://a",
	} {
		r.MustRegister(p, noop)
	}

	tests := []struct {
		url  string
		want string
	}{
		{"app://a/literal", "app://a/literal"},
		{"app://a/42", "app://a/:id"},
		{"app://a/42/b", "app://a/:id/b"},
		{"app://a/42/c", "app://a/*"},
		{"app://a/x/b", "app://a/x/*"},
		{"app://a/x", "app://a/x/*"},
		{"app://a", "app://a"},
		{"app://a/list", "app://a/:id"},
		{"app://z/list", "app://:section/list"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			m, ok := r.Match(tt.url)
			require.True(t, ok)
			assert.Equal(t, tt.want, m.Pattern)
		})
	}
}

func TestMatchIsOrderIndependent(t *testing.T) {
	t.Parallel()

	patterns := []string{"app://a/:id", "app://a/literal", "app://a/*"}

	forward := router.New()
	backward := router.New()
	for i := range patterns {
		forward.MustRegister(patterns[i], noop)
		backward.MustRegister(patterns[len(patterns)-1-i], noop)
	}

	for _, url := range []string{"app://a/literal", "app://a/7", "app://a/7/8"} {
		f, ok := forward.Match(url)
		require.True(t, ok)
		b, ok := backward.Match(url)
		require.True(t, ok)
		assert.Equal(t, f.Pattern, b.Pattern, url)
	}
}

func TestMatchRest(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.MustRegister("app://files/*", noop)
	r.MustRegister("app://docs", noop)
	r.MustRegister("app://docs/*", noop)

	m, ok := r.Match("app://files/a%2Fb/c%20d/e")
	require.True(t, ok)
	assert.True(t, m.HasTail)
	assert.Equal(t, "a/b/c d/e", m.PathToEnd)

	m, ok = r.Match("app://files")
	require.True(t, ok, "rest matches zero segments")
	assert.True(t, m.HasTail)
	assert.Equal(t, "", m.PathToEnd)

	m, ok = r.Match("app://docs")
	require.True(t, ok)
	assert.Equal(t, "app://docs", m.Pattern, "exact length beats an empty rest")
	assert.False(t, m.HasTail)

	m, ok = r.Match("app://files/a//b/")
	require.True(t, ok)
	assert.Equal(t, "a/b", m.PathToEnd, "empty segments are dropped from the tail")
}

func TestMatchDecodedLiteral(t *testing.T) {
	t.Parallel()

	r := router.New()
	assert.ErrorIs(t, r.Register("app://caf%C3%A9", noop), pattern.ErrMalformedPattern)

	r.MustRegister("app://café/:id", noop)
	m, ok := r.Match("app://caf%C3%A9/1")
	require.True(t, ok)
	assert.Equal(t, "app://café/:id", m.Pattern)
	assert.Equal(t, map[string]string{"id": "1"}, m.Variables)
}

func TestMatchSchemes(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.MustRegister("item/:id", noop)
	r.MustRegister("APP://item/:id", noop)
	r.MustRegister("other://only", noop)

	m, ok := r.Match("app://item/1")
	require.True(t, ok)
	assert.Equal(t, "APP://item/:id", m.Pattern, "scheme-specific wins a tie")

	m, ok = r.Match("web://item/1")
	require.True(t, ok)
	assert.Equal(t, "item/:id", m.Pattern, "scheme-less matches any scheme")

	m, ok = r.Match("/item/1")
	require.True(t, ok)
	assert.Equal(t, "item/:id", m.Pattern)

	_, ok = r.Match("app://only")
	assert.False(t, ok)

	_, ok = r.Match("1bad://item/1")
	assert.False(t, ok)
}

func TestMatchTieBreakMostRecent(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.MustRegister("app://a/:id", noop)
	r.MustRegister("app://a/:name", noop)

	m, ok := r.Match("app://a/1")
	require.True(t, ok)
	assert.Equal(t, "app://a/:name", m.Pattern)
	assert.Equal(t, map[string]string{"name": "1"}, m.Variables)

	// the scheme-specific route outranks a newer scheme-less one
	r.MustRegister("a/:x", noop)
	m, ok = r.Match("app://a/1")
	require.True(t, ok)
	assert.Equal(t, "app://a/:name", m.Pattern)

	// re-registering makes the first one the most recent again
	r.MustRegister("app://a/:id", noop)
	m, ok = r.Match("app://a/1")
	require.True(t, ok)
	assert.Equal(t, "app://a/:id", m.Pattern)
}

func TestRegisterReplacesIdenticalPattern(t *testing.T) {
	t.Parallel()

	r := router.New()
	var calls []string
	r.MustRegister("app://x/:id", func(context.Context, router.Params) { calls = append(calls, "first") })
	r.MustRegister("app://x/:id", func(context.Context, router.Params) { calls = append(calls, "second") })

	assert.Len(t, r.Routes(), 1)
	assert.Equal(t, router.Dispatched, r.Open(context.Background(), "app://x/1"))
	assert.Equal(t, []string{"second"}, calls)
}

func TestRegisterMalformed(t *testing.T) {
	t.Parallel()

	r := router.New()
	for _, p := range []string{"", "app://a//b", "app://*/a", "app://a/*/*", "app://:/x", "app://:id/:id"} {
		err := r.Register(p, noop)
		assert.ErrorIs(t, err, pattern.ErrMalformedPattern, p)
	}
	assert.Empty(t, r.Routes())

	assert.ErrorIs(t, r.Register("app://a", nil), router.ErrNilHandler)
	assert.ErrorIs(t, r.RegisterObject("app://a", nil), router.ErrNilHandler)
	assert.Panics(t, func() { r.MustRegister("app://a//", noop) })
	assert.Panics(t, func() { r.MustRegisterObject("app://a//", nil) })
}

func TestDeregister(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.MustRegister("app://a/:id", noop)
	r.MustRegister("app://a/literal", noop)

	r.Deregister("app://a/literal")
	r.Deregister("app://missing")

	m, ok := r.Match("app://a/literal")
	require.True(t, ok)
	assert.Equal(t, "app://a/:id", m.Pattern)

	r.Deregister("app://a/:id")
	_, ok = r.Match("app://a/literal")
	assert.False(t, ok)
	assert.Empty(t, r.Routes())

	// the pruned branch can be rebuilt
	r.MustRegister("app://a/:id", noop)
	_, ok = r.Match("app://a/1")
	assert.True(t, ok)
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.MustRegister("app://b", noop, router.AsDestination())
	r.MustRegisterObject("app://a", func(context.Context, router.Params) any { return nil })

	assert.Equal(t, []router.Route{
		{Pattern: "app://a", Scheme: "app", Kind: router.ObjectRoute},
		{Pattern: "app://b", Scheme: "app", Kind: router.ActionRoute, Navigable: true},
	}, r.Routes())
}

func TestGenerateRoundTrip(t *testing.T) {
	t.Parallel()

	r := router.New()
	const p = "app://shop/:category/item/:id"
	r.MustRegister(p, noop)

	tests := [][]any{
		{"shoes", 42},
		{"a b", "c/d"},
		{"ünï", "100%"},
	}
	for _, params := range tests {
		url, err := r.Generate(p, params...)
		require.NoError(t, err)

		m, ok := r.Match(url)
		require.True(t, ok, url)
		assert.Equal(t, fmt.Sprint(params[0]), m.Variables["category"], url)
		assert.Equal(t, fmt.Sprint(params[1]), m.Variables["id"], url)
	}

	_, err := r.Generate(p, "only-one")
	assert.ErrorIs(t, err, pattern.ErrArityMismatch)
}

func TestWildcardOption(t *testing.T) {
	t.Parallel()

	r := router.New(router.WithWildcard("**"))
	r.MustRegister("app://files/**", noop)
	r.MustRegister("app://lit/*", noop)

	m, ok := r.Match("app://files/a/b")
	require.True(t, ok)
	assert.Equal(t, "a/b", m.PathToEnd)

	_, ok = r.Match("app://lit/x")
	assert.False(t, ok, "* is a literal with a custom wildcard")
	_, ok = r.Match("app://lit/*")
	assert.True(t, ok)

	url, err := r.Generate("app://files/**", "x/y")
	require.NoError(t, err)
	assert.Equal(t, "app://files/x%2Fy", url)
}

func TestConcurrentRegisterAndMatch(t *testing.T) {
	t.Parallel()

	r := router.New()
	r.MustRegister("app://base/:id", noop)

	var g errgroup.Group
	for i := range 20 {
		g.Go(func() error {
			return r.Register(fmt.Sprintf("app://w%d/:id", i), noop)
		})
		g.Go(func() error {
			for range 50 {
				if _, ok := r.Match("app://base/1"); !ok {
					return fmt.Errorf("base route not matched")
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Len(t, r.Routes(), 21)

	for i := range 20 {
		_, ok := r.Match(fmt.Sprintf("app://w%d/x", i))
		assert.True(t, ok)
	}
}
