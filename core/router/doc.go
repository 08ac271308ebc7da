// Package router dispatches symbolic addresses such as "app://item/42?ref=home"
// to registered handlers.
//
// A Router owns its registry and configuration; there is no global state.
// Routes bind a pattern to either an action handler or an object handler:
//
//	r := router.New(router.WithAppScheme("app"), router.WithLogger(log))
//
//	r.MustRegister("app://item/:id", func(ctx context.Context, p router.Params) {
//		show(p.Var("id"))
//		p.Complete("shown")
//	}, router.AsURLDestination())
//
//	r.MustRegisterObject("app://files/*", func(ctx context.Context, p router.Params) any {
//		tail, _ := p.PathToEnd()
//		return open(tail)
//	})
//
//	outcome := r.Open(ctx, "app://item/42", router.WithCompletion(func(v any) { ... }))
//	file, outcome := r.Object(ctx, "app://files/docs/readme.md")
//
// # Patterns and matching
//
// Pattern segments are literals, ":name" variables or the rest wildcard ("*"
// by default, see WithWildcard), which must come last and may match zero
// segments. When several patterns match an address the most specific wins:
// segments are compared from the start (literal over variable over
// wildcard, and ending exactly over a wildcard that matches nothing), then
// the count of leading literals, then a scheme-specific pattern over a
// scheme-less one, then the most recent registration. Registering an
// identical pattern string replaces the earlier route.
//
// # Pipeline
//
// Open, Object and CanOpen run the same stages in order, each able to end
// resolution with an Outcome:
//
//  1. special-scheme handler (SetSpecialSchemeHandler)
//  2. global interceptor (SetInterceptor)
//  3. app scheme validation (SetAppScheme)
//  4. matching, then the not-found handler (SetNotFoundHandler) on a miss
//
// CanOpen never calls the special-scheme handler, the not-found handler or a
// route handler.
//
// # Parameters
//
// Handlers receive a fresh Params mapping holding query items, decoded path
// variables and the reserved keys "url", "preferPath", "path-to-end",
// "userInfo", "completion", "query" and "task_mode". The completion callback
// is stored exactly as passed to WithCompletion; calling it is the handler's
// job. Object never sets it.
//
// # Navigation
//
// Routes registered with AsDestination or AsURLDestination are navigation
// destinations. When the router has a stack (WithStack), Open reconciles it
// with the effective task mode before the handler runs and hands the
// transition to the Presenter afterwards. The mode comes from WithTaskMode,
// then the "task_mode" query item, then WithDefaultTaskMode.
//
// Handler panics are not recovered.
package router
