// Package async provides Promise, a write-once completion handle.
//
// A Promise bridges callback-style completion to blocking waits. Router
// handlers receive a func(any) callback; callers pass a promise's Callback
// (or Resolve, for Promise[any]) and wait on it:
//
//	done := async.NewPromise[string]()
//	r.Open(ctx, "app://checkout", router.WithCompletion(done.Callback()))
//
//	result, err := done.AwaitWithTimeout(2 * time.Second)
//	if errors.Is(err, async.ErrTimeout) {
//		// the handler never completed
//	}
//
// The first Resolve or Reject settles the promise; later calls are ignored,
// so handlers that complete more than once do no harm.
//
// AwaitAll and AwaitAny coordinate several promises.
package async
