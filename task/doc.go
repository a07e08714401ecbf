// Package task provides a cancelable deferred-computation primitive.
//
// A Task describes a single-shot computation that, when run, eventually
// settles with a success value or an error. Tasks are descriptions, not
// running computations: nothing happens until Run is called, and running
// the same Task value twice performs its side effects twice. That property
// is load bearing for HTTP request bodies, which must yield a brand-new
// byte stream every time a request is (re)sent.
//
// Cancellation uses context.Context, the standard Go cancellation carrier.
// A task's run function must honor ctx and return promptly with ctx.Err()
// once the context is done, performing any cleanup (listener removal,
// connection abort, timer clearing) before returning. A cancelled run
// returns neither channel's value to the caller in a meaningful way; use
// IsCanceled to tell cancellation apart from failure.
//
// Composition:
//
//	fetch := task.New(func(ctx context.Context) (string, error) { ... })
//	length := task.Map(fetch, func(s string) int { return len(s) })
//	n, err := length.Run(ctx)
//
// Map and Chain pass the same context down, so cancelling a composed task
// cancels whichever underlying task is currently pending.
package task
