// Package http provides a low-level asynchronous HTTP client built on the
// task primitive, exposing explicit request/response control instead of an
// opinionated client.
//
// The pieces are small and compose: a Client sends exactly one round trip
// per request, MatchStatus/AcceptStatus route responses by status code, and
// FollowRedirects applies a pluggable redirection policy a bounded,
// cycle-safe number of times. Nothing here retries, caches, or follows
// anything implicitly; every policy decision belongs to the caller.
//
// Basic Usage:
//
//	client := http.NewClient()
//
//	req := http.NewRequest(http.Options{}, "https://api.example.com/users", http.EmptyBody())
//
//	resp, err := task.Chain(
//	    client.Send(req),
//	    func(r *http.Response) *task.Task[*http.Response] {
//	        return client.FollowRedirects(10, r)
//	    },
//	).Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	body, err := resp.Message().BufferText().Run(ctx)
//
// Cancellation:
//
// Cancelling the context of a running send aborts the live connection;
// cancelling a redirect-following task cancels whichever hop is in flight.
// Redirect hops are strictly sequential, never speculative.
//
// Thread Safety:
//
// Client is safe for concurrent use. Requests, responses, and the redirect
// engine's seen history are owned by a single call path each.
package http
