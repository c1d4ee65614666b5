// Package client implements the stub remote-data service behind the demo.
//
// The Client simulates three remote interactions without any networking:
//
//   - Login waits a fixed latency, marks the session as logged in and then
//     fetches the initial data set.
//   - FetchDataSets generates placeholder records, waits the latency and
//     replaces the record collection wholesale.
//   - Logout clears the session and the records immediately.
//
// # Designated Loop
//
// All observable state lives on a single goroutine, the Loop. Operations may
// be called from any goroutine; every mutation and every notification is
// marshalled onto the Loop with Loop.Do, so observers never see a torn state.
//
// # Observing State
//
// Observers either register a callback with Subscribe, which runs on the Loop,
// or receive events on a channel from Watch:
//
//	events := c.Watch(ctx)
//	for ev := range events {
//	    fmt.Println(ev.Kind, ev.State.FetchCount)
//	}
//
// Callbacks must not block and must not call back into the Client; hand the
// event to another goroutine instead (Watch does exactly that).
//
// # In-flight Counter
//
// FetchCount counts simulated operations that are currently waiting. Login
// nests a fetch, so during the second half of a login the counter reads 2.
// The counter is always decremented when an operation returns, including when
// its context is cancelled mid-delay.
//
// # Errors
//
// The only operational failure is cancellation. It is reported as an
// *OperationError wrapping ErrCanceled and the context's own error:
//
//	if err := c.Login(ctx); errors.Is(err, client.ErrCanceled) {
//	    // state is left as it was when the delay was interrupted
//	}
package client
