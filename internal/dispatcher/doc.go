// Package dispatcher runs submitted command lines against the registered
// command handlers.
//
// Handlers are tried in registration order and the first one to return
// handler.Accepted wins. Every non-empty line is appended to the command
// history before any handler runs, so history records what the user typed
// whether or not it was understood. When no handler accepts, the status
// line reads "Not an editor command: <line>".
//
// Basic usage:
//
//	d := dispatcher.NewWithDefaults()
//	d.Register(handler.Named("echo", echoFunc))
//	outcome := d.Dispatch(ctx, "echo hello")
//
// Each registration returns a uuid that can later be passed to Remove.
// Pre and post hooks observe every dispatch; pre hooks may cancel it.
package dispatcher
