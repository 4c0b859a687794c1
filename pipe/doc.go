// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package pipe executes finished requests through a chain of handlers.

A Pipe is an immutable handler chain. Each submitted request travels down
the chain inside its own Flow, which carries the request, the per-call
context, and the completion callback. A handler either passes the flow on
by calling next, or completes it with Respond or Fail:

	p := pipe.New(
		pipe.Correlate(),
		pipe.Log(slog.Default()),
		pipe.HandlerFunc(func(f *pipe.Flow, next func()) {
			f.Respond("hello " + f.Request.Path)
		}),
	)

Completion happens at most once per flow: later calls to Respond or Fail
are ignored. A flow that falls off the end of the chain fails with
ErrUnhandled. Handlers that need to see the outcome register an observer
with Flow.Observe before passing the flow on.

Handlers may complete a flow from another goroutine; the HTTP transport in
package transport does exactly that.
*/
package pipe
