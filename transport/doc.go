// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport executes requests over HTTP with retry and per-attempt
timeouts. A Transport is the usual last handler of a pipe.Pipe.

The Transport resolves each request against its BaseURL into a
request.Plan, then runs the plan in an attempt/retry loop:

	t := &transport.Transport{
		BaseURL:     base,
		RetryPolicy: retry.DefaultPolicy,
	}
	p := pipe.New(pipe.Correlate(), t)

Every flow it handles is answered with a *request.Execution holding the
status, headers and fully buffered body of the last attempt. A non-2XX
status is not an error. Errors from the final attempt are *url.Error
values.

The zero value Transport is valid. It uses http.DefaultClient to send
requests, timeout.DefaultPolicy for attempt timeouts, retry.DefaultPolicy
to decide on retries and runs no event handlers.

Event handlers installed in a HandlerGroup run at fixed points inside the
loop (see Event) and may inspect or alter the execution, which makes them
the place for request signing, per-attempt logging and similar concerns.
*/
package transport
