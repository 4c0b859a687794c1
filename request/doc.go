// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the values that flow from a request builder into
a pipeline, and from an HTTP transport back out of it.

Request is the logical request being built: method, path, pre-encoded query
string, an opaque body, headers, and free-form extra options. A builder owns
its Request exclusively; what a pipeline receives is always a Clone.

CallContext is the ambient per-call data (identity, correlation id, and so
on) that travels beside a Request but is not part of it. Each call gets its
own copy, so pipeline handlers may write to it freely.

Plan and Execution serve the HTTP transport. A Plan is a Request resolved
against a base URL with its body buffered, ready to be turned into any
number of http.Request attempts:

	p, err := request.NewPlan(ctx, base, r)
	...
	e, err := transport.Do(p)
	...

An Execution is the state of one Plan execution. It is the value the HTTP
transport delivers as the response of a call, and the input to its retry
policies, timeout policies, and event handlers.
*/
package request
