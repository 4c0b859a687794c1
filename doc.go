// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package httpfy builds outbound requests through a fluent API and hands
them to a pluggable pipeline for execution.

Create a Client around a Pipeline, then start each call with a verb
method and finish it with End or Do:

	p := pipe.New(pipe.Correlate(), &transport.Transport{BaseURL: base})
	client, err := httpfy.New(p)
	...
	res, err := client.Get(querystr.Params{{"q", "gophers"}}).
		Path("/users/:id/search", pathtmpl.Params{"id": 42}).
		Set("Accept", "application/json").
		Do(ctx)

Every call gets its own request and its own copy of the client's call
context, so concurrent calls on one Client never see each other's state.
Use Client.Context to derive a client bound to a different call context,
for example one per authenticated user:

	john := client.Context(request.CallContext{"user": "john"})

Builder methods apply in call order. Header values set on the builder win
over headers passed later through Options; any later Set overwrites.
Multi-valued headers stay structured until End, which joins them into
their wire form.

A builder remembers the first error raised while building, such as a
path placeholder with no parameter. The remaining chain calls do
nothing, and End returns the error without submitting anything.

Decorators wrap a Builder to add behaviour around End without touching
the base implementation:

	type audited struct{ httpfy.Builder }

	func (a audited) End(ctx context.Context, cb request.Callback) error {
		a.Options(request.Options{Extra: map[string]interface{}{"audit": true}})
		return a.Builder.End(ctx, cb)
	}

	client, err := httpfy.New(p, httpfy.WithDecorator(func(b httpfy.Builder) httpfy.Builder {
		return audited{b}
	}))

Package httpfy also provides small interfaces for each verb of the
client (Requester, Getter, Poster, Putter, Patcher and Deleter), a
combined interface composing them (API), and Inflate, which turns any
Requester into an API.
*/
package httpfy
