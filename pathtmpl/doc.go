// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package pathtmpl substitutes named placeholders in URL path patterns.

A placeholder is a colon followed by a name which runs, lazily, up to the
next word boundary:

	p, err := pathtmpl.Render("/users/:id/posts/:post", pathtmpl.Params{
		"id":   42,
		"post": "hello",
	})
	// p == "/users/42/posts/hello"

Lookups are strict: a placeholder with no matching parameter is an error
of type *MissingParamError, never an empty substitution.

The placeholder syntax is a property of a Template and can be replaced by
constructing a Template with a different interpolation expression.
*/
package pathtmpl
