// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package querystr converts values into raw query strings.

Encode walks an object, emitting one key/value pair per scalar field and one
pair per element of a slice field:

	s := querystr.Stringify(querystr.Params{
		{"id", 7},
		{"tag", []string{"a", "b"}},
		{"next", nil},
	})
	// s == "id=7&tag=a&tag=b&next="

The pair and key/value separators are configurable. No percent-encoding is
applied: keys and values are emitted verbatim, and escaping, if needed, is
up to the caller.

Go maps have no iteration order, so map inputs are encoded in sorted key
order. Use Params when field order matters.
*/
package querystr
