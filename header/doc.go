// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package header holds request header values while a request is being
built.

A header Value is either a Single string or a Multi list of strings. A
Multi value keeps its parts separate until the request is finalized, when
Stringify collapses it into the single comma-separated string sent on the
wire:

	m := header.Map{
		"Accept": header.Multi{"text/html", "application/json"},
		"X-Id":   header.Single("abc"),
	}
	wire := header.Stringify(m)
	// wire["Accept"] == header.Single("text/html, application/json")
*/
package header
