// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipe

import (
	"github.com/gogama/httpfy/header"
	"github.com/gogama/httpfy/merge"
)

// Header returns a handler adding defaults to every request. A header
// the request already has is left alone. defaults is copied.
func Header(defaults header.Map) Handler {
	d := header.Stringify(defaults)
	return HandlerFunc(func(f *Flow, next func()) {
		f.Request.Header = merge.Fill(f.Request.Header, d)
		next()
	})
}
