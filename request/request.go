// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"github.com/gogama/httpfy/header"
	"github.com/gogama/httpfy/merge"
)

// A Request is a logical outbound request under construction.
type Request struct {
	// Method is the request method, for example GET or POST. An empty
	// string is left for the pipeline to interpret; the HTTP transport
	// treats it as GET.
	Method string

	// Path is the request path. It may be relative to a base URL known
	// to the pipeline, or an absolute URL.
	Path string

	// Search is the already-encoded query string, without a leading
	// question mark.
	Search string

	// Body is the request body. Its interpretation is up to the
	// pipeline.
	Body interface{}

	// Header holds the request headers.
	Header header.Map

	// Extra holds free-form options merged into the request that have
	// no dedicated field.
	Extra map[string]interface{}
}

// Clone returns a shallow copy of r with its own Header and Extra maps.
// The Header of the copy is never nil.
func (r *Request) Clone() *Request {
	r2 := new(Request)
	*r2 = *r
	r2.Header = r.Header.Clone()
	if r.Extra != nil {
		r2.Extra = merge.Clone(r.Extra)
	}
	return r2
}

// Options are merged into a Request under construction.
//
// Zero-valued scalar fields (Method, Path, Search, and Body) are ignored.
// Header entries only fill names the request does not already have,
// whereas Extra entries overwrite.
type Options struct {
	Method string
	Path   string
	Search string
	Body   interface{}
	Header header.Map
	Extra  map[string]interface{}
}

// Merge merges o into r. Neither o nor its maps are modified.
func (r *Request) Merge(o Options) {
	r.Header = merge.Fill(r.Header, o.Header)
	if r.Header == nil {
		r.Header = header.Map{}
	}
	if o.Method != "" {
		r.Method = o.Method
	}
	if o.Path != "" {
		r.Path = o.Path
	}
	if o.Search != "" {
		r.Search = o.Search
	}
	if o.Body != nil {
		r.Body = o.Body
	}
	if len(o.Extra) > 0 {
		r.Extra = merge.Mixin(r.Extra, o.Extra)
	}
}

// A CallContext holds ambient data for a single call.
type CallContext map[string]interface{}

// Clone returns a shallow copy of c. The copy of a nil CallContext is
// empty, not nil.
func (c CallContext) Clone() CallContext {
	return merge.Clone(c)
}

// With returns a copy of c with the entries of override added, override
// winning on conflict. Neither c nor override is modified.
func (c CallContext) With(override CallContext) CallContext {
	return merge.Mixin(c.Clone(), override)
}

// A Callback receives the outcome of a submitted request. A pipeline
// calls it exactly once, with either a response or a non-nil error.
type Callback func(res interface{}, err error)
