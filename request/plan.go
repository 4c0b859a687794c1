// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const nilCtxMsg = "httpfy/request: nil context"

// A Plan is a Request made ready for execution over HTTP. NewPlan
// resolves the path against a base URL, attaches the query string,
// converts the headers to their wire form and buffers the body.
//
// One Plan usually yields one http.Request, but it may yield several.
// When an attempt fails and the retry policy asks for another, the
// transport makes a fresh http.Request from the same Plan. This only
// works because the body is a byte slice and not a stream.
//
// The fields mirror those of http.Request that matter to a client.
// Server-side fields such as Proto are absent, and Body is simplified
// to a []byte. Streaming features such as trailers are left out on
// purpose, since every call here is a single buffered exchange.
//
// Like http.Request, a Plan carries a context. It bounds the whole
// execution, and canceling it stops an in-flight execution at the next
// attempt or wait.
type Plan struct {
	// Method specifies the HTTP method. It is never empty.
	Method string

	// URL specifies the URL to access.
	URL *urlpkg.URL

	// Header contains the request header fields.
	Header http.Header

	// Body is the pre-buffered request body. A nil or empty body means
	// no body is sent.
	Body []byte

	// Host optionally overrides the Host header. If empty, URL.Host is
	// sent.
	Host string

	// Extra carries the free-form options of the originating Request.
	// The transport does not interpret it; it is there for event
	// handlers.
	Extra map[string]interface{}

	ctx context.Context
}

// NewPlan resolves r against base and returns a Plan for it.
//
// If r.Path parses as an absolute URL, it is used as is. Otherwise it is
// joined onto the path of base; a nil base means r.Path must itself be a
// usable URL. A non-empty r.Search is appended to the URL's raw query
// without any further escaping.
//
// The body is converted with BodyBytes. Bodies of other types are
// encoded as JSON and, unless r sets a Content-Type, the Content-Type is
// set to application/json.
func NewPlan(ctx context.Context, base *urlpkg.URL, r *Request) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("httpfy/request: invalid method %q", method)
	}
	u, err := resolve(base, r.Path)
	if err != nil {
		return nil, err
	}
	if r.Search != "" {
		if u.RawQuery == "" {
			u.RawQuery = r.Search
		} else {
			u.RawQuery += "&" + r.Search
		}
	}
	h, err := r.Header.HTTP()
	if err != nil {
		return nil, err
	}
	b, isJSON, err := encodeBody(r.Body)
	if err != nil {
		return nil, err
	}
	if isJSON && h.Get("Content-Type") == "" {
		h.Set("Content-Type", "application/json")
	}
	host := h.Get("Host")
	if host == "" {
		host = u.Host
	}
	return &Plan{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: h,
		Body:   b,
		Host:   host,
		Extra:  r.Extra,
	}, nil
}

func resolve(base *urlpkg.URL, path string) (*urlpkg.URL, error) {
	ref, err := urlpkg.Parse(path)
	if err != nil {
		return nil, err
	}
	if ref.IsAbs() || base == nil {
		ref.Host = removeEmptyPort(ref.Host)
		return ref, nil
	}
	u := *base
	u.Host = removeEmptyPort(u.Host)
	if ref.Path != "" {
		u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(ref.Path, "/")
		u.RawPath = ""
	}
	if ref.RawQuery != "" {
		if u.RawQuery == "" {
			u.RawQuery = ref.RawQuery
		} else {
			u.RawQuery += "&" + ref.RawQuery
		}
	}
	return &u, nil
}

// Context returns the plan's context, which is never nil.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// ToRequest creates an HTTP request attempt for the plan, bound to ctx.
// The attempt shares the plan's URL and Header.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := (&http.Request{
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
	}).WithContext(ctx)
	r.Method = p.Method
	r.URL = p.URL
	r.Header = p.Header
	if len(p.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(p.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(p.Body)), nil
		}
		r.ContentLength = int64(len(p.Body))
	}
	r.Host = p.Host
	return r
}

// validMethod reports whether method is an RFC 7230 token.
func validMethod(method string) bool {
	return strings.IndexFunc(method, func(r rune) bool { return !httpguts.IsTokenRune(r) }) == -1
}

// hasPort is lifted verbatim from net/http/http.go
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort strips the empty port in "host:" as mandated by RFC
// 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
