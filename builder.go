// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpfy

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gogama/httpfy/header"
	"github.com/gogama/httpfy/pathtmpl"
	"github.com/gogama/httpfy/request"
)

// A Builder accumulates one call's request and submits it.
//
// Chain methods apply immediately, in call order, and return the builder
// for further chaining. The first error raised by a chain method is
// kept: later chain methods do nothing, Err reports it and End returns
// it without submitting.
//
// A Builder belongs to one call and is not safe for concurrent use.
type Builder interface {
	// Options merges o into the request. Headers already on the request
	// are kept; the other non-zero fields of o, and its Extra entries,
	// overwrite.
	Options(o request.Options) Builder

	// Path sets the request path. If params is nil, pattern is used
	// as is. Otherwise placeholders in pattern are replaced with values
	// from params, and a placeholder without a value is an error.
	Path(pattern string, params pathtmpl.Params) Builder

	// Set sets a request header, replacing any previous value. One value
	// gives a header.Single, several give a header.Multi.
	Set(key string, values ...string) Builder

	// Context returns the call's own call context. Changes to it are
	// seen by the pipeline if made before End, and by nobody else.
	Context() request.CallContext

	// Err returns the first error raised while building, if any.
	Err() error

	// End submits the request to the pipeline. cb is invoked at most
	// once with the outcome, possibly before End returns. End returns a
	// non-nil error, and never invokes cb, if the request could not be
	// submitted: because of a building error, because the client has no
	// pipeline, or because End was already called.
	End(ctx context.Context, cb request.Callback) error

	// Do calls End and waits for the outcome or for ctx to end.
	Do(ctx context.Context) (interface{}, error)
}

type builder struct {
	self     Builder
	pipeline Pipeline
	tmpl     pathtmpl.Template
	req      *request.Request
	call     request.CallContext
	err      error
	ended    atomic.Bool
}

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *builder) Options(o request.Options) Builder {
	if b.err == nil {
		b.req.Merge(o)
	}
	return b.self
}

func (b *builder) Path(pattern string, params pathtmpl.Params) Builder {
	if b.err != nil {
		return b.self
	}
	path, err := b.tmpl.Render(pattern, params)
	if err != nil {
		b.fail(err)
		return b.self
	}
	b.req.Path = path
	return b.self
}

func (b *builder) Set(key string, values ...string) Builder {
	if b.err != nil {
		return b.self
	}
	if err := header.ValidName(key); err != nil {
		b.fail(err)
		return b.self
	}
	v, err := header.Of(values...)
	if err != nil {
		b.fail(err)
		return b.self
	}
	b.req.Header[key] = v
	return b.self
}

func (b *builder) Context() request.CallContext {
	return b.call
}

func (b *builder) Err() error {
	return b.err
}

func (b *builder) End(ctx context.Context, cb request.Callback) error {
	if b.err != nil {
		return b.err
	}
	if b.pipeline == nil {
		return ErrNoPipeline
	}
	if !b.ended.CompareAndSwap(false, true) {
		return ErrFinalized
	}
	if ctx == nil {
		ctx = context.Background()
	}

	r := b.req.Clone()
	r.Header = header.Stringify(r.Header)
	var once sync.Once
	b.pipeline.Submit(ctx, b.call.Clone(), r, func(res interface{}, err error) {
		once.Do(func() {
			if cb != nil {
				cb(res, err)
			}
		})
	})
	return nil
}

type outcome struct {
	res interface{}
	err error
}

func (b *builder) Do(ctx context.Context) (interface{}, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ch := make(chan outcome, 1)
	err := b.self.End(ctx, func(res interface{}, err error) {
		ch <- outcome{res, err}
	})
	if err != nil {
		return nil, err
	}
	select {
	case o := <-ch:
		return o.res, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
