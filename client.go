// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpfy

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogama/httpfy/pathtmpl"
	"github.com/gogama/httpfy/request"
)

var (
	// ErrNoPipeline is returned when a Client has no pipeline to submit
	// requests to.
	ErrNoPipeline = errors.New("httpfy: no pipeline")
	// ErrFinalized is returned by End when the builder was already
	// ended.
	ErrFinalized = errors.New("httpfy: builder already ended")
	// ErrBadDecorator is reported for a nil decorator, or a decorator
	// that returns a nil Builder.
	ErrBadDecorator = errors.New("httpfy: bad decorator")
)

// A Pipeline executes finished requests. Submit must invoke cb exactly
// once, with a response or a non-nil error, either before or after
// returning.
//
// Submit owns r and call: the builder hands over copies it never touches
// again.
type Pipeline interface {
	Submit(ctx context.Context, call request.CallContext, r *request.Request, cb request.Callback)
}

// The PipelineFunc type is an adapter to allow the use of ordinary
// functions as pipelines.
type PipelineFunc func(ctx context.Context, call request.CallContext, r *request.Request, cb request.Callback)

// Submit calls f(ctx, call, r, cb).
func (f PipelineFunc) Submit(ctx context.Context, call request.CallContext, r *request.Request, cb request.Callback) {
	f(ctx, call, r, cb)
}

// A Decorator wraps a Builder to extend it, typically by embedding the
// Builder and overriding End. Builder methods that return a Builder
// return the outermost decorated value, so chaining keeps the
// decorations.
type Decorator func(Builder) Builder

// Option configures a Client.
type Option func(*options) error

type options struct {
	call       request.CallContext
	tmpl       *pathtmpl.Template
	decorators []Decorator
}

// WithContext sets the client's base call context. The map is copied.
func WithContext(call request.CallContext) Option {
	return func(opts *options) error {
		opts.call = call.Clone()
		return nil
	}
}

// WithTemplate sets the templater used by Builder.Path. Default is
// pathtmpl.Default.
func WithTemplate(t pathtmpl.Template) Option {
	return func(opts *options) error {
		opts.tmpl = &t
		return nil
	}
}

// WithDecorator adds a decorator applied to every builder the client
// creates. Decorators apply in the order given, so the last one is the
// outermost.
func WithDecorator(d Decorator) Option {
	return func(opts *options) error {
		if d == nil {
			return ErrBadDecorator
		}
		opts.decorators = append(opts.decorators, d)
		return nil
	}
}

// A Client starts calls against a pipeline. A Client is never modified
// after New returns, so it is safe for concurrent use by multiple
// goroutines.
//
// The zero value has no pipeline: builders it creates fail with
// ErrNoPipeline when ended.
type Client struct {
	pipeline   Pipeline
	call       request.CallContext
	tmpl       pathtmpl.Template
	decorators []Decorator
}

// New returns a client submitting to p. It returns ErrNoPipeline if p is
// nil.
func New(p Pipeline, optFns ...Option) (*Client, error) {
	if p == nil {
		return nil, ErrNoPipeline
	}

	opts := options{}
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("httpfy: applying client option: %w", err)
		}
	}

	c := &Client{
		pipeline:   p,
		call:       opts.call,
		tmpl:       pathtmpl.Default,
		decorators: opts.decorators,
	}
	if c.call == nil {
		c.call = request.CallContext{}
	}
	if opts.tmpl != nil {
		c.tmpl = *opts.tmpl
	}
	return c, nil
}

// Context returns a new client sharing c's pipeline, templater and
// decorators, whose base call context is a copy of call. c is not
// modified, and later changes to call do not affect the new client.
func (c *Client) Context(call request.CallContext) *Client {
	c2 := new(Client)
	*c2 = *c
	c2.call = call.Clone()
	return c2
}

// Extend returns a new client like Context does, except that the new
// base call context is c's with the entries of override added, override
// winning on conflict.
func (c *Client) Extend(override request.CallContext) *Client {
	c2 := new(Client)
	*c2 = *c
	c2.call = c.call.With(override)
	return c2
}

// BaseContext returns a copy of the client's base call context.
func (c *Client) BaseContext() request.CallContext {
	return c.call.Clone()
}

// Request starts a call from the skeleton r and returns its builder.
//
// The builder owns a copy of r, with its own header map, and a copy of
// the client's base call context. The client's decorators are applied
// first, then the ones passed here.
func (c *Client) Request(r request.Request, decorators ...Decorator) Builder {
	b := &builder{
		pipeline: c.pipeline,
		tmpl:     c.tmpl,
		req:      r.Clone(),
		call:     c.call.Clone(),
	}
	var outer Builder = b
	b.self = b
	for _, d := range append(c.decorators[:len(c.decorators):len(c.decorators)], decorators...) {
		if d == nil {
			b.fail(ErrBadDecorator)
			continue
		}
		next := d(outer)
		if next == nil {
			b.fail(ErrBadDecorator)
			continue
		}
		outer = next
		b.self = outer
	}
	return outer
}

// Get starts a GET call. See Getter.
func (c *Client) Get(query interface{}) Builder {
	return Get(c, query)
}

// Post starts a POST call with the given body.
func (c *Client) Post(body interface{}) Builder {
	return Post(c, body)
}

// Put starts a PUT call with the given body.
func (c *Client) Put(body interface{}) Builder {
	return Put(c, body)
}

// Patch starts a PATCH call with the given body.
func (c *Client) Patch(body interface{}) Builder {
	return Patch(c, body)
}

// Delete starts a DELETE call on path.
func (c *Client) Delete(path string) Builder {
	return Delete(c, path)
}
