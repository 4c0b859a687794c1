// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipe

import (
	"context"
	"errors"
	"sync"

	"github.com/gogama/httpfy/header"
	"github.com/gogama/httpfy/request"
)

var (
	// ErrUnhandled is the error of a flow that reached the end of the
	// handler chain without being completed.
	ErrUnhandled = errors.New("httpfy/pipe: request not handled")
	// ErrNilFailure replaces a nil error passed to Flow.Fail.
	ErrNilFailure = errors.New("httpfy/pipe: failed with nil error")
)

// A Handler processes a flow. It either calls next to pass the flow to
// the following handler, or completes the flow.
type Handler interface {
	Handle(f *Flow, next func())
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as handlers.
type HandlerFunc func(f *Flow, next func())

// Handle calls h(f, next).
func (h HandlerFunc) Handle(f *Flow, next func()) {
	h(f, next)
}

// A Pipe is an immutable chain of handlers. It is safe for concurrent use
// by multiple goroutines as long as its handlers are.
type Pipe struct {
	handlers []Handler
}

// New returns a pipe running handlers in order. It panics if any handler
// is nil.
func New(handlers ...Handler) *Pipe {
	return (&Pipe{}).Use(handlers...)
}

// Use returns a new pipe whose chain is p's followed by handlers. p is
// not modified.
func (p *Pipe) Use(handlers ...Handler) *Pipe {
	for _, h := range handlers {
		if h == nil {
			panic("httpfy/pipe: nil handler")
		}
	}
	chain := make([]Handler, 0, len(p.handlers)+len(handlers))
	chain = append(chain, p.handlers...)
	chain = append(chain, handlers...)
	return &Pipe{handlers: chain}
}

// Len returns the number of handlers in the chain.
func (p *Pipe) Len() int {
	return len(p.handlers)
}

// Submit sends r down the chain in a new flow. The callback is invoked
// exactly once, when a handler completes the flow, possibly before Submit
// returns.
//
// Submit takes ownership of r and call; callers hand over copies.
func (p *Pipe) Submit(ctx context.Context, call request.CallContext, r *request.Request, cb request.Callback) {
	if ctx == nil {
		ctx = context.Background()
	}
	if call == nil {
		call = request.CallContext{}
	}
	if r == nil {
		r = &request.Request{}
	}
	if r.Header == nil {
		r.Header = header.Map{}
	}
	f := &Flow{
		Call:    call,
		Request: r,
		ctx:     ctx,
		done:    cb,
	}
	p.run(f, 0)
}

func (p *Pipe) run(f *Flow, i int) {
	if i == len(p.handlers) {
		f.Fail(ErrUnhandled)
		return
	}
	p.handlers[i].Handle(f, func() {
		p.run(f, i+1)
	})
}

// An ObserverFunc receives the outcome of a flow just before the
// completion callback does.
type ObserverFunc func(res interface{}, err error)

// A Flow is one request travelling through a pipe.
type Flow struct {
	// Call is the per-call context. It belongs to this flow alone, so
	// handlers may read and write it freely.
	Call request.CallContext

	// Request is the request being executed. It is never nil and its
	// Header is never nil. It belongs to this flow alone, so handlers may
	// adjust it before passing the flow on.
	Request *request.Request

	lock      sync.Mutex
	ctx       context.Context
	observers []ObserverFunc
	done      request.Callback
	once      sync.Once
	completed bool
}

// Context returns the flow's context.
func (f *Flow) Context() context.Context {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.ctx
}

// SetContext replaces the flow's context, which must be non-nil. Later
// handlers see the new context.
func (f *Flow) SetContext(ctx context.Context) {
	if ctx == nil {
		panic("httpfy/pipe: nil context")
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	f.ctx = ctx
}

// Observe registers fn to run when the flow completes. Observers run in
// reverse order of registration, before the completion callback.
// Observers registered after completion never run.
func (f *Flow) Observe(fn ObserverFunc) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.observers = append(f.observers, fn)
}

// Respond completes the flow with a response.
func (f *Flow) Respond(res interface{}) {
	f.complete(res, nil)
}

// Fail completes the flow with an error. A nil err is replaced with
// ErrNilFailure.
func (f *Flow) Fail(err error) {
	if err == nil {
		err = ErrNilFailure
	}
	f.complete(nil, err)
}

// Completed reports whether Respond or Fail has been called.
func (f *Flow) Completed() bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.completed
}

func (f *Flow) complete(res interface{}, err error) {
	f.once.Do(func() {
		f.lock.Lock()
		f.completed = true
		observers := f.observers
		f.observers = nil
		f.lock.Unlock()
		for i := len(observers) - 1; i >= 0; i-- {
			observers[i](res, err)
		}
		if f.done != nil {
			f.done(res, err)
		}
	})
}

// Terminal adapts a function computing the response into a handler that
// completes every flow and never calls next.
func Terminal(fn func(f *Flow) (interface{}, error)) Handler {
	return HandlerFunc(func(f *Flow, _ func()) {
		res, err := fn(f)
		if err != nil {
			f.Fail(err)
			return
		}
		f.Respond(res)
	})
}
