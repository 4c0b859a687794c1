// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/httpfy/pipe"
	"github.com/gogama/httpfy/request"
	"github.com/gogama/httpfy/retry"
	"github.com/gogama/httpfy/timeout"
)

// An HTTPDoer sends HTTP requests in the manner of http.Client.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response, following
	// the contract of http.Client.Do.
	Do(r *http.Request) (*http.Response, error)
}

// IdleCloser is the interface that wraps the CloseIdleConnections
// method of http.Client.
type IdleCloser interface {
	CloseIdleConnections()
}

// ErrPanic wraps the value of a panic raised while a Transport executed a
// plan on behalf of a pipe flow.
var ErrPanic = errors.New("httpfy/transport: panic during execution")

var emptyHandlers = HandlerGroup{}

// A Transport executes plans over HTTP. Its zero value is valid: it
// sends with http.DefaultClient, times attempts out with
// timeout.DefaultPolicy, retries with retry.DefaultPolicy and runs no
// event handlers.
//
// A Transport sits above an HTTPDoer. The doer owns everything about a
// single round trip, redirects and connection reuse included, so consult
// its documentation for those. The Transport builds on it as follows:
//
// • the whole response body is read into Execution.Body;
//
// • failed attempts are retried as the retry policy directs;
//
// • each attempt gets its own timeout from the timeout policy;
//
// • event handlers run at fixed points of the attempt loop, so outside
// code can observe or adjust an execution; and
//
// • as a pipe.Handler it ends a pipeline, completing each flow with the
// resulting *request.Execution.
//
// The HTTPDoer usually caches connections, so create a Transport once
// and reuse it. A Transport is safe for concurrent use by multiple
// goroutines.
type Transport struct {
	// BaseURL is the URL request paths are resolved against. If nil,
	// every request path must be an absolute URL.
	BaseURL *url.URL

	// HTTPDoer sends the HTTP requests. If nil, http.DefaultClient is
	// used.
	HTTPDoer HTTPDoer

	// RetryPolicy decides whether to retry after an attempt and how long
	// to wait first. If nil, retry.DefaultPolicy is used.
	RetryPolicy retry.Policy

	// TimeoutPolicy sets the timeout of each attempt. If nil,
	// timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy

	// Handlers are run as events occur during execution. If nil, no
	// handlers are run.
	Handlers *HandlerGroup
}

// Handle executes the flow's request and completes the flow with the
// resulting *request.Execution, or with an error. It never calls next.
//
// The plan is built synchronously, so a request that cannot be planned
// fails before Handle returns. The execution itself runs on a new
// goroutine, bound to the flow's context.
func (t *Transport) Handle(f *pipe.Flow, _ func()) {
	p, err := request.NewPlan(f.Context(), t.BaseURL, f.Request)
	if err != nil {
		f.Fail(err)
		return
	}
	go t.finish(f, p)
}

// finish completes f with the outcome of executing p. Completion runs the
// flow's callback, so it stays outside the recovered region: a panic in
// the callback belongs to the caller.
func (t *Transport) finish(f *pipe.Flow, p *request.Plan) {
	e, err := t.executeRecover(p, f.Call)
	if err != nil {
		f.Fail(err)
		return
	}
	f.Respond(e)
}

func (t *Transport) executeRecover(p *request.Plan, call request.CallContext) (e *request.Execution, err error) {
	defer func() {
		if r := recover(); r != nil {
			e, err = nil, fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return t.execute(p, call)
}

// Do executes a plan and returns the state after the final attempt.
//
// The returned Execution is never nil. A non-2XX status in the final
// attempt is not an error. When an error is returned it is a *url.Error,
// the Execution's Err field holds the same error, and Body is nil unless
// reading the body failed part way. The error's Timeout method reports
// whether the final attempt, or the plan as a whole, timed out.
func (t *Transport) Do(p *request.Plan) (*request.Execution, error) {
	return t.execute(p, nil)
}

func (t *Transport) execute(p *request.Plan, call request.CallContext) (*request.Execution, error) {
	e := request.Execution{
		Plan: p,
		Call: call,
	}

	doer := t.doer()

	timeoutPolicy := t.TimeoutPolicy
	if timeoutPolicy == nil {
		timeoutPolicy = timeout.DefaultPolicy
	}

	retryPolicy := t.RetryPolicy
	if retryPolicy == nil {
		retryPolicy = retry.DefaultPolicy
	}

	handlers := t.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, &e)
	e.Start = time.Now()

RetryLoop:
	for {
		sendAndReceive(p, &e, doer, handlers, timeoutPolicy)
		if e.Timeout() {
			e.AttemptTimeouts++
			handlers.run(AfterAttemptTimeout, &e)
		}
		handlers.run(AfterAttempt, &e)
		planCtxErr := p.Context().Err()
		if planCtxErr == context.DeadlineExceeded {
			handlers.run(AfterPlanTimeout, &e)
			break
		} else if planCtxErr != nil {
			e.Err = urlErrorWrap(p, planCtxErr)
			break
		} else if !retryPolicy.Decide(&e) {
			break
		}

		timer := time.NewTimer(retryPolicy.Wait(&e))
		select {
		case <-timer.C:
		case <-p.Context().Done():
			timer.Stop()
			err := p.Context().Err()
			e.Err = urlErrorWrap(p, err)
			if err == context.DeadlineExceeded {
				handlers.run(AfterPlanTimeout, &e)
			}
			break RetryLoop
		}
		e.Response = nil
		e.Err = nil
		e.Body = nil
		e.Attempt++
	}

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, &e)
	return &e, e.Err
}

func sendAndReceive(p *request.Plan, e *request.Execution, doer HTTPDoer, handlers *HandlerGroup, timeoutPolicy timeout.Policy) {
	ctx, cancel := context.WithTimeout(p.Context(), timeoutPolicy.Timeout(e))
	defer cancel()
	e.Request = p.ToRequest(ctx)
	handlers.run(BeforeAttempt, e)
	var err error
	e.Response, err = doer.Do(e.Request)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
	} else {
		readBody(p, e, handlers)
	}
}

func readBody(p *request.Plan, e *request.Execution, handlers *HandlerGroup) {
	defer func() {
		_ = e.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, e)
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	if err != nil {
		e.Err = urlErrorWrap(p, err)
	}
}

// CloseIdleConnections calls the method of the same name on the
// HTTPDoer, if it has one.
func (t *Transport) CloseIdleConnections() {
	if ic, ok := t.doer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (t *Transport) doer() HTTPDoer {
	if t.HTTPDoer == nil {
		return http.DefaultClient
	}
	return t.HTTPDoer
}

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp matches the Op of the url.Error values made by net/http.
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
