// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/httpfy/transient"
)

// An Execution is the state of a single Plan execution.
//
// The HTTP transport updates the Execution as attempts are made and
// delivers it as the response of the call once the execution ends.
// Policies and event handlers may attach their own data with SetValue,
// but should otherwise treat the exported fields as read-only. Reasonable
// changes to the outgoing http.Request (signing, say) are the exception.
type Execution struct {
	// Plan is the plan being executed. It is never nil.
	Plan *Plan

	// Start is set when the execution starts and never changes after.
	Start time.Time

	// End is zero until the execution ends.
	End time.Time

	// Attempt is the zero-based number of the current attempt. After
	// the execution ends it is the number of the last attempt made.
	Attempt int

	// AttemptTimeouts counts the attempts that ended in a timeout.
	AttemptTimeouts int

	// Request is the HTTP request of the current, or last, attempt.
	Request *http.Request

	// Response is the HTTP response of the most recent attempt. It is
	// nil while an attempt is underway or if the attempt failed.
	Response *http.Response

	// Err is the error of the most recent attempt. Once the execution
	// has ended it is the error reported for the whole call.
	Err error

	// Body is the fully read response body of the most recent attempt.
	// Body and Err may both be non-nil if reading the body failed
	// part way.
	Body []byte

	// Call is the per-call context of the pipeline flow that started
	// the execution. It may be nil when the execution was started
	// outside a pipeline.
	Call CallContext

	data context.Context
}

// StatusCode returns the status code of the most recent response, or 0
// if there is none.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Header returns the headers of the most recent response, or a nil
// header if there is none.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		return nil
	}
	return e.Response.Header
}

// Duration returns how long the execution has run: zero before it
// starts, End minus Start after it ends, and the time elapsed since
// Start in between.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return 0
	} else if !e.Ended() {
		return time.Since(e.Start)
	}
	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout indicates whether Err is a timeout, either of the last attempt
// or of the plan as a whole.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue stores arbitrary handler data in the execution. The key
// follows the rules of context.WithValue: it must be comparable and
// should be of an unexported type.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}
	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data stored for key, or nil.
func (e *Execution) Value(key interface{}) interface{} {
	if e.data == nil {
		return nil
	}
	return e.data.Value(key)
}
