// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"
	"time"

	"github.com/gogama/httpfy/request"
	"github.com/gogama/httpfy/transient"
)

// A Decider reports whether the execution should make another attempt.
// It sees the whole execution state, including the attempt count, the
// last response and the last error.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
//
// Deciders are usually assembled from the built-in pieces: Times,
// StatusCode and Before as constructors, and TransientErr and Idempotent
// as ready-made values. DeciderFunc turns a plain function into a
// Decider and combines deciders with And and Or.
type Decider interface {
	Decide(e *request.Execution) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as deciders. It also provides And and Or for composition.
type DeciderFunc func(e *request.Execution) bool

// DefaultTimes is the number of retries DefaultDecider allows.
const DefaultTimes = 3

// DefaultDecider retries an idempotent request up to DefaultTimes times
// after a transient error or a 429, 502, 503, or 504 response.
var DefaultDecider = Times(DefaultTimes).
	And(Idempotent).
	And(StatusCode(429, 502, 503, 504).Or(TransientErr))

// TransientErr retries when the attempt error has a transience category
// other than transient.Not.
var TransientErr DeciderFunc = func(e *request.Execution) bool {
	return transient.Categorize(e.Err) != transient.Not
}

// Idempotent allows a retry only for the idempotent methods of RFC 7231
// section 4.2.2.
var Idempotent DeciderFunc = func(e *request.Execution) bool {
	if e.Plan == nil {
		return false
	}
	switch e.Plan.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace,
		http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// Decide calls f(e).
func (f DeciderFunc) Decide(e *request.Execution) bool {
	return f(e)
}

// And returns a decider that is true when both f and g are. g is not
// evaluated if f is false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or returns a decider that is true when either f or g is. g is not
// evaluated if f is true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// Times allows up to n retries.
func Times(n int) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Attempt < n
	}
}

// Before allows retries while the execution has run for less than d.
func Before(d time.Duration) DeciderFunc {
	return func(e *request.Execution) bool {
		return e.Duration() < d
	}
}

// StatusCode allows a retry when the last attempt received a response
// with one of the given status codes.
func StatusCode(codes ...int) DeciderFunc {
	set := make(map[int]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return func(e *request.Execution) bool {
		_, ok := set[e.StatusCode()]
		return ok && e.Response != nil
	}
}
