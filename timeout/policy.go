// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"math"
	"time"

	"github.com/gogama/httpfy/request"
)

// A Policy sets the timeout of each attempt within a plan execution: the
// first attempt as well as every retry.
//
// The attempt timeout is separate from the plan's own context. The plan
// context bounds the whole execution, retries and waits included, while
// the Policy bounds one round trip. An attempt that times out may still
// be retried if the retry policy allows it.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout for the next attempt.
	//
	// Parameter e holds the execution state so far. On the first call
	// e.Attempt is zero and no attempt has been made yet.
	Timeout(e *request.Execution) time.Duration
}

// The PolicyFunc type is an adapter to allow the use of ordinary
// functions as timeout policies.
type PolicyFunc func(e *request.Execution) time.Duration

// Timeout calls f(e).
func (f PolicyFunc) Timeout(e *request.Execution) time.Duration {
	return f(e)
}

// DefaultPolicy sets a fixed timeout of 5 seconds on every attempt.
var DefaultPolicy Policy = Fixed(5 * time.Second)

// Infinite never times out. Every attempt gets the largest Duration, so
// only the plan's own context can end it.
var Infinite Policy = PolicyFunc(func(*request.Execution) time.Duration {
	return math.MaxInt64
})

// Fixed returns a policy that always answers d.
func Fixed(d time.Duration) Policy {
	return steps{d}
}

// Adaptive returns a policy that answers usual unless the previous
// attempt timed out. After the n-th timeout of the execution it answers
// after[n-1], repeating the last element of after once they run out.
//
// For example, with
//
//	p := Adaptive(200*time.Millisecond, time.Second, 10*time.Second)
//
// attempts normally get 200ms, the attempt after the first timeout gets
// one second, and attempts after any later timeout get ten seconds.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	s := make(steps, 1, 1+len(after))
	s[0] = usual
	return append(s, after...)
}

type steps []time.Duration

func (s steps) Timeout(e *request.Execution) time.Duration {
	if !e.Timeout() {
		return s[0]
	}
	i := e.AttemptTimeouts
	if i > len(s)-1 {
		i = len(s) - 1
	}
	return s[i]
}
