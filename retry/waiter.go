// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gogama/httpfy/request"
)

// A Waiter returns how long to wait before the next retry. It is only
// consulted after a Decider approved the retry, and must be safe for
// concurrent use by multiple goroutines.
type Waiter interface {
	Wait(e *request.Execution) time.Duration
}

// The WaiterFunc type is an adapter to allow the use of ordinary
// functions as waiters.
type WaiterFunc func(e *request.Execution) time.Duration

// Wait calls f(e).
func (f WaiterFunc) Wait(e *request.Execution) time.Duration {
	return f(e)
}

// DefaultWaiter is a jittered exponential backoff with a 50ms base and a
// one second ceiling.
var DefaultWaiter = NewExpWaiter(50*time.Millisecond, time.Second, time.Now())

// NewFixedWaiter returns a waiter that always waits d.
func NewFixedWaiter(d time.Duration) Waiter {
	return WaiterFunc(func(*request.Execution) time.Duration { return d })
}

// NewExpWaiter returns a "full jitter" exponential backoff waiter. The
// ceiling for attempt n is min(base*2^n, max) and the wait is drawn
// uniformly from [0, ceiling).
//
// Base must be positive and max at least base. Parameter jitter is nil
// for no jitter (the wait is always the ceiling), a time.Time or int64
// seed, or a *rand.Rand.
func NewExpWaiter(base, max time.Duration, jitter interface{}) Waiter {
	if base < 1 {
		panic("httpfy/retry: base must be positive")
	}
	if max < base {
		panic("httpfy/retry: max must be at least base")
	}
	return &expWaiter{
		base: base,
		max:  max,
		rand: jitterRand(jitter),
	}
}

type expWaiter struct {
	base time.Duration
	max  time.Duration
	lock sync.Mutex
	rand *rand.Rand
}

func (w *expWaiter) Wait(e *request.Execution) time.Duration {
	ceil := w.max
	if e.Attempt < 63 && w.base <= w.max>>uint(e.Attempt) {
		ceil = w.base << uint(e.Attempt)
	}
	if w.rand == nil {
		return ceil
	}
	w.lock.Lock()
	defer w.lock.Unlock()
	return time.Duration(w.rand.Int63n(int64(ceil)))
}

func jitterRand(jitter interface{}) *rand.Rand {
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		return rand.New(rand.NewSource(j.UnixNano()))
	case int64:
		return rand.New(rand.NewSource(j))
	case *rand.Rand:
		if j == nil {
			panic("httpfy/retry: jitter may not be a typed nil")
		}
		return j
	default:
		panic("httpfy/retry: invalid jitter type")
	}
}
