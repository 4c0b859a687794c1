// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/httpfy/request"
)

// A Policy governs retries within the execution of a request plan. After
// each attempt the transport asks the Policy two questions in turn:
// whether another attempt should be made and, only if so, how long to
// sleep before making it.
//
// Implementations must be safe for concurrent use by multiple
// goroutines, since one Policy is normally shared by every call going
// through a transport.
//
// Policy is just the union of Decider and Waiter. Most callers never
// implement it directly. They pick DefaultPolicy or Never, or pair an
// existing Decider with an existing Waiter using NewPolicy.
type Policy interface {
	Decider
	Waiter
}

// DefaultPolicy suits most services. It decides with DefaultDecider and
// waits with DefaultWaiter.
var DefaultPolicy Policy = NewPolicy(DefaultDecider, DefaultWaiter)

// Never is a policy that never retries. Use it to keep the transport's
// timeouts and event handlers while turning retries off.
var Never Policy = NewPolicy(Times(0), DefaultWaiter)

type policy struct {
	decider Decider
	waiter  Waiter
}

// NewPolicy composes a Decider and a Waiter into a Policy. Both must be
// non-nil.
func NewPolicy(d Decider, w Waiter) Policy {
	if d == nil {
		panic("httpfy/retry: nil decider")
	}
	if w == nil {
		panic("httpfy/retry: nil waiter")
	}
	return policy{decider: d, waiter: w}
}

func (p policy) Decide(e *request.Execution) bool {
	return p.decider.Decide(e)
}

func (p policy) Wait(e *request.Execution) time.Duration {
	return p.waiter.Wait(e)
}
