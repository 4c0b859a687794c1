// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

// An Event identifies a point in a plan execution where handlers run.
type Event int

const (
	// BeforeExecutionStart occurs before the execution starts. Only the
	// execution's Plan and Call are set.
	BeforeExecutionStart Event = iota
	// BeforeAttempt occurs before each HTTP request attempt. The
	// execution's Request is the request that will be sent once the
	// handlers finish. Handlers may change it, but should clone its URL
	// and Header first since these are shared with the plan.
	BeforeAttempt
	// BeforeReadBody occurs when an attempt produced a response, before
	// its body is read. It fires whatever the status code.
	BeforeReadBody
	// AfterAttemptTimeout occurs when an attempt failed with a timeout.
	// The execution's Err is the timeout error and AttemptTimeouts has
	// been incremented.
	AfterAttemptTimeout
	// AfterAttempt occurs after every attempt, before the retry policy
	// is consulted. At least one of the execution's Response and Err is
	// non-nil.
	AfterAttempt
	// AfterPlanTimeout occurs when the plan's own context deadline is
	// exceeded, either during an attempt or while waiting to retry. It
	// always follows AfterAttempt.
	AfterPlanTimeout
	// AfterExecutionEnd occurs once the execution has ended and its End
	// time is set.
	AfterExecutionEnd

	eventSentinel
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"BeforeReadBody",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"AfterPlanTimeout",
	"AfterExecutionEnd",
}

// Events returns all events in the order they can occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeAttempt,
		BeforeReadBody,
		AfterAttemptTimeout,
		AfterAttempt,
		AfterPlanTimeout,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
