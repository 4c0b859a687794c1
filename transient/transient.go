// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"io"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize.
//
// Not means the error is unlikely to go away, so repeating the attempt
// would most likely fail the same way.
//
// Every other category names a condition that is often short-lived. An
// attempt that failed with one of them has a real chance of succeeding
// if retried, perhaps after a short wait or with a longer timeout. The
// retry package's TransientErr decider and the pipe package's metrics
// both rely on this split.
type Category int

const (
	// Not is the category of nil and non-transient errors.
	Not Category = iota
	// Timeout is the category of errors, or wrapped errors, whose
	// Timeout method reports true.
	Timeout
	// ConnRefused is the category of syscall.ECONNREFUSED. The remote
	// service may be restarting and not yet listening.
	ConnRefused
	// ConnReset is the category of syscall.ECONNRESET. It often comes
	// from a load balancer, or a service shutting down mid-response.
	ConnReset
	// Truncated is the category of io.ErrUnexpectedEOF: the connection
	// closed before the full response arrived.
	Truncated
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"Truncated",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of err, looking through
// wrapped errors. Timeout takes precedence over the other categories.
// Temporary methods are ignored.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var to hasTimeout
	if errors.As(err, &to) && to.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		}
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return Truncated
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
