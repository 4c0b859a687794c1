// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipe

import (
	"errors"
	"fmt"

	"golang.org/x/time/rate"
)

var (
	// ErrBadRate is returned by NewThrottle for a non-positive rate or
	// burst.
	ErrBadRate = errors.New("httpfy/pipe: rate and burst must be greater than zero")
	// ErrThrottled wraps the error of a flow that gave up waiting for
	// the rate limiter.
	ErrThrottled = errors.New("httpfy/pipe: throttle wait failed")
)

// NewThrottle returns a handler admitting at most rps flows per second,
// with bursts of up to burst flows.
func NewThrottle(rps float64, burst int) (Handler, error) {
	if rps <= 0 || burst <= 0 {
		return nil, ErrBadRate
	}
	return Throttle(rate.NewLimiter(rate.Limit(rps), burst)), nil
}

// Throttle returns a handler that waits on limiter before passing each
// flow on. A flow whose context ends while waiting fails with an error
// wrapping ErrThrottled.
func Throttle(limiter *rate.Limiter) Handler {
	if limiter == nil {
		panic("httpfy/pipe: nil limiter")
	}
	return HandlerFunc(func(f *Flow, next func()) {
		if err := limiter.Wait(f.Context()); err != nil {
			f.Fail(fmt.Errorf("%w: %w", ErrThrottled, err))
			return
		}
		next()
	})
}
