// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"errors"
	"math"
	"syscall"
	"testing"
	"time"

	"github.com/gogama/httpfy/request"
	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	assert.Equal(t, 5*time.Second, DefaultPolicy.Timeout(&request.Execution{}))
	assert.Equal(t, 5*time.Second, DefaultPolicy.Timeout(&request.Execution{AttemptTimeouts: 3, Err: syscall.ETIMEDOUT}))
}

func TestInfinite(t *testing.T) {
	assert.Equal(t, time.Duration(math.MaxInt64), Infinite.Timeout(&request.Execution{}))
	assert.Equal(t, time.Duration(math.MaxInt64), Infinite.Timeout(&request.Execution{AttemptTimeouts: 10, Err: syscall.ETIMEDOUT}))
}

func TestFixed(t *testing.T) {
	p := Fixed(33 * time.Hour)
	assert.Equal(t, 33*time.Hour, p.Timeout(&request.Execution{}))
	assert.Equal(t, 33*time.Hour, p.Timeout(&request.Execution{AttemptTimeouts: 2, Err: syscall.ETIMEDOUT, Attempt: 2}))
}

func TestAdaptive(t *testing.T) {
	p := Adaptive(5*time.Millisecond, 10*time.Millisecond, 100*time.Millisecond)
	x := &request.Execution{}
	assert.Equal(t, 5*time.Millisecond, p.Timeout(x))
	x.AttemptTimeouts = 1
	x.Err = syscall.ETIMEDOUT
	assert.Equal(t, 10*time.Millisecond, p.Timeout(x))
	x.Attempt = 1
	x.Err = errors.New("just a routine problem")
	assert.Equal(t, 5*time.Millisecond, p.Timeout(x))
	x.Attempt = 2
	x.AttemptTimeouts = 2
	x.Err = syscall.ETIMEDOUT
	assert.Equal(t, 100*time.Millisecond, p.Timeout(x))
	x.Attempt = 4
	x.AttemptTimeouts = 3
	assert.Equal(t, 100*time.Millisecond, p.Timeout(x))
}

func TestPolicyFunc(t *testing.T) {
	var p Policy = PolicyFunc(func(e *request.Execution) time.Duration {
		return time.Duration(e.Attempt+1) * time.Second
	})
	assert.Equal(t, 3*time.Second, p.Timeout(&request.Execution{Attempt: 2}))
}
