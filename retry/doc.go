// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides the policies the HTTP transport consults after
// every failed attempt: whether to retry (a Decider) and how long to
// wait first (a Waiter).
//
// Deciders compose with And and Or:
//
//	decider := retry.Times(3).
//		And(retry.Idempotent).
//		And(retry.StatusCode(503).Or(retry.TransientErr))
//	policy := retry.NewPolicy(decider, retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, time.Now()))
package retry
