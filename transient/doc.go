// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient sorts errors raised while executing an HTTP request
// into transience categories: errors worth retrying, and errors that are
// not. Retry deciders and metrics handlers both use it.
package transient
