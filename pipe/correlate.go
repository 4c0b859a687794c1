// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipe

import (
	"github.com/google/uuid"
)

const (
	// CorrelationKey is the call context key holding the correlation id.
	CorrelationKey = "correlationId"
	// CorrelationHeader is the request header carrying the correlation id.
	CorrelationHeader = "X-Correlation-Id"
)

// Correlate returns a handler that gives every flow a correlation id.
//
// An id already present in the call context under CorrelationKey is kept,
// otherwise a random UUID is generated. The id is copied into the
// CorrelationHeader request header unless the request already carries
// that header.
func Correlate() Handler {
	return HandlerFunc(func(f *Flow, next func()) {
		id, _ := f.Call[CorrelationKey].(string)
		if id == "" {
			id = uuid.NewString()
			f.Call[CorrelationKey] = id
		}
		if _, ok := f.Request.Header[CorrelationHeader]; !ok {
			f.Request.Header.Set(CorrelationHeader, id)
		}
		next()
	})
}
