// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipe

import (
	"log/slog"
	"time"

	"github.com/gogama/httpfy/request"
)

// Log returns a handler that logs the start and completion of every
// flow. A nil logger uses slog.Default().
func Log(logger *slog.Logger) Handler {
	return HandlerFunc(func(f *Flow, next func()) {
		log := logger
		if log == nil {
			log = slog.Default()
		}

		method, path := f.Request.Method, f.Request.Path
		if f.Request.Search != "" {
			path += "?" + f.Request.Search
		}
		attrs := []any{"method", method, "path", path}
		if id, ok := f.Call[CorrelationKey].(string); ok {
			attrs = append(attrs, "correlationId", id)
		}

		start := time.Now()
		log.Debug("request started", attrs...)
		f.Observe(func(res interface{}, err error) {
			done := append(attrs, "since", time.Since(start).String())
			if e, ok := res.(*request.Execution); ok {
				done = append(done, "statusCode", e.StatusCode(), "attempts", e.Attempt+1)
			}
			if err != nil {
				log.Error("request failed", append(done, "error", err)...)
				return
			}
			log.Info("request completed", done...)
		})
		next()
	})
}
