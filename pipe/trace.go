// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipe

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/gogama/httpfy/request"
)

const tracerName = "github.com/gogama/httpfy/pipe"

// Trace returns a handler that wraps the rest of the chain in a span.
//
// The span context is injected into the request headers with prop and
// becomes the flow's context. A nil tracer uses the global tracer
// provider and a nil prop uses the global propagator.
func Trace(tracer trace.Tracer, prop propagation.TextMapPropagator) Handler {
	return HandlerFunc(func(f *Flow, next func()) {
		t, p := tracer, prop
		if t == nil {
			t = otel.Tracer(tracerName)
		}
		if p == nil {
			p = otel.GetTextMapPropagator()
		}

		method, path := f.Request.Method, f.Request.Path
		ctx, span := t.Start(f.Context(), "httpfy "+method, trace.WithSpanKind(trace.SpanKindClient))
		span.SetAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		)
		p.Inject(ctx, f.Request.Header)
		f.SetContext(ctx)

		f.Observe(func(res interface{}, err error) {
			if e, ok := res.(*request.Execution); ok && e.StatusCode() > 0 {
				span.SetAttributes(attribute.Int("http.response.status_code", e.StatusCode()))
			}
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
		})
		next()
	})
}
