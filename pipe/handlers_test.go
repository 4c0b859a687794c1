// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipe

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"

	"github.com/gogama/httpfy/header"
	"github.com/gogama/httpfy/request"
)

func submit(t *testing.T, ctx context.Context, p *Pipe, call request.CallContext, r *request.Request) (interface{}, error) {
	t.Helper()
	var res interface{}
	var err error
	called := false
	p.Submit(ctx, call, r, func(r interface{}, e error) {
		res, err, called = r, e, true
	})
	require.True(t, called, "callback not invoked synchronously")
	return res, err
}

func TestCorrelate(t *testing.T) {
	p := New(Correlate(), Echo())

	t.Run("generated", func(t *testing.T) {
		res, err := submit(t, context.Background(), p, nil, nil)
		require.NoError(t, err)
		echoed := res.(*Echoed)
		id, ok := echoed.Call[CorrelationKey].(string)
		require.True(t, ok)
		_, err = uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, echoed.Request.Header.Get(CorrelationHeader))
	})
	t.Run("from call context", func(t *testing.T) {
		res, err := submit(t, context.Background(), p, request.CallContext{CorrelationKey: "abc"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "abc", res.(*Echoed).Request.Header.Get(CorrelationHeader))
	})
	t.Run("header kept", func(t *testing.T) {
		r := &request.Request{Header: header.Map{CorrelationHeader: header.Single("mine")}}
		res, err := submit(t, context.Background(), p, request.CallContext{CorrelationKey: "abc"}, r)
		require.NoError(t, err)
		assert.Equal(t, "mine", res.(*Echoed).Request.Header.Get(CorrelationHeader))
	})
}

func TestThrottle(t *testing.T) {
	t.Run("bad rate", func(t *testing.T) {
		_, err := NewThrottle(0, 1)
		assert.ErrorIs(t, err, ErrBadRate)
		_, err = NewThrottle(1, 0)
		assert.ErrorIs(t, err, ErrBadRate)
	})
	t.Run("admits", func(t *testing.T) {
		h, err := NewThrottle(1000, 10)
		require.NoError(t, err)
		_, err = submit(t, context.Background(), New(h, Echo()), nil, nil)
		assert.NoError(t, err)
	})
	t.Run("context ended", func(t *testing.T) {
		limiter := rate.NewLimiter(rate.Limit(0.001), 1)
		require.True(t, limiter.Allow())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := submit(t, ctx, New(Throttle(limiter), Echo()), nil, nil)
		assert.ErrorIs(t, err, ErrThrottled)
	})
	t.Run("nil limiter", func(t *testing.T) {
		assert.Panics(t, func() { Throttle(nil) })
	})
}

func TestTrace(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	var inner context.Context
	p := New(
		Trace(noop.NewTracerProvider().Tracer("test"), propagation.TraceContext{}),
		Terminal(func(f *Flow) (interface{}, error) {
			inner = f.Context()
			return f.Request, nil
		}),
	)
	res, err := submit(t, ctx, p, nil, &request.Request{Method: "GET", Path: "/a"})
	require.NoError(t, err)
	r := res.(*request.Request)
	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", r.Header.Get("traceparent"))
	assert.Equal(t, traceID, trace.SpanContextFromContext(inner).TraceID())
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Run("completed", func(t *testing.T) {
		buf.Reset()
		p := New(Correlate(), Log(logger), Echo())
		_, err := submit(t, context.Background(), p, request.CallContext{CorrelationKey: "c1"},
			&request.Request{Method: "GET", Path: "/a", Search: "b=1"})
		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "request started")
		assert.Contains(t, out, "request completed")
		assert.Contains(t, out, "path=\"/a?b=1\"")
		assert.Contains(t, out, "correlationId=c1")
	})
	t.Run("failed", func(t *testing.T) {
		buf.Reset()
		p := New(Log(logger), Terminal(func(*Flow) (interface{}, error) {
			return nil, errors.New("boom")
		}))
		_, err := submit(t, context.Background(), p, nil, nil)
		require.Error(t, err)
		assert.Contains(t, buf.String(), "request failed")
		assert.Contains(t, buf.String(), "error=boom")
	})
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	ok := New(m, Echo())
	bad := New(m, Terminal(func(*Flow) (interface{}, error) {
		return nil, context.DeadlineExceeded
	}))

	for i := 0; i < 3; i++ {
		_, err := submit(t, context.Background(), ok, nil, &request.Request{Method: "GET"})
		require.NoError(t, err)
	}
	_, err := submit(t, context.Background(), bad, nil, &request.Request{Method: "POST"})
	require.Error(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Requests().WithLabelValues("GET", "", "ok")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Requests(), "httpfy_requests_total"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests().WithLabelValues("POST", "", "Timeout")))
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 2)
}

func TestHeader(t *testing.T) {
	defaults := header.Map{"User-Agent": header.Single("httpfy"), "Accept": header.Multi{"a", "b"}}
	p := New(Header(defaults), Echo())
	r := &request.Request{Header: header.Map{"User-Agent": header.Single("mine")}}
	res, err := submit(t, context.Background(), p, nil, r)
	require.NoError(t, err)
	assert.Equal(t, header.Map{
		"User-Agent": header.Single("mine"),
		"Accept":     header.Single("a, b"),
	}, res.(*Echoed).Request.Header)
	assert.Equal(t, header.Multi{"a", "b"}, defaults["Accept"])
}
