// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogama/httpfy/header"
	"github.com/gogama/httpfy/pipe"
	"github.com/gogama/httpfy/retry"
	"github.com/gogama/httpfy/timeout"
	"github.com/gogama/httpfy/transport"
)

// NewLogger returns a text logger writing to w at the configured level.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))
}

// RetryPolicy returns the retry policy for cfg: idempotent requests are
// retried up to cfg.Retries times on throttling, gateway errors and
// transient network errors.
func RetryPolicy(cfg *Config) retry.Policy {
	if cfg.Retries == 0 {
		return retry.Never
	}
	d := retry.Times(cfg.Retries).
		And(retry.Idempotent).
		And(retry.StatusCode(429, 502, 503, 504).Or(retry.TransientErr))
	return retry.NewPolicy(d, retry.DefaultWaiter)
}

// TimeoutPolicy returns the attempt timeout policy for cfg.
func TimeoutPolicy(cfg *Config) timeout.Policy {
	if cfg.Timeout == 0 {
		return timeout.Infinite
	}
	return timeout.Fixed(cfg.Timeout)
}

// Transport returns the HTTP transport for cfg, sending requests with
// doer. A nil doer uses http.DefaultClient.
func Transport(cfg *Config, doer transport.HTTPDoer) (*transport.Transport, error) {
	t := &transport.Transport{
		HTTPDoer:      doer,
		RetryPolicy:   RetryPolicy(cfg),
		TimeoutPolicy: TimeoutPolicy(cfg),
	}
	if doer == nil {
		t.HTTPDoer = http.DefaultClient
	}
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("httpfy/config: parsing base URL: %w", err)
		}
		t.BaseURL = u
	}
	return t, nil
}

// Pipeline assembles the pipeline described by cfg:
//
//	Correlate → Trace → Log → Metrics → Header → Throttle → Transport
//
// Metrics is included only when reg is non-nil, Header only when cfg has
// headers, and Throttle only when cfg.RPS is positive. A nil logger uses
// slog.Default().
func Pipeline(cfg *Config, logger *slog.Logger, reg prometheus.Registerer, doer transport.HTTPDoer) (*pipe.Pipe, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	handlers := []pipe.Handler{
		pipe.Correlate(),
		pipe.Trace(nil, nil),
		pipe.Log(logger),
	}
	if reg != nil {
		handlers = append(handlers, pipe.NewMetrics(reg))
	}
	if len(cfg.Headers) > 0 {
		h := make(header.Map, len(cfg.Headers))
		for k, v := range cfg.Headers {
			if err := header.ValidName(k); err != nil {
				return nil, fmt.Errorf("httpfy/config: %w", err)
			}
			h.Set(k, v)
		}
		handlers = append(handlers, pipe.Header(h))
	}
	if cfg.RPS > 0 {
		throttle, err := pipe.NewThrottle(cfg.RPS, cfg.Burst)
		if err != nil {
			return nil, fmt.Errorf("httpfy/config: %w", err)
		}
		handlers = append(handlers, throttle)
	}

	t, err := Transport(cfg, doer)
	if err != nil {
		return nil, err
	}
	return pipe.New(append(handlers, t)...), nil
}
