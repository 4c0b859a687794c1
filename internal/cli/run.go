// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/gogama/httpfy"
	"github.com/gogama/httpfy/config"
	"github.com/gogama/httpfy/pathtmpl"
	"github.com/gogama/httpfy/querystr"
	"github.com/gogama/httpfy/request"
)

func run(ctx context.Context, e *env, f *flags, method, path string) error {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return err
	}
	p, err := config.Pipeline(cfg, config.NewLogger(cfg, e.stderr), nil, e.doer)
	if err != nil {
		return err
	}
	client, err := httpfy.New(p)
	if err != nil {
		return err
	}
	call, err := parseCall(f.call)
	if err != nil {
		return err
	}
	client = client.Extend(call)

	b, err := start(client, f, method, path)
	if err != nil {
		return err
	}
	res, err := b.Do(ctx)
	if err != nil {
		return err
	}
	return printResult(e, f, res.(*request.Execution))
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

// start builds the call described by the flags.
func start(client *httpfy.Client, f *flags, method, path string) (httpfy.Builder, error) {
	query, err := parseQuery(f.query)
	if err != nil {
		return nil, err
	}
	params, err := parseParams(f.params)
	if err != nil {
		return nil, err
	}
	headers, order, err := parseHeaders(f.headers)
	if err != nil {
		return nil, err
	}

	var b httpfy.Builder
	switch method {
	case http.MethodGet:
		b = client.Get(query)
	case http.MethodDelete:
		b = client.Delete(path).Options(request.Options{Search: querystr.Stringify(query)})
	default:
		body, err := readBody(f.data)
		if err != nil {
			return nil, err
		}
		b = client.Request(request.Request{Method: method, Body: body}).
			Options(request.Options{Search: querystr.Stringify(query)})
	}
	b = b.Path(path, params)
	for _, name := range order {
		b = b.Set(name, headers[name]...)
	}
	return b, b.Err()
}

func parseQuery(pairs []string) (querystr.Params, error) {
	var q querystr.Params
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("bad query parameter %q: want name=value", pair)
		}
		q = q.Add(k, v)
	}
	return q, nil
}

func parseCall(pairs []string) (request.CallContext, error) {
	call := make(request.CallContext, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("bad context entry %q: want name=value", pair)
		}
		call[k] = v
	}
	return call, nil
}

// parseParams returns nil when there are no parameters so the path is
// used as given.
func parseParams(pairs []string) (pathtmpl.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(pathtmpl.Params, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("bad path parameter %q: want name=value", pair)
		}
		params[k] = v
	}
	return params, nil
}

// parseHeaders groups repeated headers and keeps first-seen order.
func parseHeaders(lines []string) (map[string][]string, []string, error) {
	headers := make(map[string][]string, len(lines))
	var order []string
	for _, line := range lines {
		k, v, ok := strings.Cut(line, ":")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, nil, fmt.Errorf("bad header %q: want 'Name: value'", line)
		}
		if _, seen := headers[k]; !seen {
			order = append(order, k)
		}
		headers[k] = append(headers[k], strings.TrimSpace(v))
	}
	return headers, order, nil
}

// readBody returns the --data value. A value starting with @ names a
// file. Valid JSON is sent as JSON, anything else as plain bytes.
func readBody(data string) (interface{}, error) {
	if data == "" {
		return nil, nil
	}
	b := []byte(data)
	if strings.HasPrefix(data, "@") {
		var err error
		if b, err = os.ReadFile(data[1:]); err != nil {
			return nil, err
		}
	}
	if json.Valid(b) {
		return json.RawMessage(b), nil
	}
	return b, nil
}

func printResult(e *env, f *flags, ex *request.Execution) error {
	fmt.Fprintf(e.stderr, "%s %s -> %d\n", ex.Plan.Method, ex.Plan.URL, ex.StatusCode())
	out := ex.Body
	if f.sel != "" {
		if !gjson.ValidBytes(ex.Body) {
			return fmt.Errorf("--select: response body is not JSON")
		}
		r := gjson.GetBytes(ex.Body, f.sel)
		if !r.Exists() {
			return fmt.Errorf("--select: path %q not found", f.sel)
		}
		out = []byte(r.String())
	}
	if len(out) > 0 {
		fmt.Fprintln(e.stdout, strings.TrimRight(string(out), "\n"))
	}
	if f.fail && ex.StatusCode() >= 400 {
		return fmt.Errorf("server responded %d", ex.StatusCode())
	}
	return nil
}
