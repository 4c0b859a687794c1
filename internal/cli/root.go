// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the httpfy command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogama/httpfy/transport"
)

var version = "0.1.0"

// flags are shared by every verb command.
type flags struct {
	config  string
	headers []string
	params  []string
	query   []string
	call    []string
	data    string
	sel     string
	fail    bool
}

// env carries the process dependencies so tests can replace them.
type env struct {
	stdout io.Writer
	stderr io.Writer
	doer   transport.HTTPDoer
}

// Main runs the command line with args and returns the exit code.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(&env{stdout: stdout, stderr: stderr})
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func newRootCmd(e *env) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "httpfy",
		Short:         "Send HTTP requests from the command line",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `httpfy builds a request from a path template, query parameters,
headers and a body, sends it through a configurable pipeline with retries,
rate limiting and logging, and prints the response body.`,
	}
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&f.config, "config", "c", "", "YAML configuration file")
	pf.StringArrayVarP(&f.headers, "header", "H", nil, "request header as 'Name: value' (repeatable)")
	pf.StringArrayVarP(&f.params, "param", "p", nil, "path parameter as name=value (repeatable)")
	pf.StringArrayVarP(&f.query, "query", "q", nil, "query parameter as name=value (repeatable)")
	pf.StringArrayVar(&f.call, "context", nil, "call context entry as name=value, e.g. correlationId=abc (repeatable)")
	pf.StringVarP(&f.sel, "select", "s", "", "print only this gjson path of a JSON response")
	pf.BoolVar(&f.fail, "fail", false, "exit with an error on HTTP status 400 and above")

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		root.AddCommand(newVerbCmd(e, f, method))
	}
	return root
}

func newVerbCmd(e *env, f *flags, method string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " <path>",
		Short: "Send a " + method + " request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), e, f, method, args[0])
		},
	}
	if hasBody(method) {
		cmd.Flags().StringVarP(&f.data, "data", "d", "", "request body; @file reads it from a file")
	}
	return cmd
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
