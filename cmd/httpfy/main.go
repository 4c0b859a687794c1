// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command httpfy sends HTTP requests built with the httpfy client.
//
// Usage:
//
//	httpfy get /users/:id -p id=42 -q expand=teams -s name
//	httpfy post /users -d '{"name":"gopher"}' -H 'X-Team: core'
//
// Configuration is read from HTTPFY_* environment variables and,
// optionally, the YAML file named by --config.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/gogama/httpfy/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Main(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
