// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"github.com/gogama/httpfy/request"
)

// A HandlerGroup holds one handler chain per event. Its zero value is an
// empty group. A group must not be changed while a Transport using it is
// executing plans.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack appends h to the chain for evt. It panics if h is nil or evt
// is not a known event.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("httpfy/transport: nil handler")
	}
	if evt < 0 || int(evt) >= numEvents {
		panic("httpfy/transport: unknown event")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

// Len returns the number of handlers in the chain for evt.
func (g *HandlerGroup) Len(evt Event) int {
	if int(evt) < len(g.handlers) {
		return len(g.handlers[evt])
	}
	return 0
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	i := int(evt)
	if i < len(g.handlers) {
		for _, h := range g.handlers[i] {
			h.Handle(evt, e)
		}
	}
}

// A Handler handles an event during a plan execution.
type Handler interface {
	Handle(Event, *request.Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
