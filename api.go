// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpfy

import (
	"net/http"

	"github.com/gogama/httpfy/querystr"
	"github.com/gogama/httpfy/request"
)

// Requester is the interface that wraps the basic Request method.
//
// Request starts a call from a request skeleton and returns the builder
// for it. Client implements Requester, and any other implementation must
// give each call its own request and call context.
//
// Any Requester can be converted into an API via the Inflate function.
type Requester interface {
	Request(r request.Request, decorators ...Decorator) Builder
}

// Getter is the interface that wraps the basic Get method.
//
// Get starts a GET call whose query string is built from query. A
// string query is taken as already encoded; anything else is encoded
// with querystr.Stringify.
type Getter interface {
	Get(query interface{}) Builder
}

// Poster is the interface that wraps the basic Post method.
type Poster interface {
	Post(body interface{}) Builder
}

// Putter is the interface that wraps the basic Put method.
type Putter interface {
	Put(body interface{}) Builder
}

// Patcher is the interface that wraps the basic Patch method.
type Patcher interface {
	Patch(body interface{}) Builder
}

// Deleter is the interface that wraps the basic Delete method.
type Deleter interface {
	Delete(path string) Builder
}

// API is the interface that groups Request with the verb methods.
type API interface {
	Requester
	Getter
	Poster
	Putter
	Patcher
	Deleter
}

// Get uses r to start a GET call. An empty encoded query leaves the
// request's Search unset.
func Get(r Requester, query interface{}) Builder {
	var search string
	switch q := query.(type) {
	case string:
		search = q
	default:
		search = querystr.Stringify(q)
	}
	return r.Request(request.Request{Method: http.MethodGet, Search: search})
}

// Post uses r to start a POST call with the given body.
func Post(r Requester, body interface{}) Builder {
	return r.Request(request.Request{Method: http.MethodPost, Body: body})
}

// Put uses r to start a PUT call with the given body.
func Put(r Requester, body interface{}) Builder {
	return r.Request(request.Request{Method: http.MethodPut, Body: body})
}

// Patch uses r to start a PATCH call with the given body.
func Patch(r Requester, body interface{}) Builder {
	return r.Request(request.Request{Method: http.MethodPatch, Body: body})
}

// Delete uses r to start a DELETE call on path.
func Delete(r Requester, path string) Builder {
	return r.Request(request.Request{Method: http.MethodDelete, Path: path})
}

// Inflate converts any non-nil Requester into an API. This is useful for
// wrapping a Client, since a wrapper only needs to implement Request.
func Inflate(r Requester) API {
	if r == nil {
		panic("httpfy: nil requester")
	}

	if a, ok := r.(API); ok {
		return a
	}

	return inflated{r}
}

type inflated struct {
	Requester
}

func (i inflated) Get(query interface{}) Builder {
	return Get(i.Requester, query)
}

func (i inflated) Post(body interface{}) Builder {
	return Post(i.Requester, body)
}

func (i inflated) Put(body interface{}) Builder {
	return Put(i.Requester, body)
}

func (i inflated) Patch(body interface{}) Builder {
	return Patch(i.Requester, body)
}

func (i inflated) Delete(path string) Builder {
	return Delete(i.Requester, path)
}
