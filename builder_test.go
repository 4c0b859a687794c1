// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpfy

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/httpfy/header"
	"github.com/gogama/httpfy/pathtmpl"
	"github.com/gogama/httpfy/request"
)

var regexpCurly = regexp.MustCompile(`\{(\w+)\}`)

func TestBuilder_MergePrecedence(t *testing.T) {
	c, rec := newRecorderClient(t)
	b := c.Request(request.Request{}).
		Set("h-foo", "qaz").
		Set("h-bar", "wsx").
		Path("/path/:to/:resource", pathtmpl.Params{"to": "at", "resource": "one"}).
		Options(request.Options{
			Header: header.Map{"h-krv": header.Single("vbn"), "h-foo": header.Single("clobbered")},
			Extra:  map[string]interface{}{"o-foo": "o-bar", "o-cvb": 1},
		})
	require.NoError(t, b.End(context.Background(), nil))

	r, _ := rec.last(t)
	assert.Equal(t, header.Map{
		"h-foo": header.Single("qaz"),
		"h-bar": header.Single("wsx"),
		"h-krv": header.Single("vbn"),
	}, r.Header)
	assert.Equal(t, "/path/at/one", r.Path)
	assert.Equal(t, map[string]interface{}{"o-foo": "o-bar", "o-cvb": 1}, r.Extra)

	t.Run("later set overwrites", func(t *testing.T) {
		b := c.Request(request.Request{}).
			Options(request.Options{Header: header.Map{"h-foo": header.Single("opt")}}).
			Set("h-foo", "set")
		require.NoError(t, b.End(context.Background(), nil))
		r, _ := rec.last(t)
		assert.Equal(t, header.Single("set"), r.Header["h-foo"])
	})
}

func TestBuilder_Path(t *testing.T) {
	c, rec := newRecorderClient(t)

	t.Run("raw", func(t *testing.T) {
		require.NoError(t, c.Get(nil).Path("/users/:id", nil).End(context.Background(), nil))
		r, _ := rec.last(t)
		assert.Equal(t, "/users/:id", r.Path)
	})
	t.Run("missing param is sticky", func(t *testing.T) {
		b := c.Get(nil).
			Path("/users/:id", pathtmpl.Params{"name": "x"}).
			Set("after", "error").
			Path("/fine", nil)
		var mpe *pathtmpl.MissingParamError
		require.ErrorAs(t, b.Err(), &mpe)
		assert.Equal(t, "id", mpe.Name)
		n := len(rec.reqs)
		assert.Same(t, b.Err(), b.End(context.Background(), func(interface{}, error) {
			t.Fatal("callback must not run")
		}))
		assert.Len(t, rec.reqs, n)
	})
}

func TestBuilder_Set(t *testing.T) {
	c, rec := newRecorderClient(t)

	t.Run("multi stringified at end", func(t *testing.T) {
		b := c.Get(nil).Set("Accept", "text/plain", "application/json").Set("X-One", "1")
		require.NoError(t, b.End(context.Background(), nil))
		r, _ := rec.last(t)
		assert.Equal(t, header.Map{
			"Accept": header.Single("text/plain, application/json"),
			"X-One":  header.Single("1"),
		}, r.Header)
	})
	t.Run("no value", func(t *testing.T) {
		b := c.Get(nil).Set("X-Empty")
		assert.ErrorIs(t, b.Err(), header.ErrNoValue)
	})
	t.Run("bad name", func(t *testing.T) {
		b := c.Get(nil).Set("bad name", "v")
		assert.Error(t, b.Err())
	})
}

func TestBuilder_End(t *testing.T) {
	t.Run("twice", func(t *testing.T) {
		c, rec := newRecorderClient(t)
		b := c.Get(nil)
		require.NoError(t, b.End(context.Background(), nil))
		assert.Same(t, ErrFinalized, b.End(context.Background(), nil))
		assert.Len(t, rec.reqs, 1)
	})
	t.Run("callback at most once", func(t *testing.T) {
		p := PipelineFunc(func(_ context.Context, _ request.CallContext, _ *request.Request, cb request.Callback) {
			cb("first", nil)
			cb(nil, errors.New("second"))
		})
		c, err := New(p)
		require.NoError(t, err)
		calls := 0
		require.NoError(t, c.Get(nil).End(context.Background(), func(res interface{}, err error) {
			calls++
			assert.Equal(t, "first", res)
			assert.NoError(t, err)
		}))
		assert.Equal(t, 1, calls)
	})
	t.Run("pipeline error passes through", func(t *testing.T) {
		errBoom := errors.New("boom")
		p := PipelineFunc(func(_ context.Context, _ request.CallContext, _ *request.Request, cb request.Callback) {
			cb(nil, errBoom)
		})
		c, err := New(p)
		require.NoError(t, err)
		res, err := c.Delete("/x").Do(context.Background())
		assert.Nil(t, res)
		assert.Same(t, errBoom, err)
	})
	t.Run("submitted request is a copy", func(t *testing.T) {
		c, rec := newRecorderClient(t)
		b := c.Post("body").Set("k", "v")
		b.Context()["x"] = 1
		require.NoError(t, b.End(context.Background(), nil))
		r, call := rec.last(t)
		r.Header.Set("k", "changed")
		call["x"] = 2
		assert.Equal(t, 1, b.Context()["x"])
	})
}

func TestBuilder_Do(t *testing.T) {
	t.Run("context ends first", func(t *testing.T) {
		never := PipelineFunc(func(context.Context, request.CallContext, *request.Request, request.Callback) {})
		c, err := New(never)
		require.NoError(t, err)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		res, err := c.Get(nil).Do(ctx)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
	t.Run("end error", func(t *testing.T) {
		var c Client
		_, err := c.Get(nil).Do(context.Background())
		assert.Same(t, ErrNoPipeline, err)
	})
}

type extBuilder struct {
	Builder
}

func (e extBuilder) End(ctx context.Context, cb request.Callback) error {
	e.Options(request.Options{Extra: map[string]interface{}{"ext": true}})
	return e.Builder.End(ctx, cb)
}

func withExt(b Builder) Builder {
	return extBuilder{b}
}

func TestDecorator(t *testing.T) {
	t.Run("client wide", func(t *testing.T) {
		c, rec := newRecorderClient(t, WithDecorator(withExt))
		b := c.Get(nil).Set("a", "b")
		assert.IsType(t, extBuilder{}, b)
		_, err := b.Do(context.Background())
		require.NoError(t, err)
		r, _ := rec.last(t)
		assert.Equal(t, map[string]interface{}{"ext": true}, r.Extra)
	})
	t.Run("per call", func(t *testing.T) {
		c, rec := newRecorderClient(t)
		require.NoError(t, c.Request(request.Request{}, withExt).End(context.Background(), nil))
		r, _ := rec.last(t)
		assert.Equal(t, true, r.Extra["ext"])

		require.NoError(t, c.Request(request.Request{}).End(context.Background(), nil))
		r, _ = rec.last(t)
		assert.Nil(t, r.Extra)
	})
	t.Run("order", func(t *testing.T) {
		var order []string
		tag := func(name string) Decorator {
			return func(b Builder) Builder {
				order = append(order, name)
				return b
			}
		}
		c, _ := newRecorderClient(t, WithDecorator(tag("client")))
		c.Request(request.Request{}, tag("call"))
		assert.Equal(t, []string{"client", "call"}, order)
	})
	t.Run("chains during decoration", func(t *testing.T) {
		auth := func(b Builder) Builder {
			return b.Set("Authorization", "token")
		}
		c, rec := newRecorderClient(t, WithDecorator(auth), WithDecorator(withExt))
		b := c.Get(nil)
		require.NoError(t, b.Err())
		assert.IsType(t, extBuilder{}, b)
		assert.IsType(t, extBuilder{}, b.Set("X-Other", "1"))
		require.NoError(t, b.End(context.Background(), nil))
		r, _ := rec.last(t)
		assert.Equal(t, header.Single("token"), r.Header["Authorization"])
		assert.Equal(t, true, r.Extra["ext"])
	})
	t.Run("bad", func(t *testing.T) {
		c, _ := newRecorderClient(t)
		b := c.Request(request.Request{}, nil)
		assert.Same(t, ErrBadDecorator, b.Err())
		b = c.Request(request.Request{}, func(Builder) Builder { return nil })
		assert.Same(t, ErrBadDecorator, b.Err())
	})
}
