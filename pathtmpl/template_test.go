// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pathtmpl

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	testCases := []struct {
		name     string
		pattern  string
		params   Params
		expected string
	}{
		{
			name:     "two placeholders",
			pattern:  "/path/:to/:resource",
			params:   Params{"to": "at", "resource": "one"},
			expected: "/path/at/one",
		},
		{
			name:     "nil params",
			pattern:  "/path/:to/:resource",
			expected: "/path/:to/:resource",
		},
		{
			name:     "no placeholders",
			pattern:  "/plain",
			params:   Params{},
			expected: "/plain",
		},
		{
			name:     "non-string value",
			pattern:  "/users/:id",
			params:   Params{"id": 42},
			expected: "/users/42",
		},
		{
			name:     "name stops at punctuation",
			pattern:  "/files/:name.json",
			params:   Params{"name": "report"},
			expected: "/files/report.json",
		},
		{
			name:     "name stops at hyphen",
			pattern:  "/:a-:b",
			params:   Params{"a": "x", "b": "y"},
			expected: "/x-y",
		},
		{
			name:     "underscore is part of name",
			pattern:  "/:user_id",
			params:   Params{"user_id": 7},
			expected: "/7",
		},
		{
			name:     "nil value",
			pattern:  "/a/:b",
			params:   Params{"b": nil},
			expected: "/a/",
		},
		{
			name:     "value not escaped",
			pattern:  "/q/:term",
			params:   Params{"term": "a b"},
			expected: "/q/a b",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual, err := Render(testCase.pattern, testCase.params)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestRenderMissing(t *testing.T) {
	params := Params{"to": "at"}
	s, err := Render("/path/:to/:resource", params)
	assert.Empty(t, s)
	var mpe *MissingParamError
	require.True(t, errors.As(err, &mpe))
	assert.Equal(t, "resource", mpe.Name)
	assert.Equal(t, "/path/:to/:resource", mpe.Pattern)
	assert.EqualError(t, err, `httpfy/pathtmpl: no value for placeholder "resource" in "/path/:to/:resource"`)
	assert.Equal(t, Params{"to": "at"}, params)
}

func TestTemplate(t *testing.T) {
	t.Run("zero value", func(t *testing.T) {
		s, err := Template{}.Render("/:x", Params{"x": 1})
		require.NoError(t, err)
		assert.Equal(t, "/1", s)
	})
	t.Run("braces", func(t *testing.T) {
		tmpl := Template{Interpolate: regexp.MustCompile(`\{(\w+)\}`)}
		s, err := tmpl.Render("/users/{id}/:literal", Params{"id": "u1"})
		require.NoError(t, err)
		assert.Equal(t, "/users/u1/:literal", s)
	})
	t.Run("no capturing group", func(t *testing.T) {
		tmpl := Template{Interpolate: regexp.MustCompile(`:\w+`)}
		_, err := tmpl.Render("/:x", Params{"x": 1})
		assert.Error(t, err)
	})
}
