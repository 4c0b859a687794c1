// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package querystr

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

var mixed = Params{
	{"Number", 1},
	{"Boolean", true},
	{"String", "text"},
	{"Array", []interface{}{1, "2", true}},
	{"Undefined", nil},
	{"Null", (*string)(nil)},
}

func TestEncode(t *testing.T) {
	testCases := []struct {
		name     string
		v        interface{}
		sep, eq  string
		key      string
		expected string
	}{
		{
			name:     "object",
			v:        mixed,
			expected: "Number=1&Boolean=true&String=text&Array=1&Array=2&Array=true&Undefined=&Null=",
		},
		{
			name:     "object custom separators",
			v:        mixed,
			sep:      "+",
			eq:       "--",
			expected: "Number--1+Boolean--true+String--text+Array--1+Array--2+Array--true+Undefined--+Null--",
		},
		{
			name:     "number",
			v:        2,
			key:      "foo",
			expected: "foo=2",
		},
		{
			name:     "scalar without key",
			v:        2,
			expected: "",
		},
		{
			name:     "nil",
			v:        nil,
			expected: "",
		},
		{
			name:     "typed nil",
			v:        (*Params)(nil),
			expected: "",
		},
		{
			name:     "float",
			v:        Params{{"f", 1.5}, {"g", 2.0}},
			expected: "f=1.5&g=2",
		},
		{
			name:     "nil array element",
			v:        Params{{"a", []interface{}{nil, "x"}}},
			expected: "a=&a=x",
		},
		{
			name:     "byte slice is a scalar",
			v:        Params{{"b", []byte("raw")}},
			expected: "b=raw",
		},
		{
			name:     "map sorted by key",
			v:        map[string]interface{}{"z": 1, "a": "b"},
			expected: "a=b&z=1",
		},
		{
			name:     "url values",
			v:        url.Values{"k": {"v1", "v2"}, "a": {"x"}},
			expected: "a=x&k=v1&k=v2",
		},
		{
			name:     "nested object",
			v:        Params{{"user", Params{{"name", "ann"}, {"age", 9}}}},
			expected: "user[name]=ann&user[age]=9",
		},
		{
			name:     "no escaping",
			v:        Params{{"q", "a b&c"}},
			expected: "q=a b&c",
		},
		{
			name:     "slice with key",
			v:        []int{1, 2},
			key:      "n",
			expected: "n=1&n=2",
		},
		{
			name:     "empty object",
			v:        Params{},
			expected: "",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, Encode(testCase.v, testCase.sep, testCase.eq, testCase.key))
		})
	}
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "foo=bar", Stringify(map[string]string{"foo": "bar"}))
	assert.Equal(t, "", Stringify(nil))
}

func TestParamsAdd(t *testing.T) {
	p := Params{}.Add("a", 1).Add("b", "c")
	assert.Equal(t, Params{{"a", 1}, {"b", "c"}}, p)
	assert.Equal(t, "a=1&b=c", Stringify(p))
}
