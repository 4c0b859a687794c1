// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package header

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// MultiSep separates the parts of a Multi value in its wire form.
const MultiSep = ", "

// ErrNoValue is returned when a header is set without any value.
var ErrNoValue = errors.New("httpfy/header: no value")

// A Value is a header value. The only implementations are Single and
// Multi.
type Value interface {
	// String returns the wire form of the value.
	String() string
	// Values returns the individual parts of the value.
	Values() []string

	isValue()
}

// Single is a header value with exactly one part.
type Single string

// String returns s.
func (s Single) String() string { return string(s) }

// Values returns a one-element slice containing s.
func (s Single) Values() []string { return []string{string(s)} }

func (Single) isValue() {}

// Multi is a header value with several parts under one name.
type Multi []string

// String joins the parts of m with MultiSep.
func (m Multi) String() string { return strings.Join(m, MultiSep) }

// Values returns a copy of the parts of m.
func (m Multi) Values() []string {
	v := make([]string, len(m))
	copy(v, m)
	return v
}

func (Multi) isValue() {}

// Of returns Single(values[0]) for one value, Multi(values) for several,
// and ErrNoValue for none.
func Of(values ...string) (Value, error) {
	switch len(values) {
	case 0:
		return nil, ErrNoValue
	case 1:
		return Single(values[0]), nil
	default:
		m := make(Multi, len(values))
		copy(m, values)
		return m, nil
	}
}

// A Map maps header names to values. Names are stored as given; no
// canonicalization takes place until the map is converted with HTTP.
type Map map[string]Value

// Get returns the wire form of the value for key, or the empty string.
func (m Map) Get(key string) string {
	if v, ok := m[key]; ok && v != nil {
		return v.String()
	}
	return ""
}

// Set stores Single(value) under key.
func (m Map) Set(key, value string) {
	m[key] = Single(value)
}

// Keys returns the names in m in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of m. Multi values are shared, not
// copied. The clone of a nil map is an empty map.
func (m Map) Clone() Map {
	c := make(Map, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Strings returns the wire form of every value in m.
func (m Map) Strings() map[string]string {
	s := make(map[string]string, len(m))
	for k, v := range m {
		if v != nil {
			s[k] = v.String()
		}
	}
	return s
}

// HTTP converts m into an http.Header. Names are canonicalized and each
// Multi part becomes a separate header line. An error is returned for
// the first (in sorted order) invalid name or value.
func (m Map) HTTP() (http.Header, error) {
	h := make(http.Header, len(m))
	for _, k := range m.Keys() {
		v := m[k]
		if v == nil {
			continue
		}
		if err := ValidName(k); err != nil {
			return nil, err
		}
		for _, part := range v.Values() {
			if !httpguts.ValidHeaderFieldValue(part) {
				return nil, fmt.Errorf("httpfy/header: invalid value for %q", k)
			}
			h.Add(k, part)
		}
	}
	return h, nil
}

// Stringify returns a new map in which every Multi value in m is
// replaced by its Single wire form. Single values are copied unchanged
// and nil values are dropped.
func Stringify(m Map) Map {
	out := make(Map, len(m))
	for k, v := range m {
		switch x := v.(type) {
		case nil:
		case Single:
			out[k] = x
		case Multi:
			out[k] = Single(x.String())
		}
	}
	return out
}

// ValidName reports an error if name is not a valid header field name.
func ValidName(name string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("httpfy/header: invalid name %q", name)
	}
	return nil
}
