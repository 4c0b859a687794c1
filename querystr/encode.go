// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package querystr

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultSep is the default separator placed between pairs.
	DefaultSep = "&"
	// DefaultEq is the default separator placed between a key and its
	// value.
	DefaultEq = "="
)

// A Param is a single named field of an ordered query object.
type Param struct {
	Key   string
	Value interface{}
}

// Params is a query object whose fields are encoded in slice order.
type Params []Param

// Add appends a field to p and returns the extended slice.
func (p Params) Add(key string, value interface{}) Params {
	return append(p, Param{Key: key, Value: value})
}

// Stringify encodes v using the default separators. It is equivalent to
// Encode(v, "", "", "").
func Stringify(v interface{}) string {
	return Encode(v, "", "", "")
}

// Encode converts v into a query string.
//
// Parameter sep separates pairs and eq separates each key from its
// value; an empty string selects DefaultSep or DefaultEq respectively.
//
// The encoding rules are:
//
// • If v is nil or a nil pointer, the result is empty.
//
// • If v is an object (Params, url.Values, or a map with string keys),
// each field produces one pair per element if its value is a slice or
// array, and a single pair otherwise. A nil value, or nil element,
// produces a pair with an empty right-hand side ("key=").
// Nested objects are flattened into "parent[child]" keys.
//
// • If v is a scalar (string, bool, or number) or a slice, parameter key
// names the pair(s). If key is empty, the result is empty.
func Encode(v interface{}, sep, eq, key string) string {
	if sep == "" {
		sep = DefaultSep
	}
	if eq == "" {
		eq = DefaultEq
	}
	e := encoder{eq: eq}
	if isObject(v) {
		e.object("", v)
	} else if key != "" {
		e.field(key, v)
	}
	return strings.Join(e.pairs, sep)
}

type encoder struct {
	eq    string
	pairs []string
}

func (e *encoder) object(prefix string, v interface{}) {
	switch x := v.(type) {
	case Params:
		for _, p := range x {
			e.field(join(prefix, p.Key), p.Value)
		}
	case url.Values:
		for _, k := range sortedKeys(x) {
			e.field(join(prefix, k), x[k])
		}
	default:
		rv := indirect(reflect.ValueOf(v))
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			e.field(join(prefix, k.String()), rv.MapIndex(k).Interface())
		}
	}
}

func (e *encoder) field(key string, v interface{}) {
	if isObject(v) {
		e.object(key, v)
		return
	}
	rv := indirect(reflect.ValueOf(v))
	if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		for i := 0; i < rv.Len(); i++ {
			e.pair(key, rv.Index(i).Interface())
		}
		return
	}
	e.pair(key, v)
}

func (e *encoder) pair(key string, v interface{}) {
	e.pairs = append(e.pairs, key+e.eq+scalar(v))
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "[" + key + "]"
}

// scalar prints v the way a dynamically typed caller would expect: nil
// is empty, booleans are true/false, and numbers carry no trailing zeros.
func scalar(v interface{}) string {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return ""
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return fmt.Sprint(f)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes())
		}
	}
	return fmt.Sprint(rv.Interface())
}

func isObject(v interface{}) bool {
	switch v.(type) {
	case Params, url.Values:
		return true
	}
	rv := indirect(reflect.ValueOf(v))
	return rv.IsValid() && rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func sortedKeys(m url.Values) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
