// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pathtmpl

import (
	"fmt"
	"regexp"
	"strings"
)

// ColonInterpolate matches ":name" placeholders, where the name runs up
// to the next word boundary.
var ColonInterpolate = regexp.MustCompile(`:(.+?)\b`)

// Default is the colon-placeholder template used by Render.
var Default = Template{Interpolate: ColonInterpolate}

// Params maps placeholder names to the values substituted for them.
// Values are rendered with fmt.Sprint.
type Params map[string]interface{}

// A Template renders path patterns. The zero value behaves like Default.
//
// Interpolate must have at least one capturing group; the first group is
// taken as the placeholder name.
type Template struct {
	Interpolate *regexp.Regexp
}

// A MissingParamError reports a placeholder that had no value in the
// parameters passed to Render.
type MissingParamError struct {
	Pattern string
	Name    string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("httpfy/pathtmpl: no value for placeholder %q in %q", e.Name, e.Pattern)
}

// Render renders pattern using Default.
func Render(pattern string, params Params) (string, error) {
	return Default.Render(pattern, params)
}

// Render substitutes every placeholder in pattern with its value from
// params.
//
// If params is nil, pattern is returned unchanged, placeholders
// included. Neither pattern nor params is modified.
func (t Template) Render(pattern string, params Params) (string, error) {
	if params == nil {
		return pattern, nil
	}

	re := t.Interpolate
	if re == nil {
		re = ColonInterpolate
	}
	if re.NumSubexp() < 1 {
		return "", fmt.Errorf("httpfy/pathtmpl: interpolate expression %q has no capturing group", re)
	}

	var b strings.Builder
	last := 0
	for _, m := range re.FindAllStringSubmatchIndex(pattern, -1) {
		name := pattern[m[2]:m[3]]
		v, ok := params[name]
		if !ok {
			return "", &MissingParamError{Pattern: pattern, Name: name}
		}
		b.WriteString(pattern[last:m[0]])
		if v != nil {
			b.WriteString(fmt.Sprint(v))
		}
		last = m[1]
	}
	b.WriteString(pattern[last:])
	return b.String(), nil
}
