// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package merge

// Mixin copies every key of every source into dest, left to right, and
// returns dest. Nil sources are skipped. If dest is nil and at least one
// source has keys, a new map is allocated and returned.
func Mixin[M ~map[K]V, K comparable, V any](dest M, sources ...M) M {
	for _, src := range sources {
		for k, v := range src {
			if dest == nil {
				dest = make(M, len(src))
			}
			dest[k] = v
		}
	}
	return dest
}

// Fill is like Mixin, except that a key already present in dest, or
// written by an earlier source, is never overwritten.
func Fill[M ~map[K]V, K comparable, V any](dest M, sources ...M) M {
	for _, src := range sources {
		for k, v := range src {
			if dest == nil {
				dest = make(M, len(src))
			}
			if _, ok := dest[k]; !ok {
				dest[k] = v
			}
		}
	}
	return dest
}

// Clone returns a shallow copy of m. The copy of a nil map is an empty,
// non-nil map.
func Clone[M ~map[K]V, K comparable, V any](m M) M {
	return Mixin(make(M, len(m)), m)
}
