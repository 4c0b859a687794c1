// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package merge provides shallow, deterministic map merging.
//
// Mixin copies keys from each source into a destination in argument
// order, so the last source to mention a key wins. Fill does the same but
// never replaces a key the destination already holds, so the first
// writer wins. Neither function descends into nested values: a map value
// is replaced wholesale.
package merge
