// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout provides policies for choosing the timeout of each
// HTTP request attempt made by the transport, including retries.
package timeout
