// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package pipe

import (
	"github.com/gogama/httpfy/request"
)

// An Echoed is the response of the Echo handler.
type Echoed struct {
	Request *request.Request
	Call    request.CallContext
}

// Echo returns a terminal handler responding with the flow's own request
// and call context. It is useful in tests and dry runs.
func Echo() Handler {
	return Terminal(func(f *Flow) (interface{}, error) {
		return &Echoed{Request: f.Request, Call: f.Call}, nil
	})
}
