// Copyright 2021 The httpfy Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const badBodyTypeMsg = "httpfy/request: invalid type (for body use nil, " +
	"string, []byte, io.Reader or io.ReadCloser)"

// BodyBytes converts a raw body to a byte slice.
//
// A nil body gives a nil slice. A string or []byte is converted
// directly. An io.Reader is read to the end, and closed if it is also an
// io.Closer. Any other type is an error.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		b, err := io.ReadAll(x)
		if err != nil {
			return nil, err
		}
		if err = x.Close(); err != nil {
			return nil, err
		}
		return b, nil
	case io.Reader:
		return BodyBytes(io.NopCloser(x))
	default:
		return nil, errors.New(badBodyTypeMsg)
	}
}

// encodeBody is BodyBytes with a JSON fallback for structured bodies.
func encodeBody(body interface{}) (b []byte, isJSON bool, err error) {
	switch body.(type) {
	case nil, string, []byte, io.Reader:
		b, err = BodyBytes(body)
		return
	}
	b, err = json.Marshal(body)
	if err != nil {
		return nil, false, fmt.Errorf("httpfy/request: encoding body: %w", err)
	}
	return b, true, nil
}
