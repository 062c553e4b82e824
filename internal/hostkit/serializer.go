// serializer.go: gob-based payload codec for the reference host
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package hostkit

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

func init() {
	// gob requires every concrete type carried through an interface{}
	// to be registered up front. These cover the common host value
	// shapes; callers needing custom types should gob.Register them
	// before use.
	gob.Register("")
	gob.Register(0)
	gob.Register(int64(0))
	gob.Register(float64(0))
	gob.Register(false)
	gob.Register([]byte(nil))
	gob.Register([]string(nil))
	gob.Register(map[string]int(nil))
	gob.Register(map[string]string(nil))
	gob.Register(map[string]interface{}(nil))
}

// encodeValue turns an arbitrary value into an opaque payload. gob
// requires concrete, registered types for interface{} values, so
// callers needing custom types (structs included) should gob.Register
// them before use; the types registered in init above work as-is.
func encodeValue(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&v); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeValue(payload []byte) (interface{}, error) {
	var v interface{}
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&v); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return v, nil
}
