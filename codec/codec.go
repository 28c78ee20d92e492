// Package codec provides the canonical encoding used to serialize headers,
// votes, certificates, and payloads both for network transport and for
// digest computation. Every digest in this module is the hash of a value's
// canonical encoding, so Marshal must be deterministic for equal values.
package codec

import (
	"encoding/json"
	"fmt"
)

// CodecVersion represents the codec version
type CodecVersion uint16

const (
	// CurrentVersion is the current codec version
	CurrentVersion CodecVersion = 0
)

// Codec provides marshaling/unmarshaling
var Codec = &JSONCodec{}

// JSONCodec implements JSON encoding/decoding. encoding/json sorts struct
// fields by their declaration order and map keys lexicographically, which
// keeps Marshal deterministic for the plain structs and maps used here.
type JSONCodec struct{}

// Marshal marshals an object to bytes
func (c *JSONCodec) Marshal(version CodecVersion, v interface{}) ([]byte, error) {
	if version != CurrentVersion {
		return nil, fmt.Errorf("unsupported codec version: %d", version)
	}
	return json.Marshal(v)
}

// Unmarshal unmarshals bytes to an object
func (c *JSONCodec) Unmarshal(data []byte, v interface{}) (CodecVersion, error) {
	err := json.Unmarshal(data, v)
	return CurrentVersion, err
}

// MustMarshal marshals v at CurrentVersion and panics on failure. Reserved
// for values whose encoding cannot fail, such as the module's own wire
// types built entirely from strings, fixed-size arrays, and slices.
func MustMarshal(v interface{}) []byte {
	b, err := Codec.Marshal(CurrentVersion, v)
	if err != nil {
		panic(fmt.Sprintf("codec: marshal %T: %v", v, err))
	}
	return b
}