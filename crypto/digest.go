// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package crypto provides the content-addressing and signature primitives
// shared by the mempool and primary packages: digests, BLS public/private
// keys, and signature aggregation.
package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DigestLen is the length in bytes of a Digest.
const DigestLen = 32

// Digest is a fixed-width content address produced by hashing a canonical
// byte encoding. Zero value represents "no digest" and is used as the
// parent reference of genesis objects.
type Digest [DigestLen]byte

// ComputeDigest hashes b and returns the resulting Digest.
func ComputeDigest(b []byte) Digest {
	return Digest(sha256.Sum256(b))
}

// Bytes returns a copy of the digest as a byte slice.
func (d Digest) Bytes() []byte {
	out := make([]byte, DigestLen)
	copy(out, d[:])
	return out
}

// IsZero reports whether d is the zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// DigestFromBytes parses a Digest from b, which must be exactly DigestLen
// bytes long.
func DigestFromBytes(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestLen {
		return d, fmt.Errorf("crypto: invalid digest length %d, want %d", len(b), DigestLen)
	}
	copy(d[:], b)
	return d, nil
}

// MarshalText hex-encodes d, letting it serialize as a plain JSON string
// and, in particular, as a JSON object key wherever a Digest is used as a
// map key.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses the hex encoding produced by MarshalText.
func (d *Digest) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("crypto: parse digest: %w", err)
	}
	parsed, err := DigestFromBytes(b)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
