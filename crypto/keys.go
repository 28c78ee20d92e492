// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package crypto

import (
	"encoding/json"
	"fmt"

	"github.com/luxfi/crypto/bls"
)

// PrivateKey is a committee member's BLS signing key.
type PrivateKey struct {
	sk *bls.SecretKey
}

// PublicKey is a committee member's BLS verification key.
type PublicKey struct {
	pk *bls.PublicKey
}

// Signature is a single BLS signature share or an aggregate of many.
type Signature struct {
	sig *bls.Signature
}

// GeneratePrivateKey derives a signing key from a 32 byte seed. Tests use
// deterministic seeds; replicas in production draw the seed from a secure
// random source.
func GeneratePrivateKey(seed []byte) (PrivateKey, error) {
	sk, err := bls.SecretKeyFromSeed(seed)
	if err != nil {
		return PrivateKey{}, fmt.Errorf("crypto: derive secret key: %w", err)
	}
	return PrivateKey{sk: sk}, nil
}

// PublicKey returns the public key matching k.
func (k PrivateKey) PublicKey() PublicKey {
	return PublicKey{pk: k.sk.PublicKey()}
}

// Sign signs msg, typically the digest of a header, vote, or certificate.
func (k PrivateKey) Sign(msg []byte) (Signature, error) {
	sig, err := k.sk.Sign(msg)
	if err != nil {
		return Signature{}, fmt.Errorf("crypto: sign: %w", err)
	}
	return Signature{sig: sig}, nil
}

// Bytes returns the compressed public key encoding.
func (k PublicKey) Bytes() []byte {
	return bls.PublicKeyToCompressedBytes(k.pk)
}

// String returns a short hex preview of the public key, for logging.
func (k PublicKey) String() string {
	b := k.Bytes()
	if len(b) > 8 {
		b = b[:8]
	}
	return fmt.Sprintf("%x", b)
}

// PublicKeyFromBytes parses a compressed public key.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	pk, err := bls.PublicKeyFromCompressedBytes(b)
	if err != nil {
		return PublicKey{}, fmt.Errorf("crypto: parse public key: %w", err)
	}
	return PublicKey{pk: pk}, nil
}

// MarshalJSON encodes the compressed public key bytes.
func (k PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.Bytes())
}

// UnmarshalJSON decodes a compressed public key.
func (k *PublicKey) UnmarshalJSON(b []byte) error {
	var raw []byte
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		*k = PublicKey{}
		return nil
	}
	parsed, err := PublicKeyFromBytes(raw)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Bytes returns the signature encoding.
func (s Signature) Bytes() []byte {
	return bls.SignatureToBytes(s.sig)
}

// IsZero reports whether s holds no signature.
func (s Signature) IsZero() bool {
	return s.sig == nil
}

// SignatureFromBytes parses a signature.
func SignatureFromBytes(b []byte) (Signature, error) {
	sig, err := bls.SignatureFromBytes(b)
	if err != nil {
		return Signature{}, fmt.Errorf("crypto: parse signature: %w", err)
	}
	return Signature{sig: sig}, nil
}

// MarshalJSON encodes the signature bytes, or null for the zero signature.
func (s Signature) MarshalJSON() ([]byte, error) {
	if s.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(s.Bytes())
}

// UnmarshalJSON decodes a signature, accepting null as the zero signature.
func (s *Signature) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = Signature{}
		return nil
	}
	var raw []byte
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := SignatureFromBytes(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
