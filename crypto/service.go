// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package crypto

import (
	"fmt"

	"github.com/luxfi/crypto/bls"
)

// SignatureService signs and verifies messages on behalf of a single
// committee member and aggregates signature shares produced by others into
// a single compact certificate signature.
type SignatureService interface {
	// PublicKey returns the service's own public key.
	PublicKey() PublicKey

	// Sign signs msg with the service's private key.
	Sign(msg []byte) (Signature, error)

	// Verify checks that sig is a valid signature over msg under pk.
	Verify(pk PublicKey, sig Signature, msg []byte) bool

	// Aggregate combines individual signatures over the same message into
	// a single aggregate signature.
	Aggregate(sigs []Signature) (Signature, error)

	// VerifyAggregate checks an aggregate signature over msg against the
	// set of public keys that contributed to it.
	VerifyAggregate(pks []PublicKey, sig Signature, msg []byte) bool
}

// blsService is the default SignatureService, backed by BLS12-381
// signatures and aggregation.
type blsService struct {
	sk PrivateKey
	pk PublicKey
}

// NewSignatureService builds a SignatureService around sk.
func NewSignatureService(sk PrivateKey) SignatureService {
	return &blsService{sk: sk, pk: sk.PublicKey()}
}

func (s *blsService) PublicKey() PublicKey {
	return s.pk
}

func (s *blsService) Sign(msg []byte) (Signature, error) {
	return s.sk.Sign(msg)
}

func (s *blsService) Verify(pk PublicKey, sig Signature, msg []byte) bool {
	if sig.IsZero() {
		return false
	}
	return bls.Verify(pk.pk, sig.sig, msg)
}

func (s *blsService) Aggregate(sigs []Signature) (Signature, error) {
	if len(sigs) == 0 {
		return Signature{}, fmt.Errorf("crypto: no signatures to aggregate")
	}
	raw := make([]*bls.Signature, 0, len(sigs))
	for _, sig := range sigs {
		if sig.IsZero() {
			continue
		}
		raw = append(raw, sig.sig)
	}
	if len(raw) == 0 {
		return Signature{}, fmt.Errorf("crypto: no valid signatures to aggregate")
	}
	agg, err := bls.AggregateSignatures(raw)
	if err != nil {
		return Signature{}, fmt.Errorf("crypto: aggregate signatures: %w", err)
	}
	return Signature{sig: agg}, nil
}

func (s *blsService) VerifyAggregate(pks []PublicKey, sig Signature, msg []byte) bool {
	if sig.IsZero() || len(pks) == 0 {
		return false
	}
	raw := make([]*bls.PublicKey, 0, len(pks))
	for _, pk := range pks {
		raw = append(raw, pk.pk)
	}
	aggPK, err := bls.AggregatePublicKeys(raw)
	if err != nil {
		return false
	}
	return bls.Verify(aggPK, sig.sig, msg)
}
