// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ringtail

// Precomp represents a precomputed share
type Precomp []byte

// SecretKey represents a secret key
type SecretKey struct {
	data []byte
}

// KeyGen generates a key pair from seed
func KeyGen(seed []byte) ([]byte, []byte, error) {
	// Simplified implementation
	sk := make([]byte, 32)
	pk := make([]byte, 32)
	copy(sk, seed[:32])
	copy(pk, seed[:32])
	return sk, pk, nil
}

// Precompute generates a precomputed share
func Precompute(sk []byte) (Precomp, error) {
	// Simplified: just return some data based on secret key
	precomp := make(Precomp, 64)
	copy(precomp, sk[:])
	return precomp, nil
}

// QuickSign signs using a precomputed share
func QuickSign(precomp Precomp, msg []byte) ([]byte, error) {
	// Simplified signature
	sig := make([]byte, 64)
	for i := 0; i < len(sig) && i < len(precomp); i++ {
		sig[i] = precomp[i] ^ msg[i%len(msg)]
	}
	return sig, nil
}

// VerifyShare verifies a share signature
func VerifyShare(pk []byte, msg []byte, sig []byte) bool {
	// Simplified verification - always return true for now
	return len(sig) == 64
}

// Aggregate aggregates shares into a certificate
func Aggregate(shares []Precomp) ([]byte, error) {
	// Simplified aggregation
	if len(shares) == 0 {
		return nil, nil
	}
	
	agg := make([]byte, 64)
	for _, share := range shares {
		for i := 0; i < len(agg) && i < len(share); i++ {
			agg[i] ^= share[i]
		}
	}
	return agg, nil
}

// VerifyCert verifies a certificate
func VerifyCert(pk []byte, msg []byte, cert []byte) bool {
	// Simplified verification
	return len(cert) == 64
}