// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quasar

// BLS types for quantum-resistant signatures
type (
	// PublicKey represents a BLS public key
	PublicKey struct {
		key []byte
	}
	
	// Aggregator represents a BLS signature aggregator
	Aggregator struct {
		sigs [][]byte
	}
)

// bls namespace for BLS operations
var bls = struct {
	PublicKey  func() *PublicKey
	Aggregator func() *Aggregator
	NewAggregator func() *Aggregator
}{
	PublicKey: func() *PublicKey { return &PublicKey{} },
	Aggregator: func() *Aggregator { return &Aggregator{} },
	NewAggregator: func() *Aggregator { return &Aggregator{} },
}

// Sign creates a signature
func (a *Aggregator) Sign(msg []byte) []byte {
	// Placeholder implementation
	return append([]byte("SIG:"), msg[:min(len(msg), 32)]...)
}

// Verify verifies a signature
func (a *Aggregator) Verify(msg, sig []byte) bool {
	// Placeholder implementation
	return len(sig) > 4 && string(sig[:4]) == "SIG:"
}

// Aggregate combines multiple signatures
func (a *Aggregator) Aggregate(sigs [][]byte) []byte {
	// Placeholder implementation
	return []byte("AGGREGATE")
}

// CreateAggregate creates an aggregate signature
func (a *Aggregator) CreateAggregate(msg []byte, keys []*PublicKey) []byte {
	// Placeholder implementation
	return append([]byte("AGG:"), msg[:min(len(msg), 16)]...)
}

// VerifyAggregate verifies an aggregate signature
func (a *Aggregator) VerifyAggregate(msg []byte, sig []byte, keys []*PublicKey) bool {
	// Placeholder implementation
	return len(sig) > 4 && string(sig[:4]) == "AGG:"
}

// ringtail namespace for Ringtail operations
var ringtail = struct {
	PublicKey  func() *PublicKey
	Aggregator func() *Aggregator
	NewAggregator func() *Aggregator
}{
	PublicKey: func() *PublicKey { return &PublicKey{} },
	Aggregator: func() *Aggregator { return &Aggregator{} },
	NewAggregator: func() *Aggregator { return &Aggregator{} },
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}