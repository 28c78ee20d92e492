// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T, seed byte) PrivateKey {
	t.Helper()
	b := make([]byte, 32)
	for i := range b {
		b[i] = seed
	}
	sk, err := GeneratePrivateKey(b)
	require.NoError(t, err)
	return sk
}

func TestSignVerify(t *testing.T) {
	require := require.New(t)

	sk := newTestKey(t, 1)
	svc := NewSignatureService(sk)
	msg := ComputeDigest([]byte("hello")).Bytes()

	sig, err := svc.Sign(msg)
	require.NoError(err)
	require.True(svc.Verify(svc.PublicKey(), sig, msg))
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	require := require.New(t)

	sk1 := newTestKey(t, 1)
	sk2 := newTestKey(t, 2)
	svc1 := NewSignatureService(sk1)
	svc2 := NewSignatureService(sk2)
	msg := ComputeDigest([]byte("hello")).Bytes()

	sig, err := svc1.Sign(msg)
	require.NoError(err)
	require.False(svc2.Verify(svc2.PublicKey(), sig, msg))
}

func TestAggregateVerify(t *testing.T) {
	require := require.New(t)

	msg := ComputeDigest([]byte("quorum")).Bytes()

	var sigs []Signature
	var pks []PublicKey
	for i := byte(1); i <= 4; i++ {
		sk := newTestKey(t, i)
		svc := NewSignatureService(sk)
		sig, err := svc.Sign(msg)
		require.NoError(err)
		sigs = append(sigs, sig)
		pks = append(pks, svc.PublicKey())
	}

	svc := NewSignatureService(newTestKey(t, 1))
	agg, err := svc.Aggregate(sigs)
	require.NoError(err)
	require.True(svc.VerifyAggregate(pks, agg, msg))
}

func TestAggregateEmptyFails(t *testing.T) {
	svc := NewSignatureService(newTestKey(t, 1))
	_, err := svc.Aggregate(nil)
	require.Error(t, err)
}

func TestDigestRoundTrip(t *testing.T) {
	require := require.New(t)

	d := ComputeDigest([]byte("payload"))
	require.False(d.IsZero())

	parsed, err := DigestFromBytes(d.Bytes())
	require.NoError(err)
	require.Equal(d, parsed)

	_, err = DigestFromBytes([]byte("too short"))
	require.Error(err)
}
