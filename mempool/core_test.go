// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"context"
	"testing"
	"time"

	"github.com/luxfi/dagbft/committee"
	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/dagbft/network"
	"github.com/luxfi/dagbft/store"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"
)

type harness struct {
	self      ids.NodeID
	sk        crypto.PrivateKey
	svc       crypto.SignatureService
	committee *committee.Committee
	store     store.Store
	fabric    *network.Fabric
	pool      *TxPool
	core      *Core
	inbox     <-chan network.Envelope
	cancel    context.CancelFunc
}

func newHarness(t *testing.T, n int) []*harness {
	t.Helper()

	fabric := network.NewFabric()
	members := make([]committee.Member, n)
	hs := make([]*harness, n)
	for i := 0; i < n; i++ {
		seed := make([]byte, 32)
		seed[0] = byte(i + 1)
		sk, err := crypto.GeneratePrivateKey(seed)
		require.NoError(t, err)
		id := ids.GenerateTestNodeID()
		members[i] = committee.Member{ID: id, PublicKey: sk.PublicKey(), Stake: 1}
		hs[i] = &harness{self: id, sk: sk, svc: crypto.NewSignatureService(sk)}
	}
	c, err := committee.New(members)
	require.NoError(t, err)

	params := committee.Test()
	for _, h := range hs {
		h.committee = c
		h.store = store.NewMemStore()
		h.fabric = fabric
		h.pool = NewTxPool()
		inbox := fabric.Register(h.self, 32)
		h.inbox = inbox
		sender := fabric.SenderFor(h.self)
		sync := NewSynchronizer(h.self, h.store, sender, c)
		maker := NewPayloadMaker(h.self, h.sk, h.pool, params.MaxPayloadSize)
		h.core = NewCore(h.self, c, params, h.svc, h.store, sync, maker, sender, inbox, log.NewNoOpLogger())
	}
	return hs
}

func runAll(hs []*harness) context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	for _, h := range hs {
		h.cancel = cancel
		go h.core.Run(ctx)
	}
	return cancel
}

func TestHandleOwnPayload(t *testing.T) {
	hs := newHarness(t, 4)
	cancel := runAll(hs)
	defer cancel()

	hs[0].pool.Add([]byte("tx1"))

	ctx, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()
	digests, err := hs[0].core.Get(ctx, 1<<20)
	require.NoError(t, err)
	require.Len(t, digests, 1)
}

func TestGetPayloadEmptyWhenNoTxs(t *testing.T) {
	hs := newHarness(t, 4)
	cancel := runAll(hs)
	defer cancel()

	ctx, done := context.WithTimeout(context.Background(), time.Second)
	defer done()
	digests, err := hs[0].core.Get(ctx, 1<<20)
	require.NoError(t, err)
	require.Empty(t, digests)
}

func TestOthersPayloadPropagatesToQueue(t *testing.T) {
	hs := newHarness(t, 4)
	cancel := runAll(hs)
	defer cancel()

	hs[1].pool.Add([]byte("tx-from-1"))

	ctx, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()
	digests, err := hs[1].core.Get(ctx, 1<<20)
	require.NoError(t, err)
	require.Len(t, digests, 1)

	require.Eventually(t, func() bool {
		ok, _ := hs[0].store.Has(digests[0].Bytes())
		return ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestVerifyPayloadsMissingReturnsWait(t *testing.T) {
	hs := newHarness(t, 4)
	cancel := runAll(hs)
	defer cancel()

	missing := crypto.ComputeDigest([]byte("never stored"))
	ctx, done := context.WithTimeout(context.Background(), time.Second)
	defer done()
	status, err := hs[0].core.Verify(ctx, 1, []crypto.Digest{missing})
	require.NoError(t, err)
	require.Equal(t, StatusWait, status)
}

func TestVerifyPayloadsPresentReturnsAccept(t *testing.T) {
	hs := newHarness(t, 4)
	cancel := runAll(hs)
	defer cancel()

	hs[0].pool.Add([]byte("local-tx"))
	ctx, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()
	digests, err := hs[0].core.Get(ctx, 1<<20)
	require.NoError(t, err)
	require.Len(t, digests, 1)

	status, err := hs[0].core.Verify(ctx, 1, digests)
	require.NoError(t, err)
	require.Equal(t, StatusAccept, status)
}

func TestCleanupRemovesFromQueue(t *testing.T) {
	hs := newHarness(t, 4)
	cancel := runAll(hs)
	defer cancel()

	hs[1].pool.Add([]byte("tx-x"))
	ctx, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()
	digests, err := hs[1].core.Get(ctx, 1<<20)
	require.NoError(t, err)
	require.Len(t, digests, 1)

	hs[1].pool.Add([]byte("tx-y"))
	more, err := hs[1].core.Get(ctx, 1<<20)
	require.NoError(t, err)
	require.Len(t, more, 1)

	hs[1].core.Cleanup(ctx, more, 2)
}
