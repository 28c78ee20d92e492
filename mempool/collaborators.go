// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"context"
	"sync"

	"github.com/luxfi/dagbft/committee"
	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/dagbft/network"
	"github.com/luxfi/dagbft/store"
	"github.com/luxfi/ids"
)

// Synchronizer tells the core whether the payloads a proposed block
// references are locally available, requesting any that are missing.
type Synchronizer interface {
	// VerifyPayloads reports the availability of digests referenced by a
	// header at round.
	VerifyPayloads(ctx context.Context, round uint64, digests []crypto.Digest) (PayloadStatus, error)

	// Cleanup discards tracking state for rounds at or below round.
	Cleanup(round uint64)
}

// storeSynchronizer is the default Synchronizer: it checks the local store
// for each digest and, for anything missing, issues a PayloadRequest to the
// committee and reports StatusWait so the caller retries later.
type storeSynchronizer struct {
	mu      sync.Mutex
	self    ids.NodeID
	store   store.Store
	sender  network.Sender
	peers   []ids.NodeID
	pending map[crypto.Digest]uint64 // digest -> round it was first requested for
}

// NewSynchronizer returns the default store-backed Synchronizer.
func NewSynchronizer(self ids.NodeID, st store.Store, sender network.Sender, c *committee.Committee) Synchronizer {
	peers := make([]ids.NodeID, 0, c.Size())
	for _, m := range c.Members() {
		if m.ID != self {
			peers = append(peers, m.ID)
		}
	}
	return &storeSynchronizer{
		self:    self,
		store:   st,
		sender:  sender,
		peers:   peers,
		pending: make(map[crypto.Digest]uint64),
	}
}

func (s *storeSynchronizer) VerifyPayloads(ctx context.Context, round uint64, digests []crypto.Digest) (PayloadStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var missing []crypto.Digest
	for _, d := range digests {
		ok, err := s.store.Has(d.Bytes())
		if err != nil {
			return StatusReject, err
		}
		if !ok {
			missing = append(missing, d)
		}
	}
	if len(missing) == 0 {
		return StatusAccept, nil
	}

	var toRequest []crypto.Digest
	for _, d := range missing {
		if _, asked := s.pending[d]; !asked {
			s.pending[d] = round
			toRequest = append(toRequest, d)
		}
	}
	if len(toRequest) > 0 {
		msg := CoreMessage{Kind: KindPayloadRequest, Digests: toRequest, Requestor: s.self}
		payload := network.Message{Channel: network.ChannelMempool, Payload: encodeCoreMessage(msg)}
		_, _ = s.sender.Broadcast(ctx, s.peers, payload)
	}
	return StatusWait, nil
}

func (s *storeSynchronizer) Cleanup(round uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for d, r := range s.pending {
		if r <= round {
			delete(s.pending, d)
		}
	}
}

// PayloadMaker assembles the next Payload this replica will propose, or
// reports that it has nothing to propose yet.
type PayloadMaker interface {
	Make(ctx context.Context) (*Payload, bool)
}

// TxPool is a pending-transaction pool a PayloadMaker batches from. It is
// safe for concurrent use since transactions typically arrive from a
// separate client-facing goroutine.
type TxPool struct {
	mu  sync.Mutex
	txs [][]byte
}

// NewTxPool returns an empty TxPool.
func NewTxPool() *TxPool {
	return &TxPool{}
}

// Add appends tx to the pool.
func (p *TxPool) Add(tx []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.txs = append(p.txs, tx)
}

// Len returns the number of pending transactions.
func (p *TxPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.txs)
}

// drain removes and returns up to maxBytes worth of transactions.
func (p *TxPool) drain(maxBytes int) [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	var batch [][]byte
	size := 0
	i := 0
	for ; i < len(p.txs); i++ {
		txLen := len(p.txs[i])
		if size > 0 && size+txLen > maxBytes {
			break
		}
		batch = append(batch, p.txs[i])
		size += txLen
	}
	p.txs = p.txs[i:]
	return batch
}

// txPoolPayloadMaker is the default PayloadMaker: it batches pending
// transactions from a TxPool into a signed Payload authored by self.
type txPoolPayloadMaker struct {
	self    ids.NodeID
	sk      crypto.PrivateKey
	pool    *TxPool
	maxSize int
}

// NewPayloadMaker returns the default TxPool-backed PayloadMaker.
func NewPayloadMaker(self ids.NodeID, sk crypto.PrivateKey, pool *TxPool, maxSize int) PayloadMaker {
	return &txPoolPayloadMaker{self: self, sk: sk, pool: pool, maxSize: maxSize}
}

func (m *txPoolPayloadMaker) Make(ctx context.Context) (*Payload, bool) {
	txs := m.pool.drain(m.maxSize)
	if len(txs) == 0 {
		return nil, false
	}
	payload := &Payload{Author: m.self, Transactions: txs}
	if err := payload.Sign(m.sk); err != nil {
		return nil, false
	}
	return payload, true
}
