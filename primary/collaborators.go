// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primary

import (
	"context"
	"sync"

	"github.com/luxfi/dagbft/codec"
	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/dagbft/mempool"
	"github.com/luxfi/dagbft/network"
	"github.com/luxfi/dagbft/store"
	"github.com/luxfi/ids"
)

// MempoolVerifier is the subset of the mempool core's RPC surface the
// DAG core needs to decide whether a header's referenced payloads are
// locally available.
type MempoolVerifier interface {
	Verify(ctx context.Context, round uint64, digests []crypto.Digest) (mempool.PayloadStatus, error)
}

// Synchronizer resolves a header's dependencies: its referenced
// payloads (via the mempool) and its parent header (via the local
// store or, failing that, a fetch from the network), and tracks
// whether a committed instance's proposals have all arrived.
type Synchronizer interface {
	// MissingPayload reports whether header references payloads this
	// replica does not yet have locally.
	MissingPayload(ctx context.Context, header Header) (bool, error)

	// GetParentHeader returns header's parent, fetching it over the
	// network and returning (nil, nil) if it is not yet available.
	GetParentHeader(ctx context.Context, header Header) (*Header, error)

	// StartProposalSync begins fetching the header subtree referenced
	// by proposal on behalf of author's consensus message.
	StartProposalSync(ctx context.Context, proposal Proposal, author ids.NodeID, msg ConsensusMessage)

	// IsProposalReady reports whether proposal's header is locally
	// available, which for a Commit message gates forwarding to the
	// external committer.
	IsProposalReady(ctx context.Context, proposal Proposal) (bool, error)

	// FetchHeader requests the header behind digest on demand.
	FetchHeader(ctx context.Context, digest crypto.Digest) error
}

// storeSynchronizer is the default Synchronizer: headers are resolved
// from the local store, falling back to a request broadcast to peers
// when missing; payload availability is delegated to the mempool.
type storeSynchronizer struct {
	mu      sync.Mutex
	self    ids.NodeID
	store   store.Store
	mempool MempoolVerifier
	sender  network.Sender
	peers   []ids.NodeID
	pending map[crypto.Digest]struct{}
}

// NewSynchronizer returns the default store-backed Synchronizer.
func NewSynchronizer(self ids.NodeID, st store.Store, mp MempoolVerifier, sender network.Sender, peers []ids.NodeID) Synchronizer {
	return &storeSynchronizer{
		self:    self,
		store:   st,
		mempool: mp,
		sender:  sender,
		peers:   peers,
		pending: make(map[crypto.Digest]struct{}),
	}
}

func (s *storeSynchronizer) MissingPayload(ctx context.Context, header Header) (bool, error) {
	status, err := s.mempool.Verify(ctx, header.Height, header.PayloadDigests)
	if err != nil {
		return false, err
	}
	return status != mempool.StatusAccept, nil
}

func (s *storeSynchronizer) GetParentHeader(ctx context.Context, header Header) (*Header, error) {
	if header.Height == 0 {
		return &Header{Author: header.Author, Height: 0}, nil
	}
	if header.ParentCert.Round == 0 {
		// Parent is the unpersisted genesis header; synthesize it rather
		// than looking it up by its zero digest.
		return &Header{Author: header.Author, Height: 0}, nil
	}
	digest := header.ParentCert.Digest
	raw, err := s.store.Get(headerStoreKey(digest))
	if err != nil {
		if err == store.ErrNotFound {
			if fetchErr := s.FetchHeader(ctx, digest); fetchErr != nil {
				return nil, fetchErr
			}
			return nil, nil
		}
		return nil, err
	}
	var parent Header
	if _, err := codec.Codec.Unmarshal(raw, &parent); err != nil {
		return nil, err
	}
	return &parent, nil
}

func (s *storeSynchronizer) StartProposalSync(ctx context.Context, proposal Proposal, author ids.NodeID, msg ConsensusMessage) {
	_ = author
	_ = msg
	s.mu.Lock()
	_, asked := s.pending[proposal.HeaderDigest]
	if !asked {
		s.pending[proposal.HeaderDigest] = struct{}{}
	}
	s.mu.Unlock()
	if !asked {
		_ = s.FetchHeader(ctx, proposal.HeaderDigest)
	}
}

func (s *storeSynchronizer) IsProposalReady(ctx context.Context, proposal Proposal) (bool, error) {
	if proposal.Height == 0 {
		// A height 0 proposal points at the unpersisted genesis header,
		// which is always available.
		return true, nil
	}
	ok, err := s.store.Has(headerStoreKey(proposal.HeaderDigest))
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (s *storeSynchronizer) FetchHeader(ctx context.Context, digest crypto.Digest) error {
	msg := PrimaryMessage{Kind: WireHeaderRequest, RequestDigest: &digest, Requestor: s.self}
	wire := network.Message{Channel: network.ChannelPrimary, Payload: encodePrimaryMessage(msg)}
	_, err := s.sender.Broadcast(ctx, s.peers, wire)
	return err
}

// headerStoreKey namespaces header storage from certificate storage
// within the same Store, since both are addressed by crypto.Digest.
func headerStoreKey(d crypto.Digest) []byte {
	key := make([]byte, 0, len(d)+1)
	key = append(key, 'h')
	key = append(key, d.Bytes()...)
	return key
}

// certStoreKey namespaces certificate storage.
func certStoreKey(d crypto.Digest) []byte {
	key := make([]byte, 0, len(d)+1)
	key = append(key, 'c')
	key = append(key, d.Bytes()...)
	return key
}
