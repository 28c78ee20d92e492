// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"context"
	"sort"
	"time"

	"github.com/luxfi/dagbft/codec"
	"github.com/luxfi/dagbft/committee"
	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/dagbft/network"
	"github.com/luxfi/dagbft/store"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"go.uber.org/zap"
)

// Core disseminates payloads among committee members and answers the
// primary core's requests for digests to propose and for payload
// availability. It is driven entirely by Run and must not be used from
// more than one goroutine at a time.
type Core struct {
	self      ids.NodeID
	committee *committee.Committee
	params    committee.Parameters
	svc       crypto.SignatureService
	store     store.Store
	sync      Synchronizer
	maker     PayloadMaker
	sender    network.Sender
	log       log.Logger

	inbox     <-chan network.Envelope
	getCh     chan GetRequest
	verifyCh  chan VerifyRequest
	cleanupCh chan CleanupRequest

	queue map[crypto.Digest]struct{}

	duringPartition bool
	partitionPeers  map[ids.NodeID]struct{}
}

// NewCore builds a mempool Core for self.
func NewCore(
	self ids.NodeID,
	c *committee.Committee,
	params committee.Parameters,
	svc crypto.SignatureService,
	st store.Store,
	sync Synchronizer,
	maker PayloadMaker,
	sender network.Sender,
	inbox <-chan network.Envelope,
	logger log.Logger,
) *Core {
	return &Core{
		self:      self,
		committee: c,
		params:    params,
		svc:       svc,
		store:     st,
		sync:      sync,
		maker:     maker,
		sender:    sender,
		log:       logger,
		inbox:     inbox,
		getCh:     make(chan GetRequest, 1),
		verifyCh:  make(chan VerifyRequest, 1),
		cleanupCh: make(chan CleanupRequest, 1),
		queue:     make(map[crypto.Digest]struct{}, params.QueueCapacity),
	}
}

// Get asks the core for up to max bytes worth of digests to propose next.
// It blocks until the core services the request or ctx is done.
func (c *Core) Get(ctx context.Context, max int) ([]crypto.Digest, error) {
	reply := make(chan []crypto.Digest, 1)
	select {
	case c.getCh <- GetRequest{Max: max, Reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case digests := <-reply:
		return digests, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Verify asks the core whether the payloads behind digests are available.
func (c *Core) Verify(ctx context.Context, round uint64, digests []crypto.Digest) (PayloadStatus, error) {
	reply := make(chan PayloadStatus, 1)
	select {
	case c.verifyCh <- VerifyRequest{Round: round, Digests: digests, Reply: reply}:
	case <-ctx.Done():
		return StatusReject, ctx.Err()
	}
	select {
	case status := <-reply:
		return status, nil
	case <-ctx.Done():
		return StatusReject, ctx.Err()
	}
}

// Cleanup tells the core that round has been committed.
func (c *Core) Cleanup(ctx context.Context, digests []crypto.Digest, round uint64) {
	select {
	case c.cleanupCh <- CleanupRequest{Digests: digests, Round: round}:
	case <-ctx.Done():
	}
}

func (c *Core) storePayload(digest crypto.Digest, payload Payload) {
	value := codec.MustMarshal(payload)
	if err := c.store.Put(digest.Bytes(), value); err != nil {
		c.log.Error("mempool: store payload failed", zap.Error(err), zap.Stringer("digest", digest))
	}
}

func (c *Core) transmit(ctx context.Context, msg CoreMessage, to *ids.NodeID) {
	wire := network.Message{Channel: network.ChannelMempool, Payload: encodeCoreMessage(msg)}

	if c.duringPartition {
		var peers []ids.NodeID
		for id := range c.partitionPeers {
			peers = append(peers, id)
		}
		_, _ = c.sender.Broadcast(ctx, peers, wire)
		return
	}

	if to != nil {
		_, _ = c.sender.Send(ctx, *to, wire)
		return
	}

	var peers []ids.NodeID
	for _, m := range c.committee.Members() {
		if m.ID != c.self {
			peers = append(peers, m.ID)
		}
	}
	_, _ = c.sender.Broadcast(ctx, peers, wire)
}

func (c *Core) processOwnPayload(ctx context.Context, digest crypto.Digest, payload Payload) error {
	if len(c.queue) >= c.params.QueueCapacity {
		return ErrMempoolFull
	}
	c.storePayload(digest, payload)
	c.transmit(ctx, CoreMessage{Kind: KindPayload, Payload: payload}, nil)
	return nil
}

func (c *Core) handleOwnPayload(ctx context.Context, payload Payload) error {
	if len(c.queue) >= c.params.QueueCapacity {
		return ErrMempoolFull
	}
	digest := payload.Digest()
	if err := c.processOwnPayload(ctx, digest, payload); err != nil {
		return err
	}
	c.queue[digest] = struct{}{}
	return nil
}

func (c *Core) handleOthersPayload(payload Payload) error {
	member, ok := c.committee.Get(payload.Author)
	if !ok {
		return &UnknownAuthorityError{Author: payload.Author}
	}
	if payload.Size() > c.params.MaxPayloadSize {
		return ErrPayloadTooBig
	}
	digest := payload.Digest()
	if !payload.Verify(member.PublicKey, c.svc) {
		return ErrBadSignature
	}

	c.storePayload(digest, payload)
	c.queue[digest] = struct{}{}
	return nil
}

func (c *Core) handleRequest(ctx context.Context, digests []crypto.Digest, requestor ids.NodeID) {
	for _, digest := range digests {
		raw, err := c.store.Get(digest.Bytes())
		if err != nil {
			continue
		}
		var payload Payload
		if _, err := codec.Codec.Unmarshal(raw, &payload); err != nil {
			continue
		}
		requestorCopy := requestor
		c.transmit(ctx, CoreMessage{Kind: KindPayload, Payload: payload}, &requestorCopy)
	}
}

func (c *Core) getPayload(ctx context.Context, max int) ([]crypto.Digest, error) {
	if len(c.queue) == 0 {
		payload, ok := c.maker.Make(ctx)
		if !ok {
			return nil, nil
		}
		digest := payload.Digest()
		if err := c.processOwnPayload(ctx, digest, *payload); err != nil {
			return nil, err
		}
		return []crypto.Digest{digest}, nil
	}

	digests := make([]crypto.Digest, 0, len(c.queue))
	for d := range c.queue {
		digests = append(digests, d)
	}
	sort.Slice(digests, func(i, j int) bool { return digests[i].String() < digests[j].String() })

	n := max / crypto.DigestLen
	if n > len(digests) {
		n = len(digests)
	}
	digests = digests[:n]
	for _, d := range digests {
		delete(c.queue, d)
	}
	return digests, nil
}

func (c *Core) handleCleanup(round uint64, digests []crypto.Digest) {
	c.sync.Cleanup(round)
	for _, d := range digests {
		delete(c.queue, d)
	}
}

// Run drives the core's event loop until ctx is cancelled. When
// params.SimulatedPartitions is set, Run additionally arms two wall-clock
// timers that toggle a simulated network partition, for integration tests
// that exercise the protocol's behavior under asynchrony.
func (c *Core) Run(ctx context.Context) {
	if c.params.SimulatedPartitions {
		c.initPartition()
	}

	var timer1, timer2 <-chan time.Time
	var stopTimer1, stopTimer2 func()
	if c.params.SimulatedPartitions {
		t1 := time.NewTimer(10 * time.Second)
		t2 := time.NewTimer(30 * time.Second)
		timer1, stopTimer1 = t1.C, func() { t1.Stop() }
		timer2, stopTimer2 = t2.C, func() { t2.Stop() }
		defer stopTimer1()
		defer stopTimer2()
	}

	for {
		select {
		case <-ctx.Done():
			return

		case env, ok := <-c.inbox:
			if !ok {
				return
			}
			msg, err := decodeCoreMessage(env.Msg.Payload)
			if err != nil {
				c.log.Warn("mempool: malformed wire message", zap.Error(err))
				continue
			}
			c.dispatchWire(ctx, msg)

		case req := <-c.getCh:
			digests, err := c.getPayload(ctx, req.Max)
			if err != nil {
				c.log.Warn("mempool: get payload", zap.Error(err))
				digests = nil
			}
			req.Reply <- digests

		case req := <-c.verifyCh:
			status, err := c.sync.VerifyPayloads(ctx, req.Round, req.Digests)
			if err != nil {
				c.log.Warn("mempool: verify payload", zap.Error(err))
				status = StatusReject
			}
			req.Reply <- status

		case req := <-c.cleanupCh:
			c.handleCleanup(req.Round, req.Digests)

		case <-timer1:
			c.log.Debug("mempool: partition delay timer 1 triggered")
			c.duringPartition = true

		case <-timer2:
			c.log.Debug("mempool: partition delay timer 2 triggered")
			c.duringPartition = false
		}
	}
}

func (c *Core) dispatchWire(ctx context.Context, msg CoreMessage) {
	var err error
	switch msg.Kind {
	case KindOwnPayload:
		err = c.handleOwnPayload(ctx, msg.Payload)
	case KindPayload:
		err = c.handleOthersPayload(msg.Payload)
	case KindPayloadRequest:
		c.handleRequest(ctx, msg.Digests, msg.Requestor)
		return
	}
	if err != nil {
		c.log.Warn("mempool: handle wire message", zap.Error(err), zap.Uint8("kind", uint8(msg.Kind)))
	}
}

// initPartition splits the committee into two halves along its
// deterministic member order, mirroring how the simulated-partition timers
// only ever exercise a fixed two-way split.
func (c *Core) initPartition() {
	members := c.committee.Members()
	nodeIDs := make([]ids.NodeID, len(members))
	for i, m := range members {
		nodeIDs[i] = m.ID
	}
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i].String() < nodeIDs[j].String() })

	idx := 0
	for i, id := range nodeIDs {
		if id == c.self {
			idx = i
			break
		}
	}

	half := len(nodeIDs) / 2
	if half == 0 {
		half = 1
	}
	start, end := 0, half
	if idx >= half {
		start, end = half, len(nodeIDs)
	}

	c.partitionPeers = make(map[ids.NodeID]struct{}, end-start)
	for _, id := range nodeIDs[start:end] {
		c.partitionPeers[id] = struct{}{}
	}
}
