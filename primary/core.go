// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primary

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/luxfi/dagbft/codec"
	"github.com/luxfi/dagbft/committee"
	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/dagbft/network"
	"github.com/luxfi/dagbft/quorum"
	"github.com/luxfi/dagbft/store"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"go.uber.org/zap"
)

type timerKey struct {
	slot Slot
	view View
}

// loopbackInstance is a suspended commit waiting on its proposals to
// finish arriving.
type loopbackInstance struct {
	proposal Proposal
	msg      ConsensusMessage
}

// Core runs the DAG and the Prepare/Confirm/Commit pipeline overlaid on
// it. It is driven entirely by Run and must not be used from more than
// one goroutine at a time; collaborators it calls into may be used from
// other goroutines per their own documentation.
type Core struct {
	self      ids.NodeID
	committee *committee.Committee
	params    committee.Parameters
	svc       crypto.SignatureService
	store     store.Store
	sync      Synchronizer
	leader    LeaderElector
	sender    network.Sender
	log       log.Logger

	qcMaker *quorum.QCMaker
	tcMaker *quorum.TCMaker
	votes   *quorum.VotesAggregator

	tips                 map[ids.NodeID]Header
	currentProposals     map[ids.NodeID]Proposal
	currentCerts         map[ids.NodeID]quorum.Certificate
	views                map[Slot]View
	timers               map[timerKey]*time.Timer
	lastVoted            map[Height]map[ids.NodeID]struct{}
	lastVotedConsensus   map[timerKey]struct{}
	alreadyProposedSlots map[Slot]struct{}
	qcs                  map[Slot]ConsensusMessage
	tickets              []Ticket
	commitMessages       []ConsensusMessage
	currentHeader        Header
	currentQCsFormed     map[crypto.Digest]int
	cancelHandlers       map[Height][]network.CancelHandler

	gcRound    uint64
	gcSlot     uint64
	consensusRound atomic.Uint64

	inbox                   <-chan network.Envelope
	ownHeaderCh             chan Header
	headerWaiterCh          chan Header
	headerWaiterInstancesCh chan loopbackInstance
	certificateWaiterCh     chan quorum.Certificate
	pushdownCertCh          chan quorum.Certificate
	requestHeaderSyncCh     chan crypto.Digest
	timeoutCh               chan timerKey

	consensusOut chan quorum.Certificate
	committerOut chan ConsensusMessage
	proposerOut  chan quorum.Certificate
	specialOut   chan Header
	infoOut      chan ConsensusMessage
}

// NewCore builds a primary Core for self.
func NewCore(
	self ids.NodeID,
	c *committee.Committee,
	params committee.Parameters,
	svc crypto.SignatureService,
	st store.Store,
	sync Synchronizer,
	leader LeaderElector,
	sender network.Sender,
	inbox <-chan network.Envelope,
	logger log.Logger,
) *Core {
	core := &Core{
		self:      self,
		committee: c,
		params:    params,
		svc:       svc,
		store:     st,
		sync:      sync,
		leader:    leader,
		sender:    sender,
		log:       logger,

		qcMaker: quorum.NewQCMaker(c, svc),
		tcMaker: quorum.NewTCMaker(c, svc),
		votes:   quorum.NewVotesAggregator(c, svc),

		tips:                 GenesisHeaders(c),
		currentProposals:     make(map[ids.NodeID]Proposal, c.Size()),
		currentCerts:         GenesisCertificates(c),
		views:                make(map[Slot]View),
		timers:               make(map[timerKey]*time.Timer),
		lastVoted:            make(map[Height]map[ids.NodeID]struct{}),
		lastVotedConsensus:   make(map[timerKey]struct{}),
		alreadyProposedSlots: make(map[Slot]struct{}),
		qcs:                  make(map[Slot]ConsensusMessage),
		currentQCsFormed:     make(map[crypto.Digest]int),
		cancelHandlers:       make(map[Height][]network.CancelHandler),

		inbox:                   inbox,
		ownHeaderCh:             make(chan Header, 1),
		headerWaiterCh:          make(chan Header, 8),
		headerWaiterInstancesCh: make(chan loopbackInstance, 8),
		certificateWaiterCh:     make(chan quorum.Certificate, 8),
		pushdownCertCh:          make(chan quorum.Certificate, 8),
		requestHeaderSyncCh:     make(chan crypto.Digest, 8),
		timeoutCh:               make(chan timerKey, 8),

		consensusOut: make(chan quorum.Certificate, 64),
		committerOut: make(chan ConsensusMessage, 64),
		proposerOut:  make(chan quorum.Certificate, 64),
		specialOut:   make(chan Header, 64),
		infoOut:      make(chan ConsensusMessage, 64),
	}
	for _, m := range c.Members() {
		core.currentProposals[m.ID] = Proposal{Height: 0}
	}
	return core
}

// OwnHeaderIn is where the external Proposer submits newly created
// headers for this replica to broadcast and process.
func (c *Core) OwnHeaderIn() chan<- Header { return c.ownHeaderCh }

// HeaderWaiterIn is where suspended headers are resubmitted once their
// dependencies resolve.
func (c *Core) HeaderWaiterIn() chan<- Header { return c.headerWaiterCh }

// ConsensusOut carries special (consensus-bearing) certificates to the
// external consensus layer.
func (c *Core) ConsensusOut() <-chan quorum.Certificate { return c.consensusOut }

// CommitterOut carries Commit messages, once all referenced proposals
// are locally available, to the external committer.
func (c *Core) CommitterOut() <-chan ConsensusMessage { return c.committerOut }

// ProposerOut carries this replica's own freshly formed certificates
// to the external Proposer so it can build the next header.
func (c *Core) ProposerOut() <-chan quorum.Certificate { return c.proposerOut }

// InfoOut carries newly formed or advanced consensus instances to the
// external Proposer, which piggybacks them on the next header.
func (c *Core) InfoOut() <-chan ConsensusMessage { return c.infoOut }

// SetConsensusRound updates the externally committed round used to
// drive garbage collection.
func (c *Core) SetConsensusRound(round uint64) {
	c.consensusRound.Store(round)
}

// armTimer starts a local-timeout timer for (slot, view) if one is not
// already running. It fires by pushing key onto timeoutCh after the
// committee's configured timeout delay.
func (c *Core) armTimer(key timerKey) {
	if _, armed := c.timers[key]; armed {
		return
	}
	c.timers[key] = time.AfterFunc(c.params.TimeoutDelay, func() {
		select {
		case c.timeoutCh <- key:
		default:
		}
	})
}

func signersSet(ids []ids.NodeID) map[ids.NodeID]struct{} {
	set := make(map[ids.NodeID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (c *Core) broadcast(ctx context.Context, msg PrimaryMessage, height Height) {
	wire := network.Message{Channel: network.ChannelPrimary, Payload: encodePrimaryMessage(msg)}
	var peers []ids.NodeID
	for _, m := range c.committee.Members() {
		if m.ID != c.self {
			peers = append(peers, m.ID)
		}
	}
	handlers, err := c.sender.Broadcast(ctx, peers, wire)
	if err != nil {
		c.log.Warn("primary: broadcast failed", zap.Error(err))
		return
	}
	c.cancelHandlers[height] = append(c.cancelHandlers[height], handlers...)
}

func (c *Core) send(ctx context.Context, to ids.NodeID, msg PrimaryMessage, height Height) {
	wire := network.Message{Channel: network.ChannelPrimary, Payload: encodePrimaryMessage(msg)}
	handler, err := c.sender.Send(ctx, to, wire)
	if err != nil {
		c.log.Warn("primary: send failed", zap.Error(err), zap.Stringer("to", to))
		return
	}
	c.cancelHandlers[height] = append(c.cancelHandlers[height], handler)
}

func (c *Core) processOwnHeader(ctx context.Context, header Header) error {
	c.currentHeader = header

	threshold := c.committee.ValidityThreshold()
	if len(header.ConsensusInstances) > 0 {
		threshold = c.committee.QuorumThreshold()
	}
	c.votes.Open(header.Height, header.ID, header.Author, threshold)

	c.broadcast(ctx, PrimaryMessage{Kind: WireHeader, Header: &header}, header.Height)
	return c.processHeader(ctx, header)
}

func (c *Core) processHeader(ctx context.Context, header Header) error {
	stake := c.committee.StakeOf(signersSet(header.ParentCert.Signers))
	if header.ParentCert.Round+1 != header.Height {
		return &HeaderTooOldError{ID: header.ID, Height: header.Height}
	}
	if stake < c.committee.ValidityThreshold() && header.ParentCert.Round != 0 {
		return ErrHeaderRequiresQuorum
	}

	missing, err := c.sync.MissingPayload(ctx, header)
	if err != nil {
		return err
	}
	if missing {
		return nil
	}

	parent, err := c.sync.GetParentHeader(ctx, header)
	if err != nil {
		return err
	}
	if parent == nil {
		return nil
	}

	raw := codec.MustMarshal(header)
	if err := c.store.Put(headerStoreKey(header.ID), raw); err != nil {
		return err
	}

	if tip, ok := c.tips[header.Author]; !ok || header.Height > tip.Height {
		c.tips[header.Author] = header
		c.currentProposals[header.Author] = Proposal{HeaderDigest: header.ID, Height: header.Height}
	}

	if err := c.processCertificate(ctx, header.ParentCert); err != nil {
		return err
	}

	voters, ok := c.lastVoted[header.Height]
	if !ok {
		voters = make(map[ids.NodeID]struct{})
		c.lastVoted[header.Height] = voters
	}
	if _, voted := voters[header.Author]; voted {
		return nil
	}
	voters[header.Author] = struct{}{}

	consensusSigs, err := c.processConsensusMessages(ctx, header)
	if err != nil {
		return err
	}

	vote, err := NewVote(header, c.self, c.svc, consensusSigs)
	if err != nil {
		return err
	}

	if vote.Origin == c.self {
		return c.processVote(ctx, vote)
	}
	c.send(ctx, header.Author, PrimaryMessage{Kind: WireVote, Vote: &vote}, header.Height)
	return nil
}

func (c *Core) processVote(ctx context.Context, vote Vote) error {
	for _, cs := range vote.ConsensusSigs {
		msg, ok := c.currentHeader.ConsensusInstances[cs.Digest]
		if !ok {
			continue
		}
		qc, err := c.qcMaker.AddVote(vote.Author, msg.Slot, msg.View, cs.Digest, cs.Signature)
		if err != nil {
			return err
		}
		if qc == nil {
			continue
		}
		c.currentQCsFormed[c.currentHeader.ID]++

		switch msg.Kind {
		case KindPrepare:
			tip := Proposal{HeaderDigest: c.currentHeader.ID, Height: c.currentHeader.Height}
			newProposals := cloneProposals(msg.Proposals)
			newProposals[c.self] = tip
			next := ConsensusMessage{Kind: KindConfirm, Slot: msg.Slot, View: msg.View, QC: qc, Proposals: newProposals}
			select {
			case c.infoOut <- next:
			case <-ctx.Done():
				return ctx.Err()
			}
		case KindConfirm:
			next := ConsensusMessage{Kind: KindCommit, Slot: msg.Slot, View: msg.View, QC: qc, Proposals: cloneProposals(msg.Proposals)}
			select {
			case c.infoOut <- next:
			case <-ctx.Done():
				return ctx.Err()
			}
		case KindCommit:
			// terminal kind, no further advance
		}
	}

	cert, err := c.votes.AddVote(vote.Author, c.currentHeader.Height, vote.ID, vote.Signature)
	if err != nil {
		return err
	}

	disseminationReady := len(c.currentHeader.ConsensusInstances) == 0 && cert != nil
	consensusReady := c.currentQCsFormed[c.currentHeader.ID] == len(c.currentHeader.ConsensusInstances) && len(c.currentHeader.ConsensusInstances) > 0

	if (disseminationReady || consensusReady) && cert != nil {
		if err := c.processCertificate(ctx, *cert); err != nil {
			return err
		}
		delete(c.currentQCsFormed, c.currentHeader.ID)
	}
	return nil
}

func cloneProposals(in map[ids.NodeID]Proposal) map[ids.NodeID]Proposal {
	out := make(map[ids.NodeID]Proposal, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (c *Core) processCertificate(ctx context.Context, cert quorum.Certificate) error {
	raw := codec.MustMarshal(cert)
	if err := c.store.Put(certStoreKey(cert.Digest), raw); err != nil {
		return err
	}

	if cert.Author == c.self {
		select {
		case c.proposerOut <- cert:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	current, ok := c.currentCerts[cert.Author]
	if !ok || cert.Round > current.Round {
		c.currentCerts[cert.Author] = cert
		c.isTicketReady(ctx)
	}
	return nil
}

func (c *Core) isTicketReady(ctx context.Context) {
	if len(c.tickets) == 0 {
		return
	}
	ticket := c.tickets[0]
	newProposals := cloneProposals(c.currentProposals)

	if c.enoughCoverage(ticket, newProposals) && !c.hasProposed(ticket.Slot+1) && c.self == c.leader.GetLeader(ticket.Slot+1, 1).ID {
		c.tickets = c.tickets[1:]
		c.markProposed(ticket.Slot + 1)
		prepare := ConsensusMessage{Kind: KindPrepare, Slot: ticket.Slot + 1, View: 1, Ticket: &ticket, Proposals: newProposals}
		select {
		case c.infoOut <- prepare:
		case <-ctx.Done():
		}
	}
}

func (c *Core) hasProposed(slot Slot) bool {
	_, ok := c.alreadyProposedSlots[slot]
	return ok
}

func (c *Core) markProposed(slot Slot) {
	c.alreadyProposedSlots[slot] = struct{}{}
}

// viewOf returns the view a slot is currently at. A slot with no entry
// has never timed out and so is still at its initial view, 1.
func (c *Core) viewOf(slot Slot) View {
	if v, ok := c.views[slot]; ok {
		return v
	}
	return 1
}

func (c *Core) isValid(msg ConsensusMessage) bool {
	switch msg.Kind {
	case KindPrepare:
		if msg.Ticket == nil {
			return false
		}
		key := timerKey{slot: msg.Slot, view: msg.View}
		if _, voted := c.lastVotedConsensus[key]; voted {
			return false
		}
		if msg.Ticket.Slot+1 != msg.Slot {
			return false
		}
		return c.viewOf(msg.Slot) == msg.View
	case KindConfirm, KindCommit:
		if msg.QC == nil {
			return false
		}
		if err := msg.QC.Verify(c.committee, c.svc); err != nil {
			return false
		}
		return c.viewOf(msg.Slot) == msg.View
	default:
		return false
	}
}

func (c *Core) processConsensusMessages(ctx context.Context, header Header) ([]ConsensusSig, error) {
	var sigs []ConsensusSig
	for digest, msg := range header.ConsensusInstances {
		if !c.isValid(msg) {
			continue
		}
		for author, proposal := range msg.Proposals {
			c.sync.StartProposalSync(ctx, proposal, author, msg)
		}
		switch msg.Kind {
		case KindPrepare:
			c.processPrepareMessage(ctx, msg, header, &sigs)
			c.lastVotedConsensus[timerKey{slot: msg.Slot, view: msg.View}] = struct{}{}
		case KindConfirm:
			c.processConfirmMessage(ctx, msg, &sigs)
		case KindCommit:
			c.processCommitMessage(ctx, msg)
		}
		_ = digest
	}
	return sigs, nil
}

func (c *Core) processPrepareMessage(ctx context.Context, msg ConsensusMessage, header Header, sigs *[]ConsensusSig) {
	hasProposed := c.hasProposed(msg.Slot + 1)
	if c.self == c.leader.GetLeader(msg.Slot+1, 1).ID && !hasProposed {
		ticket := Ticket{Header: &header, Slot: msg.Slot, Proposals: cloneProposals(msg.Proposals)}
		newProposals := cloneProposals(c.currentProposals)
		if c.enoughCoverage(ticket, newProposals) {
			c.markProposed(msg.Slot + 1)
			prepare := ConsensusMessage{Kind: KindPrepare, Slot: msg.Slot + 1, View: 1, Ticket: &ticket, Proposals: newProposals}
			select {
			case c.infoOut <- prepare:
			case <-ctx.Done():
			}
		} else {
			c.tickets = append(c.tickets, ticket)
		}
	}

	c.armTimer(timerKey{slot: msg.Slot + 1, view: 1})

	sig, err := c.svc.Sign(msg.Digest().Bytes())
	if err != nil {
		c.log.Warn("primary: sign prepare vote failed", zap.Error(err))
		return
	}
	*sigs = append(*sigs, ConsensusSig{Digest: msg.Digest(), Signature: sig})
}

func (c *Core) processConfirmMessage(ctx context.Context, msg ConsensusMessage, sigs *[]ConsensusSig) {
	_ = ctx
	c.qcs[msg.Slot] = msg
	sig, err := c.svc.Sign(msg.Digest().Bytes())
	if err != nil {
		c.log.Warn("primary: sign confirm vote failed", zap.Error(err))
		return
	}
	*sigs = append(*sigs, ConsensusSig{Digest: msg.Digest(), Signature: sig})
}

func (c *Core) enoughCoverage(ticket Ticket, currentProposals map[ids.NodeID]Proposal) bool {
	var newTips uint64
	for id, proposal := range currentProposals {
		base, ok := ticket.Proposals[id]
		if !ok || proposal.Height > base.Height {
			newTips++
		}
	}
	return newTips >= c.committee.QuorumThreshold()
}

func (c *Core) isCommitReady(ctx context.Context, msg ConsensusMessage) bool {
	for _, proposal := range msg.Proposals {
		ready, err := c.sync.IsProposalReady(ctx, proposal)
		if err != nil || !ready {
			return false
		}
	}
	return true
}

func (c *Core) processCommitMessage(ctx context.Context, msg ConsensusMessage) {
	if c.isCommitReady(ctx, msg) {
		if msg.Slot > c.gcSlot {
			c.gcSlot = msg.Slot
		}
		select {
		case c.committerOut <- msg:
		case <-ctx.Done():
		}
	} else {
		c.commitMessages = append(c.commitMessages, msg)
	}
}

func (c *Core) processLoopback(ctx context.Context) {
	if len(c.commitMessages) == 0 {
		return
	}
	msg := c.commitMessages[0]
	if c.isCommitReady(ctx, msg) {
		c.commitMessages = c.commitMessages[1:]
		select {
		case c.committerOut <- msg:
		case <-ctx.Done():
		}
	}
}

func (c *Core) localTimeoutRound(ctx context.Context, slot Slot, view View) error {
	var highQCView uint64
	if qc, ok := c.qcs[slot]; ok {
		highQCView = qc.View
	}
	timeout, err := NewTimeout(slot, view, highQCView, c.self, c.svc)
	if err != nil {
		return err
	}
	c.broadcast(ctx, PrimaryMessage{Kind: WireTimeout, Timeout: &timeout}, slot)
	return c.handleTimeout(ctx, timeout)
}

func (c *Core) handleTimeout(ctx context.Context, timeout Timeout) error {
	if current, ok := c.views[timeout.Slot]; ok && timeout.View < current {
		return nil
	}
	if err := timeout.Verify(c.committee, c.svc); err != nil {
		return err
	}

	tc, err := c.tcMaker.AddVote(timeout.Author, timeout.Slot, timeout.View, timeout.HighQCView, timeout.Signature)
	if err != nil {
		return err
	}
	if tc == nil {
		return nil
	}

	c.views[timeout.Slot] = timeout.View + 1
	c.armTimer(timerKey{slot: tc.Round, view: tc.View + 1})
	c.broadcast(ctx, PrimaryMessage{Kind: WireTC, TC: tc}, tc.Round)

	return c.becomeLeaderAfterTC(ctx, *tc)
}

func (c *Core) handleTC(ctx context.Context, tc quorum.TC) error {
	return c.becomeLeaderAfterTC(ctx, tc)
}

// becomeLeaderAfterTC builds the view-change Prepare when self leads
// (tc.Round, tc.View+1). The winning proposal set is recovered from this
// replica's own best known Confirm message for the slot when its view
// matches the TC's highest reported QC view, falling back to current
// tips otherwise.
func (c *Core) becomeLeaderAfterTC(ctx context.Context, tc quorum.TC) error {
	if c.self != c.leader.GetLeader(tc.Round, tc.View+1).ID {
		return nil
	}

	winningProposals := make(map[ids.NodeID]Proposal)
	if confirm, ok := c.qcs[tc.Round]; ok && confirm.View == tc.HighestQCView() {
		winningProposals = cloneProposals(confirm.Proposals)
	}
	ticket := Ticket{TC: &tc, Slot: tc.Round, Proposals: winningProposals}
	if len(winningProposals) == 0 {
		winningProposals = cloneProposals(c.currentProposals)
	}

	prepare := ConsensusMessage{Kind: KindPrepare, Slot: tc.Round, View: tc.View + 1, Ticket: &ticket, Proposals: winningProposals}
	select {
	case c.infoOut <- prepare:
	case <-ctx.Done():
		return ctx.Err()
	}

	if !c.hasProposed(tc.Round+1) && c.enoughCoverage(ticket, winningProposals) {
		c.markProposed(tc.Round + 1)
		next := ConsensusMessage{Kind: KindPrepare, Slot: tc.Round + 1, View: 1, Ticket: &ticket, Proposals: winningProposals}
		select {
		case c.infoOut <- next:
		case <-ctx.Done():
			return ctx.Err()
		}
	} else {
		c.tickets = append(c.tickets, ticket)
	}
	return nil
}

func (c *Core) sanitizeHeader(header Header) error {
	if c.gcRound > header.Height {
		return &HeaderTooOldError{ID: header.ID, Height: header.Height}
	}
	return header.Verify(c.committee, c.svc)
}

func (c *Core) sanitizeVote(vote Vote) error {
	return vote.Verify(c.committee, c.svc)
}

func (c *Core) sanitizeCertificate(cert quorum.Certificate) error {
	if c.gcRound > cert.Round {
		return &CertificateTooOldError{Digest: cert.Digest, Height: cert.Round}
	}
	return cert.Verify(c.committee, c.svc)
}

func (c *Core) sanitizeTC(tc quorum.TC) error {
	if c.gcRound > tc.Round {
		return &CertificateTooOldError{Digest: crypto.Digest{}, Height: tc.Round}
	}
	return tc.Verify(c.committee, c.svc)
}

func (c *Core) dispatchWire(ctx context.Context, msg PrimaryMessage) error {
	switch msg.Kind {
	case WireHeader:
		if err := c.sanitizeHeader(*msg.Header); err != nil {
			return err
		}
		return c.processHeader(ctx, *msg.Header)
	case WireVote:
		if err := c.sanitizeVote(*msg.Vote); err != nil {
			return err
		}
		return c.processVote(ctx, *msg.Vote)
	case WireCertificate:
		if err := c.sanitizeCertificate(*msg.Certificate); err != nil {
			return err
		}
		return c.processCertificate(ctx, *msg.Certificate)
	case WireTimeout:
		return c.handleTimeout(ctx, *msg.Timeout)
	case WireTC:
		if err := c.sanitizeTC(*msg.TC); err != nil {
			return err
		}
		return c.handleTC(ctx, *msg.TC)
	case WireHeaderRequest:
		return c.handleHeaderRequest(ctx, *msg.RequestDigest, msg.Requestor)
	}
	return nil
}

func (c *Core) handleHeaderRequest(ctx context.Context, digest crypto.Digest, requestor ids.NodeID) error {
	raw, err := c.store.Get(headerStoreKey(digest))
	if err != nil {
		return nil
	}
	var header Header
	if _, err := codec.Codec.Unmarshal(raw, &header); err != nil {
		return nil
	}
	c.send(ctx, requestor, PrimaryMessage{Kind: WireHeader, Header: &header}, header.Height)
	return nil
}

// Run drives the core's event loop until ctx is cancelled.
func (c *Core) Run(ctx context.Context) {
	for {
		var err error
		select {
		case <-ctx.Done():
			return

		case env, ok := <-c.inbox:
			if !ok {
				return
			}
			msg, decodeErr := decodePrimaryMessage(env.Msg.Payload)
			if decodeErr != nil {
				c.log.Warn("primary: malformed wire message", zap.Error(decodeErr))
				continue
			}
			err = c.dispatchWire(ctx, msg)

		case header := <-c.ownHeaderCh:
			err = c.processOwnHeader(ctx, header)

		case header := <-c.headerWaiterCh:
			err = c.processHeader(ctx, header)

		case <-c.headerWaiterInstancesCh:
			c.processLoopback(ctx)

		case cert := <-c.certificateWaiterCh:
			err = c.processCertificate(ctx, cert)

		case cert := <-c.pushdownCertCh:
			err = c.processCertificate(ctx, cert)

		case digest := <-c.requestHeaderSyncCh:
			err = c.sync.FetchHeader(ctx, digest)

		case key := <-c.timeoutCh:
			err = c.localTimeoutRound(ctx, key.slot, key.view)
		}

		if err != nil {
			if isBenignRace(err) {
				c.log.Debug("primary: benign race", zap.Error(err))
			} else {
				c.log.Warn("primary: handle message", zap.Error(err))
			}
		}

		c.collectGarbage()
	}
}

func (c *Core) collectGarbage() {
	round := c.consensusRound.Load()
	if round <= uint64(c.params.GCDepth) {
		return
	}
	gcRound := round - c.params.GCDepth
	if gcRound <= c.gcRound {
		return
	}
	c.gcRound = gcRound

	for h := range c.lastVoted {
		if h < gcRound {
			delete(c.lastVoted, h)
		}
	}
	for h, handlers := range c.cancelHandlers {
		if h < gcRound {
			for _, handler := range handlers {
				handler.Cancel()
			}
			delete(c.cancelHandlers, h)
		}
	}

	if c.gcSlot <= c.params.GCDepth {
		return
	}
	gcSlot := c.gcSlot - c.params.GCDepth
	c.qcMaker.Cleanup(gcSlot)
	c.tcMaker.Cleanup(gcSlot)
	for k, timer := range c.timers {
		if k.slot < gcSlot {
			timer.Stop()
			delete(c.timers, k)
		}
	}
	for k := range c.lastVotedConsensus {
		if k.slot < gcSlot {
			delete(c.lastVotedConsensus, k)
		}
	}
	for s := range c.alreadyProposedSlots {
		if s < gcSlot {
			delete(c.alreadyProposedSlots, s)
		}
	}
	for s := range c.qcs {
		if s < gcSlot {
			delete(c.qcs, s)
		}
	}
}
