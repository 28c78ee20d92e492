// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primary

import (
	"context"
	"testing"
	"time"

	"github.com/luxfi/dagbft/codec"
	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/dagbft/quorum"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

// genesisProposals returns the (height 0) proposal set every replica
// starts from, keyed by committee member.
func genesisProposals(hs []*harness) map[ids.NodeID]Proposal {
	out := make(map[ids.NodeID]Proposal, len(hs))
	for _, h := range hs {
		out[h.self] = Proposal{Height: 0}
	}
	return out
}

// TestHappyHeaderRound exercises S1: every replica proposes a header at
// height 1 off genesis; each should collect a quorum of votes and form
// its own dissemination certificate.
func TestHappyHeaderRound(t *testing.T) {
	hs := newHarness(t, 4)
	cancel := runAll(hs)
	defer cancel()

	for _, h := range hs {
		genesis := GenesisCertificates(h.committee)
		header := buildHeader(t, h, 1, genesis[h.self])
		h.core.OwnHeaderIn() <- header
	}

	for _, h := range hs {
		require.Eventually(t, func() bool {
			select {
			case cert := <-h.core.ProposerOut():
				return cert.Round == 1 && cert.Author == h.self
			default:
				return false
			}
		}, 2*time.Second, 10*time.Millisecond, "replica %s never formed its own certificate", h.self)
	}

	for _, h := range hs {
		require.Eventually(t, func() bool {
			tip, ok := h.core.tips[h.self]
			return ok && tip.Height == 1
		}, 2*time.Second, 10*time.Millisecond)
	}
}

// TestSlot1HappyPath exercises S3: the leader of (slot=1, view=1) drives
// a Prepare through Confirm to Commit, each phase's QC forming once
// three of four replicas vote, with every replica forwarding the final
// Commit to its Committer.
func TestSlot1HappyPath(t *testing.T) {
	hs := newHarness(t, 4)
	cancel := runAll(hs)
	defer cancel()

	leaderID := hs[0].core.leader.GetLeader(1, 1).ID
	var leader *harness
	for _, h := range hs {
		if h.self == leaderID {
			leader = h
		}
	}
	require.NotNil(t, leader)

	genesis := genesisProposals(hs)
	ticket := Ticket{Slot: 0, Proposals: genesis}
	prepare := ConsensusMessage{Kind: KindPrepare, Slot: 1, View: 1, Ticket: &ticket, Proposals: genesis}

	parentCert := GenesisCertificates(leader.committee)[leader.self]
	digestHeader := buildHeaderWithConsensus(t, leader, 1, parentCert, prepare)

	leader.core.OwnHeaderIn() <- digestHeader

	// Each phase's dissemination certificate is captured off ProposerOut
	// as it forms, and fed back in as the next header's real parent cert
	// (with its genuine signers and aggregate signature) rather than a
	// hand-built stand-in, the same way the external Proposer would.
	cert1 := waitForCertificate(t, leader, 1)

	// Confirm forms once the Prepare's QC closes; propagated via InfoOut
	// to whichever external component piggybacks it on the leader's next
	// header. Here the test plays that role directly.
	confirm := waitForConsensusMessage(t, leader, KindConfirm, 1)

	confirmHeader := buildHeaderWithConsensus(t, leader, 2, cert1, confirm)
	leader.core.OwnHeaderIn() <- confirmHeader

	cert2 := waitForCertificate(t, leader, 2)
	commit := waitForConsensusMessage(t, leader, KindCommit, 1)

	commitHeader := buildHeaderWithConsensus(t, leader, 3, cert2, commit)
	leader.core.OwnHeaderIn() <- commitHeader

	for _, h := range hs {
		require.Eventually(t, func() bool {
			select {
			case msg := <-h.core.CommitterOut():
				return msg.Kind == KindCommit && msg.Slot == 1
			default:
				return false
			}
		}, 2*time.Second, 10*time.Millisecond, "replica %s never forwarded the commit", h.self)
	}
}

// waitForCertificate drains h's ProposerOut until it sees the replica's
// own dissemination certificate for round, ignoring duplicate or
// unrelated certificates it may also emit along the way.
func waitForCertificate(t *testing.T, h *harness, round uint64) quorum.Certificate {
	t.Helper()
	var found quorum.Certificate
	require.Eventually(t, func() bool {
		select {
		case cert := <-h.core.ProposerOut():
			if cert.Round == round {
				found = cert
				return true
			}
		default:
		}
		return false
	}, 2*time.Second, 10*time.Millisecond, "certificate for round %d never formed", round)
	return found
}

// waitForConsensusMessage drains h's InfoOut until it sees a message of
// kind at slot, discarding anything else it encounters along the way.
func waitForConsensusMessage(t *testing.T, h *harness, kind ConsensusKind, slot Slot) ConsensusMessage {
	t.Helper()
	var found ConsensusMessage
	require.Eventually(t, func() bool {
		select {
		case msg := <-h.core.InfoOut():
			if msg.Kind == kind && msg.Slot == slot {
				found = msg
				return true
			}
		default:
		}
		return false
	}, 2*time.Second, 10*time.Millisecond, "consensus message kind=%v slot=%d never formed", kind, slot)
	return found
}

// buildHeaderWithConsensus signs and returns a header at height carrying
// a single piggybacked consensus instance, authored and broadcast by h.
func buildHeaderWithConsensus(t *testing.T, h *harness, height Height, parent quorum.Certificate, msg ConsensusMessage) Header {
	t.Helper()
	header := Header{
		Author:             h.self,
		Height:             height,
		ParentCert:         parent,
		ConsensusInstances: map[crypto.Digest]ConsensusMessage{msg.Digest(): msg},
	}
	require.NoError(t, header.Sign(h.sk))
	return header
}

// TestTimeoutFormsTCAndAdvancesView exercises S4: a silent leader causes
// every replica's timer to fire; the resulting timeout certificate
// advances the slot's view, and the replica leading the new view emits
// a Prepare built from the TC.
func TestTimeoutFormsTCAndAdvancesView(t *testing.T) {
	hs := newHarness(t, 4)
	core := hs[0].core
	core.self = core.leader.GetLeader(2, 2).ID

	for _, h := range hs[:3] {
		timeout, err := NewTimeout(2, 1, 1, h.self, h.svc)
		require.NoError(t, err)
		require.NoError(t, core.handleTimeout(context.Background(), timeout))
	}
	require.Equal(t, View(2), core.views[2])

	select {
	case msg := <-core.infoOut:
		require.Equal(t, KindPrepare, msg.Kind)
		require.Equal(t, Slot(2), msg.Slot)
		require.Equal(t, View(2), msg.View)
		require.NotNil(t, msg.Ticket)
		require.NotNil(t, msg.Ticket.TC)
	default:
		t.Fatal("leader of the new view never emitted a prepare from the TC")
	}
}

// TestCoverageBlocksPrematureTicket exercises S5: a ticket whose
// proposal set already matches the current tips is not ready; only once
// a quorum of proposals advance does the ticket clear the front of the
// queue and a Prepare get emitted.
func TestCoverageBlocksPrematureTicket(t *testing.T) {
	hs := newHarness(t, 4)
	h := hs[0].core

	stale := make(map[ids.NodeID]Proposal, len(hs))
	for _, m := range h.committee.Members() {
		stale[m.ID] = Proposal{Height: 10}
		h.currentProposals[m.ID] = Proposal{Height: 10}
	}
	ticket := Ticket{Slot: 4, Proposals: stale}
	h.tickets = append(h.tickets, ticket)
	h.self = h.leader.GetLeader(5, 1).ID

	h.isTicketReady(context.Background())
	select {
	case <-h.infoOut:
		t.Fatal("prepare emitted before coverage threshold was met")
	default:
	}
	require.Len(t, h.tickets, 1)

	for id := range h.currentProposals {
		h.currentProposals[id] = Proposal{Height: 11}
	}
	h.isTicketReady(context.Background())

	if h.self == h.leader.GetLeader(5, 1).ID {
		require.Len(t, h.tickets, 0)
		select {
		case msg := <-h.infoOut:
			require.Equal(t, KindPrepare, msg.Kind)
			require.Equal(t, Slot(5), msg.Slot)
		default:
			t.Fatal("expected prepare once coverage threshold was met")
		}
	}
}

// TestCommitHeldOnMissingProposal exercises S6: a Commit referencing a
// proposal whose header is not locally stored is queued rather than
// forwarded, and is released once a loopback finds the proposal ready.
func TestCommitHeldOnMissingProposal(t *testing.T) {
	hs := newHarness(t, 4)
	h := hs[0].core
	ctx := context.Background()

	missing := Header{Author: hs[1].self, Height: 7}
	require.NoError(t, missing.Sign(hs[1].sk))

	commit := ConsensusMessage{
		Kind: KindCommit,
		Slot: 9,
		Proposals: map[ids.NodeID]Proposal{
			hs[1].self: {HeaderDigest: missing.ID, Height: 7},
		},
	}

	h.processCommitMessage(ctx, commit)
	require.Len(t, h.commitMessages, 1)

	select {
	case <-h.committerOut:
		t.Fatal("commit forwarded before its proposal was available")
	default:
	}

	require.NoError(t, h.store.Put(headerStoreKey(missing.ID), codec.MustMarshal(missing)))

	h.processLoopback(ctx)
	require.Len(t, h.commitMessages, 0)

	select {
	case msg := <-h.committerOut:
		require.Equal(t, Slot(9), msg.Slot)
	default:
		t.Fatal("commit never released after proposal became available")
	}
}
