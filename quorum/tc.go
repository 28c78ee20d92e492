// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quorum

import (
	"fmt"

	"github.com/luxfi/dagbft/codec"
	"github.com/luxfi/dagbft/committee"
	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/ids"
)

// TC is a timeout certificate: proof that committee members holding at
// least the quorum threshold of stake gave up waiting on Round at View and
// voted to advance to View+1. HighQCViews records, for each signer in the
// same order as Signers, the highest view for which that signer holds a
// QC; the new leader picks the highest reported view to decide which
// pending proposal, if any, to re-propose.
type TC struct {
	Round       uint64
	View        uint64
	Signers     []ids.NodeID
	HighQCViews []uint64
	Signature   crypto.Signature
}

// HighestQCView returns the maximum of HighQCViews, or 0 if there are no
// signers.
func (tc TC) HighestQCView() uint64 {
	var max uint64
	for _, v := range tc.HighQCViews {
		if v > max {
			max = v
		}
	}
	return max
}

type tcSignedInput struct {
	Round uint64
	View  uint64
}

// TCSignedDigest returns the bytes every timeout vote for (round, view)
// must sign, excluding each signer's individually reported HighQCView so
// the resulting signatures can be folded into one aggregate.
func TCSignedDigest(round, view uint64) crypto.Digest {
	return crypto.ComputeDigest(codec.MustMarshal(tcSignedInput{Round: round, View: view}))
}

// Verify checks that tc's aggregate signature was produced by signers
// holding quorum stake in c.
func (tc TC) Verify(c *committee.Committee, svc crypto.SignatureService) error {
	if len(tc.Signers) == 0 {
		return fmt.Errorf("quorum: tc has no signers")
	}
	if len(tc.Signers) != len(tc.HighQCViews) {
		return fmt.Errorf("quorum: tc signer/view length mismatch")
	}
	var pks []crypto.PublicKey
	var stake uint64
	seen := make(map[ids.NodeID]struct{}, len(tc.Signers))
	for _, id := range tc.Signers {
		if _, dup := seen[id]; dup {
			return voterErr(ErrDuplicateVoter, id)
		}
		seen[id] = struct{}{}
		m, ok := c.Get(id)
		if !ok {
			return voterErr(ErrUnknownVoter, id)
		}
		pks = append(pks, m.PublicKey)
		stake += m.Stake
	}
	if stake < c.QuorumThreshold() {
		return fmt.Errorf("quorum: tc stake %d below threshold %d", stake, c.QuorumThreshold())
	}
	if !svc.VerifyAggregate(pks, tc.Signature, TCSignedDigest(tc.Round, tc.View).Bytes()) {
		return voterErr(ErrBadSignature, tc.Signers[0])
	}
	return nil
}

type tcKey struct {
	round uint64
	view  uint64
}

// TCMaker aggregates timeout votes into timeout certificates, one per
// (round, view) key, following the same append-once, emit-once contract as
// QCMaker.
type TCMaker struct {
	committee *committee.Committee
	svc       crypto.SignatureService
	tallies   map[tcKey]*tally
	highViews map[tcKey]map[ids.NodeID]uint64
}

// NewTCMaker returns a TCMaker bound to committee c.
func NewTCMaker(c *committee.Committee, svc crypto.SignatureService) *TCMaker {
	return &TCMaker{
		committee: c,
		svc:       svc,
		tallies:   make(map[tcKey]*tally),
		highViews: make(map[tcKey]map[ids.NodeID]uint64),
	}
}

// AddVote records a timeout vote from voter for (round, view), along with
// the highest view at which voter holds a QC. It returns the formed TC the
// moment quorum stake is reached; nil otherwise.
func (m *TCMaker) AddVote(voter ids.NodeID, round, view, highQCView uint64, sig crypto.Signature) (*TC, error) {
	key := tcKey{round: round, view: view}
	t, ok := m.tallies[key]
	if !ok {
		t = newTally()
		m.tallies[key] = t
		m.highViews[key] = make(map[ids.NodeID]uint64)
	}

	crossed, err := t.add(m.committee, voter, sig, m.committee.QuorumThreshold())
	if err != nil {
		return nil, err
	}
	m.highViews[key][voter] = highQCView
	if !crossed {
		return nil, nil
	}

	signers, sigs := t.signers()
	agg, err := m.svc.Aggregate(sigs)
	if err != nil {
		return nil, fmt.Errorf("quorum: aggregate tc signatures: %w", err)
	}
	views := make([]uint64, len(signers))
	for i, id := range signers {
		views[i] = m.highViews[key][id]
	}
	return &TC{
		Round:       round,
		View:        view,
		Signers:     signers,
		HighQCViews: views,
		Signature:   agg,
	}, nil
}

// Cleanup discards tallies for rounds at or below round.
func (m *TCMaker) Cleanup(round uint64) {
	for key := range m.tallies {
		if key.round <= round {
			delete(m.tallies, key)
			delete(m.highViews, key)
		}
	}
}
