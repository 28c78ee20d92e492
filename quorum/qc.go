// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quorum

import (
	"fmt"

	"github.com/luxfi/dagbft/committee"
	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/ids"
)

// QC is a quorum certificate: proof that a header at (Round, View) with
// digest Digest was voted for by committee members holding at least the
// quorum threshold of stake.
type QC struct {
	Digest    crypto.Digest
	Round     uint64
	View      uint64
	Signers   []ids.NodeID
	Signature crypto.Signature
}

// Verify checks that the QC's aggregate signature was produced by
// signers holding quorum stake in c, and that the signature verifies over
// the QC's digest.
func (qc QC) Verify(c *committee.Committee, svc crypto.SignatureService) error {
	if len(qc.Signers) == 0 {
		return fmt.Errorf("quorum: qc has no signers")
	}
	var pks []crypto.PublicKey
	var stake uint64
	seen := make(map[ids.NodeID]struct{}, len(qc.Signers))
	for _, id := range qc.Signers {
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
		return fmt.Errorf("quorum: qc stake %d below threshold %d", stake, c.QuorumThreshold())
	}
	if !svc.VerifyAggregate(pks, qc.Signature, qc.Digest.Bytes()) {
		return voterErr(ErrBadSignature, qc.Signers[0])
	}
	return nil
}

// qcKey identifies one (round, view, digest) instance being certified.
type qcKey struct {
	round  uint64
	view   uint64
	digest crypto.Digest
}

// QCMaker aggregates header votes into quorum certificates. Each
// (round, view, digest) key may emit at most one QC; votes arriving after
// the key's QC has already been formed are rejected rather than silently
// dropped, so callers can detect and ignore late duplicates explicitly.
type QCMaker struct {
	committee *committee.Committee
	svc       crypto.SignatureService
	tallies   map[qcKey]*tally
}

// NewQCMaker returns a QCMaker bound to committee c.
func NewQCMaker(c *committee.Committee, svc crypto.SignatureService) *QCMaker {
	return &QCMaker{committee: c, svc: svc, tallies: make(map[qcKey]*tally)}
}

// AddVote records a vote from voter over digest at (round, view). It
// returns the formed QC the moment quorum stake is reached; nil otherwise.
func (m *QCMaker) AddVote(voter ids.NodeID, round, view uint64, digest crypto.Digest, sig crypto.Signature) (*QC, error) {
	key := qcKey{round: round, view: view, digest: digest}
	t, ok := m.tallies[key]
	if !ok {
		t = newTally()
		m.tallies[key] = t
	}

	crossed, err := t.add(m.committee, voter, sig, m.committee.QuorumThreshold())
	if err != nil {
		return nil, err
	}
	if !crossed {
		return nil, nil
	}

	signers, sigs := t.signers()
	agg, err := m.svc.Aggregate(sigs)
	if err != nil {
		return nil, fmt.Errorf("quorum: aggregate qc signatures: %w", err)
	}
	return &QC{
		Digest:    digest,
		Round:     round,
		View:      view,
		Signers:   signers,
		Signature: agg,
	}, nil
}

// Cleanup discards tallies for rounds at or below round, called after
// garbage collection advances past them.
func (m *QCMaker) Cleanup(round uint64) {
	for key := range m.tallies {
		if key.round <= round {
			delete(m.tallies, key)
		}
	}
}
