// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quorum

import (
	"fmt"

	"github.com/luxfi/dagbft/committee"
	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/ids"
)

// Certificate is proof that a header was voted for by committee members
// holding at least the quorum threshold of stake. Certificates, not raw
// votes, are what the DAG references as parents: once a header has a
// Certificate it is considered available and can be built upon.
type Certificate struct {
	Digest    crypto.Digest
	Round     uint64
	Author    ids.NodeID
	Signers   []ids.NodeID
	Signature crypto.Signature
}

// Verify checks that the certificate's aggregate signature was produced by
// signers holding quorum stake in c.
func (cert Certificate) Verify(c *committee.Committee, svc crypto.SignatureService) error {
	if len(cert.Signers) == 0 {
		return fmt.Errorf("quorum: certificate has no signers")
	}
	var pks []crypto.PublicKey
	var stake uint64
	seen := make(map[ids.NodeID]struct{}, len(cert.Signers))
	for _, id := range cert.Signers {
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
		return fmt.Errorf("quorum: certificate stake %d below threshold %d", stake, c.QuorumThreshold())
	}
	if !svc.VerifyAggregate(pks, cert.Signature, cert.Digest.Bytes()) {
		return voterErr(ErrBadSignature, cert.Signers[0])
	}
	return nil
}

type votesState struct {
	tally     *tally
	digest    crypto.Digest
	author    ids.NodeID
	threshold uint64
}

// VotesAggregator aggregates votes cast for a replica's own header into a
// Certificate. It is keyed by round since a well-behaved replica proposes
// at most one header per round; Open must be called before the first
// AddVote for a round.
type VotesAggregator struct {
	committee *committee.Committee
	svc       crypto.SignatureService
	rounds    map[uint64]*votesState
}

// NewVotesAggregator returns a VotesAggregator bound to committee c.
func NewVotesAggregator(c *committee.Committee, svc crypto.SignatureService) *VotesAggregator {
	return &VotesAggregator{committee: c, svc: svc, rounds: make(map[uint64]*votesState)}
}

// Open registers the header a replica just proposed at round, so that
// incoming votes can be validated against its digest and author. threshold
// is the committee's validity threshold (f+1) when the header carries no
// consensus instances, or its quorum threshold (2f+1) when it does.
func (a *VotesAggregator) Open(round uint64, digest crypto.Digest, author ids.NodeID, threshold uint64) {
	a.rounds[round] = &votesState{tally: newTally(), digest: digest, author: author, threshold: threshold}
}

// AddVote records a vote from voter for the header opened at round. It
// returns the formed Certificate the moment the round's threshold is met.
func (a *VotesAggregator) AddVote(voter ids.NodeID, round uint64, digest crypto.Digest, sig crypto.Signature) (*Certificate, error) {
	state, ok := a.rounds[round]
	if !ok {
		return nil, fmt.Errorf("quorum: no header opened for round %d", round)
	}
	if state.digest != digest {
		return nil, fmt.Errorf("quorum: vote digest mismatch for round %d", round)
	}

	crossed, err := state.tally.add(a.committee, voter, sig, state.threshold)
	if err != nil {
		return nil, err
	}
	if !crossed {
		return nil, nil
	}

	signers, sigs := state.tally.signers()
	agg, err := a.svc.Aggregate(sigs)
	if err != nil {
		return nil, fmt.Errorf("quorum: aggregate certificate signatures: %w", err)
	}
	return &Certificate{
		Digest:    digest,
		Round:     round,
		Author:    state.author,
		Signers:   signers,
		Signature: agg,
	}, nil
}

// Cleanup discards round state at or below round.
func (a *VotesAggregator) Cleanup(round uint64) {
	for r := range a.rounds {
		if r <= round {
			delete(a.rounds, r)
		}
	}
}
