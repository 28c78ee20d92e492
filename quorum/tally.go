// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quorum

import (
	"github.com/luxfi/dagbft/committee"
	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/ids"
)

// tally accumulates signature shares for a single key (a header digest, a
// (round, view) pair, and so on) until the committee's quorum threshold is
// reached, then closes itself. It is not safe for concurrent use; callers
// run inside a single-threaded event loop.
type tally struct {
	voters  map[ids.NodeID]crypto.Signature
	stake   uint64
	emitted bool
}

func newTally() *tally {
	return &tally{voters: make(map[ids.NodeID]crypto.Signature)}
}

// add records voter's signature share. It returns true once threshold has
// just been crossed by this addition.
func (t *tally) add(c *committee.Committee, voter ids.NodeID, sig crypto.Signature, threshold uint64) (bool, error) {
	if t.emitted {
		return false, voterErr(ErrDuplicateVoter, voter)
	}
	member, ok := c.Get(voter)
	if !ok {
		return false, voterErr(ErrUnknownVoter, voter)
	}
	if _, dup := t.voters[voter]; dup {
		return false, voterErr(ErrDuplicateVoter, voter)
	}

	t.voters[voter] = sig
	t.stake += member.Stake

	crossed := !t.emitted && t.stake >= threshold
	if crossed {
		t.emitted = true
	}
	return crossed, nil
}

// signers returns the voters in deterministic order, along with their
// signature shares in the same order.
func (t *tally) signers() ([]ids.NodeID, []crypto.Signature) {
	signerIDs := make([]ids.NodeID, 0, len(t.voters))
	for id := range t.voters {
		signerIDs = append(signerIDs, id)
	}
	sortNodeIDs(signerIDs)

	sigs := make([]crypto.Signature, len(signerIDs))
	for i, id := range signerIDs {
		sigs[i] = t.voters[id]
	}
	return signerIDs, sigs
}

func sortNodeIDs(ids []ids.NodeID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1].String() > ids[j].String(); j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}
