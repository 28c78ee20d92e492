// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package committee describes the fixed set of replicas that participate in
// a run of the protocol and the stake-weighted thresholds derived from it.
package committee

import (
	"fmt"
	"sort"

	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/ids"
)

// Member is a single committee participant: its identity, its BLS
// verification key, and its voting stake.
type Member struct {
	ID        ids.NodeID
	PublicKey crypto.PublicKey
	Stake     uint64
}

// Committee is the immutable set of members for one deployment. Thresholds
// are computed once at construction time since membership never changes
// mid-run; a reconfiguration replaces the Committee wholesale rather than
// mutating it.
type Committee struct {
	members    map[ids.NodeID]Member
	order      []ids.NodeID
	totalStake uint64
}

// New builds a Committee from members. Members must be non-empty, have
// unique IDs, and carry positive stake.
func New(members []Member) (*Committee, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("committee: empty member set")
	}

	c := &Committee{
		members: make(map[ids.NodeID]Member, len(members)),
		order:   make([]ids.NodeID, 0, len(members)),
	}
	for _, m := range members {
		if m.Stake == 0 {
			return nil, fmt.Errorf("committee: member %s has zero stake", m.ID)
		}
		if _, dup := c.members[m.ID]; dup {
			return nil, fmt.Errorf("committee: duplicate member %s", m.ID)
		}
		c.members[m.ID] = m
		c.order = append(c.order, m.ID)
		c.totalStake += m.Stake
	}

	sort.Slice(c.order, func(i, j int) bool {
		return c.order[i].String() < c.order[j].String()
	})
	return c, nil
}

// Size returns the number of members.
func (c *Committee) Size() int {
	return len(c.order)
}

// Members returns the committee members in a stable, deterministic order.
// Deterministic iteration order matters here: the primary's round-robin
// leader schedule indexes into this slice.
func (c *Committee) Members() []Member {
	out := make([]Member, len(c.order))
	for i, id := range c.order {
		out[i] = c.members[id]
	}
	return out
}

// Get returns the member with the given ID.
func (c *Committee) Get(id ids.NodeID) (Member, bool) {
	m, ok := c.members[id]
	return m, ok
}

// Has reports whether id is a committee member.
func (c *Committee) Has(id ids.NodeID) bool {
	_, ok := c.members[id]
	return ok
}

// TotalStake returns the sum of all member stakes.
func (c *Committee) TotalStake() uint64 {
	return c.totalStake
}

// QuorumThreshold is the minimum aggregate stake required to consider a
// set of signers a quorum: floor(2*totalStake/3) + 1, i.e. 2f+1 when stake
// is uniform across n = 3f+1 members.
func (c *Committee) QuorumThreshold() uint64 {
	return 2*c.totalStake/3 + 1
}

// ValidityThreshold is the minimum aggregate stake at which a claim is
// guaranteed to include at least one honest signer: floor(totalStake/3)
// + 1, i.e. f+1.
func (c *Committee) ValidityThreshold() uint64 {
	return c.totalStake/3 + 1
}

// StakeOf sums the stake of the members in ids, ignoring unknown IDs.
func (c *Committee) StakeOf(voters map[ids.NodeID]struct{}) uint64 {
	var sum uint64
	for id := range voters {
		if m, ok := c.members[id]; ok {
			sum += m.Stake
		}
	}
	return sum
}

// Leader returns the member scheduled to propose at the given round under
// a simple round-robin rotation over the deterministic member order.
func (c *Committee) Leader(round uint64) Member {
	idx := int(round % uint64(len(c.order)))
	return c.members[c.order[idx]]
}
