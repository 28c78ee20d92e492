// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primary

import "github.com/luxfi/dagbft/committee"

// LeaderElector names the committee member responsible for proposing
// at a given (slot, view).
type LeaderElector interface {
	GetLeader(slot Slot, view View) committee.Member
}

// roundRobinLeaderElector rotates the leader across the committee's
// deterministic member order, advancing once per (slot, view) pair so
// that a view change always hands the next attempt to a new leader.
type roundRobinLeaderElector struct {
	committee *committee.Committee
}

// NewLeaderElector returns the default round-robin LeaderElector.
func NewLeaderElector(c *committee.Committee) LeaderElector {
	return &roundRobinLeaderElector{committee: c}
}

func (e *roundRobinLeaderElector) GetLeader(slot Slot, view View) committee.Member {
	return e.committee.Leader(slot + view - 1)
}
