// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package quorum aggregates per-voter signature shares into the compact
// certificates the protocol exchanges instead of raw vote sets: quorum
// certificates (QC) over headers, timeout certificates (TC) over view
// changes, and dissemination certificates over mempool payloads. Every
// aggregator in this package follows the same append-once, emit-once
// contract: once enough stake has voted for a key, the aggregate is
// produced exactly once and the key is closed to further votes.
package quorum

import (
	"fmt"

	"github.com/luxfi/ids"
)

// ErrUnknownVoter is returned when a vote comes from a node ID that is not
// a member of the committee backing the aggregator.
var ErrUnknownVoter = fmt.Errorf("quorum: unknown voter")

// ErrDuplicateVoter is returned when the same voter casts a second vote for
// a key that has not yet been closed, or votes again after the key closed.
var ErrDuplicateVoter = fmt.Errorf("quorum: duplicate voter")

// ErrBadSignature is returned when a vote's signature does not verify.
var ErrBadSignature = fmt.Errorf("quorum: bad signature")

// ErrAlreadyEmitted is returned when a key that already produced its
// aggregate is supplied again, e.g. a replayed vote arriving after the
// certificate was already formed and broadcast.
var ErrAlreadyEmitted = fmt.Errorf("quorum: aggregate already emitted for key")

// voterf formats a voter ID into an error for context.
func voterErr(base error, voter ids.NodeID) error {
	return fmt.Errorf("%w: %s", base, voter)
}
