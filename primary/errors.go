// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primary

import (
	"errors"
	"fmt"

	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/ids"
)

var (
	// ErrMalformedHeader means a header's declared ID does not match its
	// content, or its parent certificate fails the height/quorum check.
	ErrMalformedHeader = errors.New("primary: malformed header")
	// ErrHeaderRequiresQuorum means a non-genesis header's parent
	// certificate carries less than validity-threshold stake.
	ErrHeaderRequiresQuorum = errors.New("primary: header's parent certificate lacks quorum")
	// ErrBadSignature means a signature failed verification.
	ErrBadSignature = errors.New("primary: bad signature")
	// ErrUnexpectedVote means a vote does not match any header this
	// replica is currently collecting votes for.
	ErrUnexpectedVote = errors.New("primary: unexpected vote")
	// ErrInvalidVoteInvalidation means a vote's invalidation proof does
	// not satisfy the view/QC ordering it claims to.
	ErrInvalidVoteInvalidation = errors.New("primary: invalid vote invalidation")
)

// HeaderTooOldError means a header's height is behind the garbage
// collector's horizon. It is a normal race outcome, not a fault.
type HeaderTooOldError struct {
	ID     crypto.Digest
	Height Height
}

func (e *HeaderTooOldError) Error() string {
	return fmt.Sprintf("primary: header %s at height %d is too old", e.ID, e.Height)
}

// VoteTooOldError means a vote references a header this replica has
// already garbage collected. Also a normal race outcome.
type VoteTooOldError struct {
	ID     crypto.Digest
	Height Height
}

func (e *VoteTooOldError) Error() string {
	return fmt.Sprintf("primary: vote on %s at height %d is too old", e.ID, e.Height)
}

// CertificateTooOldError means a certificate's height is behind the
// garbage collector's horizon.
type CertificateTooOldError struct {
	Digest crypto.Digest
	Height Height
}

func (e *CertificateTooOldError) Error() string {
	return fmt.Sprintf("primary: certificate %s at height %d is too old", e.Digest, e.Height)
}

// UnknownAuthorityError means a message's claimed author is not a
// committee member.
type UnknownAuthorityError struct {
	Author ids.NodeID
}

func (e *UnknownAuthorityError) Error() string {
	return fmt.Sprintf("primary: unknown authority %s", e.Author)
}

// isBenignRace reports whether err is one of the "normal race" errors
// that should log at debug rather than warn.
func isBenignRace(err error) bool {
	var tooOldHeader *HeaderTooOldError
	var tooOldVote *VoteTooOldError
	var tooOldCert *CertificateTooOldError
	return errors.As(err, &tooOldHeader) ||
		errors.As(err, &tooOldVote) ||
		errors.As(err, &tooOldCert) ||
		errors.Is(err, ErrUnexpectedVote)
}
