// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package primary implements the DAG core: headers carrying payload
// digests and piggybacked consensus messages, votes, dissemination
// certificates, and the Prepare/Confirm/Commit pipeline that overlays
// the DAG with a leader-based BFT protocol.
package primary

import (
	"fmt"

	"github.com/luxfi/dagbft/codec"
	"github.com/luxfi/dagbft/committee"
	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/dagbft/quorum"
	"github.com/luxfi/ids"
)

// Height is a DAG round number, one per header per author.
type Height = uint64

// Slot identifies a pipelined consensus instance; Slots advance as
// tickets are produced.
type Slot = uint64

// View numbers the leader attempts within a Slot, advancing on timeout.
type View = uint64

// Proposal is a compact pointer to a header: its digest and height.
type Proposal struct {
	HeaderDigest crypto.Digest
	Height       Height
}

// Header is a single DAG vertex: an author's round, the payload digests
// it references, any consensus messages it piggybacks, and the
// dissemination certificate for its parent round.
type Header struct {
	ID                 crypto.Digest
	Author             ids.NodeID
	Height             Height
	ParentCert         quorum.Certificate
	PayloadDigests     []crypto.Digest
	ConsensusInstances map[crypto.Digest]ConsensusMessage
	Signature          crypto.Signature
}

type headerDigestInput struct {
	Author             ids.NodeID
	Height             Height
	ParentCert         quorum.Certificate
	PayloadDigests     []crypto.Digest
	ConsensusInstances map[crypto.Digest]ConsensusMessage
}

// computeDigest returns h's content address, excluding ID and Signature.
func (h Header) computeDigest() crypto.Digest {
	return crypto.ComputeDigest(codec.MustMarshal(headerDigestInput{
		Author:             h.Author,
		Height:             h.Height,
		ParentCert:         h.ParentCert,
		PayloadDigests:     h.PayloadDigests,
		ConsensusInstances: h.ConsensusInstances,
	}))
}

// Sign finalizes h: it computes and sets ID, then signs it with sk.
func (h *Header) Sign(sk crypto.PrivateKey) error {
	h.ID = h.computeDigest()
	sig, err := sk.Sign(h.ID.Bytes())
	if err != nil {
		return fmt.Errorf("primary: sign header: %w", err)
	}
	h.Signature = sig
	return nil
}

// Verify checks that h.ID matches its content and that h.Signature
// verifies under the author's committee key.
func (h Header) Verify(c *committee.Committee, svc crypto.SignatureService) error {
	if h.computeDigest() != h.ID {
		return fmt.Errorf("primary: %w: header %s", ErrMalformedHeader, h.ID)
	}
	member, ok := c.Get(h.Author)
	if !ok {
		return &UnknownAuthorityError{Author: h.Author}
	}
	if !svc.Verify(member.PublicKey, h.Signature, h.ID.Bytes()) {
		return fmt.Errorf("primary: %w: header %s", ErrBadSignature, h.ID)
	}
	return nil
}

// ConsensusSig pairs a consensus instance digest with this replica's
// vote signature over it, piggybacked inside a Vote.
type ConsensusSig struct {
	Digest    crypto.Digest
	Signature crypto.Signature
}

// Vote is a single replica's endorsement of a Header, plus any
// consensus-instance signatures piggybacked on that header.
type Vote struct {
	ID            crypto.Digest // header ID being voted for
	Origin        ids.NodeID    // header author
	Author        ids.NodeID    // voter
	Signature     crypto.Signature
	ConsensusSigs []ConsensusSig
}

// NewVote builds and signs a Vote for header on behalf of author. The
// signature covers header.ID alone, the same bytes every voter for this
// header signs, so that VotesAggregator can fold them into a single
// aggregate signature the Certificate carries.
func NewVote(header Header, author ids.NodeID, svc crypto.SignatureService, consensusSigs []ConsensusSig) (Vote, error) {
	v := Vote{ID: header.ID, Origin: header.Author, Author: author, ConsensusSigs: consensusSigs}
	sig, err := svc.Sign(v.ID.Bytes())
	if err != nil {
		return Vote{}, fmt.Errorf("primary: sign vote: %w", err)
	}
	v.Signature = sig
	return v, nil
}

// Verify checks v.Signature under the voting author's committee key.
func (v Vote) Verify(c *committee.Committee, svc crypto.SignatureService) error {
	member, ok := c.Get(v.Author)
	if !ok {
		return &UnknownAuthorityError{Author: v.Author}
	}
	if !svc.Verify(member.PublicKey, v.Signature, v.ID.Bytes()) {
		return fmt.Errorf("primary: %w: vote by %s on header %s", ErrBadSignature, v.Author, v.ID)
	}
	return nil
}

// ConsensusKind discriminates the three pipelined consensus phases.
type ConsensusKind uint8

const (
	// KindPrepare proposes that Slot be concluded, carrying a Ticket
	// that the prior slot reached at least Prepare-QC or produced a TC.
	KindPrepare ConsensusKind = iota
	// KindConfirm carries the QC formed over a Prepare instance.
	KindConfirm
	// KindCommit carries the QC formed over a Confirm instance.
	KindCommit
)

// ConsensusMessage is a tagged variant over a pipelined consensus
// instance's three possible phases. Exactly one of Ticket (Prepare) or
// QC (Confirm, Commit) is populated, matching Kind.
type ConsensusMessage struct {
	Kind      ConsensusKind
	Slot      Slot
	View      View
	Ticket    *Ticket
	QC        *quorum.QC
	Proposals map[ids.NodeID]Proposal
}

// Digest returns m's content address, used both to key QCMaker
// instances and as the payload signed by consensus votes.
func (m ConsensusMessage) Digest() crypto.Digest {
	return crypto.ComputeDigest(codec.MustMarshal(m))
}

// Ticket is evidence that Slot is concluded, authorizing a leader to
// propose Slot+1. At least one of Header or TC must be present.
type Ticket struct {
	Header    *Header
	TC        *quorum.TC
	Slot      Slot
	Proposals map[ids.NodeID]Proposal
}

// Timeout is a replica's vote to abandon the current view of Slot,
// carrying the highest Confirm view it has itself observed so the
// eventual TC's leader can recover the best known proposal set.
type Timeout struct {
	Slot       Slot
	View       View
	HighQCView uint64
	Author     ids.NodeID
	Signature  crypto.Signature
}

// computeDigest excludes HighQCView: every replica timing out (Slot,
// View) must sign identical bytes, matching quorum.TCSignedDigest, so
// TCMaker can fold their signatures into one aggregate. HighQCView rides
// along unsigned, as a hint the new leader uses to pick a proposal to
// re-propose; a dishonest value only risks a wasted re-proposal, never
// safety, since the TC itself still proves quorum stake gave up on the
// view.
func (t Timeout) computeDigest() crypto.Digest {
	return quorum.TCSignedDigest(t.Slot, t.View)
}

// NewTimeout builds and signs a Timeout for (slot, view) on behalf of author.
func NewTimeout(slot Slot, view View, highQCView uint64, author ids.NodeID, svc crypto.SignatureService) (Timeout, error) {
	t := Timeout{Slot: slot, View: view, HighQCView: highQCView, Author: author}
	sig, err := svc.Sign(t.computeDigest().Bytes())
	if err != nil {
		return Timeout{}, fmt.Errorf("primary: sign timeout: %w", err)
	}
	t.Signature = sig
	return t, nil
}

// Verify checks t.Signature under the author's committee key.
func (t Timeout) Verify(c *committee.Committee, svc crypto.SignatureService) error {
	member, ok := c.Get(t.Author)
	if !ok {
		return &UnknownAuthorityError{Author: t.Author}
	}
	if !svc.Verify(member.PublicKey, t.Signature, t.computeDigest().Bytes()) {
		return fmt.Errorf("primary: %w: timeout by %s", ErrBadSignature, t.Author)
	}
	return nil
}

// MessageKind identifies the variant of a wire PrimaryMessage.
type MessageKind uint8

const (
	// WireHeader carries a Header between primaries.
	WireHeader MessageKind = iota
	// WireVote carries a Vote.
	WireVote
	// WireCertificate carries a dissemination Certificate.
	WireCertificate
	// WireTimeout carries a Timeout.
	WireTimeout
	// WireTC carries an assembled timeout certificate.
	WireTC
	// WireHeaderRequest asks peers for the header behind RequestDigest.
	WireHeaderRequest
)

// PrimaryMessage is the union of messages primaries exchange.
type PrimaryMessage struct {
	Kind          MessageKind
	Header        *Header
	Vote          *Vote
	Certificate   *quorum.Certificate
	Timeout       *Timeout
	TC            *quorum.TC
	RequestDigest *crypto.Digest
	Requestor     ids.NodeID
}

// encodePrimaryMessage serializes msg for wire transport.
func encodePrimaryMessage(msg PrimaryMessage) []byte {
	return codec.MustMarshal(msg)
}

// decodePrimaryMessage parses a PrimaryMessage from wire bytes.
func decodePrimaryMessage(b []byte) (PrimaryMessage, error) {
	var msg PrimaryMessage
	_, err := codec.Codec.Unmarshal(b, &msg)
	return msg, err
}
