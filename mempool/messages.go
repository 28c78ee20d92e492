// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mempool disseminates transaction payloads among committee
// members and serves their digests to the primary core, which references
// them from DAG headers without embedding their bodies.
package mempool

import (
	"fmt"

	"github.com/luxfi/dagbft/codec"
	"github.com/luxfi/dagbft/crypto"
	"github.com/luxfi/ids"
)

// Payload is a batch of opaque transactions proposed by a single author.
type Payload struct {
	Author       ids.NodeID
	Transactions [][]byte
	Signature    crypto.Signature
}

// payloadDigestInput is the canonical, signature-free encoding that both
// the digest and the signature are computed over.
type payloadDigestInput struct {
	Author       ids.NodeID
	Transactions [][]byte
}

// Digest returns the content address of p, excluding its signature.
func (p Payload) Digest() crypto.Digest {
	return crypto.ComputeDigest(codec.MustMarshal(payloadDigestInput{
		Author:       p.Author,
		Transactions: p.Transactions,
	}))
}

// Size returns the total byte length of p's transactions.
func (p Payload) Size() int {
	n := 0
	for _, tx := range p.Transactions {
		n += len(tx)
	}
	return n
}

// Sign computes p's digest and signs it with sk, setting p.Signature.
func (p *Payload) Sign(sk crypto.PrivateKey) error {
	digest := p.Digest()
	sig, err := sk.Sign(digest.Bytes())
	if err != nil {
		return fmt.Errorf("mempool: sign payload: %w", err)
	}
	p.Signature = sig
	return nil
}

// Verify checks p's signature against author's public key.
func (p Payload) Verify(author crypto.PublicKey, svc crypto.SignatureService) bool {
	return svc.Verify(author, p.Signature, p.Digest().Bytes())
}

// MessageKind identifies the variant of a CoreMessage.
type MessageKind uint8

const (
	// KindOwnPayload is a payload this replica itself produced, to be
	// stored, disseminated, and queued for block proposal.
	KindOwnPayload MessageKind = iota
	// KindPayload is a payload received from another committee member.
	KindPayload
	// KindPayloadRequest asks for the payloads behind a set of digests.
	KindPayloadRequest
)

// CoreMessage is the union of messages the mempool core's inbound wire
// channel accepts.
type CoreMessage struct {
	Kind      MessageKind
	Payload   Payload
	Digests   []crypto.Digest
	Requestor ids.NodeID
}

// PayloadStatus is the synchronizer's verdict on a block's referenced
// payload digests.
type PayloadStatus uint8

const (
	// StatusAccept means every referenced payload is locally available.
	StatusAccept PayloadStatus = iota
	// StatusWait means at least one payload is missing but may still
	// arrive; the caller should retry rather than reject outright.
	StatusWait
	// StatusReject means a referenced payload is provably unavailable or
	// invalid.
	StatusReject
)

// GetRequest asks the core to return up to Max bytes worth of digests to
// propose in the next header.
type GetRequest struct {
	Max   int
	Reply chan []crypto.Digest
}

// VerifyRequest asks the core whether the payloads behind Digests are
// available.
type VerifyRequest struct {
	Round   uint64
	Digests []crypto.Digest
	Reply   chan PayloadStatus
}

// CleanupRequest tells the core that Round has been committed, so Digests
// can be dropped from the pending queue and the synchronizer's state for
// rounds at or below Round can be discarded.
type CleanupRequest struct {
	Digests []crypto.Digest
	Round   uint64
}

// encodeCoreMessage serializes msg for wire transport.
func encodeCoreMessage(msg CoreMessage) []byte {
	return codec.MustMarshal(msg)
}

// decodeCoreMessage parses a CoreMessage from wire bytes.
func decodeCoreMessage(b []byte) (CoreMessage, error) {
	var msg CoreMessage
	_, err := codec.Codec.Unmarshal(b, &msg)
	return msg, err
}
