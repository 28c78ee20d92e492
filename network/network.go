// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package network abstracts point-to-point and broadcast delivery of
// wire messages between committee members, so the mempool and primary
// cores can be driven identically in production (real sockets) and in
// tests (an in-memory fabric).
package network

import (
	"context"

	"github.com/luxfi/ids"
)

// Message is an opaque, already-serialized wire message tagged with the
// logical channel it belongs to, so a receiver can route it to the
// mempool core or the primary core without peeking at the payload.
type Message struct {
	Channel Channel
	Payload []byte
}

// Channel distinguishes the logical destinations multiplexed over one
// physical connection.
type Channel uint8

const (
	// ChannelMempool carries mempool dissemination traffic: own/other
	// payload announcements and payload requests.
	ChannelMempool Channel = iota
	// ChannelPrimary carries primary DAG traffic: headers, votes,
	// certificates, and consensus messages.
	ChannelPrimary
)

// CancelHandler cancels an in-flight send. Unicast sends with no reply
// needed are cancelled once a newer message supersedes them, the way the
// primary cancels a stale header broadcast after a timeout fires.
type CancelHandler interface {
	Cancel()
}

// Sender delivers messages to committee members by node ID. Implementations
// must be safe for concurrent use; the event-loop cores themselves are
// single-threaded but a reliable sender may run background retry
// goroutines.
type Sender interface {
	// Send delivers msg to a single peer.
	Send(ctx context.Context, to ids.NodeID, msg Message) (CancelHandler, error)

	// Broadcast delivers msg to every peer in to.
	Broadcast(ctx context.Context, to []ids.NodeID, msg Message) ([]CancelHandler, error)
}

// noopCancel is returned for sends that cannot be cancelled, such as a
// synchronous in-memory delivery that already completed.
type noopCancel struct{}

func (noopCancel) Cancel() {}

// NoopCancelHandler is a CancelHandler whose Cancel is a no-op.
var NoopCancelHandler CancelHandler = noopCancel{}
