// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"context"
	"fmt"
	"sync"

	"github.com/luxfi/ids"
)

// Envelope pairs a delivered Message with the peer that sent it.
type Envelope struct {
	From ids.NodeID
	Msg  Message
}

// Fabric is an in-memory, fully-connected network of committee members
// used by tests and simulations. Every registered member gets an inbox
// channel; sends from any member are delivered directly into the
// recipient's inbox.
type Fabric struct {
	mu     sync.RWMutex
	inboxs map[ids.NodeID]chan Envelope
}

// NewFabric returns an empty Fabric.
func NewFabric() *Fabric {
	return &Fabric{inboxs: make(map[ids.NodeID]chan Envelope)}
}

// Register creates an inbox of the given buffer size for id and returns it.
// Calling Register twice for the same id replaces its inbox.
func (f *Fabric) Register(id ids.NodeID, bufferSize int) <-chan Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan Envelope, bufferSize)
	f.inboxs[id] = ch
	return ch
}

// SenderFor returns a Sender that delivers as if sent from self.
func (f *Fabric) SenderFor(self ids.NodeID) Sender {
	return &fabricSender{fabric: f, self: self}
}

func (f *Fabric) deliver(ctx context.Context, to ids.NodeID, env Envelope) error {
	f.mu.RLock()
	ch, ok := f.inboxs[to]
	f.mu.RUnlock()
	if !ok {
		return fmt.Errorf("network: unknown peer %s", to)
	}
	select {
	case ch <- env:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type fabricSender struct {
	fabric *Fabric
	self   ids.NodeID
}

func (s *fabricSender) Send(ctx context.Context, to ids.NodeID, msg Message) (CancelHandler, error) {
	if err := s.fabric.deliver(ctx, to, Envelope{From: s.self, Msg: msg}); err != nil {
		return nil, err
	}
	return NoopCancelHandler, nil
}

func (s *fabricSender) Broadcast(ctx context.Context, to []ids.NodeID, msg Message) ([]CancelHandler, error) {
	handlers := make([]CancelHandler, 0, len(to))
	var firstErr error
	for _, peer := range to {
		h, err := s.Send(ctx, peer, msg)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		handlers = append(handlers, h)
	}
	return handlers, firstErr
}
