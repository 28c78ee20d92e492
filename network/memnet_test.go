// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"context"
	"testing"
	"time"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

func TestFabricSendAndBroadcast(t *testing.T) {
	require := require.New(t)

	f := NewFabric()
	a := ids.GenerateTestNodeID()
	b := ids.GenerateTestNodeID()
	c := ids.GenerateTestNodeID()

	bInbox := f.Register(b, 4)
	cInbox := f.Register(c, 4)

	senderA := f.SenderFor(a)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := senderA.Send(ctx, b, Message{Channel: ChannelPrimary, Payload: []byte("hello")})
	require.NoError(err)

	env := <-bInbox
	require.Equal(a, env.From)
	require.Equal([]byte("hello"), env.Msg.Payload)

	_, err = senderA.Broadcast(ctx, []ids.NodeID{b, c}, Message{Channel: ChannelMempool, Payload: []byte("bcast")})
	require.NoError(err)

	envB := <-bInbox
	envC := <-cInbox
	require.Equal(ChannelMempool, envB.Msg.Channel)
	require.Equal(ChannelMempool, envC.Msg.Channel)
}

func TestFabricSendUnknownPeer(t *testing.T) {
	f := NewFabric()
	sender := f.SenderFor(ids.GenerateTestNodeID())
	_, err := sender.Send(context.Background(), ids.GenerateTestNodeID(), Message{})
	require.Error(t, err)
}
