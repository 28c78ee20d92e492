// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"
)

// ErrMempoolFull is returned when the own-payload queue is at capacity.
var ErrMempoolFull = errors.New("mempool: queue full")

// ErrPayloadTooBig is returned when a received payload exceeds the
// configured maximum size.
var ErrPayloadTooBig = errors.New("mempool: payload too big")

// ErrBadSignature is returned when a payload's signature does not verify.
var ErrBadSignature = errors.New("mempool: bad payload signature")

// UnknownAuthorityError is returned when a payload's claimed author is not
// a committee member.
type UnknownAuthorityError struct {
	Author ids.NodeID
}

func (e *UnknownAuthorityError) Error() string {
	return fmt.Sprintf("mempool: unknown authority %s", e.Author)
}
