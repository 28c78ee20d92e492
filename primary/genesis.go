// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primary

import (
	"github.com/luxfi/dagbft/committee"
	"github.com/luxfi/dagbft/quorum"
	"github.com/luxfi/ids"
)

// GenesisHeaders returns the zero-height, self-signed-less placeholder
// header every committee member starts with as its own tip, so that
// height comparisons and parent-certificate lookups have a base case.
func GenesisHeaders(c *committee.Committee) map[ids.NodeID]Header {
	headers := make(map[ids.NodeID]Header, c.Size())
	for _, m := range c.Members() {
		headers[m.ID] = Header{Author: m.ID, Height: 0}
	}
	return headers
}

// GenesisCertificates returns the zero-height dissemination certificate
// every committee member starts with as its own "current cert", used
// as the base case for parent-certificate height checks.
func GenesisCertificates(c *committee.Committee) map[ids.NodeID]quorum.Certificate {
	certs := make(map[ids.NodeID]quorum.Certificate, c.Size())
	for _, m := range c.Members() {
		certs[m.ID] = quorum.Certificate{Author: m.ID, Round: 0}
	}
	return certs
}
