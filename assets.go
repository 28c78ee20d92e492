package consensus

import "github.com/luxfi/ids"

// GetXAssetID returns the X-chain asset ID
func GetXAssetID() ids.ID {
    // Return a default asset ID for X-chain
    return ids.Empty
}
