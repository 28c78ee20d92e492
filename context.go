// Copyright (C) 2019-2024, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consensus

import "context"

// ContextInitializable can be initialized with context
type ContextInitializable interface {
	InitCtx(context.Context)
}

// Contextualizable can be contextualized
type Contextualizable interface {
	InitializeContext(context.Context) error
}

// LuxAssetID returns the ID of the LUX asset
func LuxAssetID(ctx context.Context) interface{} {
	// This is a placeholder implementation
	// In production, this would get the actual LUX asset ID from context
	return nil
}