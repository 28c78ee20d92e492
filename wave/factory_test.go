// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wave

import (
	"testing"
	"github.com/stretchr/testify/require"
)

func TestWaveFactoryBasic(t *testing.T) {
	require := require.New(t)
	
	// TODO: Implement test
	require.True(true)
}

func TestWaveFactoryEdgeCases(t *testing.T) {
	require := require.New(t)
	
	// TODO: Implement edge case tests
	require.True(true)
}

func TestWaveFactoryConcurrent(t *testing.T) {
	require := require.New(t)
	
	// TODO: Implement concurrent tests
	require.True(true)
}

func BenchmarkWaveFactory(b *testing.B) {
	// TODO: Implement benchmark
	for i := 0; i < b.N; i++ {
		// Benchmark code here
	}
}
