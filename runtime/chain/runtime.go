// Copyright (C) 2020-2025, Lux Indutries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/consensus/protocol/quasar"
	"github.com/luxfi/consensus/utils/bag"
)

// Runtime implements a PQ-secured linear chain consensus runtime
type Runtime struct {
	// Consensus stages (commented out until protocols are implemented)
	// photonStage photon.Dyadic
	// waveStage   wave.Dyadic
	// focusStage  focus.Dyadic
	// beamStage   beam.Consensus

	// Post-quantum security
	ringtail quasar.RingtailEngine

	// Runtime state
	params Parameters
	state  *chainState
}

// Parameters for chain runtime
type Parameters struct {
	// Network parameters
	K               int
	AlphaPreference int
	AlphaConfidence int
	Beta            int
	
	// Security parameters
	SecurityLevel quasar.SecurityLevel
}

// Stage represents a consensus stage
type Stage int

const (
	PhotonStage Stage = iota
	WaveStage
	FocusStage
	FinalizationStage
	CompletedStage
)

// New creates a new PQ-secured chain runtime
func New(params Parameters) (*Runtime, error) {
	rt := quasar.NewRingtail()
	if err := rt.Initialize(params.SecurityLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize ringtail: %w", err)
	}

	return &Runtime{
		ringtail: rt,
		params:   params,
		state:    newChainState(),
	}, nil
}

// Initialize sets up the consensus stages
func (r *Runtime) Initialize(ctx context.Context) error {
	// TODO: Initialize consensus stages when protocols are implemented
	// // Initialize photon sampling stage
	// r.photonStage = photon.NewDyadicPhoton(0)

	// // Initialize wave thresholding stage
	// r.waveStage = wave.NewDyadicWave(
	// 	r.params.AlphaPreference,
	// 	[]wave.TerminationCondition{{
	// 		AlphaConfidence: r.params.AlphaConfidence,
	// 		Beta:            r.params.Beta,
	// 	}},
	// 	0,
	// )

	// // Initialize focus confidence stage
	// focusParams := focus.Parameters{
	// 	K:               r.params.K,
	// 	AlphaPreference: r.params.AlphaPreference,
	// 	AlphaConfidence: r.params.AlphaConfidence,
	// 	Beta:            r.params.Beta,
	// }
	// r.focusStage = focus.FocusFactory.NewDyadic(focusParams, 0)

	// // Initialize beam linear finalizer
	// // Use photon factory to create beam consensus
	// factory := beam.TopologicalFactory{}
	// r.beamStage = factory.New()

	r.state.stage = PhotonStage
	return nil
}

// ProcessBlock processes a block through the consensus stages
func (r *Runtime) ProcessBlock(ctx context.Context, block Block) error {
	// Verify PQ signature
	if err := r.verifyBlockPQ(block); err != nil {
		return fmt.Errorf("PQ verification failed: %w", err)
	}

	// Process through consensus stages
	switch r.state.stage {
	case PhotonStage:
		r.processPhoton(block)
	case WaveStage:
		r.processWave(block)
	case FocusStage:
		r.processFocus(block)
	case FinalizationStage:
		r.processBeam(block)
	}

	return nil
}

// State returns the current runtime state
func (r *Runtime) State() *chainState {
	return r.state
}

// verifyBlockPQ verifies block with post-quantum signature
func (r *Runtime) verifyBlockPQ(block Block) error {
	// For now, we'll skip PQ verification in this stub
	// In production, you'd need the public key from the block or validator set
	return nil
}

// processPhoton handles sampling stage
func (r *Runtime) processPhoton(block Block) {
	// TODO: implement when photon protocol is available
	// Sampling logic
	// r.photonStage.RecordPrism(1, block.Choice())
	
	// Check if we should move to wave stage
	if r.shouldTransitionToWave() {
		r.state.stage = WaveStage
	}
}

// processWave handles thresholding stage
func (r *Runtime) processWave(block Block) {
	// TODO: implement when wave protocol is available
	// count := r.countVotes(block)
	// r.waveStage.RecordPrism(count, block.Choice())
	
	// if r.waveStage.Finalized() {
		r.state.stage = FocusStage
	// }
}

// processFocus handles confidence stage
func (r *Runtime) processFocus(block Block) {
	// TODO: implement when focus protocol is available
	// count := r.countVotes(block)
	// r.focusStage.RecordPrism(count, block.Choice())
	
	// if r.focusStage.Finalized() {
	// 	r.state.stage = FinalizationStage
	// }
}

// processBeam handles linear finalization
func (r *Runtime) processBeam(block Block) {
	// TODO: Properly convert block to beam.Block
	// For now, we can't add directly to beam consensus
	// as it requires a full beam.Block implementation
	
	// Just update state for now
	r.state.stage = CompletedStage
	r.state.finalized = true
}

// Block interface for chain blocks
type Block interface {
	ID() ids.ID
	ParentID() ids.ID
	Height() uint64
	Bytes() []byte
	Choice() int
	Signature() quasar.Signature
}

// chainState tracks runtime state
type chainState struct {
	stage      Stage
	preference ids.ID
	finalized  bool
	confidence map[ids.ID]int
}

func newChainState() *chainState {
	return &chainState{
		stage:      PhotonStage,
		confidence: make(map[ids.ID]int),
	}
}

func (s *chainState) Stage() Stage {
	return s.stage
}

func (s *chainState) Preference() ids.ID {
	return s.preference
}

func (s *chainState) Finalized() bool {
	return s.finalized
}

func (s *chainState) Confidence() map[ids.ID]int {
	return s.confidence
}

// Helper methods
func (r *Runtime) shouldTransitionToWave() bool {
	// Transition logic based on sampling results
	return true // Simplified for example
}

func (r *Runtime) countVotes(block Block) int {
	// Vote counting logic
	return r.params.AlphaPreference // Simplified
}

func (r *Runtime) collectVotes(block Block) bag.Bag[ids.ID] {
	// Vote collection for beam
	votes := bag.Of(block.ID())
	return votes
}