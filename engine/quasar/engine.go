// Copyright (C) 2019-2024, Lux Indutries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quasar

import (
	"context"
	"fmt"
	"sync"

	"github.com/luxfi/ids"
	"github.com/luxfi/consensus/core"
	"github.com/luxfi/consensus/ringtail"
	"github.com/luxfi/consensus/engine/nebula"
	"github.com/luxfi/consensus/engine/pulsar"
)

// Engine implements the Quasar consensus engine - the most powerful cosmic consensus engine
// combining both Pulsar (chain) and Nebula (DAG) capabilities with post-quantum security
type Engine struct {
	// Sub-engines
	pulsar *pulsar.Engine
	nebula *nebula.Engine

	// Consensus stages (TODO: implement)
	// photonStage types.Polyadic
	// waveStage   types.Polyadic
	// focusStage  types.Polyadic

	// Post-quantum security
	ringtail ringtail.Engine

	// Engine state
	params Parameters
	state  *engineState
	mu     sync.RWMutex

	// Metrics
	metrics *Metrics
}

// Parameters for Quasar engine
type Parameters struct {
	// Network parameters
	K               int // Sample size
	AlphaPreference int // Preference threshold
	AlphaConfidence int // Confidence threshold
	Beta            int // Finalization threshold

	// Engine mode
	Mode EngineMode

	// Post-quantum security level
	SecurityLevel ringtail.SecurityLevel

	// Performance tuning
	MaxConcurrentDecisions int
	DecisionTimeout        int64 // nanoseconds
}

// EngineMode determines how Quasar operates
type EngineMode int

const (
	// PulsarMode - Linear chain only
	PulsarMode EngineMode = iota
	// NebulaMode - DAG only
	NebulaMode
	// HybridMode - Both chain and DAG
	HybridMode
	// QuantumMode - Full quantum-resistant mode with maximum security
	QuantumMode
)

// New creates a new Quasar engine
func New(ctx *core.Context, params Parameters) (*Engine, error) {
	rt := ringtail.New()
	if err := rt.Initialize(params.SecurityLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize ringtail: %w", err)
	}

	e := &Engine{
		ringtail: rt,
		params:   params,
		state:    newEngineState(),
		metrics:  NewMetrics(),
	}

	// Initialize sub-engines based on mode
	switch params.Mode {
	case PulsarMode:
		e.pulsar = pulsar.New(ctx)
	case NebulaMode:
		e.nebula = nebula.New(ctx)
	case HybridMode, QuantumMode:
		e.pulsar = pulsar.New(ctx)
		e.nebula = nebula.New(ctx)
	}

	return e, nil
}

// Initialize sets up the consensus stages
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Initialize photonic consensus stages
	// These will be created based on the first decision submitted
	e.state.initialized = true
	e.state.stage = PhotonStage

	return nil
}

// Start begins the Quasar engine
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.initialized {
		return fmt.Errorf("engine not initialized")
	}

	e.state.running = true

	// Start sub-engines
	if e.pulsar != nil {
		if err := e.pulsar.Start(ctx); err != nil {
			return fmt.Errorf("failed to start pulsar: %w", err)
		}
	}
	if e.nebula != nil {
		if err := e.nebula.Start(ctx); err != nil {
			return fmt.Errorf("failed to start nebula: %w", err)
		}
	}

	return nil
}

// Stop halts the Quasar engine
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.running = false

	// Stop sub-engines
	if e.pulsar != nil {
		if err := e.pulsar.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop pulsar: %w", err)
		}
	}
	if e.nebula != nil {
		if err := e.nebula.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop nebula: %w", err)
		}
	}

	return nil
}

// Submit a decision for consensus
func (e *Engine) Submit(ctx context.Context, decision Decision) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.running {
		return fmt.Errorf("engine not running")
	}

	// Verify PQ signature
	if err := e.verifyPQ(decision); err != nil {
		e.metrics.InvalidDecisions.Inc()
		return fmt.Errorf("PQ verification failed: %w", err)
	}

	// Route to appropriate engine based on decision type
	switch d := decision.(type) {
	case *ChainDecision:
		return e.submitToPulsar(ctx, d)
	case *DAGDecision:
		return e.submitToNebula(ctx, d)
	case *UnifiedDecision:
		return e.submitUnified(ctx, d)
	default:
		return fmt.Errorf("unknown decision type: %T", decision)
	}
}

// State returns the current engine state
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Clone()
}

// Metrics returns engine metrics
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// verifyPQ verifies decision with post-quantum signature
func (e *Engine) verifyPQ(decision Decision) error {
	sig, err := decision.Signature()
	if err != nil {
		return fmt.Errorf("failed to get signature: %w", err)
	}
	
	// TODO: Get public key from decision or context
	pk := make([]byte, 32) // Stub public key
	
	if !e.ringtail.Verify(decision.Bytes(), sig, pk) {
		return fmt.Errorf("signature verification failed")
	}
	
	return nil
}

// submitToPulsar routes chain decisions to Pulsar engine
func (e *Engine) submitToPulsar(ctx context.Context, decision *ChainDecision) error {
	if e.pulsar == nil {
		return fmt.Errorf("pulsar engine not initialized")
	}
	return e.pulsar.Submit(ctx, decision)
}

// submitToNebula routes DAG decisions to Nebula engine
func (e *Engine) submitToNebula(ctx context.Context, decision *DAGDecision) error {
	if e.nebula == nil {
		return fmt.Errorf("nebula engine not initialized")
	}
	return e.nebula.Submit(ctx, decision)
}

// submitUnified handles unified decisions across both engines
func (e *Engine) submitUnified(ctx context.Context, decision *UnifiedDecision) error {
	// Process through photonic stages first
	if err := e.processPhotonic(ctx, decision); err != nil {
		return err
	}

	// Then route to both engines if in hybrid/quantum mode
	if e.params.Mode == HybridMode || e.params.Mode == QuantumMode {
		// Submit to both engines in parallel
		errCh := make(chan error, 2)
		
		go func() {
			errCh <- e.pulsar.Submit(ctx, decision.ChainPart())
		}()
		
		go func() {
			errCh <- e.nebula.Submit(ctx, decision.DAGPart())
		}()
		
		// Wait for both to complete
		for i := 0; i < 2; i++ {
			if err := <-errCh; err != nil {
				return err
			}
		}
	}

	return nil
}

// processPhotonic runs decision through photon->wave->focus stages
func (e *Engine) processPhotonic(ctx context.Context, decision Decision) error {
	// Implementation of photonic processing pipeline
	// This is simplified - real implementation would track votes, thresholds, etc.
	
	e.metrics.ProcessedDecisions.Inc()
	return nil
}

// Decision interfaces
type Decision interface {
	ID() ids.ID
	Bytes() []byte
	Signature() (ringtail.Signature, error)
	Verify() error
}

// ChainDecision for Pulsar engine
type ChainDecision struct {
	BlockID   ids.ID
	Height    uint64
	ParentID  ids.ID
	Payload   []byte
	signature ringtail.Signature
}

// DAGDecision for Nebula engine
type DAGDecision struct {
	VertexID ids.ID
	Parents  []ids.ID
	Payload  []byte
	signature ringtail.Signature
}

// UnifiedDecision for hybrid processing
type UnifiedDecision struct {
	id        ids.ID
	Chain     *ChainDecision
	DAG       *DAGDecision
	signature ringtail.Signature
}

// State tracking
type engineState struct {
	initialized bool
	running     bool
	stage       ConsensusStage
	preference  ids.ID
	finalized   bool
	confidence  map[ids.ID]int
}

type ConsensusStage int

const (
	PhotonStage ConsensusStage = iota
	WaveStage
	FocusStage
	FinalizationStage
	CompletedStage
)

// State interface implementation
type State interface {
	Stage() ConsensusStage
	Preference() ids.ID
	Finalized() bool
	Confidence() map[ids.ID]int
}

// Metrics tracking
type Metrics struct {
	ProcessedDecisions Counter
	InvalidDecisions   Counter
	FinalizedDecisions Counter
	ConsensusLatency   Histogram
}

// Implement Decision methods...
func (d *ChainDecision) ID() ids.ID                              { return d.BlockID }
func (d *ChainDecision) Bytes() []byte                           { return d.Payload }
func (d *ChainDecision) Signature() (ringtail.Signature, error)  { return d.signature, nil }
func (d *ChainDecision) Verify() error                           { return nil }

func (d *DAGDecision) ID() ids.ID                                { return d.VertexID }
func (d *DAGDecision) Bytes() []byte                             { return d.Payload }
func (d *DAGDecision) Signature() (ringtail.Signature, error)    { return d.signature, nil }
func (d *DAGDecision) Verify() error                             { return nil }

func (d *UnifiedDecision) ID() ids.ID                            { return d.id }
func (d *UnifiedDecision) Bytes() []byte                         { return append(d.Chain.Bytes(), d.DAG.Bytes()...) }
func (d *UnifiedDecision) Signature() (ringtail.Signature, error) { return d.signature, nil }
func (d *UnifiedDecision) Verify() error                         { return nil }
func (d *UnifiedDecision) ChainPart() *ChainDecision             { return d.Chain }
func (d *UnifiedDecision) DAGPart() *DAGDecision                 { return d.DAG }

// Helper methods
func newEngineState() *engineState {
	return &engineState{
		confidence: make(map[ids.ID]int),
	}
}

func (s *engineState) Clone() State {
	// Return a copy for thread safety
	return &engineState{
		initialized: s.initialized,
		running:     s.running,
		stage:       s.stage,
		preference:  s.preference,
		finalized:   s.finalized,
		confidence:  s.confidence, // Note: this is a shallow copy
	}
}

func (s *engineState) Stage() ConsensusStage      { return s.stage }
func (s *engineState) Preference() ids.ID         { return s.preference }
func (s *engineState) Finalized() bool            { return s.finalized }
func (s *engineState) Confidence() map[ids.ID]int { return s.confidence }

// Stub types for metrics
type Counter struct{ count int64 }
func (c *Counter) Inc() { c.count++ }

type Histogram struct{}

func NewMetrics() *Metrics {
	return &Metrics{}
}