// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package committee

import (
	"fmt"
	"time"
)

// Parameters bounds the resources and timing of a single replica.
type Parameters struct {
	// QueueCapacity bounds the number of in-flight own-payload
	// announcements the mempool core will buffer before applying
	// backpressure to the payload maker.
	QueueCapacity int

	// MaxPayloadSize bounds the serialized size, in bytes, of a payload
	// the mempool will accept.
	MaxPayloadSize int

	// GCDepth bounds how many rounds behind the last committed round the
	// primary keeps headers, certificates, and payloads before collecting
	// them.
	GCDepth uint64

	// TimeoutDelay is the base duration a replica waits for a Confirm or
	// Commit proposal at the current view before timing out and voting
	// for a view change.
	TimeoutDelay time.Duration

	// SimulatedPartitions, when true, enables the wall-clock partition
	// simulation timers used by integration tests. Production
	// deployments leave this false.
	SimulatedPartitions bool
}

// Default returns production-sized parameters.
func Default() Parameters {
	return Parameters{
		QueueCapacity:       10_000,
		MaxPayloadSize:      500_000,
		GCDepth:             50,
		TimeoutDelay:        5 * time.Second,
		SimulatedPartitions: false,
	}
}

// Local returns parameters tuned for a small, fast local deployment.
func Local() Parameters {
	p := Default()
	p.GCDepth = 10
	p.TimeoutDelay = 1 * time.Second
	return p
}

// Test returns parameters tuned for deterministic, low-latency unit tests.
func Test() Parameters {
	return Parameters{
		QueueCapacity:       1_000,
		MaxPayloadSize:      50_000,
		GCDepth:             5,
		TimeoutDelay:        50 * time.Millisecond,
		SimulatedPartitions: false,
	}
}

// Validate checks that p is internally consistent.
func (p Parameters) Validate() error {
	if p.QueueCapacity <= 0 {
		return fmt.Errorf("committee: QueueCapacity must be positive, got %d", p.QueueCapacity)
	}
	if p.MaxPayloadSize <= 0 {
		return fmt.Errorf("committee: MaxPayloadSize must be positive, got %d", p.MaxPayloadSize)
	}
	if p.GCDepth == 0 {
		return fmt.Errorf("committee: GCDepth must be positive")
	}
	if p.TimeoutDelay <= 0 {
		return fmt.Errorf("committee: TimeoutDelay must be positive, got %s", p.TimeoutDelay)
	}
	return nil
}

// Builder constructs Parameters fluently, starting from Default.
type Builder struct {
	params Parameters
	err    error
}

// NewBuilder returns a Builder seeded with Default parameters.
func NewBuilder() *Builder {
	return &Builder{params: Default()}
}

// FromPreset reseeds the builder from a named preset.
func (b *Builder) FromPreset(name string) *Builder {
	if b.err != nil {
		return b
	}
	switch name {
	case "default":
		b.params = Default()
	case "local":
		b.params = Local()
	case "test":
		b.params = Test()
	default:
		b.err = fmt.Errorf("committee: unknown preset %q", name)
	}
	return b
}

// WithQueueCapacity overrides QueueCapacity.
func (b *Builder) WithQueueCapacity(n int) *Builder {
	if b.err == nil {
		b.params.QueueCapacity = n
	}
	return b
}

// WithMaxPayloadSize overrides MaxPayloadSize.
func (b *Builder) WithMaxPayloadSize(n int) *Builder {
	if b.err == nil {
		b.params.MaxPayloadSize = n
	}
	return b
}

// WithGCDepth overrides GCDepth.
func (b *Builder) WithGCDepth(depth uint64) *Builder {
	if b.err == nil {
		b.params.GCDepth = depth
	}
	return b
}

// WithTimeoutDelay overrides TimeoutDelay.
func (b *Builder) WithTimeoutDelay(d time.Duration) *Builder {
	if b.err == nil {
		b.params.TimeoutDelay = d
	}
	return b
}

// WithSimulatedPartitions overrides SimulatedPartitions.
func (b *Builder) WithSimulatedPartitions(enabled bool) *Builder {
	if b.err == nil {
		b.params.SimulatedPartitions = enabled
	}
	return b
}

// Build validates and returns the final Parameters.
func (b *Builder) Build() (Parameters, error) {
	if b.err != nil {
		return Parameters{}, b.err
	}
	if err := b.params.Validate(); err != nil {
		return Parameters{}, err
	}
	return b.params, nil
}
