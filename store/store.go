// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package store defines the key-value persistence interface used by the
// mempool and primary cores to durably record payloads, headers,
// certificates, and votes, and provides an in-memory and a LevelDB-backed
// implementation of it.
package store

import "errors"

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("store: key not found")

// Reader reads from a store.
type Reader interface {
	// Has returns whether key exists.
	Has(key []byte) (bool, error)

	// Get returns the value for key, or ErrNotFound if it does not exist.
	Get(key []byte) ([]byte, error)
}

// Writer writes to a store.
type Writer interface {
	// Put sets the value for key.
	Put(key, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key []byte) error
}

// Batch accumulates writes to be applied atomically.
type Batch interface {
	Writer

	// Size returns the number of queued operations.
	Size() int

	// Write commits the batch.
	Write() error

	// Reset clears the batch for reuse.
	Reset()
}

// Store is a key-value database.
type Store interface {
	Reader
	Writer

	// NewBatch creates a new, empty Batch bound to this store.
	NewBatch() Batch

	// Close releases resources held by the store.
	Close() error
}
