// Package server exposes the latest analysis snapshot over a JSON API.
// Queries read a single atomically published snapshot, so responses are
// internally consistent even while a refresh is running.
package server

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/headsetlab/comfortscan/internal/model"
)

// SnapshotSource hands out the current snapshot and rebuilds it on
// demand.
type SnapshotSource interface {
	Current() *model.Snapshot
	Refresh(ctx context.Context) (*model.Snapshot, error)
}

// Source publishes snapshots atomically. Readers always see either the
// previous complete snapshot or the new complete one, never a partial.
type Source struct {
	current atomic.Pointer[model.Snapshot]
	rebuild func(ctx context.Context) (*model.Snapshot, error)

	mu sync.Mutex // serializes Refresh
}

// NewSource creates a source. initial may be nil when no analysis has
// run yet; rebuild produces and persists a fresh snapshot.
func NewSource(initial *model.Snapshot, rebuild func(ctx context.Context) (*model.Snapshot, error)) *Source {
	s := &Source{rebuild: rebuild}
	if initial != nil {
		s.current.Store(initial)
	}
	return s
}

// Current returns the latest published snapshot, nil if none exists.
func (s *Source) Current() *model.Snapshot {
	return s.current.Load()
}

// Refresh rebuilds the snapshot and publishes it. A failed rebuild
// leaves the previous snapshot in place.
func (s *Source) Refresh(ctx context.Context) (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.rebuild(ctx)
	if err != nil {
		return nil, fmt.Errorf("rebuild snapshot: %w", err)
	}
	s.current.Store(snap)
	return snap, nil
}
