package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/apagano/taskdeck/internal/observability"
)

// FaultHook is invoked for every storage fault the store absorbs. The op is
// "load" or "save". Hooks run synchronously on the calling goroutine.
type FaultHook func(op string, err error)

// Store owns durable access to the task collection. Storage faults never
// propagate to callers: an unreadable slot degrades to an empty collection
// and a failed write is dropped. Both are logged, counted, and reported to
// the fault hook so the policy stays observable.
type Store struct {
	slot    Slot
	metrics *observability.Metrics
	hook    FaultHook
}

func NewStore(slot Slot, metrics *observability.Metrics) *Store {
	return &Store{slot: slot, metrics: metrics}
}

// SetFaultHook installs an observer for swallowed storage faults. Must be
// called before the store is shared across goroutines.
func (s *Store) SetFaultHook(hook FaultHook) {
	s.hook = hook
}

// LoadAll returns every persisted task. An empty slot yields an empty slice;
// an unreadable or unparseable blob is treated the same way.
func (s *Store) LoadAll(ctx context.Context) []Task {
	blob, err := s.slot.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrSlotEmpty) {
			return []Task{}
		}
		s.fault("load", "read", err)
		return []Task{}
	}

	var out []Task
	if err := json.Unmarshal(blob, &out); err != nil {
		s.fault("load", "decode", err)
		return []Task{}
	}
	if out == nil {
		out = []Task{}
	}
	return out
}

// SaveAll replaces the persisted collection with the given snapshot. Write
// failures are absorbed; the caller's mutation still succeeds.
func (s *Store) SaveAll(ctx context.Context, list []Task) {
	blob, err := json.Marshal(list)
	if err != nil {
		s.fault("save", "encode", err)
		return
	}
	if err := s.slot.Write(ctx, blob); err != nil {
		s.fault("save", "write", err)
		return
	}
	s.metrics.SetTasksPersisted(len(list))
}

func (s *Store) Mode() string {
	return s.slot.Mode()
}

func (s *Store) Close() error {
	return s.slot.Close()
}

func (s *Store) fault(op, kind string, err error) {
	log.Printf("task store: %s %s fault swallowed: %v", op, kind, err)
	s.metrics.ObserveStorageFault(op, kind)
	if s.hook != nil {
		s.hook(op, err)
	}
}
