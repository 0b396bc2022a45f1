package tasks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/apagano/taskdeck/internal/observability"
)

var ErrTaskNotFound = errors.New("task not found")

// Service is the asynchronous CRUD facade over the Store. It keeps the shape
// a remote backend would have: every operation re-reads the full collection
// before acting and rewrites it after a mutation, with a small simulated
// round-trip delay in front.
type Service struct {
	// mu serializes every load-mutate-save sequence. Each write replaces
	// the whole collection from a prior full read, so interleaved mutations
	// would silently lose updates.
	mu sync.Mutex

	store        *Store
	metrics      *observability.Metrics
	readLatency  time.Duration
	writeLatency time.Duration
	now          func() time.Time
}

func NewService(store *Store, metrics *observability.Metrics, readLatency, writeLatency time.Duration) *Service {
	if readLatency < 0 {
		readLatency = 0
	}
	if writeLatency < 0 {
		writeLatency = 0
	}
	return &Service{
		store:        store,
		metrics:      metrics,
		readLatency:  readLatency,
		writeLatency: writeLatency,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// List returns every task currently in the store. It never fails; an empty
// or unreadable store yields an empty slice.
func (s *Service) List(ctx context.Context) []Task {
	start := s.simulate(s.readLatency)
	s.mu.Lock()
	out := s.store.LoadAll(ctx)
	s.mu.Unlock()
	s.metrics.ObserveOperation("list", "ok", time.Since(start))
	return out
}

// Get returns the task with the given id, or ErrTaskNotFound.
func (s *Service) Get(ctx context.Context, id string) (Task, error) {
	start := s.simulate(s.readLatency)
	s.mu.Lock()
	list := s.store.LoadAll(ctx)
	s.mu.Unlock()
	for _, t := range list {
		if t.ID == id {
			s.metrics.ObserveOperation("get", "ok", time.Since(start))
			return t, nil
		}
	}
	s.metrics.ObserveOperation("get", "not_found", time.Since(start))
	return Task{}, ErrTaskNotFound
}

// Create appends a new task with a fresh id, status forced to pending and
// both timestamps set to now. No field validation happens here; the caller
// owns input hygiene.
func (s *Service) Create(ctx context.Context, req CreateRequest) Task {
	start := s.simulate(s.writeLatency)
	now := s.now()
	task := Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      StatusPending,
		Priority:    req.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	list := s.store.LoadAll(ctx)
	list = append(list, task)
	s.store.SaveAll(ctx, list)
	s.mu.Unlock()

	s.metrics.ObserveOperation("create", "ok", time.Since(start))
	return task
}

// Update shallow-merges the non-nil patch fields over the stored record and
// refreshes UpdatedAt. ID and CreatedAt always keep their stored values.
// Returns ErrTaskNotFound when no task has the given id; the collection is
// left untouched in that case.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Task, error) {
	start := s.simulate(s.writeLatency)

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.store.LoadAll(ctx)
	for i := range list {
		if list[i].ID != id {
			continue
		}
		merged := mergePatch(list[i], patch)
		merged.UpdatedAt = s.now()
		list[i] = merged
		s.store.SaveAll(ctx, list)
		s.metrics.ObserveOperation("update", "ok", time.Since(start))
		return merged, nil
	}
	s.metrics.ObserveOperation("update", "not_found", time.Since(start))
	return Task{}, ErrTaskNotFound
}

// Delete removes the task with the given id. Deleting an absent id is a
// silent no-op, unlike Get and Update.
func (s *Service) Delete(ctx context.Context, id string) {
	start := s.simulate(s.writeLatency)

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.store.LoadAll(ctx)
	out := list[:0]
	for _, t := range list {
		if t.ID == id {
			continue
		}
		out = append(out, t)
	}
	s.store.SaveAll(ctx, out)
	s.metrics.ObserveOperation("delete", "ok", time.Since(start))
}

func (s *Service) StoreMode() string {
	return s.store.Mode()
}

func (s *Service) Close() error {
	return s.store.Close()
}

// simulate sleeps for the configured round-trip delay and returns the
// operation start time. The delay always runs to completion; there is no
// cancellation once it has started.
func (s *Service) simulate(d time.Duration) time.Time {
	start := time.Now()
	if d > 0 {
		time.Sleep(d)
	}
	return start
}

func mergePatch(existing Task, patch Patch) Task {
	out := existing
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.DueDate != nil {
		out.DueDate = *patch.DueDate
	}
	if patch.Status != nil {
		out.Status = *patch.Status
	}
	if patch.Priority != nil {
		out.Priority = *patch.Priority
	}
	// Merge order per the storage contract: stored identity fields win over
	// anything a caller managed to smuggle in.
	out.ID = existing.ID
	out.CreatedAt = existing.CreatedAt
	return out
}
