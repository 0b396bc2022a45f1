package tasks

import (
	"context"
	"sync"
)

// MemorySlot keeps the blob in process memory. It exists for tests and for
// running without any durable backend.
type MemorySlot struct {
	mu   sync.Mutex
	blob []byte
	set  bool
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Read(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(s.blob))
	copy(out, s.blob)
	return out, nil
}

func (s *MemorySlot) Write(_ context.Context, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = make([]byte, len(blob))
	copy(s.blob, blob)
	s.set = true
	return nil
}

func (s *MemorySlot) Mode() string {
	return "in-memory"
}

func (s *MemorySlot) Close() error {
	return nil
}
