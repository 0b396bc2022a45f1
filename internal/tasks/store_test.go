package tasks

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(NewMemorySlot(), nil)
	in := []Task{
		{
			ID:          "a",
			Title:       "first",
			Description: "one",
			DueDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Status:      StatusPending,
			Priority:    PriorityLow,
			CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:          "b",
			Title:       "second",
			Description: "two",
			DueDate:     time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
			Status:      StatusCompleted,
			Priority:    PriorityHigh,
			CreatedAt:   time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2024, 5, 3, 8, 30, 0, 0, time.UTC),
		},
	}

	store.SaveAll(context.Background(), in)
	out := store.LoadAll(context.Background())

	if len(out) != len(in) {
		t.Fatalf("LoadAll len = %d, want %d", len(out), len(in))
	}
	byID := map[string]Task{}
	for _, task := range out {
		byID[task.ID] = task
	}
	for _, want := range in {
		got, ok := byID[want.ID]
		if !ok {
			t.Fatalf("task %q missing after round trip", want.ID)
		}
		if got.Title != want.Title || got.Description != want.Description ||
			got.Status != want.Status || got.Priority != want.Priority {
			t.Fatalf("task %q fields changed: got %+v want %+v", want.ID, got, want)
		}
		if !got.DueDate.Equal(want.DueDate) || !got.CreatedAt.Equal(want.CreatedAt) || !got.UpdatedAt.Equal(want.UpdatedAt) {
			t.Fatalf("task %q timestamps changed: got %+v want %+v", want.ID, got, want)
		}
	}
}

func TestLoadAllEmptySlot(t *testing.T) {
	store := NewStore(NewMemorySlot(), nil)
	out := store.LoadAll(context.Background())
	if out == nil || len(out) != 0 {
		t.Fatalf("LoadAll on empty slot = %v, want empty slice", out)
	}
}

func TestCorruptBlobDegradesToEmpty(t *testing.T) {
	slot := NewMemorySlot()
	if err := slot.Write(context.Background(), []byte("definitely-not-json{")); err != nil {
		t.Fatalf("seed corrupt blob: %v", err)
	}

	store := NewStore(slot, nil)
	var faultOp string
	store.SetFaultHook(func(op string, err error) {
		faultOp = op
	})

	out := store.LoadAll(context.Background())
	if len(out) != 0 {
		t.Fatalf("LoadAll on corrupt blob len = %d, want 0", len(out))
	}
	if faultOp != "load" {
		t.Fatalf("fault hook op = %q, want %q", faultOp, "load")
	}
}

func TestWriteFailureIsSwallowed(t *testing.T) {
	slot := &failingSlot{writeErr: errors.New("quota exceeded")}
	store := NewStore(slot, nil)

	var hookOp string
	var hookErr error
	store.SetFaultHook(func(op string, err error) {
		hookOp = op
		hookErr = err
	})

	store.SaveAll(context.Background(), []Task{{ID: "x", Title: "doomed"}})

	if hookOp != "save" {
		t.Fatalf("fault hook op = %q, want %q", hookOp, "save")
	}
	if !errors.Is(hookErr, slot.writeErr) {
		t.Fatalf("fault hook err = %v, want %v", hookErr, slot.writeErr)
	}
}

type failingSlot struct {
	writeErr error
}

func (s *failingSlot) Read(_ context.Context) ([]byte, error) {
	return nil, ErrSlotEmpty
}

func (s *failingSlot) Write(_ context.Context, _ []byte) error {
	return s.writeErr
}

func (s *failingSlot) Mode() string {
	return "failing"
}

func (s *failingSlot) Close() error {
	return nil
}
