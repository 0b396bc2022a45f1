package tasks

import (
	"context"
	"errors"
	"strings"
)

// ErrSlotEmpty reports that the slot has never been written.
var ErrSlotEmpty = errors.New("task slot is empty")

// Slot is the single durable storage slot holding the serialized task
// collection. Every write replaces the entire blob; there is no incremental
// update at this layer.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, blob []byte) error
	Mode() string
	Close() error
}

// NewSlot creates a postgres-backed slot when configured, otherwise a file
// slot at the given path.
func NewSlot(ctx context.Context, databaseURL, filePath string) (Slot, error) {
	if strings.TrimSpace(databaseURL) != "" {
		return NewPostgresSlot(ctx, databaseURL)
	}
	return NewFileSlot(filePath)
}
