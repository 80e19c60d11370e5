package placementlog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an order has no log entries.
var ErrNotFound = errors.New("placement not found")

// Repository persists placement log entries. Each Save appends a row.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
}

// Reader reads the log of one placement back.
type Reader interface {
	GetLatest(ctx context.Context, orderID string) (*Entry, error)
	History(ctx context.Context, orderID string) ([]Entry, error)
}
