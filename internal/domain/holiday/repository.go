package holiday

import (
	"context"
	"time"
)

// Repository defines data access for the holiday registry.
type Repository interface {
	// Create inserts a new entry; a duplicate date maps to ErrDuplicateDate.
	Create(ctx context.Context, entry Entry) (Entry, error)

	// Delete removes an entry by id.
	Delete(ctx context.Context, id string) error

	// GetByDate returns the entry whose date falls within the given day's
	// [start, end] window, or (nil, nil) when none exists.
	GetByDate(ctx context.Context, dayStart, dayEnd time.Time) (*Entry, error)

	// ListRange returns entries with date in [start, end], ordered by date.
	ListRange(ctx context.Context, start, end time.Time) ([]Entry, error)
}
