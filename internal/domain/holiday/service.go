package holiday

import (
	"context"
	"time"
)

// Service defines business logic for the holiday registry.
type Service interface {
	// Create adds a holiday (HR administrators only, enforced at the route).
	Create(ctx context.Context, req CreateRequest) (Response, error)

	// Delete removes a holiday by id.
	Delete(ctx context.Context, id string) error

	// List returns holidays within an inclusive date range.
	List(ctx context.Context, start, end time.Time) ([]Entry, error)

	// IsHoliday reports whether the given date's calendar day is declared a
	// holiday. The date is normalized to its local day window first.
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
}
