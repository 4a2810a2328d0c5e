package attendance

import (
	"context"
	"time"
)

// ListOptions narrows range queries.
type ListOptions struct {
	// UserID restricts results to a single user when set.
	UserID *string
	// ExcludeSuperAdmin drops records belonging to superAdmin users; the
	// admin listing, export and summaries never include them.
	ExcludeSuperAdmin bool
}

// Repository defines data access for attendance records. The unique
// (user_id, date) index is the sole arbiter for concurrent first writes:
// Upsert resolves a duplicate-key race as an update instead of an error.
type Repository interface {
	// GetByID retrieves a record by its row id.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByUserAndDate retrieves the record for one user's calendar day.
	// Returns (nil, nil) when no record exists yet.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Record, error)

	// Upsert inserts the record or, when (user_id, date) already exists,
	// overwrites its timestamps and derived fields atomically.
	Upsert(ctx context.Context, rec Record) (Record, error)

	// Update rewrites the row with rec's id, keeping its identity.
	// Returns ErrRecordNotFound for an unknown id and ErrDuplicateRecord
	// when the new (user_id, date) collides with another row.
	Update(ctx context.Context, rec Record) (Record, error)

	// ListRange retrieves records with date in [start, end], joined with
	// user name/email, ordered by date then user.
	ListRange(ctx context.Context, start, end time.Time, opts ListOptions) ([]Record, error)

	// BulkInsertAbsences inserts absence placeholders with
	// insert-only-if-absent semantics (existing rows are left untouched)
	// and reports how many rows were actually inserted.
	BulkInsertAbsences(ctx context.Context, recs []Record) (int64, error)
}
