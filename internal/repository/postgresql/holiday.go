package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/holiday"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

// Create implements holiday.Repository.
func (h *holidayRepository) Create(ctx context.Context, entry holiday.Entry) (holiday.Entry, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		INSERT INTO holidays (label, date)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, entry.Label, entry.Date).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.Entry{}, holiday.ErrDuplicateDate
		}
		return holiday.Entry{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return entry, nil
}

// Delete implements holiday.Repository.
func (h *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, h.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

// GetByDate implements holiday.Repository.
func (h *holidayRepository) GetByDate(ctx context.Context, dayStart, dayEnd time.Time) (*holiday.Entry, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, label, date, created_at
		FROM holidays
		WHERE date >= $1 AND date <= $2
		LIMIT 1
	`

	var entry holiday.Entry
	err := q.QueryRow(ctx, query, dayStart, dayEnd).Scan(&entry.ID, &entry.Label, &entry.Date, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday by date: %w", err)
	}

	return &entry, nil
}

// ListRange implements holiday.Repository.
func (h *holidayRepository) ListRange(ctx context.Context, start, end time.Time) ([]holiday.Entry, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, label, date, created_at
		FROM holidays
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var entries []holiday.Entry
	for rows.Next() {
		var entry holiday.Entry
		if err := rows.Scan(&entry.ID, &entry.Label, &entry.Date, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holiday rows: %w", err)
	}

	return entries, nil
}
