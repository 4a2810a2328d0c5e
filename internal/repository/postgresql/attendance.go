package postgresql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/attendance"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.date, a.check_in, a.check_out,
	a.check_in_status, a.check_out_status, a.total_hours, a.record_state,
	a.updated_by, a.created_at, a.updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.CheckInStatus, &rec.CheckOutStatus, &rec.TotalHours, &rec.State,
		&rec.UpdatedBy, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `,
			u.name AS user_name, u.email AS user_email, u.role AS user_role
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	var rec attendance.Record
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.CheckInStatus, &rec.CheckOutStatus, &rec.TotalHours, &rec.State,
		&rec.UpdatedBy, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.UserName, &rec.UserEmail, &rec.UserRole,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return rec, nil
}

// GetByUserAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.user_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for this day yet
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &rec, nil
}

// Upsert implements attendance.Repository. The unique (user_id, date) index
// arbitrates concurrent first writes for a user's day: the losing insert is
// applied as an update instead of surfacing a duplicate-key error.
func (a *attendanceRepository) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			user_id, date, check_in, check_out,
			check_in_status, check_out_status, total_hours, record_state,
			updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (user_id, date) DO UPDATE SET
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			check_in_status = EXCLUDED.check_in_status,
			check_out_status = EXCLUDED.check_out_status,
			total_hours = EXCLUDED.total_hours,
			record_state = EXCLUDED.record_state,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.UserID,
		rec.Date,
		rec.CheckIn,
		rec.CheckOut,
		rec.CheckInStatus,
		rec.CheckOutStatus,
		rec.TotalHours,
		rec.State,
		rec.UpdatedBy,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return rec, nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			user_id = $2,
			date = $3,
			check_in = $4,
			check_out = $5,
			check_in_status = $6,
			check_out_status = $7,
			total_hours = $8,
			record_state = $9,
			updated_by = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.UserID,
		rec.Date,
		rec.CheckIn,
		rec.CheckOut,
		rec.CheckInStatus,
		rec.CheckOutStatus,
		rec.TotalHours,
		rec.State,
		rec.UpdatedBy,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return rec, nil
}

// ListRange implements attendance.Repository.
func (a *attendanceRepository) ListRange(ctx context.Context, start, end time.Time, opts attendance.ListOptions) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.date >= $1 AND a.date <= $2"
	args := []interface{}{start, end}
	argIdx := 3

	if opts.UserID != nil {
		baseWhere += fmt.Sprintf(" AND a.user_id = $%d", argIdx)
		args = append(args, *opts.UserID)
		argIdx++
	}

	if opts.ExcludeSuperAdmin {
		baseWhere += fmt.Sprintf(" AND u.role <> $%d", argIdx)
		args = append(args, "superAdmin")
		argIdx++
	}

	query := `
		SELECT` + attendanceColumns + `,
			u.name AS user_name, u.email AS user_email, u.role AS user_role
		FROM attendance_records a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE ` + baseWhere + `
		ORDER BY a.date ASC, u.name ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
			&rec.CheckInStatus, &rec.CheckOutStatus, &rec.TotalHours, &rec.State,
			&rec.UpdatedBy, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.UserName, &rec.UserEmail, &rec.UserRole,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return records, nil
}

// BulkInsertAbsences implements attendance.Repository. Inserts are unordered
// and insert-only-if-absent: rows that already exist for (user_id, date) are
// left untouched.
func (a *attendanceRepository) BulkInsertAbsences(ctx context.Context, recs []attendance.Record) (int64, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			user_id, date, check_in, check_out,
			check_in_status, check_out_status, total_hours, record_state
		) VALUES (
			$1, $2, NULL, NULL, $3, $4, 0, $5
		)
		ON CONFLICT (user_id, date) DO NOTHING
	`

	var inserted int64
	for _, rec := range recs {
		tag, err := q.Exec(ctx, query,
			rec.UserID,
			rec.Date,
			rec.CheckInStatus,
			rec.CheckOutStatus,
			rec.State,
		)
		if err != nil {
			// Best effort: a failed row does not abort the batch
			slog.Error("failed to insert absence placeholder", "user_id", rec.UserID, "date", rec.Date.Format("2006-01-02"), "error", err)
			continue
		}
		inserted += tag.RowsAffected()
	}

	return inserted, nil
}
