package cron

import (
	"context"
	"testing"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/attendance"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/holiday"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	attendance.Repository
	inserted []attendance.Record
}

func (f *fakeAttendanceRepo) BulkInsertAbsences(ctx context.Context, recs []attendance.Record) (int64, error) {
	f.inserted = append(f.inserted, recs...)
	return int64(len(recs)), nil
}

type fakeUserRepo struct {
	user.Repository
	users []user.User
}

func (f *fakeUserRepo) List(ctx context.Context, includeSuperAdmin bool) ([]user.User, error) {
	if includeSuperAdmin {
		return f.users, nil
	}
	var out []user.User
	for _, u := range f.users {
		if u.Role != user.RoleSuperAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeHolidaySvc struct {
	holiday.Service
	holidays map[string]bool
}

func (f *fakeHolidaySvc) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	return f.holidays[date.Format("2006-01-02")], nil
}

func newTestJobs(users []user.User, holidays map[string]bool) (*AttendanceJobs, *fakeAttendanceRepo) {
	repo := &fakeAttendanceRepo{}
	jobs := NewAttendanceJobs(
		repo,
		&fakeUserRepo{users: users},
		&fakeHolidaySvc{holidays: holidays},
		time.UTC,
	)
	return jobs, repo
}

func TestMarkAbsenteesInsertsForEveryUser(t *testing.T) {
	users := []user.User{
		{ID: "u1", Role: user.RoleUser},
		{ID: "u2", Role: user.RoleAdmin},
		{ID: "sa", Role: user.RoleSuperAdmin},
	}
	jobs, repo := newTestJobs(users, nil)

	monday := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	err := jobs.markAbsenteesFor(context.Background(), monday)
	require.NoError(t, err)

	// superAdmin accounts are never marked
	require.Len(t, repo.inserted, 2)
	for _, rec := range repo.inserted {
		assert.NotEqual(t, "sa", rec.UserID)
		assert.Equal(t, monday, rec.Date)
		assert.Equal(t, attendance.CheckInAbsent, rec.CheckInStatus)
		assert.Equal(t, attendance.CheckOutAbsent, rec.CheckOutStatus)
		assert.Equal(t, attendance.StateAbsent, rec.State)
		assert.Nil(t, rec.CheckIn)
		assert.Nil(t, rec.CheckOut)
	}
}

func TestMarkAbsenteesSkipsSundays(t *testing.T) {
	jobs, repo := newTestJobs([]user.User{{ID: "u1", Role: user.RoleUser}}, nil)

	sunday := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)
	err := jobs.markAbsenteesFor(context.Background(), sunday)
	require.NoError(t, err)
	assert.Empty(t, repo.inserted)
}

func TestMarkAbsenteesSkipsHolidays(t *testing.T) {
	jobs, repo := newTestJobs(
		[]user.User{{ID: "u1", Role: user.RoleUser}},
		map[string]bool{"2025-03-03": true},
	)

	monday := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	err := jobs.markAbsenteesFor(context.Background(), monday)
	require.NoError(t, err)
	assert.Empty(t, repo.inserted)
}
