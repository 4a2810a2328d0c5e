package postgresql

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/attendance"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/holiday"
	"github.com/opsdesk/opsdesk-backend-go/internal/domain/user"
	"github.com/opsdesk/opsdesk-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// testInit connects to the integration database or skips the test.
func testInit(t *testing.T) {
	t.Helper()
	if testDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
}

func truncateTables(t *testing.T, ctx context.Context) {
	tables := []string{"attendance_records", "holidays", "refresh_tokens", "users"}
	for _, table := range tables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createTestUser(t *testing.T, ctx context.Context, role user.Role) string {
	email := fmt.Sprintf("test-%d@example.com", time.Now().UnixNano())
	created, err := NewUserRepository(testDB).Create(ctx, user.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	})
	require.NoError(t, err)
	return created.ID
}

func TestAttendanceUpsertCreatesThenUpdates(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := NewAttendanceRepository(testDB)
	userID := createTestUser(t, ctx, user.RoleUser)

	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(9 * time.Hour)

	first, err := repo.Upsert(ctx, attendance.Record{
		UserID:         userID,
		Date:           day,
		CheckIn:        &checkIn,
		CheckInStatus:  attendance.CheckInPresent,
		CheckOutStatus: attendance.CheckOutAbsent,
		State:          attendance.StateCheckedInOnly,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	checkOut := day.Add(19 * time.Hour)
	second, err := repo.Upsert(ctx, attendance.Record{
		UserID:         userID,
		Date:           day,
		CheckIn:        &checkIn,
		CheckOut:       &checkOut,
		CheckInStatus:  attendance.CheckInPresent,
		CheckOutStatus: attendance.CheckOutPresent,
		TotalHours:     10,
		State:          attendance.StateCompleteEntry,
	})
	require.NoError(t, err)

	// Same (user, date) resolves to the same row
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.GetByUserAndDate(ctx, userID, day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.StateCompleteEntry, got.State)
	assert.Equal(t, float64(10), got.TotalHours)
}

func TestAttendanceGetByUserAndDateMissing(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := NewAttendanceRepository(testDB)
	userID := createTestUser(t, ctx, user.RoleUser)

	got, err := repo.GetByUserAndDate(ctx, userID, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBulkInsertAbsencesSkipsExistingRows(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := NewAttendanceRepository(testDB)
	withRecord := createTestUser(t, ctx, user.RoleUser)
	without := createTestUser(t, ctx, user.RoleUser)

	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(9 * time.Hour)
	_, err := repo.Upsert(ctx, attendance.Record{
		UserID:         withRecord,
		Date:           day,
		CheckIn:        &checkIn,
		CheckInStatus:  attendance.CheckInPresent,
		CheckOutStatus: attendance.CheckOutAbsent,
		State:          attendance.StateCheckedInOnly,
	})
	require.NoError(t, err)

	absence := func(userID string) attendance.Record {
		return attendance.Record{
			UserID:         userID,
			Date:           day,
			CheckInStatus:  attendance.CheckInAbsent,
			CheckOutStatus: attendance.CheckOutAbsent,
			State:          attendance.StateAbsent,
		}
	}

	inserted, err := repo.BulkInsertAbsences(ctx, []attendance.Record{absence(withRecord), absence(without)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)

	// The existing record is untouched
	got, err := repo.GetByUserAndDate(ctx, withRecord, day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.StateCheckedInOnly, got.State)
}

func TestAttendanceUpdateMovesRowToNewDate(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := NewAttendanceRepository(testDB)
	userID := createTestUser(t, ctx, user.RoleUser)

	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(9 * time.Hour)
	created, err := repo.Upsert(ctx, attendance.Record{
		UserID:         userID,
		Date:           day,
		CheckIn:        &checkIn,
		CheckInStatus:  attendance.CheckInPresent,
		CheckOutStatus: attendance.CheckOutAbsent,
		State:          attendance.StateCheckedInOnly,
	})
	require.NoError(t, err)

	corrected := created
	corrected.Date = day.AddDate(0, 0, 1)
	updated, err := repo.Update(ctx, corrected)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	// The row moved, it was not duplicated
	old, err := repo.GetByUserAndDate(ctx, userID, day)
	require.NoError(t, err)
	assert.Nil(t, old)

	moved, err := repo.GetByUserAndDate(ctx, userID, corrected.Date)
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, created.ID, moved.ID)
}

func TestAttendanceUpdateUnknownID(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := NewAttendanceRepository(testDB)
	userID := createTestUser(t, ctx, user.RoleUser)

	_, err := repo.Update(ctx, attendance.Record{
		ID:             "00000000-0000-0000-0000-000000000000",
		UserID:         userID,
		Date:           time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		CheckInStatus:  attendance.CheckInAbsent,
		CheckOutStatus: attendance.CheckOutAbsent,
		State:          attendance.StateAbsent,
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestAttendanceUpdateDuplicateDate(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := NewAttendanceRepository(testDB)
	userID := createTestUser(t, ctx, user.RoleUser)

	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	var recs [2]attendance.Record
	for i := range recs {
		checkIn := day.AddDate(0, 0, i).Add(9 * time.Hour)
		created, err := repo.Upsert(ctx, attendance.Record{
			UserID:         userID,
			Date:           day.AddDate(0, 0, i),
			CheckIn:        &checkIn,
			CheckInStatus:  attendance.CheckInPresent,
			CheckOutStatus: attendance.CheckOutAbsent,
			State:          attendance.StateCheckedInOnly,
		})
		require.NoError(t, err)
		recs[i] = created
	}

	collision := recs[0]
	collision.Date = recs[1].Date
	_, err := repo.Update(ctx, collision)
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)
}

func TestListRangeExcludesSuperAdmin(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := NewAttendanceRepository(testDB)
	regular := createTestUser(t, ctx, user.RoleUser)
	super := createTestUser(t, ctx, user.RoleSuperAdmin)

	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	for _, id := range []string{regular, super} {
		checkIn := day.Add(9 * time.Hour)
		_, err := repo.Upsert(ctx, attendance.Record{
			UserID:         id,
			Date:           day,
			CheckIn:        &checkIn,
			CheckInStatus:  attendance.CheckInPresent,
			CheckOutStatus: attendance.CheckOutAbsent,
			State:          attendance.StateCheckedInOnly,
		})
		require.NoError(t, err)
	}

	records, err := repo.ListRange(ctx, day, day.AddDate(0, 1, 0), attendance.ListOptions{ExcludeSuperAdmin: true})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, regular, records[0].UserID)

	all, err := repo.ListRange(ctx, day, day.AddDate(0, 1, 0), attendance.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestHolidayDuplicateDate(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := NewHolidayRepository(testDB)
	date := time.Date(2025, time.August, 17, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, holiday.Entry{Label: "Independence Day", Date: date})
	require.NoError(t, err)

	_, err = repo.Create(ctx, holiday.Entry{Label: "Duplicate", Date: date})
	assert.ErrorIs(t, err, holiday.ErrDuplicateDate)
}
