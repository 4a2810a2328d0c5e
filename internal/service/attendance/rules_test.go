package attendance

import (
	"testing"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func dayAt(t *testing.T, hour, minute int) (time.Time, time.Time) {
	t.Helper()
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC) // a Monday
	return day, time.Date(2025, time.March, 3, hour, minute, 0, 0, time.UTC)
}

func TestApplyBusinessRuleCheckInStatuses(t *testing.T) {
	cases := []struct {
		name   string
		hour   int
		minute int
		want   attendance.CheckInStatus
	}{
		{"early morning", 9, 50, attendance.CheckInPresent},
		{"exactly at late cutoff", 10, 15, attendance.CheckInPresent},
		{"one minute past late cutoff", 10, 16, attendance.CheckInLate},
		{"mid late window", 10, 30, attendance.CheckInLate},
		{"exactly at half day cutoff", 11, 0, attendance.CheckInLate},
		{"past half day cutoff", 11, 15, attendance.CheckInHalfDay},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			day, checkIn := dayAt(t, c.hour, c.minute)
			rec := ApplyBusinessRule(attendance.Record{
				UserID:  "u1",
				Date:    day,
				CheckIn: &checkIn,
			}, time.UTC)

			assert.Equal(t, c.want, rec.CheckInStatus)
			assert.Equal(t, attendance.CheckOutAbsent, rec.CheckOutStatus)
			assert.Equal(t, attendance.StateCheckedInOnly, rec.State)
		})
	}
}

func TestApplyBusinessRuleCheckOutStatuses(t *testing.T) {
	cases := []struct {
		name   string
		hour   int
		minute int
		want   attendance.CheckOutStatus
	}{
		{"before early cutoff", 18, 30, attendance.CheckOutEarly},
		{"exactly at cutoff", 19, 0, attendance.CheckOutPresent},
		{"after cutoff", 19, 30, attendance.CheckOutPresent},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			day, checkOut := dayAt(t, c.hour, c.minute)
			rec := ApplyBusinessRule(attendance.Record{
				UserID:   "u1",
				Date:     day,
				CheckOut: &checkOut,
			}, time.UTC)

			assert.Equal(t, c.want, rec.CheckOutStatus)
			assert.Equal(t, attendance.CheckInAbsent, rec.CheckInStatus)
			assert.Equal(t, attendance.StateCheckedOutOnly, rec.State)
		})
	}
}

func TestApplyBusinessRuleIsIdempotent(t *testing.T) {
	day, checkIn := dayAt(t, 10, 30)
	_, checkOut := dayAt(t, 19, 15)

	rec := attendance.Record{UserID: "u1", Date: day, CheckIn: &checkIn, CheckOut: &checkOut}
	once := ApplyBusinessRule(rec, time.UTC)
	twice := ApplyBusinessRule(once, time.UTC)

	assert.Equal(t, once.CheckInStatus, twice.CheckInStatus)
	assert.Equal(t, once.CheckOutStatus, twice.CheckOutStatus)
	assert.Equal(t, once.TotalHours, twice.TotalHours)
	assert.Equal(t, once.State, twice.State)
}

func TestApplyBusinessRuleAbsent(t *testing.T) {
	day, _ := dayAt(t, 0, 0)
	rec := ApplyBusinessRule(attendance.Record{UserID: "u1", Date: day}, time.UTC)

	assert.Equal(t, attendance.CheckInAbsent, rec.CheckInStatus)
	assert.Equal(t, attendance.CheckOutAbsent, rec.CheckOutStatus)
	assert.Equal(t, attendance.StateAbsent, rec.State)
	assert.Zero(t, rec.TotalHours)
}

func TestTotalHours(t *testing.T) {
	_, checkIn := dayAt(t, 9, 0)
	_, checkOut := dayAt(t, 16, 30)

	assert.Equal(t, 7.5, TotalHours(&checkIn, &checkOut))
	assert.Zero(t, TotalHours(nil, &checkOut))
	assert.Zero(t, TotalHours(&checkIn, nil))
	assert.Zero(t, TotalHours(nil, nil))
}

func TestTotalHoursRoundsToTwoDecimals(t *testing.T) {
	_, checkIn := dayAt(t, 9, 0)
	checkOut := checkIn.Add(7*time.Hour + 20*time.Minute) // 7.3333... hours

	assert.Equal(t, 7.33, TotalHours(&checkIn, &checkOut))
}

func TestEvaluateRecordState(t *testing.T) {
	_, in := dayAt(t, 9, 0)
	_, out := dayAt(t, 19, 0)

	assert.Equal(t, attendance.StateCompleteEntry, EvaluateRecordState(&in, &out))
	assert.Equal(t, attendance.StateCheckedInOnly, EvaluateRecordState(&in, nil))
	assert.Equal(t, attendance.StateCheckedOutOnly, EvaluateRecordState(nil, &out))
	assert.Equal(t, attendance.StateAbsent, EvaluateRecordState(nil, nil))
}

func TestApplyBusinessRuleRespectsTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, loc)

	// 03:20 UTC is 10:20 in UTC+7, past the late cutoff
	checkIn := time.Date(2025, time.March, 3, 3, 20, 0, 0, time.UTC)
	rec := ApplyBusinessRule(attendance.Record{UserID: "u1", Date: day, CheckIn: &checkIn}, loc)

	assert.Equal(t, attendance.CheckInLate, rec.CheckInStatus)
}
