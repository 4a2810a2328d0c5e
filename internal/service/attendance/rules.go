package attendance

import (
	"math"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/attendance"
)

// Daily cutoffs, evaluated as wall-clock times on the record's date in the
// office timezone.
const (
	lateCutoffHour      = 10
	lateCutoffMinute    = 15
	halfDayCutoffHour   = 11
	halfDayCutoffMinute = 0
	earlyCutoffHour     = 19
	earlyCutoffMinute   = 0
)

// ApplyBusinessRule recomputes the derived fields of a record from its
// check-in and check-out timestamps. It is a pure function of the record and
// is idempotent: reapplying it to its own output changes nothing.
func ApplyBusinessRule(rec attendance.Record, loc *time.Location) attendance.Record {
	day := rec.Date.In(loc)
	lateCutoff := time.Date(day.Year(), day.Month(), day.Day(), lateCutoffHour, lateCutoffMinute, 0, 0, loc)
	halfDayCutoff := time.Date(day.Year(), day.Month(), day.Day(), halfDayCutoffHour, halfDayCutoffMinute, 0, 0, loc)
	earlyCutoff := time.Date(day.Year(), day.Month(), day.Day(), earlyCutoffHour, earlyCutoffMinute, 0, 0, loc)

	if rec.CheckIn != nil {
		in := rec.CheckIn.In(loc)
		switch {
		case in.After(halfDayCutoff):
			rec.CheckInStatus = attendance.CheckInHalfDay
		case in.After(lateCutoff):
			rec.CheckInStatus = attendance.CheckInLate
		default:
			rec.CheckInStatus = attendance.CheckInPresent
		}
	} else {
		rec.CheckInStatus = attendance.CheckInAbsent
	}

	if rec.CheckOut != nil {
		out := rec.CheckOut.In(loc)
		if out.Before(earlyCutoff) {
			rec.CheckOutStatus = attendance.CheckOutEarly
		} else {
			rec.CheckOutStatus = attendance.CheckOutPresent
		}
	} else {
		rec.CheckOutStatus = attendance.CheckOutAbsent
	}

	rec.TotalHours = TotalHours(rec.CheckIn, rec.CheckOut)
	rec.State = EvaluateRecordState(rec.CheckIn, rec.CheckOut)

	return rec
}

// TotalHours returns the elapsed hours between check-in and check-out,
// rounded to two decimal places. Either timestamp missing yields zero.
func TotalHours(checkIn, checkOut *time.Time) float64 {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	hours := checkOut.Sub(*checkIn).Hours()
	return math.Round(hours*100) / 100
}

// EvaluateRecordState classifies a record by which timestamps it holds.
func EvaluateRecordState(checkIn, checkOut *time.Time) attendance.RecordState {
	switch {
	case checkIn != nil && checkOut != nil:
		return attendance.StateCompleteEntry
	case checkIn != nil:
		return attendance.StateCheckedInOnly
	case checkOut != nil:
		return attendance.StateCheckedOutOnly
	default:
		return attendance.StateAbsent
	}
}
