package attendance

import (
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk-backend-go/internal/domain/attendance"
)

// unassignedBucket collects records whose user reference could not be
// resolved. They still aggregate so totals stay honest.
const unassignedBucket = "unassigned"

type summaryAccumulator struct {
	summary     attendance.UserSummary
	workingDays map[string]struct{}
	latesByWeek map[string]int
}

// Summarize scans a set of attendance records and produces per-user counts.
// Day and week boundaries follow loc, not the zone the timestamps were
// scanned with. The output carries no ordering guarantee.
func Summarize(records []attendance.Record, loc *time.Location) []attendance.UserSummary {
	accs := make(map[string]*summaryAccumulator)

	for _, rec := range records {
		userID := rec.UserID
		if userID == "" {
			userID = unassignedBucket
		}

		acc, ok := accs[userID]
		if !ok {
			acc = &summaryAccumulator{
				summary:     attendance.UserSummary{UserID: userID},
				workingDays: make(map[string]struct{}),
				latesByWeek: make(map[string]int),
			}
			if rec.UserName != nil {
				acc.summary.UserName = *rec.UserName
			}
			accs[userID] = acc
		}

		switch {
		case rec.CheckIn == nil && rec.CheckOut == nil:
			acc.summary.Absent++
		case rec.CheckInStatus == attendance.CheckInPresent,
			rec.CheckInStatus == attendance.CheckInLate,
			rec.CheckInStatus == attendance.CheckInHalfDay,
			rec.CheckIn != nil && rec.CheckOut == nil:
			acc.summary.Present++
		}

		day := rec.Date.In(loc)

		if rec.CheckInStatus == attendance.CheckInLate {
			acc.summary.Late++
			year, week := day.ISOWeek()
			acc.latesByWeek[fmt.Sprintf("%d-%02d", year, week)]++
		}
		if rec.CheckInStatus == attendance.CheckInHalfDay {
			acc.summary.HalfDays++
		}
		if rec.CheckOutStatus == attendance.CheckOutEarly {
			acc.summary.Early++
		}

		if rec.CheckIn != nil || rec.CheckOut != nil {
			acc.workingDays[day.Format("2006-01-02")] = struct{}{}
		}
	}

	summaries := make([]attendance.UserSummary, 0, len(accs))
	for _, acc := range accs {
		for _, lates := range acc.latesByWeek {
			if lates >= 3 {
				acc.summary.RuleAppliedHalfDays++
			}
		}
		acc.summary.HalfDayTotal = acc.summary.HalfDays + acc.summary.RuleAppliedHalfDays
		acc.summary.TotalWorkingDays = len(acc.workingDays)
		summaries = append(summaries, acc.summary)
	}

	return summaries
}
