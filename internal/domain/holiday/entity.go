package holiday

import "time"

// Entry is a declared non-working day. Date is normalized to midnight in the
// attendance timezone and unique across the registry.
type Entry struct {
	ID        string
	Label     string
	Date      time.Time
	CreatedAt time.Time
}
