package recurrence

import (
	"github.com/julianstephens/focusflow/internal/calendar"
)

// Target is a countdown anchor that rolls forward once it has passed.
type Target struct {
	Anchor calendar.Date
	Rule   Rule
}

// Resolution is the occurrence a countdown currently points at.
type Resolution struct {
	Date      calendar.Date
	IsFuture  bool // true when Date is today or later
	DaysDelta int  // absolute distance between Date and today, in days
}

// ResolveTarget returns the occurrence a countdown should display on today.
// A non-recurring target, or one whose anchor is today or later, resolves to
// the anchor itself. A past recurring target advances to its next occurrence
// on or after today. Monthly and yearly targets whose anchor day does not
// exist in the resulting month roll over into the following month, so the
// 31st in April resolves to May 1.
func ResolveTarget(target Target, today calendar.Date) Resolution {
	occurrence := target.Anchor

	if target.Anchor.Before(today) {
		a := target.Anchor
		switch target.Rule {
		case Yearly:
			occurrence = calendar.New(today.Year, a.Month, a.Day)
			if occurrence.Before(today) {
				occurrence = calendar.New(today.Year+1, a.Month, a.Day)
			}
		case Monthly:
			occurrence = calendar.New(today.Year, today.Month, a.Day)
			if occurrence.Before(today) {
				occurrence = calendar.New(today.Year, today.Month+1, a.Day)
			}
		case Weekly:
			days := calendar.DaysBetween(a, today)
			weeks := (days + 6) / 7
			occurrence = a.AddDays(weeks * 7)
		case Daily:
			occurrence = today
		}
	}

	delta := calendar.DaysBetween(today, occurrence)
	if delta < 0 {
		delta = -delta
	}
	return Resolution{
		Date:      occurrence,
		IsFuture:  !occurrence.Before(today),
		DaysDelta: delta,
	}
}
