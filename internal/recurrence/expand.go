package recurrence

import (
	"github.com/julianstephens/focusflow/internal/calendar"
)

// Definition is an event anchored on a date with an optional recurrence rule.
type Definition struct {
	ID     string
	Title  string
	Anchor calendar.Date
	Rule   Rule
}

// OccursOn reports whether the definition has an occurrence on day.
// Occurrences never precede the anchor. A monthly rule anchored on a day the
// month lacks (e.g. the 31st in April) has no occurrence that month, and a
// yearly rule anchored on February 29 only occurs in leap years.
func OccursOn(def Definition, day calendar.Date) bool {
	if day.Before(def.Anchor) {
		return false
	}
	switch def.Rule {
	case Daily:
		return true
	case Weekly:
		return day.Weekday() == def.Anchor.Weekday()
	case Monthly:
		return day.Day == def.Anchor.Day
	case Yearly:
		return day.Month == def.Anchor.Month && day.Day == def.Anchor.Day
	default:
		return day == def.Anchor
	}
}

// Expand returns every occurrence of def within [windowStart, windowEnd], in
// ascending order. Both bounds are inclusive.
func Expand(def Definition, windowStart, windowEnd calendar.Date) []calendar.Date {
	if windowEnd.Before(windowStart) {
		return nil
	}

	if !def.Rule.Valid() || def.Rule == None {
		if def.Anchor.Before(windowStart) || def.Anchor.After(windowEnd) {
			return nil
		}
		return []calendar.Date{def.Anchor}
	}

	var out []calendar.Date
	first := calendar.Max(windowStart, def.Anchor).DayIndex()
	last := windowEnd.DayIndex()
	for i := first; i <= last; i++ {
		day := calendar.FromDayIndex(i)
		if OccursOn(def, day) {
			out = append(out, day)
		}
	}
	return out
}
