package domain

import "time"

// Week is the Monday-to-Sunday span used as the aggregation unit for chapter
// generation. It is a derived value, never stored independently: both bounds
// are date-only, normalized to midnight UTC.
type Week struct {
	Start time.Time // Monday
	End   time.Time // Sunday, Start + 6 days
}

// WeekOf returns the Monday-to-Sunday week containing t.
//
// Monday = date minus ((weekday + 6) mod 7) days, where weekday 0 = Sunday;
// Sunday = Monday + 6 days. The input's clock time and zone offset are
// discarded before the computation.
func WeekOf(t time.Time) Week {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	monday := d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
	return Week{Start: monday, End: monday.AddDate(0, 0, 6)}
}

// StartDate returns the week start formatted as "YYYY-MM-DD".
func (w Week) StartDate() string { return w.Start.Format(DateLayout) }

// EndDate returns the week end formatted as "YYYY-MM-DD".
func (w Week) EndDate() string { return w.End.Format(DateLayout) }

// Contains reports whether the calendar day of t falls within [Start, End].
func (w Week) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(w.Start) && !d.After(w.End)
}
