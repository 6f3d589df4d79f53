package pipeline

import "time"

// Accepted date layouts, tried in order: ISO first, then day-first.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
}

// ParseDate parses a date string against the accepted layouts. It
// returns nil when no layout matches; callers must exclude nil dates
// from month and day groupings.
func ParseDate(value string) *time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// sameMonth reports whether two dates fall in the same calendar month
// of the same year.
func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
