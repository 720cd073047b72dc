package valueobject

import (
	"strings"
	"time"
)

// Dates are persisted as ISO "2006-01-02" strings, the format the
// historical databases carry. Display uses the Turkish "02.01.2006".

const (
	ISODateLayout     = "2006-01-02"
	TurkishDateLayout = "02.01.2006"
)

// ParseISODate reads an ISO date string. Empty input yields the zero
// time with ok=false.
func ParseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatTurkishDate renders an ISO date for display; unparseable input
// is returned verbatim so legacy values stay visible.
func FormatTurkishDate(iso string) string {
	t, ok := ParseISODate(iso)
	if !ok {
		return iso
	}
	return t.Format(TurkishDateLayout)
}

// Today returns the current date as an ISO string.
func Today() string {
	return time.Now().Format(ISODateLayout)
}

// DaysUntil returns the whole-day distance from today to the given ISO
// date. Negative means the date is in the past.
func DaysUntil(iso string, now time.Time) (int, bool) {
	t, ok := ParseISODate(iso)
	if !ok {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	target := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today).Hours() / 24), true
}
