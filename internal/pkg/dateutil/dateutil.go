package dateutil

import (
	"fmt"
	"time"
)

// DateKey is a timezone-free calendar date in "YYYY-MM-DD" form. Business-date
// comparisons compare keys as strings; the lexicographic order of the format
// matches chronological order, so an entry stored under a key groups the same
// way no matter which zone the caller is in.
type DateKey string

const keyLayout = "2006-01-02"

// ToDateKey converts an instant to the calendar date it falls on in loc.
// This is the only place in the engine where a timestamp becomes a date.
func ToDateKey(t time.Time, loc *time.Location) DateKey {
	if loc == nil {
		loc = time.UTC
	}
	return DateKey(t.In(loc).Format(keyLayout))
}

// Today returns the current calendar date in loc.
func Today(loc *time.Location) DateKey {
	return ToDateKey(time.Now(), loc)
}

// Parse validates a "YYYY-MM-DD" string and returns it as a DateKey.
func Parse(s string) (DateKey, error) {
	t, err := time.Parse(keyLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	// Re-format so "2024-1-2" style inputs never slip through as keys.
	return DateKey(t.Format(keyLayout)), nil
}

// Compare returns -1, 0 or 1 as a sorts before, same as, or after b.
func Compare(a, b DateKey) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Time returns the key's midnight in UTC, for arithmetic only. The result
// must never be compared against a wall-clock instant.
func (k DateKey) Time() time.Time {
	t, err := time.Parse(keyLayout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Weekday returns the day of week for a key.
func (k DateKey) Weekday() time.Weekday {
	return k.Time().Weekday()
}

// AddDays returns the key n days after k (n may be negative).
func (k DateKey) AddDays(n int) DateKey {
	return DateKey(k.Time().AddDate(0, 0, n).Format(keyLayout))
}

// StartOfISOWeek returns the Monday of the ISO week containing k.
func StartOfISOWeek(k DateKey) DateKey {
	offset := int(k.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	return k.AddDays(-offset)
}

// WeekDays returns the seven keys of the week starting at weekStart.
func WeekDays(weekStart DateKey) [7]DateKey {
	var days [7]DateKey
	for i := range days {
		days[i] = weekStart.AddDays(i)
	}
	return days
}

// WeekEnd returns the Sunday of the week starting at weekStart.
func WeekEnd(weekStart DateKey) DateKey {
	return weekStart.AddDays(6)
}

// InWeek reports whether k falls within [weekStart, weekStart+6].
func InWeek(k, weekStart DateKey) bool {
	return Compare(k, weekStart) >= 0 && Compare(k, WeekEnd(weekStart)) <= 0
}

func (k DateKey) String() string {
	return string(k)
}
