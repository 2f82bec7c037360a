package timecalc

import (
	"fmt"
	"regexp"
	"strconv"
)

// TimeOfDay is a wall-clock time with no date attached, stored as minutes
// since midnight.
type TimeOfDay struct {
	minutes int
}

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseTimeOfDay parses "HH:MM" (24-hour clock).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayRegex.FindStringSubmatch(s)
	if m == nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return TimeOfDay{minutes: h*60 + min}, nil
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.minutes
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// ComputeHours derives worked hours from a start/end pair and a break
// duration in hours. When end is earlier than start by minute-of-day the
// shift is treated as crossing midnight. The result is floored at zero and
// deliberately not rounded; rounding is a display concern and compounds
// error across repeated edits.
func ComputeHours(start, end TimeOfDay, breakHours float64) float64 {
	endMinutes := end.minutes
	if endMinutes < start.minutes {
		endMinutes += 24 * 60
	}

	hours := float64(endMinutes-start.minutes)/60.0 - breakHours
	if hours < 0 {
		return 0
	}
	return hours
}
