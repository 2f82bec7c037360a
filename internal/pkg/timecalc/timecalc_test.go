package timecalc_test

import (
	"testing"

	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/timecalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) timecalc.TimeOfDay {
	t.Helper()
	tod, err := timecalc.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestParseTimeOfDay(t *testing.T) {
	tod := mustParse(t, "09:30")
	assert.Equal(t, 9*60+30, tod.Minutes())
	assert.Equal(t, "09:30", tod.String())

	for _, bad := range []string{"24:00", "9:30", "09:60", "0930", ""} {
		_, err := timecalc.ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestComputeHours(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		breakHours float64
		want       float64
	}{
		{"regular day", "09:00", "17:00", 0, 8},
		{"with break", "09:00", "17:30", 1, 7.5},
		{"overnight shift", "22:00", "06:00", 0, 8},
		{"overnight with break", "23:00", "07:30", 0.5, 8},
		{"break longer than shift floors at zero", "09:00", "10:00", 2, 0},
		{"zero-length shift", "09:00", "09:00", 0, 0},
		{"partial hours stay unrounded", "09:00", "09:20", 0, 1.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := timecalc.ComputeHours(mustParse(t, tt.start), mustParse(t, tt.end), tt.breakHours)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
