package timesheet

import (
	"testing"

	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/dateutil"
	"github.com/stretchr/testify/assert"
)

const weekStart = dateutil.DateKey("2024-06-03")

func entry(day dateutil.DateKey, hours float64, status timesheet.EntryStatus) timesheet.Entry {
	return timesheet.Entry{
		ID:          string(day) + "-" + string(status),
		TenantID:    "tenant-1",
		OwnerID:     "emp-1",
		WorkDate:    day,
		HoursWorked: hours,
		Description: "worked on the usual things",
		Status:      status,
	}
}

func TestBuild_EmptyWeek(t *testing.T) {
	view := NewWeeklyCalculator().Build(weekStart, nil)

	assert.Equal(t, 0.0, view.TotalHours)
	assert.Len(t, view.MissingDays, 7)
	assert.Empty(t, view.HighHoursDays)
	assert.Equal(t, timesheet.WeekStatusDraft, view.WeekStatus)
	assert.True(t, view.CanAddEntries)
	assert.False(t, view.CanSubmit)
	assert.False(t, view.Overtime)
}

func TestBuild_OvertimeWeek(t *testing.T) {
	// 45h across the working days, all draft.
	entries := []timesheet.Entry{
		entry(weekStart, 9, timesheet.StatusDraft),
		entry(weekStart.AddDays(1), 9, timesheet.StatusDraft),
		entry(weekStart.AddDays(2), 9, timesheet.StatusDraft),
		entry(weekStart.AddDays(3), 9, timesheet.StatusDraft),
		entry(weekStart.AddDays(4), 9, timesheet.StatusDraft),
	}

	view := NewWeeklyCalculator().Build(weekStart, entries)

	assert.Equal(t, 45.0, view.TotalHours)
	assert.True(t, view.Overtime)
	assert.Equal(t, 5.0, view.OvertimeHours)
	assert.ElementsMatch(t, []dateutil.DateKey{weekStart.AddDays(5), weekStart.AddDays(6)}, view.MissingDays)
	assert.True(t, view.CanSubmit)
}

func TestBuild_BillableSplitAndAmount(t *testing.T) {
	amount := 1200.0
	billable := entry(weekStart, 6, timesheet.StatusDraft)
	billable.IsBillable = true
	billable.BillingAmount = &amount
	internal := entry(weekStart.AddDays(1), 2, timesheet.StatusDraft)

	view := NewWeeklyCalculator().Build(weekStart, []timesheet.Entry{billable, internal})

	assert.Equal(t, 8.0, view.TotalHours)
	assert.Equal(t, 6.0, view.BillableHours)
	assert.Equal(t, 2.0, view.NonBillableHours)
	assert.Equal(t, 1200.0, view.TotalAmount)
}

func TestBuild_Breakdowns(t *testing.T) {
	apollo, hermes := "Apollo", "Hermes"
	a := entry(weekStart, 5, timesheet.StatusDraft)
	a.ActivityType = "development"
	a.ProjectName = &apollo
	b := entry(weekStart.AddDays(1), 3, timesheet.StatusDraft)
	b.ActivityType = "meetings"
	b.ProjectName = &hermes
	c := entry(weekStart.AddDays(2), 4, timesheet.StatusDraft)
	c.ActivityType = "development"
	c.ProjectName = &apollo

	view := NewWeeklyCalculator().Build(weekStart, []timesheet.Entry{a, b, c})

	assert.Equal(t, []timesheet.BreakdownItem{
		{Label: "development", Hours: 9},
		{Label: "meetings", Hours: 3},
	}, view.ActivityBreakdown)
	assert.Equal(t, []timesheet.BreakdownItem{
		{Label: "Apollo", Hours: 9},
		{Label: "Hermes", Hours: 3},
	}, view.ProjectBreakdown)
}

func TestBuild_HighHoursDays(t *testing.T) {
	entries := []timesheet.Entry{
		entry(weekStart, 8, timesheet.StatusDraft),
		entry(weekStart, 5, timesheet.StatusDraft), // 13h on Monday
		entry(weekStart.AddDays(1), 12, timesheet.StatusDraft),
	}

	view := NewWeeklyCalculator().Build(weekStart, entries)

	// Exactly 12h is fine; over 12h is flagged.
	assert.Equal(t, []dateutil.DateKey{weekStart}, view.HighHoursDays)
}

func TestBuild_WeekStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []timesheet.EntryStatus
		want     timesheet.WeekStatus
	}{
		{"all approved", []timesheet.EntryStatus{timesheet.StatusApproved, timesheet.StatusApproved}, timesheet.WeekStatusApproved},
		{"rejection wins over submitted", []timesheet.EntryStatus{timesheet.StatusSubmitted, timesheet.StatusRejected}, timesheet.WeekStatusPartiallyRejected},
		{"rejection wins over approved", []timesheet.EntryStatus{timesheet.StatusApproved, timesheet.StatusRejected}, timesheet.WeekStatusPartiallyRejected},
		{"submitted", []timesheet.EntryStatus{timesheet.StatusSubmitted, timesheet.StatusDraft}, timesheet.WeekStatusSubmitted},
		{"draft only", []timesheet.EntryStatus{timesheet.StatusDraft}, timesheet.WeekStatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []timesheet.Entry
			for i, status := range tt.statuses {
				entries = append(entries, entry(weekStart.AddDays(i), 4, status))
			}
			view := NewWeeklyCalculator().Build(weekStart, entries)
			assert.Equal(t, tt.want, view.WeekStatus)
		})
	}
}

func TestBuild_WeekLocking(t *testing.T) {
	// Submitted-only week is locked.
	view := NewWeeklyCalculator().Build(weekStart, []timesheet.Entry{
		entry(weekStart, 8, timesheet.StatusSubmitted),
	})
	assert.False(t, view.CanAddEntries)

	// A rejection keeps the week open even alongside approved entries.
	view = NewWeeklyCalculator().Build(weekStart, []timesheet.Entry{
		entry(weekStart, 8, timesheet.StatusApproved),
		entry(weekStart.AddDays(1), 8, timesheet.StatusRejected),
	})
	assert.True(t, view.CanAddEntries)
	assert.True(t, view.CanSubmit)

	// Draft-only week is open.
	view = NewWeeklyCalculator().Build(weekStart, []timesheet.Entry{
		entry(weekStart, 8, timesheet.StatusDraft),
	})
	assert.True(t, view.CanAddEntries)
}

func TestBuild_IgnoresEntriesOutsideWeek(t *testing.T) {
	view := NewWeeklyCalculator().Build(weekStart, []timesheet.Entry{
		entry(weekStart.AddDays(-1), 8, timesheet.StatusDraft),
		entry(weekStart.AddDays(7), 8, timesheet.StatusDraft),
		entry(weekStart, 3, timesheet.StatusDraft),
	})

	assert.Equal(t, 3.0, view.TotalHours)
	assert.Equal(t, 1, view.EntryCount)
}

func TestBuild_GroupingIsZoneIndependent(t *testing.T) {
	// Once work_date is a key, the projection no longer depends on any zone:
	// the same entries produce the same grouping wherever they are read.
	entries := []timesheet.Entry{
		entry("2024-06-03", 8, timesheet.StatusDraft),
		entry("2024-06-09", 2, timesheet.StatusDraft), // Sunday, same ISO week
	}

	first := NewWeeklyCalculator().Build(weekStart, entries)
	second := NewWeeklyCalculator().Build(weekStart, entries)

	assert.Equal(t, first, second)
	assert.Equal(t, 10.0, first.TotalHours)
}
