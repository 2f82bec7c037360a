package timesheet

import (
	"testing"

	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectTargets_DefaultSet(t *testing.T) {
	entries := []timesheet.Entry{
		entry(weekStart, 8, timesheet.StatusDraft),
		entry(weekStart.AddDays(1), 8, timesheet.StatusRejected),
		entry(weekStart.AddDays(2), 8, timesheet.StatusSubmitted),
		entry(weekStart.AddDays(3), 8, timesheet.StatusApproved),
	}

	targets, verrs := selectTargets(entries, nil)
	require.Empty(t, verrs)

	// Draft and rejected both enter the default set; pending and approved
	// entries are left alone.
	require.Len(t, targets, 2)
	assert.Equal(t, timesheet.StatusDraft, targets[0].Status)
	assert.Equal(t, timesheet.StatusRejected, targets[1].Status)
}

func TestSelectTargets_ExplicitSubset(t *testing.T) {
	a := entry(weekStart, 8, timesheet.StatusDraft)
	b := entry(weekStart.AddDays(1), 8, timesheet.StatusDraft)

	targets, verrs := selectTargets([]timesheet.Entry{a, b}, []string{a.ID})
	require.Empty(t, verrs)
	require.Len(t, targets, 1)
	assert.Equal(t, a.ID, targets[0].ID)
}

func TestSelectTargets_DuplicateIDsCollapse(t *testing.T) {
	a := entry(weekStart, 8, timesheet.StatusDraft)
	b := entry(weekStart.AddDays(1), 8, timesheet.StatusDraft)

	// A repeated id must not target the same row twice; the second write
	// would miss its status predicate and abort the batch for nothing.
	targets, verrs := selectTargets([]timesheet.Entry{a, b}, []string{a.ID, a.ID, b.ID})
	require.Empty(t, verrs)
	require.Len(t, targets, 2)
	assert.Equal(t, a.ID, targets[0].ID)
	assert.Equal(t, b.ID, targets[1].ID)
}

func TestSelectTargets_UnknownIDRejected(t *testing.T) {
	a := entry(weekStart, 8, timesheet.StatusDraft)

	_, verrs := selectTargets([]timesheet.Entry{a}, []string{"someone-elses-entry"})
	require.Len(t, verrs, 1)
	assert.Contains(t, verrs[0].Field, "someone-elses-entry")
}

func TestValidateWeek_EmptyWeek(t *testing.T) {
	verrs := validateWeekForSubmission(nil, nil)

	// Both failures are itemized so the week can be fixed in one pass.
	m := verrs.ToMap()
	assert.Equal(t, "no entries to submit", m["entries"])
	assert.Equal(t, "no work days logged", m["missing_days"])
}

func TestValidateWeek_ShortDescriptionBlocksTarget(t *testing.T) {
	good := entry(weekStart, 8, timesheet.StatusDraft)
	bad := entry(weekStart.AddDays(1), 8, timesheet.StatusDraft)
	bad.Description = "short"
	week := []timesheet.Entry{good, bad}

	verrs := validateWeekForSubmission(week, week)

	require.Len(t, verrs, 1)
	assert.Contains(t, verrs[0].Field, bad.ID)
	assert.Contains(t, verrs[0].Field, "description")
}

func TestValidateWeek_NothingSubmittable(t *testing.T) {
	week := []timesheet.Entry{entry(weekStart, 8, timesheet.StatusApproved)}

	verrs := validateWeekForSubmission(week, nil)

	require.Len(t, verrs, 1)
	assert.Equal(t, "entry_ids", verrs[0].Field)
}

func TestValidateWeek_Passes(t *testing.T) {
	week := []timesheet.Entry{
		entry(weekStart, 8, timesheet.StatusDraft),
		entry(weekStart.AddDays(1), 8, timesheet.StatusRejected),
	}

	assert.Empty(t, validateWeekForSubmission(week, week))
}
