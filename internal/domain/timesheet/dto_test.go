package timesheet

import (
	"testing"

	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateEntryRequest {
	return CreateEntryRequest{
		OwnerID:     "emp-1",
		TenantID:    "tenant-1",
		WorkDate:    "2024-06-03",
		HoursWorked: 8,
		Description: "code review and pairing",
	}
}

func TestCreateEntryRequest_HoursBoundaries(t *testing.T) {
	tests := []struct {
		hours float64
		ok    bool
	}{
		{24.0, true},
		{24.01, false},
		{0, false},
		{-1, false},
		{0.25, true},
	}

	for _, tt := range tests {
		req := validCreateRequest()
		req.HoursWorked = tt.hours
		err := req.Validate()
		if tt.ok {
			assert.NoError(t, err, "hours %v", tt.hours)
		} else {
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs, "hours %v", tt.hours)
			assert.Contains(t, verrs.ToMap(), "hours_worked")
		}
	}
}

func TestCreateEntryRequest_DerivesHoursFromTimes(t *testing.T) {
	start, end, brk := "09:00", "17:30", 0.5
	req := validCreateRequest()
	req.HoursWorked = 0
	req.StartTime = &start
	req.EndTime = &end
	req.BreakHours = &brk

	require.NoError(t, req.Validate())
	assert.InDelta(t, 8, req.HoursWorked, 1e-9)
}

func TestCreateEntryRequest_ExplicitHoursWin(t *testing.T) {
	start, end := "09:00", "17:00"
	req := validCreateRequest()
	req.HoursWorked = 6
	req.StartTime = &start
	req.EndTime = &end

	require.NoError(t, req.Validate())
	assert.Equal(t, 6.0, req.HoursWorked)
}

func TestCreateEntryRequest_RejectsDanglingTask(t *testing.T) {
	taskID := "task-1"
	req := validCreateRequest()
	req.TaskID = &taskID

	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "task_id")
}

func TestCreateEntryRequest_RejectsTimestampWorkDate(t *testing.T) {
	req := validCreateRequest()
	req.WorkDate = "2024-06-03T10:00:00Z"

	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "work_date")
}

func TestSubmitWeekRequest_RequiresMonday(t *testing.T) {
	req := SubmitWeekRequest{OwnerID: "emp-1", TenantID: "tenant-1", WeekStart: "2024-06-05"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Contains(t, verrs.ToMap(), "week_start")

	req.WeekStart = "2024-06-03"
	assert.NoError(t, req.Validate())
}

func TestSubmitWeekRequest_RejectsMalformedEntryIDs(t *testing.T) {
	req := SubmitWeekRequest{
		OwnerID:   "emp-1",
		TenantID:  "tenant-1",
		WeekStart: "2024-06-03",
		EntryIDs:  []string{"not-an-id", "01900000-0000-7000-8000-000000000001"},
	}

	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)

	m := verrs.ToMap()
	assert.Contains(t, m, "entry_ids.not-an-id")
	assert.NotContains(t, m, "entry_ids.01900000-0000-7000-8000-000000000001")
}
