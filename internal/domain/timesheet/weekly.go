package timesheet

import "github.com/nimbus-hr/timesheet-backend-go/internal/pkg/dateutil"

// WeekStatus summarises the review state of a whole week.
type WeekStatus string

const (
	WeekStatusDraft             WeekStatus = "draft"
	WeekStatusSubmitted         WeekStatus = "submitted"
	WeekStatusApproved          WeekStatus = "approved"
	WeekStatusPartiallyRejected WeekStatus = "partially_rejected"
)

// OvertimeThresholdHours is the weekly total above which overtime is flagged.
const OvertimeThresholdHours = 40.0

// HighHoursDayThreshold flags week-days whose per-day total looks suspicious.
const HighHoursDayThreshold = 12.0

// BreakdownItem is one bucket of the per-activity or per-project hour split,
// sorted descending by hours for display.
type BreakdownItem struct {
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

// WeeklyView is the derived projection of one owner's entries for one ISO
// week. It is recomputed from current entry state on every read and never
// persisted; it has no identity of its own.
type WeeklyView struct {
	WeekStart dateutil.DateKey `json:"week_start"`
	WeekEnd   dateutil.DateKey `json:"week_end"`

	TotalHours       float64 `json:"total_hours"`
	BillableHours    float64 `json:"billable_hours"`
	NonBillableHours float64 `json:"non_billable_hours"`
	TotalAmount      float64 `json:"total_amount"`

	ActivityBreakdown []BreakdownItem `json:"activity_breakdown"`
	ProjectBreakdown  []BreakdownItem `json:"project_breakdown"`

	Overtime      bool    `json:"overtime"`
	OvertimeHours float64 `json:"overtime_hours"`

	MissingDays   []dateutil.DateKey `json:"missing_days"`
	HighHoursDays []dateutil.DateKey `json:"high_hours_days"`

	WeekStatus    WeekStatus `json:"week_status"`
	CanAddEntries bool       `json:"can_add_entries"`
	CanSubmit     bool       `json:"can_submit"`

	EntryCount int `json:"entry_count"`
}

// SubmissionResult is the outcome of a week submission.
type SubmissionResult struct {
	SubmittedCount int        `json:"submitted_count"`
	Week           WeeklyView `json:"week"`
}
