package timesheet

import (
	"sort"

	"github.com/nimbus-hr/timesheet-backend-go/internal/domain/timesheet"
	"github.com/nimbus-hr/timesheet-backend-go/internal/pkg/dateutil"
)

// WeeklyCalculator folds a week's entries into the derived WeeklyView. It is
// pure and stateless: no I/O, no caching, safe to run concurrently with any
// number of readers.
type WeeklyCalculator struct{}

func NewWeeklyCalculator() *WeeklyCalculator {
	return &WeeklyCalculator{}
}

// Build computes the projection for [weekStart, weekStart+6]. Entries whose
// work date falls outside the week are ignored.
func (c *WeeklyCalculator) Build(weekStart dateutil.DateKey, entries []timesheet.Entry) timesheet.WeeklyView {
	view := timesheet.WeeklyView{
		WeekStart:     weekStart,
		WeekEnd:       dateutil.WeekEnd(weekStart),
		MissingDays:   []dateutil.DateKey{},
		HighHoursDays: []dateutil.DateKey{},
	}

	dayHours := make(map[dateutil.DateKey]float64)
	dayEntries := make(map[dateutil.DateKey]int)
	activityHours := make(map[string]float64)
	projectHours := make(map[string]float64)

	var anySubmitted, anyRejected, anyApproved, anyDraft bool
	allApproved := true

	for _, e := range entries {
		if !dateutil.InWeek(e.WorkDate, weekStart) {
			continue
		}

		view.EntryCount++
		view.TotalHours += e.HoursWorked
		if e.IsBillable {
			view.BillableHours += e.HoursWorked
		} else {
			view.NonBillableHours += e.HoursWorked
		}
		if e.BillingAmount != nil {
			view.TotalAmount += *e.BillingAmount
		}

		dayHours[e.WorkDate] += e.HoursWorked
		dayEntries[e.WorkDate]++

		activityHours[activityLabel(e)] += e.HoursWorked
		projectHours[projectLabel(e)] += e.HoursWorked

		switch e.Status {
		case timesheet.StatusSubmitted:
			anySubmitted = true
			allApproved = false
		case timesheet.StatusRejected:
			anyRejected = true
			allApproved = false
		case timesheet.StatusApproved:
			anyApproved = true
		default:
			anyDraft = true
			allApproved = false
		}
	}

	for _, day := range dateutil.WeekDays(weekStart) {
		if dayEntries[day] == 0 {
			view.MissingDays = append(view.MissingDays, day)
		}
		if dayHours[day] > timesheet.HighHoursDayThreshold {
			view.HighHoursDays = append(view.HighHoursDays, day)
		}
	}

	view.ActivityBreakdown = sortedBreakdown(activityHours)
	view.ProjectBreakdown = sortedBreakdown(projectHours)

	view.Overtime = view.TotalHours > timesheet.OvertimeThresholdHours
	if view.Overtime {
		view.OvertimeHours = view.TotalHours - timesheet.OvertimeThresholdHours
	}

	switch {
	case view.EntryCount > 0 && allApproved:
		view.WeekStatus = timesheet.WeekStatusApproved
	case anyRejected:
		view.WeekStatus = timesheet.WeekStatusPartiallyRejected
	case anySubmitted:
		view.WeekStatus = timesheet.WeekStatusSubmitted
	default:
		view.WeekStatus = timesheet.WeekStatusDraft
	}

	// A week under review or fully approved is locked for new entries unless
	// a rejection reopened it for correction.
	locked := (anySubmitted || anyApproved) && !anyRejected
	view.CanAddEntries = !locked

	// The submit gate mirrors the default target set: draft and rejected
	// entries both count as submittable.
	view.CanSubmit = anyDraft || anyRejected

	return view
}

func activityLabel(e timesheet.Entry) string {
	if e.ActivityType == "" {
		return "unspecified"
	}
	return e.ActivityType
}

func projectLabel(e timesheet.Entry) string {
	switch {
	case e.ProjectName != nil:
		return *e.ProjectName
	case e.ProjectID != nil:
		return *e.ProjectID
	default:
		return "unassigned"
	}
}

func sortedBreakdown(hours map[string]float64) []timesheet.BreakdownItem {
	items := make([]timesheet.BreakdownItem, 0, len(hours))
	for label, h := range hours {
		items = append(items, timesheet.BreakdownItem{Label: label, Hours: h})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Hours != items[j].Hours {
			return items[i].Hours > items[j].Hours
		}
		return items[i].Label < items[j].Label
	})
	return items
}
