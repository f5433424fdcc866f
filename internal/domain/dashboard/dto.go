package dashboard

import (
	"time"

	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
)

type AttendanceCounts struct {
	PresentCount int `json:"presentCount"`
	AbsentCount  int `json:"absentCount"`
	LeaveCount   int `json:"leaveCount"`
	LateCount    int `json:"lateCount"`
}

type AttendanceSummary struct {
	Records []attendance.AttendanceResponse `json:"records"`
	Counts  AttendanceCounts                `json:"counts"`
}

type TaskSummary struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Priority string  `json:"priority"`
	DateDue  *string `json:"dateDue,omitempty"`
}

type LeaveBalances struct {
	SickLeave       float64 `json:"sickLeave"`
	PaidLeave       float64 `json:"paidLeave"`
	AvailableLeaves float64 `json:"availableLeaves"`
}

type DashboardData struct {
	Attendance AttendanceSummary `json:"attendance"`
	Tasks      []TaskSummary     `json:"tasks"`
	Leaves     LeaveBalances     `json:"leaves"`
}

// Calendar flags.
const (
	FlagWeekend = "weekend"
	FlagRemote  = "remote"
	FlagMissing = "missing"
	FlagLate    = "late"
	FlagEarly   = "early"
)

type MonthlyCalendar struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	// AttendanceData maps YYYY-MM-DD to the day's flags.
	AttendanceData map[string][]string `json:"attendanceData"`
	// EarlyOutData maps YYYY-MM-DD to minutes short of a full day.
	EarlyOutData map[string]int `json:"earlyOutData"`
}

// CalendarRules are the policy thresholds the calendar is built with.
type CalendarRules struct {
	Location     *time.Location
	WeekendDay   time.Weekday
	LateHour     int
	FullDayHours float64
}
