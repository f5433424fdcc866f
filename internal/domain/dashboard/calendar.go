package dashboard

import (
	"math"
	"strings"
	"time"

	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
)

// IsLate reports whether a clock-in falls at or after the late hour, in loc.
func IsLate(clocksIn time.Time, loc *time.Location, lateHour int) bool {
	return clocksIn.In(loc).Hour() >= lateHour
}

// BuildMonthlyCalendar flags every day of year/month from records.
func BuildMonthlyCalendar(year int, month time.Month, records []attendance.Attendance, rules CalendarRules) MonthlyCalendar {
	cal := MonthlyCalendar{
		Year:           year,
		Month:          int(month),
		AttendanceData: make(map[string][]string),
		EarlyOutData:   make(map[string]int),
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for day := first; day.Month() == month; day = day.AddDate(0, 0, 1) {
		if day.Weekday() == rules.WeekendDay {
			cal.AttendanceData[day.Format("2006-01-02")] = []string{FlagWeekend}
		}
	}

	fullDayMinutes := rules.FullDayHours * 60

	for _, r := range records {
		key := r.Date.Format("2006-01-02")
		flags := cal.AttendanceData[key]

		if r.Status != "" {
			flags = append(flags, strings.ToLower(string(r.Status)))
		}
		if r.HasLocation() {
			flags = append(flags, FlagRemote)
		}
		if r.IsOpen() {
			flags = append(flags, FlagMissing)
		}
		if r.ClocksIn != nil && IsLate(*r.ClocksIn, rules.Location, rules.LateHour) {
			flags = append(flags, FlagLate)
		}

		workedMinutes := r.TotalHours.InexactFloat64() * 60
		if workedMinutes > 0 && workedMinutes < fullDayMinutes {
			flags = append(flags, FlagEarly)
			if short := int(math.Round(fullDayMinutes - workedMinutes)); short > 0 {
				cal.EarlyOutData[key] = short
			}
		}

		cal.AttendanceData[key] = flags
	}

	return cal
}
