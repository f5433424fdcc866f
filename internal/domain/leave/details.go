package leave

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type DayType string

const (
	DayFull       DayType = "Full Day"
	DayFirstHalf  DayType = "First Half"
	DaySecondHalf DayType = "Second Half"
)

var halfDay = decimal.NewFromFloat(0.5)

// Equivalent returns the fraction of a day the session consumes.
func (d DayType) Equivalent() decimal.Decimal {
	switch d {
	case DayFirstHalf, DaySecondHalf:
		return halfDay
	default:
		return decimal.NewFromInt(1)
	}
}

// Details maps an ISO date (YYYY-MM-DD) to the session taken that day.
type Details map[string]DayType

// CalendarDate strips the clock and zone from t, keeping its calendar day.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GenerateLeaveDetails returns one Full Day entry for every calendar day in
// [start, end].
func GenerateLeaveDetails(start, end time.Time) (Details, error) {
	start, end = CalendarDate(start), CalendarDate(end)
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	details := make(Details)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		details[day.Format(DateLayout)] = DayFull
	}
	return details, nil
}

// ApplyHalfDayOverrides returns a copy of details with the requested
// sessions applied. Dates outside details are ignored and any session other
// than First Half or Second Half resets the day to Full Day.
func ApplyHalfDayOverrides(details Details, overrides map[string]string) Details {
	merged := make(Details, len(details))
	for date, dayType := range details {
		merged[date] = dayType
	}

	for date, session := range overrides {
		if _, ok := merged[date]; !ok {
			continue
		}
		switch DayType(session) {
		case DayFirstHalf, DaySecondHalf:
			merged[date] = DayType(session)
		default:
			merged[date] = DayFull
		}
	}
	return merged
}

// DayEquivalents sums the day fractions of all entries.
func (d Details) DayEquivalents() decimal.Decimal {
	total := decimal.Zero
	for _, dayType := range d {
		total = total.Add(dayType.Equivalent())
	}
	return total
}

// Covers reports whether day has an entry.
func (d Details) Covers(day time.Time) bool {
	_, ok := d[CalendarDate(day).Format(DateLayout)]
	return ok
}

// Dates returns the keys in ascending order.
func (d Details) Dates() []string {
	dates := make([]string, 0, len(d))
	for date := range d {
		dates = append(dates, date)
	}
	slices.Sort(dates)
	return dates
}

// Value implements driver.Valuer for database storage
func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]DayType(d))
}

// Scan implements sql.Scanner for database retrieval
func (d *Details) Scan(value interface{}) error {
	if value == nil {
		*d = Details{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("failed to scan Details: invalid type")
	}

	m := make(map[string]DayType)
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	*d = m
	return nil
}
