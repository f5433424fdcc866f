package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
	_ "time/tzdata" // policy timezones must resolve on minimal images

	"github.com/BurntSushi/toml"
)

// Policy holds HR rules that operations may tune without a redeploy of
// infrastructure settings.
type Policy struct {
	Timezone string `toml:"timezone"`

	Reconcile struct {
		Hour   int `toml:"hour"`
		Minute int `toml:"minute"`
	} `toml:"reconcile"`

	Attendance struct {
		LateHour      int     `toml:"late_hour"`
		FullDayHours  float64 `toml:"full_day_hours"`
		WeekendDayStr string  `toml:"weekend_day"`
	} `toml:"attendance"`

	Leave struct {
		DefaultSickLeave float64 `toml:"default_sick_leave"`
		DefaultPaidLeave float64 `toml:"default_paid_leave"`
	} `toml:"leave"`

	Account struct {
		DefaultPasswordSuffix string `toml:"default_password_suffix"`
	} `toml:"account"`

	location *time.Location
}

// DefaultPolicy mirrors configs/policy.toml.
func DefaultPolicy() Policy {
	var p Policy
	p.Timezone = "Asia/Kolkata"
	p.Reconcile.Hour = 23
	p.Reconcile.Minute = 0
	p.Attendance.LateHour = 11
	p.Attendance.FullDayHours = 8
	p.Attendance.WeekendDayStr = "Sunday"
	p.Leave.DefaultSickLeave = 0
	p.Leave.DefaultPaidLeave = 0
	p.Account.DefaultPasswordSuffix = "@12345"
	return p
}

// LoadPolicy decodes the TOML policy file at path on top of DefaultPolicy.
// A missing file is not an error.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return policy, policy.resolve()
		}
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}

	if _, err := toml.Decode(string(data), &policy); err != nil {
		return Policy{}, fmt.Errorf("decode policy file: %w", err)
	}

	return policy, policy.resolve()
}

func (p *Policy) resolve() error {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return fmt.Errorf("invalid policy timezone %q: %w", p.Timezone, err)
	}
	p.location = loc
	return nil
}

// Location returns the timezone calendar dates are computed in.
func (p Policy) Location() *time.Location {
	if p.location == nil {
		return time.UTC
	}
	return p.location
}

// WeekendDay returns the configured weekly off day.
func (p Policy) WeekendDay() time.Weekday {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == p.Attendance.WeekendDayStr {
			return d
		}
	}
	return time.Sunday
}

func (p Policy) Validate() error {
	if p.Reconcile.Hour < 0 || p.Reconcile.Hour > 23 {
		return fmt.Errorf("reconcile.hour must be between 0 and 23")
	}
	if p.Reconcile.Minute < 0 || p.Reconcile.Minute > 59 {
		return fmt.Errorf("reconcile.minute must be between 0 and 59")
	}
	if p.Attendance.LateHour < 0 || p.Attendance.LateHour > 23 {
		return fmt.Errorf("attendance.late_hour must be between 0 and 23")
	}
	if p.Attendance.FullDayHours <= 0 {
		return fmt.Errorf("attendance.full_day_hours must be positive")
	}
	if p.Leave.DefaultSickLeave < 0 || p.Leave.DefaultPaidLeave < 0 {
		return fmt.Errorf("default leave balances must not be negative")
	}
	return nil
}
