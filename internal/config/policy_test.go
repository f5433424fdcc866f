package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPolicy_MissingFileUsesDefaults(t *testing.T) {
	policy, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, 23, policy.Reconcile.Hour)
	assert.Equal(t, 11, policy.Attendance.LateHour)
	assert.Equal(t, "@12345", policy.Account.DefaultPasswordSuffix)
	assert.Equal(t, "Asia/Kolkata", policy.Location().String())
	assert.Equal(t, time.Sunday, policy.WeekendDay())
}

func TestLoadPolicy_OverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.toml")
	content := `
timezone = "UTC"

[reconcile]
hour = 22
minute = 30

[attendance]
late_hour = 10
full_day_hours = 9.0
weekend_day = "Saturday"

[leave]
default_sick_leave = 6
default_paid_leave = 12
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	policy, err := LoadPolicy(path)
	require.NoError(t, err)

	assert.Equal(t, 22, policy.Reconcile.Hour)
	assert.Equal(t, 30, policy.Reconcile.Minute)
	assert.Equal(t, 10, policy.Attendance.LateHour)
	assert.Equal(t, 9.0, policy.Attendance.FullDayHours)
	assert.Equal(t, time.Saturday, policy.WeekendDay())
	assert.Equal(t, 6.0, policy.Leave.DefaultSickLeave)
	assert.Equal(t, 12.0, policy.Leave.DefaultPaidLeave)
	assert.Equal(t, time.UTC, policy.Location())
	// untouched keys keep their defaults
	assert.Equal(t, "@12345", policy.Account.DefaultPasswordSuffix)
	assert.NoError(t, policy.Validate())
}

func TestLoadPolicy_InvalidTimezone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.toml")
	require.NoError(t, os.WriteFile(path, []byte(`timezone = "Mars/Olympus"`), 0o600))

	_, err := LoadPolicy(path)
	assert.Error(t, err)
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Policy)
	}{
		{"reconcile hour out of range", func(p *Policy) { p.Reconcile.Hour = 24 }},
		{"reconcile minute out of range", func(p *Policy) { p.Reconcile.Minute = -1 }},
		{"late hour out of range", func(p *Policy) { p.Attendance.LateHour = 30 }},
		{"zero full day hours", func(p *Policy) { p.Attendance.FullDayHours = 0 }},
		{"negative default balance", func(p *Policy) { p.Leave.DefaultPaidLeave = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPolicy()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Errorf("Validate() expected error for %s", tt.name)
			}
		})
	}
}
