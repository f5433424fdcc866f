package dashboard

import (
	"context"
	"time"
)

type DashboardService interface {
	// GetAllData returns month-to-date attendance up to yesterday, the
	// user's tasks and leave balances.
	GetAllData(ctx context.Context, userID string) (DashboardData, error)
	// MonthlyCalendar flags each day of the month containing at.
	MonthlyCalendar(ctx context.Context, userID string, at time.Time) (MonthlyCalendar, error)
}
