package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webwhiz/hrms-backend/internal/domain/attendance"
	"github.com/webwhiz/hrms-backend/internal/repository/postgresql"
)

func TestAttendanceRepository_Create_DuplicateDay(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	u := createTestUser(t, db, "clock@example.com", "Employee", 0, 0)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	in := time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, attendance.Attendance{UserID: u.ID, Date: day, ClocksIn: &in, Status: attendance.StatusPresent})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Attendance{UserID: u.ID, Date: day, ClocksIn: &in, Status: attendance.StatusPresent})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceRepository_InsertIfAbsent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	u := createTestUser(t, db, "sweep@example.com", "Employee", 0, 0)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	in := time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, attendance.Attendance{UserID: u.ID, Date: day, ClocksIn: &in, Status: attendance.StatusPresent})
	require.NoError(t, err)

	inserted, err := repo.InsertIfAbsent(ctx, attendance.Attendance{UserID: u.ID, Date: day, TotalHours: decimal.Zero, Status: attendance.StatusAbsent})
	require.NoError(t, err)
	assert.False(t, inserted)

	found, err := repo.GetByUserAndDate(ctx, u.ID, day)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, found.Status)

	next := day.AddDate(0, 0, 1)
	inserted, err = repo.InsertIfAbsent(ctx, attendance.Attendance{UserID: u.ID, Date: next, TotalHours: decimal.Zero, Status: attendance.StatusAbsent})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.InsertIfAbsent(ctx, attendance.Attendance{UserID: u.ID, Date: next, TotalHours: decimal.Zero, Status: attendance.StatusLeave})
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestAttendanceRepository_List_ExcludeFounders(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	founder := createTestUser(t, db, "founder@example.com", "Founder", 0, 0)
	employee := createTestUser(t, db, "staff@example.com", "Employee", 0, 0)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, id := range []string{founder.ID, employee.ID} {
		_, err := repo.InsertIfAbsent(ctx, attendance.Attendance{UserID: id, Date: day, TotalHours: decimal.Zero, Status: attendance.StatusAbsent})
		require.NoError(t, err)
	}

	records, err := repo.List(ctx, attendance.ListFilter{All: true, ExcludeFounders: true})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, employee.ID, records[0].UserID)
}

func TestAttendanceRepository_Update_DateTaken(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(db)

	u := createTestUser(t, db, "moved@example.com", "Employee", 0, 0)
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	in := time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, attendance.Attendance{UserID: u.ID, Date: monday, ClocksIn: &in, Status: attendance.StatusPresent})
	require.NoError(t, err)
	second, err := repo.Create(ctx, attendance.Attendance{UserID: u.ID, Date: tuesday, ClocksIn: &in, Status: attendance.StatusPresent})
	require.NoError(t, err)

	second.Date = monday
	err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, attendance.ErrDuplicateDate)
	assert.NotErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	found, err := repo.GetByUserAndDate(ctx, u.ID, tuesday)
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)
}
