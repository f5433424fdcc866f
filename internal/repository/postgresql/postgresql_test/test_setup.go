package postgresql_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/webwhiz/hrms-backend/internal/domain/user"
	"github.com/webwhiz/hrms-backend/internal/pkg/database"
	"github.com/webwhiz/hrms-backend/internal/repository/postgresql"
)

// openTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	_, err = db.Exec(ctx, string(schema))
	require.NoError(t, err)

	_, err = db.Exec(ctx, "TRUNCATE TABLE tasks, projects, attendances, leaves, users CASCADE")
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *database.DB, email string, roleName string, paid, sick float64) user.User {
	t.Helper()
	ctx := context.Background()

	var roleID *string
	if roleName != "" {
		r, err := postgresql.NewRoleRepository(db).GetByName(ctx, roleName)
		require.NoError(t, err)
		roleID = &r.ID
	}

	created, err := postgresql.NewUserRepository(db).Create(ctx, user.User{
		Name:         "Test " + email,
		Email:        email,
		PasswordHash: "hash",
		RoleID:       roleID,
		Status:       user.StatusActive,
		PaidLeave:    decimal.NewFromFloat(paid),
		SickLeave:    decimal.NewFromFloat(sick),
	})
	require.NoError(t, err)
	return created
}
