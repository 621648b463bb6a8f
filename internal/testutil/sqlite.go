// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"course-advisor-be/internal/model"
	"course-advisor-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated in-memory SQLite store private to the test.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.OpenQuiet(database.DriverSQLite, dsn)
	require.NoError(t, err)
	require.NoError(t, model.Migrate(context.Background(), db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
