package service

import (
	"path/filepath"
	"testing"

	"github.com/abidalfrz/expense-tracker-webapp/internal/config"
	"github.com/abidalfrz/expense-tracker-webapp/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a throwaway sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")
	return db
}

// low cost keeps the suites fast
const testBcryptCost = 4
