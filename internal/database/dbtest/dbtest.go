// Package dbtest opens throwaway SQLite databases carrying the full schema.
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andreprog02/saas-sst/internal/database"
)

// Open returns a migrated in-memory database closed at the end of the test
func Open(t *testing.T) *database.Connection {
	t.Helper()

	cfg := database.GormConfig()
	cfg.PrepareStmt = false
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(sqlite.Open(":memory:"), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	conn := &database.Connection{DB: db}
	require.NoError(t, database.NewMigrator(conn).Up())

	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}
