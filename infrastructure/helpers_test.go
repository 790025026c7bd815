package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.DBDSN = ":memory:"
	return cfg
}

// newTestDB returns an in-memory SQLite database with all migrations applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewConnection(testConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	_, err = NewMigrator(db, Migrations, zap.NewNop()).Up(context.Background())
	require.NoError(t, err)
	return db
}
