package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nvoronin/portfolio-backend/media"
	"github.com/nvoronin/portfolio-backend/models"
)

func setupTestDB(t *testing.T) (Database, media.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, models.AutoMigrate(db), "AutoMigrate failed")

	store, err := media.NewFSStore(media.Config{Root: t.TempDir()})
	require.NoError(t, err)

	return New(db, store), store
}

func TestAutoMigrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	for _, table := range []string{"projects", "tags", "statuses", "pages", "project_tags"} {
		require.True(t, db.Migrator().HasTable(table), "Expected table %s to exist", table)
	}
}
