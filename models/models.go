package models

import "gorm.io/gorm"

// AllModels returns all models for migration.
// Note: Status must be migrated before Project, which references it.
func AllModels() []interface{} {
	return []interface{}{
		&Status{},
		&Tag{},
		&Project{},
		&Page{},
	}
}

// AutoMigrate runs GORM auto-migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
