package database

import (
	"gorm.io/gorm"

	"github.com/nvoronin/portfolio-backend/media"
)

type Database struct {
	projectRepo *ProjectRepo
	tagRepo     *TagRepo
	statusRepo  *StatusRepo
	pageRepo    *PageRepo
}

// New initializes a new Database struct with each repository using a shared
// GORM database instance and, for repositories owning uploaded files, the
// media store.
func New(db *gorm.DB, store media.Store) Database {
	return Database{
		projectRepo: NewProjectRepo(db, store),
		tagRepo:     NewTagRepo(db),
		statusRepo:  NewStatusRepo(db),
		pageRepo:    NewPageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) StatusRepo() *StatusRepo {
	return d.statusRepo
}

func (d Database) PageRepo() *PageRepo {
	return d.pageRepo
}
