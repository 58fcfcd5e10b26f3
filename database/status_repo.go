package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nvoronin/portfolio-backend/errs"
	"github.com/nvoronin/portfolio-backend/models"
)

type StatusRepo struct {
	db *gorm.DB
}

func NewStatusRepo(db *gorm.DB) *StatusRepo {
	return &StatusRepo{db}
}

// FindAll returns all statuses from the database
func (r *StatusRepo) FindAll() ([]*models.Status, error) {
	var statuses []*models.Status
	err := r.db.Order("title").Find(&statuses).Error
	return statuses, err
}

// FindByID returns a status by its ID
func (r *StatusRepo) FindByID(id uuid.UUID) (*models.Status, error) {
	var status models.Status
	err := r.db.First(&status, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("status")
		}
		return nil, err
	}
	return &status, nil
}

// Save creates or updates a status.
func (r *StatusRepo) Save(ctx context.Context, status *models.Status) error {
	if verr := status.Validate(); verr != nil {
		return verr
	}

	if status.ID == uuid.Nil {
		status.ID = uuid.New()
	}

	var count int64
	err := r.db.Model(&models.Status{}).
		Where("title = ? AND id <> ?", status.Title, status.ID).
		Count(&count).Error
	if err != nil {
		return errs.NewDatabaseError("check title uniqueness of", "status", err)
	}
	if count > 0 {
		return errs.NewValidationError("status", errs.Violation{
			Field:   "title",
			Code:    errs.CodeUnique,
			Message: "a status with this title already exists",
		})
	}

	if err := r.db.WithContext(ctx).Save(status).Error; err != nil {
		return errs.NewDatabaseError("save", "status", err)
	}
	return nil
}

// Delete removes a status. Projects referencing it keep existing with their
// status reference cleared, never cascaded to deletion.
func (r *StatusRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.FindByID(id); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Project{}).
			Where("status_id = ?", id).
			Update("status_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Status{}, "id = ?", id).Error
	})
	if err != nil {
		return errs.NewDatabaseError("delete", "status", err)
	}
	return nil
}
