package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nvoronin/portfolio-backend/errs"
	"github.com/nvoronin/portfolio-backend/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns all tags from the database
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Order("title").Find(&tags).Error
	return tags, err
}

// FindByID returns a tag by its ID
func (r *TagRepo) FindByID(id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("tag")
		}
		return nil, err
	}
	return &tag, nil
}

// FindByIDs returns the tags matching ids. Used to resolve tag references
// on project writes.
func (r *TagRepo) FindByIDs(ids []uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.Find(&tags, "id IN ?", ids).Error
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, errs.NewNotFound("tag")
	}
	return tags, nil
}

// Save creates or updates a tag. The slug is lower-cased before validation
// runs; pattern validation alone does not guarantee case.
func (r *TagRepo) Save(ctx context.Context, tag *models.Tag) error {
	tag.Normalize()
	if verr := tag.Validate(); verr != nil {
		return verr
	}

	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}

	if err := r.checkUnique(tag); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Save(tag).Error; err != nil {
		return errs.NewDatabaseError("save", "tag", err)
	}
	return nil
}

// Delete removes a tag and its project association rows. The projects the
// tag labeled are untouched.
func (r *TagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.FindByID(id)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(tag).Association("Projects").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, "id = ?", id).Error
	})
	if err != nil {
		return errs.NewDatabaseError("delete", "tag", err)
	}
	return nil
}

func (r *TagRepo) checkUnique(tag *models.Tag) error {
	verr := errs.NewValidationError("tag")

	var count int64
	err := r.db.Model(&models.Tag{}).
		Where("title = ? AND id <> ?", tag.Title, tag.ID).
		Count(&count).Error
	if err != nil {
		return errs.NewDatabaseError("check title uniqueness of", "tag", err)
	}
	if count > 0 {
		verr.Add(errs.Violation{
			Field:   "title",
			Code:    errs.CodeUnique,
			Message: "a tag with this title already exists",
		})
	}

	err = r.db.Model(&models.Tag{}).
		Where("slug = ? AND id <> ?", tag.Slug, tag.ID).
		Count(&count).Error
	if err != nil {
		return errs.NewDatabaseError("check slug uniqueness of", "tag", err)
	}
	if count > 0 {
		verr.Add(errs.Violation{
			Field:   "slug",
			Code:    errs.CodeUnique,
			Message: "a tag with this slug already exists",
		})
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}
