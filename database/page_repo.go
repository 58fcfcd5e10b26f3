package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nvoronin/portfolio-backend/errs"
	"github.com/nvoronin/portfolio-backend/models"
)

type PageRepo struct {
	db *gorm.DB
}

func NewPageRepo(db *gorm.DB) *PageRepo {
	return &PageRepo{db}
}

// FindAll returns all static pages from the database
func (r *PageRepo) FindAll() ([]*models.Page, error) {
	var pages []*models.Page
	err := r.db.Order("title").Find(&pages).Error
	return pages, err
}

// FindBySlug returns the page published under slug.
func (r *PageRepo) FindBySlug(slug string) (*models.Page, error) {
	var page models.Page
	err := r.db.First(&page, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("page")
		}
		return nil, err
	}
	return &page, nil
}

// FindMain returns the landing page content.
func (r *PageRepo) FindMain() (*models.Page, error) {
	var page models.Page
	err := r.db.First(&page, "is_main = ?", true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("page")
		}
		return nil, err
	}
	return &page, nil
}

// FindByID returns a page by its ID
func (r *PageRepo) FindByID(id uuid.UUID) (*models.Page, error) {
	var page models.Page
	err := r.db.First(&page, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("page")
		}
		return nil, err
	}
	return &page, nil
}

// Save creates or updates a page, running the same slug pipeline projects
// use: derive from title when empty, lower-case otherwise, then validate.
func (r *PageRepo) Save(ctx context.Context, page *models.Page) error {
	page.Normalize()
	if verr := page.Validate(); verr != nil {
		return verr
	}

	if page.ID == uuid.Nil {
		page.ID = uuid.New()
	}

	if err := r.checkUnique(page); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// At most one main page: marking this one demotes the others.
		if page.IsMain {
			if err := tx.Model(&models.Page{}).
				Where("is_main = ? AND id <> ?", true, page.ID).
				Update("is_main", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(page).Error
	})
	if err != nil {
		return errs.NewDatabaseError("save", "page", err)
	}
	return nil
}

// Delete removes a page from the database by id
func (r *PageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.FindByID(id); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Page{}, "id = ?", id).Error; err != nil {
		return errs.NewDatabaseError("delete", "page", err)
	}
	return nil
}

func (r *PageRepo) checkUnique(page *models.Page) error {
	verr := errs.NewValidationError("page")

	var count int64
	err := r.db.Model(&models.Page{}).
		Where("title = ? AND id <> ?", page.Title, page.ID).
		Count(&count).Error
	if err != nil {
		return errs.NewDatabaseError("check title uniqueness of", "page", err)
	}
	if count > 0 {
		verr.Add(errs.Violation{
			Field:   "title",
			Code:    errs.CodeUnique,
			Message: "a page with this title already exists",
		})
	}

	err = r.db.Model(&models.Page{}).
		Where("slug = ? AND id <> ?", page.Slug, page.ID).
		Count(&count).Error
	if err != nil {
		return errs.NewDatabaseError("check slug uniqueness of", "page", err)
	}
	if count > 0 {
		verr.Add(errs.Violation{
			Field:   "slug",
			Code:    errs.CodeUnique,
			Message: "a page with this slug already exists",
		})
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}
