package models

import (
	"github.com/google/uuid"

	"github.com/nvoronin/portfolio-backend/errs"
	"github.com/nvoronin/portfolio-backend/validators"
)

// Page is a simple static page, resolved by slug. At most one page should
// be marked as the main landing page.
type Page struct {
	ID      uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title   string    `json:"title" db:"title" gorm:"type:varchar(255);not null;unique"`
	Slug    string    `json:"slug" db:"slug" gorm:"type:varchar(128);not null;unique"`
	Content string    `json:"content" db:"content" gorm:"type:text;not null"`
	IsMain  bool      `json:"is_main" db:"is_main" gorm:"not null;default:false"`
}

func (p *Page) Normalize() {
	if p.Slug == "" {
		p.Slug = validators.Slugify(p.Title)
	} else {
		p.Slug = lowerSlug(p.Slug)
	}
}

func (p *Page) Validate() *errs.ValidationError {
	verr := errs.NewValidationError("page")

	for _, v := range validators.RunString("title", p.Title, validators.Required(), validators.MaxLength(255)) {
		verr.Add(v)
	}
	for _, v := range validators.RunString("slug", p.Slug, validators.Required(), validators.MaxLength(128), validators.SlugPattern()) {
		verr.Add(v)
	}
	for _, v := range validators.RunString("content", p.Content, validators.Required()) {
		verr.Add(v)
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}
