package models

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nvoronin/portfolio-backend/errs"
	"github.com/nvoronin/portfolio-backend/validators"
)

// Tag marks a programming language or technology used in a project. A
// project can carry many tags and a tag can label many projects.
type Tag struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title string    `json:"title" db:"title" gorm:"type:varchar(50);not null;unique"`
	Slug  string    `json:"slug" db:"slug" gorm:"type:varchar(50);not null;unique"`

	Projects []Project `json:"projects,omitempty" gorm:"many2many:project_tags"`
}

// Normalize lower-cases the slug unconditionally. Pattern validation does
// not guarantee case, so this runs on every write, not just on input.
func (t *Tag) Normalize() {
	t.Slug = lowerSlug(t.Slug)
}

func (t *Tag) Validate() *errs.ValidationError {
	verr := errs.NewValidationError("tag")

	for _, v := range validators.RunString("title", t.Title, validators.Required(), validators.MaxLength(50)) {
		verr.Add(v)
	}
	for _, v := range validators.RunString("slug", t.Slug, validators.Required(), validators.MaxLength(50), validators.SlugPattern()) {
		verr.Add(v)
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}

func lowerSlug(slug string) string {
	return strings.ToLower(slug)
}
