package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/nvoronin/portfolio-backend/errs"
	"github.com/nvoronin/portfolio-backend/validators"
)

// PreviewMaxSize is the byte limit for an uploaded preview image (2.5 MiB).
const PreviewMaxSize int64 = 5 * 1024 * 1024 / 2

var (
	PreviewSizeValidator      = validators.NewFileSizeValidator(PreviewMaxSize)
	PreviewExtensionValidator = validators.NewFileExtensionValidator("jpg", "jpeg")
)

// Project is the central portfolio record. Slug is the stable public key
// for the read surface; Preview holds the media-store key of the uploaded
// image, not the image itself.
type Project struct {
	ID               uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title            string     `json:"title" db:"title" gorm:"type:varchar(255);not null;unique"`
	Slug             string     `json:"slug" db:"slug" gorm:"type:varchar(128);not null;unique"`
	Preview          string     `json:"preview,omitempty" db:"preview" gorm:"type:text"`
	ShortDescription string     `json:"short_description" db:"short_description" gorm:"type:text;not null"`
	FullDescription  string     `json:"full_description" db:"full_description" gorm:"type:text;not null"`
	NumberOfPeople   int        `json:"number_of_people" db:"number_of_people" gorm:"type:integer;not null;default:1"`
	DateOfCreated    time.Time  `json:"date_of_created" db:"date_of_created" gorm:"type:timestamp;not null"`
	DateOfUpdated    time.Time  `json:"date_of_updated" db:"date_of_updated" gorm:"type:timestamp;not null"`
	DateOfEnd        *time.Time `json:"date_of_end,omitempty" db:"date_of_end" gorm:"type:timestamp"`
	IsActive         bool       `json:"is_active" db:"is_active" gorm:"not null"`
	StatusID         *uuid.UUID `json:"status_id,omitempty" db:"status_id" gorm:"type:uuid;index"`

	Status *Status `json:"status,omitempty" gorm:"foreignKey:StatusID;references:ID;constraint:OnDelete:SET NULL"`
	Tags   []Tag   `json:"tags,omitempty" gorm:"many2many:project_tags;constraint:OnDelete:CASCADE"`
}

// Normalize derives the slug from the title when it is empty, and
// lower-cases it unconditionally otherwise. Runs before Validate: the
// derived value is what uniqueness and pattern checks must see.
func (p *Project) Normalize() {
	if p.Slug == "" {
		p.Slug = validators.Slugify(p.Title)
	} else {
		p.Slug = lowerSlug(p.Slug)
	}
}

// Validate re-checks every field constraint regardless of what the caller
// already checked, and aggregates all violations into one error.
func (p *Project) Validate() *errs.ValidationError {
	verr := errs.NewValidationError("project")

	for _, v := range validators.RunString("title", p.Title, validators.Required(), validators.MaxLength(255)) {
		verr.Add(v)
	}
	for _, v := range validators.RunString("slug", p.Slug, validators.Required(), validators.MaxLength(128), validators.SlugPattern()) {
		verr.Add(v)
	}
	for _, v := range validators.RunString("short_description", p.ShortDescription, validators.Required()) {
		verr.Add(v)
	}
	for _, v := range validators.RunString("full_description", p.FullDescription, validators.Required()) {
		verr.Add(v)
	}
	for _, v := range validators.RunInt("number_of_people", p.NumberOfPeople, validators.IntRange(1, 1000)) {
		verr.Add(v)
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}
