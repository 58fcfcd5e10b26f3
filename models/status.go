package models

import (
	"github.com/google/uuid"

	"github.com/nvoronin/portfolio-backend/errs"
	"github.com/nvoronin/portfolio-backend/validators"
)

// Status is a project lifecycle label ("active", "complete"). A status can
// label many projects; a project has at most one status.
type Status struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title string    `json:"title" db:"title" gorm:"type:varchar(16);not null;unique"`
}

func (s *Status) Validate() *errs.ValidationError {
	verr := errs.NewValidationError("status")

	for _, v := range validators.RunString("title", s.Title, validators.Required(), validators.MaxLength(16)) {
		verr.Add(v)
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}
