package api

import (
	"time"

	"github.com/google/uuid"
)

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// projectRequest is the write payload for create/update. Optional fields
// use pointers so "omitted" and "zero" stay distinguishable: an absent
// number_of_people defaults to 1, an explicit 0 must fail validation.
type projectRequest struct {
	Title            string      `json:"title"`
	Slug             string      `json:"slug"`
	ShortDescription string      `json:"short_description"`
	FullDescription  string      `json:"full_description"`
	NumberOfPeople   *int        `json:"number_of_people"`
	DateOfEnd        *time.Time  `json:"date_of_end"`
	IsActive         *bool       `json:"is_active"`
	StatusID         *uuid.UUID  `json:"status_id"`
	TagIDs           []uuid.UUID `json:"tag_ids"`
}

type tagRequest struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type statusRequest struct {
	Title string `json:"title"`
}

type pageRequest struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
	IsMain  bool   `json:"is_main"`
}
