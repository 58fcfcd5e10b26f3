package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nvoronin/portfolio-backend/database"
	"github.com/nvoronin/portfolio-backend/errs"
	"github.com/nvoronin/portfolio-backend/models"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

// getAllTags retrieves all tags
func (h tagHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"tags":  tags,
			"total": len(tags),
		})
	}
}

// createTag creates a new tag
func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode tag request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		tag := &models.Tag{Title: req.Title, Slug: req.Slug}
		if err := h.tagRepo.Save(r.Context(), tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "tag", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, tag)
	}
}

// updateTag updates an existing tag
func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, ok := h.parseID(w, chi.URLParam(r, "tagID"))
		if !ok {
			return
		}

		tag, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
			return
		}

		var req tagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode tag request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		tag.Title = req.Title
		tag.Slug = req.Slug
		if err := h.tagRepo.Save(r.Context(), tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "tag", err))
			return
		}

		h.responder.WriteJSON(w, tag)
	}
}

// deleteTag deletes a tag by ID, detaching it from any projects first
func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, ok := h.parseID(w, chi.URLParam(r, "tagID"))
		if !ok {
			return
		}

		if err := h.tagRepo.Delete(r.Context(), tagID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "tag", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "tag deleted successfully",
		})
	}
}

func (h tagHandler) parseID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	if raw == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing tagID"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid tagID"))
		return uuid.Nil, false
	}
	return id, true
}
