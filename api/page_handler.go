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

type pageHandler struct {
	responder Responder
	logger    zerolog.Logger
	pageRepo  *database.PageRepo
}

func newPageHandler(pageRepo *database.PageRepo) pageHandler {
	logger := log.With().Str("handlerName", "pageHandler").Logger()

	return pageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		pageRepo:  pageRepo,
	}
}

// getMainPage serves the landing page content at the empty path.
func (h pageHandler) getMainPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.pageRepo.FindMain()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "main page", err))
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// getPageBySlug retrieves a static page by its slug
func (h pageHandler) getPageBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		page, err := h.pageRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "page", err))
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// createPage creates a new static page
func (h pageHandler) createPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode page request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		page := &models.Page{
			Title:   req.Title,
			Slug:    req.Slug,
			Content: req.Content,
			IsMain:  req.IsMain,
		}
		if err := h.pageRepo.Save(r.Context(), page); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "page", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, page)
	}
}

// updatePage updates an existing static page
func (h pageHandler) updatePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageID, ok := h.parseID(w, chi.URLParam(r, "pageID"))
		if !ok {
			return
		}

		page, err := h.pageRepo.FindByID(pageID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "page", err))
			return
		}

		var req pageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode page request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		page.Title = req.Title
		page.Slug = req.Slug
		page.Content = req.Content
		page.IsMain = req.IsMain
		if err := h.pageRepo.Save(r.Context(), page); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "page", err))
			return
		}

		h.responder.WriteJSON(w, page)
	}
}

// deletePage deletes a static page by ID
func (h pageHandler) deletePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageID, ok := h.parseID(w, chi.URLParam(r, "pageID"))
		if !ok {
			return
		}

		if err := h.pageRepo.Delete(r.Context(), pageID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "page", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "page deleted successfully",
		})
	}
}

func (h pageHandler) parseID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	if raw == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing pageID"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid pageID"))
		return uuid.Nil, false
	}
	return id, true
}
