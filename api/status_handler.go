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

type statusHandler struct {
	responder  Responder
	logger     zerolog.Logger
	statusRepo *database.StatusRepo
}

func newStatusHandler(statusRepo *database.StatusRepo) statusHandler {
	logger := log.With().Str("handlerName", "statusHandler").Logger()

	return statusHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		statusRepo: statusRepo,
	}
}

// getAllStatuses retrieves all statuses
func (h statusHandler) getAllStatuses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses, err := h.statusRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "statuses", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"statuses": statuses,
			"total":    len(statuses),
		})
	}
}

// createStatus creates a new status
func (h statusHandler) createStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode status request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		status := &models.Status{Title: req.Title}
		if err := h.statusRepo.Save(r.Context(), status); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "status", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, status)
	}
}

// updateStatus updates an existing status
func (h statusHandler) updateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statusID, ok := h.parseID(w, chi.URLParam(r, "statusID"))
		if !ok {
			return
		}

		status, err := h.statusRepo.FindByID(statusID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "status", err))
			return
		}

		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode status request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		status.Title = req.Title
		if err := h.statusRepo.Save(r.Context(), status); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "status", err))
			return
		}

		h.responder.WriteJSON(w, status)
	}
}

// deleteStatus deletes a status; dependent projects keep existing with
// their status reference cleared
func (h statusHandler) deleteStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statusID, ok := h.parseID(w, chi.URLParam(r, "statusID"))
		if !ok {
			return
		}

		if err := h.statusRepo.Delete(r.Context(), statusID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "status", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "status deleted successfully",
		})
	}
}

func (h statusHandler) parseID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	if raw == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing statusID"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid statusID"))
		return uuid.Nil, false
	}
	return id, true
}
