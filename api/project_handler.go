package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nvoronin/portfolio-backend/database"
	"github.com/nvoronin/portfolio-backend/errs"
	"github.com/nvoronin/portfolio-backend/media"
	"github.com/nvoronin/portfolio-backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	tagRepo     *database.TagRepo
	statusRepo  *database.StatusRepo
	media       media.Store
}

func newProjectHandler(projectRepo *database.ProjectRepo, tagRepo *database.TagRepo, statusRepo *database.StatusRepo, store media.Store) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		tagRepo:     tagRepo,
		statusRepo:  statusRepo,
		media:       store,
	}
}

// ProjectResponse wraps a project with the resolved preview URL.
type ProjectResponse struct {
	models.Project
	PreviewURL string `json:"preview_url,omitempty"`
}

// ProjectCollection represents multiple projects
type ProjectCollection struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
}

func (h projectHandler) toResponse(project *models.Project) ProjectResponse {
	resp := ProjectResponse{Project: *project}
	if project.Preview != "" {
		resp.PreviewURL = h.media.URL(project.Preview)
	}
	return resp
}

// getAllProjects retrieves all projects, optionally filtered by is_active
// via the `active` query parameter.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var activeOnly *bool
		if raw := r.URL.Query().Get("active"); raw != "" {
			active, err := strconv.ParseBool(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid active filter"))
				return
			}
			activeOnly = &active
		}

		projects, err := h.projectRepo.FindAll(activeOnly)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		response := ProjectCollection{
			Projects: make([]ProjectResponse, 0, len(projects)),
			Total:    len(projects),
		}
		for _, project := range projects {
			response.Projects = append(response.Projects, h.toResponse(project))
		}

		h.responder.WriteJSON(w, response)
	}
}

// getProjectBySlug retrieves a single project by its slug, the stable
// public key of the read surface.
func (h projectHandler) getProjectBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		project, err := h.projectRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, h.toResponse(project))
	}
}

// createProject creates a new project
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		project := &models.Project{
			NumberOfPeople: 1,
			IsActive:       true,
		}
		if err := h.applyRequest(project, req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Save(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		created, err := h.projectRepo.FindByID(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, h.toResponse(created))
	}
}

// updateProject updates an existing project. The preview slot is managed
// through the dedicated preview endpoints and survives field edits.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.parseID(w, chi.URLParam(r, "projectID"))
		if !ok {
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.applyRequest(project, req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Save(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		updated, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "project", err))
			return
		}

		h.responder.WriteJSON(w, h.toResponse(updated))
	}
}

// deleteProject deletes a project by ID
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.parseID(w, chi.URLParam(r, "projectID"))
		if !ok {
			return
		}

		if err := h.projectRepo.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// uploadPreview replaces the project's preview image. The file is rejected
// before anything is stored when its extension or size violates the
// constraints; the stale file of a previous upload is cleaned up by Save.
func (h projectHandler) uploadPreview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.parseID(w, chi.URLParam(r, "projectID"))
		if !ok {
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		file, header, err := r.FormFile("preview")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("missing preview file"))
			return
		}
		defer file.Close()

		verr := errs.NewValidationError("project")
		if v := models.PreviewExtensionValidator.Validate("preview", header.Filename); v != nil {
			verr.Add(*v)
		}
		if v := models.PreviewSizeValidator.Validate("preview", header.Size); v != nil {
			verr.Add(*v)
		}
		if verr.HasViolations() {
			h.responder.WriteError(w, verr)
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}

		key := media.PreviewKey(header.Filename)
		if err := h.media.Put(r.Context(), key, contentType, file); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project.Preview = key
		if err := h.projectRepo.Save(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update preview of", "project", err))
			return
		}

		h.responder.WriteJSON(w, h.toResponse(project))
	}
}

// deletePreview clears the preview slot; Save removes the stored file.
func (h projectHandler) deletePreview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := h.parseID(w, chi.URLParam(r, "projectID"))
		if !ok {
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		project.Preview = ""
		if err := h.projectRepo.Save(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("clear preview of", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "preview removed",
		})
	}
}

// applyRequest maps the write payload onto the model, resolving tag and
// status references. Reference resolution failures surface as 404s before
// any write happens.
func (h projectHandler) applyRequest(project *models.Project, req projectRequest) error {
	project.Title = req.Title
	project.Slug = req.Slug
	project.ShortDescription = req.ShortDescription
	project.FullDescription = req.FullDescription
	project.DateOfEnd = req.DateOfEnd

	if req.NumberOfPeople != nil {
		project.NumberOfPeople = *req.NumberOfPeople
	}
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}

	if req.StatusID != nil {
		if _, err := h.statusRepo.FindByID(*req.StatusID); err != nil {
			return err
		}
	}
	project.StatusID = req.StatusID
	project.Status = nil

	if req.TagIDs != nil {
		tags, err := h.tagRepo.FindByIDs(req.TagIDs)
		if err != nil {
			return err
		}
		if tags == nil {
			tags = []models.Tag{}
		}
		project.Tags = tags
	}
	return nil
}

func (h projectHandler) parseID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	if raw == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
		return uuid.Nil, false
	}
	return id, true
}
