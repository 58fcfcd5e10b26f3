package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public read surface and the administrative write
// surface. Slug is the stable public key for detail lookups; the admin
// surface addresses rows by ID.
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public read surface
		r.Get("/", handlers.pageHandler.getMainPage())
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/{slug}", handlers.projectHandler.getProjectBySlug())
		r.Get("/tags", handlers.tagHandler.getAllTags())
		r.Get("/statuses", handlers.statusHandler.getAllStatuses())
		r.Get("/pages/{slug}", handlers.pageHandler.getPageBySlug())

		// Administrative write surface
		r.Route("/admin", func(r chi.Router) {
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())
			r.Put("/projects/{projectID}/preview", handlers.projectHandler.uploadPreview())
			r.Delete("/projects/{projectID}/preview", handlers.projectHandler.deletePreview())

			r.Post("/tags", handlers.tagHandler.createTag())
			r.Put("/tags/{tagID}", handlers.tagHandler.updateTag())
			r.Delete("/tags/{tagID}", handlers.tagHandler.deleteTag())

			r.Post("/statuses", handlers.statusHandler.createStatus())
			r.Put("/statuses/{statusID}", handlers.statusHandler.updateStatus())
			r.Delete("/statuses/{statusID}", handlers.statusHandler.deleteStatus())

			r.Post("/pages", handlers.pageHandler.createPage())
			r.Put("/pages/{pageID}", handlers.pageHandler.updatePage())
			r.Delete("/pages/{pageID}", handlers.pageHandler.deletePage())
		})
	})
}
