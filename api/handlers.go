package api

import (
	"github.com/nvoronin/portfolio-backend/database"
	"github.com/nvoronin/portfolio-backend/media"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	tagHandler     tagHandler
	statusHandler  statusHandler
	pageHandler    pageHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, store media.Store) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(database.ProjectRepo(), database.TagRepo(), database.StatusRepo(), store),
		tagHandler:     newTagHandler(database.TagRepo()),
		statusHandler:  newStatusHandler(database.StatusRepo()),
		pageHandler:    newPageHandler(database.PageRepo()),
	}
}
