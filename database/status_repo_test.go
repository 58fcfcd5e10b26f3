package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoronin/portfolio-backend/errs"
	"github.com/nvoronin/portfolio-backend/models"
)

func TestStatusValidation(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	err := db.StatusRepo().Save(ctx, &models.Status{})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	err = db.StatusRepo().Save(ctx, &models.Status{Title: "definitely longer than 16"})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	require.NoError(t, db.StatusRepo().Save(ctx, &models.Status{Title: "active"}))
}

func TestStatusUniqueness(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.StatusRepo().Save(ctx, &models.Status{Title: "complete"}))

	err := db.StatusRepo().Save(ctx, &models.Status{Title: "complete"})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestStatusDeleteClearsProjectReference(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	status := &models.Status{Title: "active"}
	require.NoError(t, db.StatusRepo().Save(ctx, status))

	project := validProject("Status Holder")
	project.StatusID = &status.ID
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	require.NoError(t, db.StatusRepo().Delete(ctx, status.ID))

	// The project survives with its status reference cleared.
	loaded, err := db.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.StatusID)

	_, err = db.StatusRepo().FindByID(status.ID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
