package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoronin/portfolio-backend/errs"
	"github.com/nvoronin/portfolio-backend/models"
)

func TestPageSaveDerivesSlug(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	page := &models.Page{Title: "About Me", Content: "<p>hi</p>"}
	require.NoError(t, db.PageRepo().Save(ctx, page))
	assert.Equal(t, "about-me", page.Slug)

	loaded, err := db.PageRepo().FindBySlug("about-me")
	require.NoError(t, err)
	assert.Equal(t, page.ID, loaded.ID)
}

func TestPageValidation(t *testing.T) {
	db, _ := setupTestDB(t)

	err := db.PageRepo().Save(context.Background(), &models.Page{Title: "No Content"})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestPageMainIsExclusive(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	first := &models.Page{Title: "Landing", Content: "<p>home</p>", IsMain: true}
	require.NoError(t, db.PageRepo().Save(ctx, first))

	second := &models.Page{Title: "New Landing", Content: "<p>newer home</p>", IsMain: true}
	require.NoError(t, db.PageRepo().Save(ctx, second))

	main, err := db.PageRepo().FindMain()
	require.NoError(t, err)
	assert.Equal(t, second.ID, main.ID)

	demoted, err := db.PageRepo().FindByID(first.ID)
	require.NoError(t, err)
	assert.False(t, demoted.IsMain)
}

func TestPageFindMainMissing(t *testing.T) {
	db, _ := setupTestDB(t)

	_, err := db.PageRepo().FindMain()
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestPageDelete(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	page := &models.Page{Title: "Temporary", Content: "<p>bye</p>"}
	require.NoError(t, db.PageRepo().Save(ctx, page))
	require.NoError(t, db.PageRepo().Delete(ctx, page.ID))

	_, err := db.PageRepo().FindBySlug("temporary")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
