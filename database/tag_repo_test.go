package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoronin/portfolio-backend/errs"
	"github.com/nvoronin/portfolio-backend/models"
)

func TestTagSaveLowercasesSlug(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	tag := &models.Tag{Title: "Python 3", Slug: "Python-3"}
	require.NoError(t, db.TagRepo().Save(ctx, tag))
	assert.Equal(t, "python-3", tag.Slug)

	loaded, err := db.TagRepo().FindByID(tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "python-3", loaded.Slug)

	// Re-writes keep the invariant regardless of input case.
	loaded.Slug = "PYTHON-3"
	require.NoError(t, db.TagRepo().Save(ctx, loaded))
	assert.Equal(t, "python-3", loaded.Slug)
}

func TestTagValidation(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	err := db.TagRepo().Save(ctx, &models.Tag{})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	err = db.TagRepo().Save(ctx, &models.Tag{Title: "Bad Slug", Slug: "has spaces"})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestTagUniqueness(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.TagRepo().Save(ctx, &models.Tag{Title: "Go", Slug: "go"}))

	err := db.TagRepo().Save(ctx, &models.Tag{Title: "Go", Slug: "golang"})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	// Slug uniqueness is case-insensitive through normalization.
	err = db.TagRepo().Save(ctx, &models.Tag{Title: "Golang", Slug: "GO"})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestTagDeleteKeepsProjects(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	tag := &models.Tag{Title: "Doomed", Slug: "doomed"}
	require.NoError(t, db.TagRepo().Save(ctx, tag))

	project := validProject("Tag Delete Survivor")
	project.Tags = []models.Tag{*tag}
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	require.NoError(t, db.TagRepo().Delete(ctx, tag.ID))

	// The association rows are gone, the project is not.
	loaded, err := db.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Tags)

	_, err = db.TagRepo().FindByID(tag.ID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestTagFindByIDs(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	a := &models.Tag{Title: "A", Slug: "a"}
	b := &models.Tag{Title: "B", Slug: "b"}
	require.NoError(t, db.TagRepo().Save(ctx, a))
	require.NoError(t, db.TagRepo().Save(ctx, b))

	tags, err := db.TagRepo().FindByIDs([]uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	_, err = db.TagRepo().FindByIDs([]uuid.UUID{a.ID, uuid.New()})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
