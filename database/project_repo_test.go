package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoronin/portfolio-backend/errs"
	"github.com/nvoronin/portfolio-backend/media"
	"github.com/nvoronin/portfolio-backend/models"
)

func validProject(title string) *models.Project {
	return &models.Project{
		Title:            title,
		ShortDescription: "A short description.",
		FullDescription:  "<p>A full description.</p>",
		NumberOfPeople:   1,
		IsActive:         true,
	}
}

func putPreview(t *testing.T, store media.Store, key string) {
	t.Helper()
	require.NoError(t, store.Put(context.Background(), key, "image/jpeg", strings.NewReader("jpeg bytes")))
}

func TestProjectSaveDerivesSlugFromTitle(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	project := validProject("My Cool Project!")
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	assert.Equal(t, "my-cool-project", project.Slug)

	loaded, err := db.ProjectRepo().FindBySlug("my-cool-project")
	require.NoError(t, err)
	assert.Equal(t, project.ID, loaded.ID)
}

func TestProjectSaveLowercasesExplicitSlug(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	project := validProject("Explicit Slug")
	project.Slug = "EXPLICIT-Slug_1"
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	assert.Equal(t, "explicit-slug_1", project.Slug)
}

func TestProjectSaveRejectsInvalidSlug(t *testing.T) {
	db, _ := setupTestDB(t)

	project := validProject("Bad Slug")
	project.Slug = "not a valid slug!"
	err := db.ProjectRepo().Save(context.Background(), project)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestProjectSaveAggregatesViolations(t *testing.T) {
	db, _ := setupTestDB(t)

	project := &models.Project{NumberOfPeople: 0}
	err := db.ProjectRepo().Save(context.Background(), project)
	require.Error(t, err)

	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := map[string]bool{}
	for _, v := range verr.Violations {
		fields[v.Field] = true
	}
	// title, slug (derived empty), descriptions and people count all fail at once
	assert.True(t, fields["title"])
	assert.True(t, fields["slug"])
	assert.True(t, fields["short_description"])
	assert.True(t, fields["full_description"])
	assert.True(t, fields["number_of_people"])
}

func TestProjectTitleUniqueness(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.ProjectRepo().Save(ctx, validProject("Twice")))

	err := db.ProjectRepo().Save(ctx, validProject("Twice"))
	require.Error(t, err)

	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 409, verr.StatusCode())
}

func TestProjectSlugUniqueness(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	first := validProject("First Title")
	first.Slug = "shared-slug"
	require.NoError(t, db.ProjectRepo().Save(ctx, first))

	second := validProject("Second Title")
	second.Slug = "Shared-Slug" // lower-cases to the same value
	err := db.ProjectRepo().Save(ctx, second)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestProjectUpdateKeepsOwnSlug(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	project := validProject("Self Update")
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	// Re-saving the same row must not trip the uniqueness check on itself.
	project.ShortDescription = "edited"
	require.NoError(t, db.ProjectRepo().Save(ctx, project))
}

func TestProjectNumberOfPeopleRange(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	for _, valid := range []int{1, 1000} {
		p := validProject(fmt.Sprintf("People OK %d", valid))
		p.NumberOfPeople = valid
		require.NoError(t, db.ProjectRepo().Save(ctx, p), "people=%d", valid)
	}

	for _, invalid := range []int{0, 1001} {
		p := validProject("people-bad")
		p.NumberOfPeople = invalid
		err := db.ProjectRepo().Save(ctx, p)
		require.Error(t, err, "people=%d", invalid)
		assert.True(t, errs.IsValidation(err))
	}
}

func TestProjectTimestamps(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	project := validProject("Timestamps")
	require.NoError(t, db.ProjectRepo().Save(ctx, project))
	created := project.DateOfCreated
	require.False(t, created.IsZero())

	time.Sleep(20 * time.Millisecond)

	project.ShortDescription = "an unrelated edit"
	// A caller tampering with the creation date must not stick either.
	project.DateOfCreated = created.Add(-24 * time.Hour)
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	loaded, err := db.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, created, loaded.DateOfCreated, time.Second, "date_of_created is immutable")
	assert.True(t, loaded.DateOfUpdated.After(loaded.DateOfCreated), "date_of_updated advances on edit")
}

func TestProjectPreviewReplacementCleansStaleFile(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	oldKey := media.PreviewKey("old.jpg")
	newKey := media.PreviewKey("new.jpg")
	putPreview(t, store, oldKey)
	putPreview(t, store, newKey)

	project := validProject("Preview Swap")
	project.Preview = oldKey
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	project.Preview = newKey
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	exists, err := store.Exists(ctx, oldKey)
	require.NoError(t, err)
	assert.False(t, exists, "old preview file must be removed on replacement")

	exists, err = store.Exists(ctx, newKey)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestProjectPreviewClearRemovesFile(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	key := media.PreviewKey("cleared.jpg")
	putPreview(t, store, key)

	project := validProject("Preview Clear")
	project.Preview = key
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	project.Preview = ""
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists, "clearing the preview must remove the stored file")
}

func TestProjectUnrelatedEditKeepsPreview(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	key := media.PreviewKey("kept.jpg")
	putPreview(t, store, key)

	project := validProject("Preview Kept")
	project.Preview = key
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	project.ShortDescription = "edited without touching the preview"
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists, "unchanged preview must survive unrelated edits")
}

func TestProjectDeleteRemovesPreviewFile(t *testing.T) {
	db, store := setupTestDB(t)
	ctx := context.Background()

	key := media.PreviewKey("deleted.jpg")
	putPreview(t, store, key)

	project := validProject("Doomed")
	project.Preview = key
	require.NoError(t, db.ProjectRepo().Save(ctx, project))
	require.NoError(t, db.ProjectRepo().Delete(ctx, project.ID))

	_, err := db.ProjectRepo().FindByID(project.ID)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProjectTagsRoundTrip(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	tag := &models.Tag{Title: "Go", Slug: "go"}
	require.NoError(t, db.TagRepo().Save(ctx, tag))

	project := validProject("Tagged")
	project.Tags = []models.Tag{*tag}
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	loaded, err := db.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, "go", loaded.Tags[0].Slug)

	// Replacing the tag set drops the old association rows.
	other := &models.Tag{Title: "Postgres", Slug: "postgres"}
	require.NoError(t, db.TagRepo().Save(ctx, other))
	project.Tags = []models.Tag{*other}
	require.NoError(t, db.ProjectRepo().Save(ctx, project))

	loaded, err = db.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, "postgres", loaded.Tags[0].Slug)
}

func TestProjectFindAllActiveFilter(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	active := validProject("Active One")
	require.NoError(t, db.ProjectRepo().Save(ctx, active))

	inactive := validProject("Inactive One")
	inactive.IsActive = false
	require.NoError(t, db.ProjectRepo().Save(ctx, inactive))

	all, err := db.ProjectRepo().FindAll(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyActive := true
	filtered, err := db.ProjectRepo().FindAll(&onlyActive)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Active One", filtered[0].Title)
}

func TestProjectFindBySlugNotFound(t *testing.T) {
	db, _ := setupTestDB(t)

	_, err := db.ProjectRepo().FindBySlug("no-such-project")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}
