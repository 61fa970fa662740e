package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pohioki/foodgram-project-react/internal/testhelpers"
	"github.com/Pohioki/foodgram-project-react/internal/types"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "quick-dinner", Slugify("Quick Dinner"))
	assert.Equal(t, "breakfast", Slugify("  Breakfast!  "))
	assert.Equal(t, "5-minute-meals", Slugify("5 Minute  Meals"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestCreateTagDerivesSlug(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewTagService(db)

	tag, err := svc.Create(&types.CreateTagRequest{Name: "Quick Dinner", Color: "#ff0000"})
	require.NoError(t, err)
	assert.Equal(t, "quick-dinner", tag.Slug)
	assert.Equal(t, "#FF0000", tag.Color)

	// An explicit slug wins over derivation.
	tag, err = svc.Create(&types.CreateTagRequest{Name: "Late Dinner", Color: "#00FF00", Slug: "night-food"})
	require.NoError(t, err)
	assert.Equal(t, "night-food", tag.Slug)
}

func TestCreateTagSlugCollision(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewTagService(db)

	first, err := svc.Create(&types.CreateTagRequest{Name: "Dinner", Color: "#FF0000"})
	require.NoError(t, err)
	assert.Equal(t, "dinner", first.Slug)

	second, err := svc.Create(&types.CreateTagRequest{Name: "DINNER!", Color: "#00FF00"})
	require.NoError(t, err)
	assert.Equal(t, "dinner-2", second.Slug)

	third, err := svc.Create(&types.CreateTagRequest{Name: "dinner?", Color: "#0000FF"})
	require.NoError(t, err)
	assert.Equal(t, "dinner-3", third.Slug)
}

func TestCreateTagConflicts(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewTagService(db)

	_, err := svc.Create(&types.CreateTagRequest{Name: "Dinner", Color: "#FF0000"})
	require.NoError(t, err)

	_, err = svc.Create(&types.CreateTagRequest{Name: "Dinner", Color: "#00FF00", Slug: "other"})
	assert.ErrorIs(t, err, ErrTagNameTaken)

	// Color comparison is case-insensitive through normalization.
	_, err = svc.Create(&types.CreateTagRequest{Name: "Supper", Color: "#ff0000", Slug: "supper"})
	assert.ErrorIs(t, err, ErrTagColorTaken)
}

func TestUpdateTag(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewTagService(db)

	tag, err := svc.Create(&types.CreateTagRequest{Name: "Dinner", Color: "#FF0000"})
	require.NoError(t, err)

	name := "Supper"
	updated, err := svc.Update(tag.ID, &types.UpdateTagRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Supper", updated.Name)
	// Renaming does not silently rewrite an existing slug.
	assert.Equal(t, "dinner", updated.Slug)

	slug := "supper"
	updated, err = svc.Update(tag.ID, &types.UpdateTagRequest{Slug: &slug})
	require.NoError(t, err)
	assert.Equal(t, "supper", updated.Slug)

	_, err = svc.Update(uuid.New(), &types.UpdateTagRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTag(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewTagService(db)

	tag, err := svc.Create(&types.CreateTagRequest{Name: "Dinner", Color: "#FF0000"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(tag.ID))
	assert.ErrorIs(t, svc.Delete(tag.ID), ErrNotFound)

	_, err = svc.Get(tag.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
