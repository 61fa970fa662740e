package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pohioki/foodgram-project-react/internal/models"
	"github.com/Pohioki/foodgram-project-react/internal/testhelpers"
)

func TestIngredientList(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewIngredientService(db)
	testhelpers.CreateTestIngredient(t, db, "Salt", "g")
	testhelpers.CreateTestIngredient(t, db, "salmon", "g")
	testhelpers.CreateTestIngredient(t, db, "pepper", "g")

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Prefix search is case-insensitive.
	matches, err := svc.List("SAL")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Salt", matches[0].Name)
	assert.Equal(t, "salmon", matches[1].Name)

	matches, err = svc.List("zzz")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestIngredientGet(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewIngredientService(db)
	salt := testhelpers.CreateTestIngredient(t, db, "salt", "g")

	got, err := svc.Get(salt.ID)
	require.NoError(t, err)
	assert.Equal(t, "salt", got.Name)
	assert.Equal(t, "g", got.MeasurementUnit)

	_, err = svc.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIngredientBulkCreate(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewIngredientService(db)
	testhelpers.CreateTestIngredient(t, db, "salt", "g")

	created, err := svc.BulkCreate([]models.Ingredient{
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "tbsp"},
		{Name: "pepper", MeasurementUnit: "g"},
	})
	require.NoError(t, err)

	// The existing (salt, g) pair is skipped; the same name with a new unit
	// is a distinct catalog entry.
	assert.Equal(t, 2, created)

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
