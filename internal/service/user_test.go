package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pohioki/foodgram-project-react/internal/models"
	"github.com/Pohioki/foodgram-project-react/internal/testhelpers"
)

func TestSubscribe(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewUserService(db)
	fan := testhelpers.CreateTestUser(t, db, "fan")
	chef := testhelpers.CreateTestUser(t, db, "chef")
	salt := testhelpers.CreateTestIngredient(t, db, "salt", "g")
	testhelpers.CreateTestRecipe(t, db, chef.ID, "Borscht", salt, 5)

	sub, err := svc.Subscribe(fan.ID, chef.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, chef.ID, sub.ID)
	assert.True(t, sub.IsSubscribed)
	assert.EqualValues(t, 1, sub.RecipesCount)
	require.Len(t, sub.Recipes, 1)
	assert.Equal(t, "Borscht", sub.Recipes[0].Name)

	_, err = svc.Subscribe(fan.ID, chef.ID, 0)
	assert.ErrorIs(t, err, ErrAlreadyFollowing)

	_, err = svc.Subscribe(fan.ID, fan.ID, 0)
	assert.ErrorIs(t, err, ErrSelfFollow)

	_, err = svc.Subscribe(fan.ID, uuid.New(), 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnsubscribe(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewUserService(db)
	fan := testhelpers.CreateTestUser(t, db, "fan")
	chef := testhelpers.CreateTestUser(t, db, "chef")

	// Nothing to remove yet.
	assert.ErrorIs(t, svc.Unsubscribe(fan.ID, chef.ID), ErrNotFound)

	_, err := svc.Subscribe(fan.ID, chef.ID, 0)
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(fan.ID, chef.ID))

	// Removing the follow allows subscribing again.
	_, err = svc.Subscribe(fan.ID, chef.ID, 0)
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.Unsubscribe(fan.ID, uuid.New()), ErrNotFound)
}

func TestSubscriptionsListing(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewUserService(db)
	fan := testhelpers.CreateTestUser(t, db, "fan")
	alice := testhelpers.CreateTestUser(t, db, "alice")
	bob := testhelpers.CreateTestUser(t, db, "bob")
	testhelpers.CreateTestUser(t, db, "carol")
	salt := testhelpers.CreateTestIngredient(t, db, "salt", "g")

	older := testhelpers.CreateTestRecipe(t, db, alice.ID, "Borscht", salt, 5)
	testhelpers.CreateTestRecipe(t, db, alice.ID, "Pancakes", salt, 5)
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", older.ID).
		Update("pub_date", time.Now().UTC().Add(-time.Hour)).Error)

	_, err := svc.Subscribe(fan.ID, alice.ID, 0)
	require.NoError(t, err)
	_, err = svc.Subscribe(fan.ID, bob.ID, 0)
	require.NoError(t, err)

	subs, count, err := svc.Subscriptions(fan.ID, 0, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	require.Len(t, subs, 2)

	// Ordered by username; carol is not followed and stays out.
	assert.Equal(t, "alice", subs[0].Username)
	assert.Equal(t, "bob", subs[1].Username)
	assert.EqualValues(t, 2, subs[0].RecipesCount)
	require.Len(t, subs[0].Recipes, 2)
	assert.Equal(t, "Pancakes", subs[0].Recipes[0].Name)

	// recipes_limit cuts the embedded list but not the count.
	subs, _, err = svc.Subscriptions(fan.ID, 1, 0, 10)
	require.NoError(t, err)
	require.Len(t, subs[0].Recipes, 1)
	assert.Equal(t, "Pancakes", subs[0].Recipes[0].Name)
	assert.EqualValues(t, 2, subs[0].RecipesCount)

	// Pagination over followed authors.
	subs, count, err = svc.Subscriptions(fan.ID, 0, 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	require.Len(t, subs, 1)
	assert.Equal(t, "bob", subs[0].Username)
}

func TestUserGetAndList(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewUserService(db)
	fan := testhelpers.CreateTestUser(t, db, "fan")
	chef := testhelpers.CreateTestUser(t, db, "chef")

	_, err := svc.Subscribe(fan.ID, chef.ID, 0)
	require.NoError(t, err)

	resp, err := svc.Get(chef.ID, &fan.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsSubscribed)

	// Anonymous view never reports a subscription.
	resp, err = svc.Get(chef.ID, nil)
	require.NoError(t, err)
	assert.False(t, resp.IsSubscribed)

	_, err = svc.Get(uuid.New(), nil)
	assert.ErrorIs(t, err, ErrNotFound)

	users, count, err := svc.List(nil, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	require.Len(t, users, 2)
	assert.Equal(t, "chef", users[0].Username)
	assert.Equal(t, "fan", users[1].Username)
}
