package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pohioki/foodgram-project-react/internal/testhelpers"
	"github.com/Pohioki/foodgram-project-react/internal/types"
)

func TestGetMeEndpoint(t *testing.T) {
	a := setupAPI(t)
	chef := testhelpers.CreateTestUser(t, a.db, "chef")

	w := a.request(t, http.MethodGet, "/api/v1/users/me", a.tokenFor(t, chef), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp types.UserResponse
	decode(t, w, &resp)
	assert.Equal(t, chef.ID, resp.ID)
	assert.Equal(t, "chef", resp.Username)

	w = a.request(t, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListUsersEndpoint(t *testing.T) {
	a := setupAPI(t)
	testhelpers.CreateTestUser(t, a.db, "alice")
	testhelpers.CreateTestUser(t, a.db, "bob")

	w := a.request(t, http.MethodGet, "/api/v1/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Count   int64                `json:"count"`
		Results []types.UserResponse `json:"results"`
	}
	decode(t, w, &page)
	assert.EqualValues(t, 2, page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "alice", page.Results[0].Username)
}

func TestSubscribeEndpoints(t *testing.T) {
	a := setupAPI(t)
	fan := testhelpers.CreateTestUser(t, a.db, "fan")
	chef := testhelpers.CreateTestUser(t, a.db, "chef")
	salt := testhelpers.CreateTestIngredient(t, a.db, "salt", "g")
	testhelpers.CreateTestRecipe(t, a.db, chef.ID, "Borscht", salt, 5)
	testhelpers.CreateTestRecipe(t, a.db, chef.ID, "Pancakes", salt, 5)
	token := a.tokenFor(t, fan)
	path := "/api/v1/users/" + chef.ID.String() + "/subscribe"

	w := a.request(t, http.MethodPost, path+"?recipes_limit=1", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var sub types.SubscriptionResponse
	decode(t, w, &sub)
	assert.Equal(t, "chef", sub.Username)
	assert.True(t, sub.IsSubscribed)
	assert.EqualValues(t, 2, sub.RecipesCount)
	assert.Len(t, sub.Recipes, 1)

	// Duplicate follow.
	w = a.request(t, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Self follow.
	w = a.request(t, http.MethodPost, "/api/v1/users/"+fan.ID.String()+"/subscribe", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.request(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.request(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionsEndpoint(t *testing.T) {
	a := setupAPI(t)
	fan := testhelpers.CreateTestUser(t, a.db, "fan")
	alice := testhelpers.CreateTestUser(t, a.db, "alice")
	bob := testhelpers.CreateTestUser(t, a.db, "bob")
	token := a.tokenFor(t, fan)

	_, err := a.user.Subscribe(fan.ID, alice.ID, 0)
	require.NoError(t, err)
	_, err = a.user.Subscribe(fan.ID, bob.ID, 0)
	require.NoError(t, err)

	w := a.request(t, http.MethodGet, "/api/v1/users/subscriptions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Count   int64                        `json:"count"`
		Results []types.SubscriptionResponse `json:"results"`
	}
	decode(t, w, &page)
	assert.EqualValues(t, 2, page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "alice", page.Results[0].Username)
	assert.Equal(t, "bob", page.Results[1].Username)

	w = a.request(t, http.MethodGet, "/api/v1/users/subscriptions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserEndpoint(t *testing.T) {
	a := setupAPI(t)
	fan := testhelpers.CreateTestUser(t, a.db, "fan")
	chef := testhelpers.CreateTestUser(t, a.db, "chef")

	_, err := a.user.Subscribe(fan.ID, chef.ID, 0)
	require.NoError(t, err)

	w := a.request(t, http.MethodGet, "/api/v1/users/"+chef.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp types.UserResponse
	decode(t, w, &resp)
	assert.False(t, resp.IsSubscribed)

	w = a.request(t, http.MethodGet, "/api/v1/users/"+chef.ID.String(), a.tokenFor(t, fan), nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.True(t, resp.IsSubscribed)
}
