package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Pohioki/foodgram-project-react/internal/models"
	"github.com/Pohioki/foodgram-project-react/internal/service"
	"github.com/Pohioki/foodgram-project-react/internal/testhelpers"
	"github.com/Pohioki/foodgram-project-react/internal/types"
)

// testAPI bundles the router with the services the tests drive directly.
type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
	recipe *service.RecipeService
	user   *service.UserService
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	types.RegisterValidations()

	db := testhelpers.SetupTestDatabase(t)
	authService := service.NewAuthService(db, "test-secret")
	userService := service.NewUserService(db)
	ingredientService := service.NewIngredientService(db)
	tagService := service.NewTagService(db)
	images := service.NewImageService(nil, t.TempDir(), "/media")
	recipeService := service.NewRecipeService(db, images)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewUserHandler(userService, authService).RegisterRoutes(v1)
	NewIngredientHandler(ingredientService).RegisterRoutes(v1)
	NewTagHandler(tagService, authService).RegisterRoutes(v1)
	NewRecipeHandler(recipeService, authService, nil).RegisterRoutes(v1)

	return &testAPI{
		router: router,
		db:     db,
		auth:   authService,
		recipe: recipeService,
		user:   userService,
	}
}

// tokenFor issues a token for an existing user record.
func (a *testAPI) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := a.auth.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func (a *testAPI) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
