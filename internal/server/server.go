package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Pohioki/foodgram-project-react/config"
	"github.com/Pohioki/foodgram-project-react/internal/api"
	"github.com/Pohioki/foodgram-project-react/internal/database"
	"github.com/Pohioki/foodgram-project-react/internal/middleware"
	"github.com/Pohioki/foodgram-project-react/internal/service"
	"github.com/Pohioki/foodgram-project-react/internal/types"
)

// Server wires the services and HTTP handlers into one gin engine.
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// Deps carries everything the server needs beyond the gorm handle.
// HealthDB and Redis are optional; the matching features degrade when nil.
type Deps struct {
	DB       *gorm.DB
	HealthDB *database.HealthDB
	Redis    *redis.Client
	Images   *service.ImageService
}

// New assembles the router with all routes registered under /api/v1.
func New(cfg *config.Config, deps Deps) *Server {
	types.RegisterValidations()

	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	authService := service.NewAuthService(deps.DB, cfg.JWTSecret)
	userService := service.NewUserService(deps.DB)
	ingredientService := service.NewIngredientService(deps.DB)
	tagService := service.NewTagService(deps.DB)
	recipeService := service.NewRecipeService(deps.DB, deps.Images)

	var writeLimiter *middleware.RateLimiter
	if deps.Redis != nil {
		writeLimiter = middleware.NewRecipeWriteRateLimiter(deps.Redis)
	}

	v1 := router.Group("/api/v1")
	api.NewAuthHandler(authService).RegisterRoutes(v1)
	api.NewUserHandler(userService, authService).RegisterRoutes(v1)
	api.NewIngredientHandler(ingredientService).RegisterRoutes(v1)
	api.NewTagHandler(tagService, authService).RegisterRoutes(v1)
	api.NewRecipeHandler(recipeService, authService, writeLimiter).RegisterRoutes(v1)

	router.GET("/healthz", func(c *gin.Context) {
		if deps.HealthDB != nil {
			if err := deps.HealthDB.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.S3Bucket == "" {
		router.Static(cfg.MediaURL, cfg.MediaDir)
	}

	return &Server{
		router: router,
		db:     deps.DB,
	}
}

// Router exposes the gin engine, mainly for httptest.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	log.Printf("Listening on %s", addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
