package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/plateup/backend/internal/api"
	"github.com/plateup/backend/internal/middleware"
)

// Handlers collects everything the router mounts.
type Handlers struct {
	Auth    *api.AuthHandler
	Recipes *api.RecipeHandler
	Profile *api.ProfileHandler
	Images  *api.ImageHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, allowedOrigins []string, log zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	h.Auth.RegisterRoutes(v1)
	h.Recipes.RegisterRoutes(v1)
	h.Profile.RegisterRoutes(v1)
	if h.Images != nil {
		h.Images.RegisterRoutes(v1)
	}

	return router
}
