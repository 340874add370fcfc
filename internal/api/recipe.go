package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateup/backend/internal/middleware"
	"github.com/plateup/backend/internal/service"
)

// RecipeHandler exposes the recipe collection over HTTP.
type RecipeHandler struct {
	recipes     *service.RecipeService
	validator   middleware.TokenValidator
	rateLimiter *middleware.RateLimiter
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes *service.RecipeService, validator middleware.TokenValidator, rateLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		validator:   validator,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes wires the recipe endpoints onto the router group.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("/:id/like", h.LikeRecipe)

		create := []gin.HandlerFunc{h.CreateRecipe}
		if h.rateLimiter != nil {
			create = append([]gin.HandlerFunc{h.rateLimiter.ByClientIP()}, create...)
		}
		recipes.POST("", create...)

		authed := recipes.Group("", middleware.AuthMiddleware(h.validator))
		{
			authed.PUT("/:id", h.UpdateRecipe)
			authed.DELETE("/:id", h.DeleteRecipe)
			authed.POST("/:id/publish", h.PublishRecipe)
			authed.POST("/:id/unpublish", h.UnpublishRecipe)
			authed.POST("/:id/duplicate", h.DuplicateRecipe)
		}
	}
}

// ListRecipes returns every recipe newest-first as a bare JSON array.
// Filtering and sorting are deliberately not done here; the feed engine
// owns that.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns a single recipe with its nested rows.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe accepts a wizard submission. Anonymous by design: the author
// identity travels in the payload and is created on first contact.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.SubmitRecipe(c.Request.Context(), req.Recipe, req.IsDraft)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "fields": verr.Fields})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

// UpdateRecipe replaces a recipe's content. Author-only.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, userID, ok := h.recipeAndUser(c)
	if !ok {
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, userID, req.Recipe)
	if err != nil {
		h.writeServiceError(c, err, "Failed to update recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// DeleteRecipe permanently removes a recipe and its rows. Author-only.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, userID, ok := h.recipeAndUser(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		h.writeServiceError(c, err, "Failed to delete recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// PublishRecipe moves a draft into the community feed.
func (h *RecipeHandler) PublishRecipe(c *gin.Context) {
	id, userID, ok := h.recipeAndUser(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.PublishRecipe(c.Request.Context(), id, userID)
	if err != nil {
		h.writeServiceError(c, err, "Failed to publish recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// UnpublishRecipe pulls a recipe back to draft.
func (h *RecipeHandler) UnpublishRecipe(c *gin.Context) {
	id, userID, ok := h.recipeAndUser(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.UnpublishRecipe(c.Request.Context(), id, userID)
	if err != nil {
		h.writeServiceError(c, err, "Failed to unpublish recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// DuplicateRecipe copies a recipe into a new draft owned by the same author.
func (h *RecipeHandler) DuplicateRecipe(c *gin.Context) {
	id, userID, ok := h.recipeAndUser(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.DuplicateRecipe(c.Request.Context(), id, userID)
	if err != nil {
		h.writeServiceError(c, err, "Failed to duplicate recipe")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

// LikeRecipe bumps the like counter and returns the new count.
func (h *RecipeHandler) LikeRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	likes, err := h.recipes.LikeRecipe(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err, "Failed to like recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *RecipeHandler) recipeAndUser(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return uuid.Nil, uuid.Nil, false
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, uuid.Nil, false
	}
	return id, userID, true
}

func (h *RecipeHandler) writeServiceError(c *gin.Context, err error, fallback string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "fields": verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may modify this recipe"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
