package api

import "github.com/plateup/backend/internal/validation"

// CreateRecipeRequest is the submission envelope. isDraft skips the publish
// rules so half-finished work can be saved.
type CreateRecipeRequest struct {
	Recipe  validation.RecipePayload `json:"recipe"`
	IsDraft bool                     `json:"isDraft"`
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Username  string `json:"username"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
