package types

import "github.com/google/uuid"

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IngredientAmount is one entry of the recipe write representation's
// ingredient list. Delete marks the entry for individual removal on update.
type IngredientAmount struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount int       `json:"amount"`
	Delete bool      `json:"delete,omitempty"`
}

// CreateRecipeRequest is the recipe write representation. The author is never
// part of the payload; it comes from the authenticated caller.
type CreateRecipeRequest struct {
	Name        string             `json:"name" binding:"required,max=254"`
	Text        string             `json:"text" binding:"required"`
	Image       string             `json:"image" binding:"required"`
	CookingTime int                `json:"cooking_time" binding:"required"`
	Ingredients []IngredientAmount `json:"ingredients" binding:"required"`
	Tags        []uuid.UUID        `json:"tags"`
}

// UpdateRecipeRequest carries a partial update; nil fields stay untouched.
type UpdateRecipeRequest struct {
	Name        *string             `json:"name" binding:"omitempty,max=254"`
	Text        *string             `json:"text"`
	Image       *string             `json:"image"`
	CookingTime *int                `json:"cooking_time"`
	Ingredients *[]IngredientAmount `json:"ingredients"`
	Tags        *[]uuid.UUID        `json:"tags"`
}

// CreateTagRequest represents the request body for creating a tag
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Color string `json:"color" binding:"required,hexcolor"`
	Slug  string `json:"slug" binding:"omitempty,slug,max=200"`
}

// UpdateTagRequest represents the request body for updating a tag
type UpdateTagRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=200"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
	Slug  *string `json:"slug" binding:"omitempty,slug,max=200"`
}
