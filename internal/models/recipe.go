package models

import "time"

// Attribute is a per-user named label. Tags and ingredients share the
// same shape and contract and differ only by which table they live in.
type Attribute struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"-"`
}

type Recipe struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	TimeMinutes   int       `json:"time_minutes"`
	Price         float64   `json:"price"`
	UserID        string    `json:"-"`
	TagIDs        []string  `json:"tags"`
	IngredientIDs []string  `json:"ingredients"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateAttributeRequest struct {
	Name string `json:"name"`
}

type CreateRecipeRequest struct {
	Title         string   `json:"title"`
	TimeMinutes   int      `json:"time_minutes"`
	Price         float64  `json:"price"`
	TagIDs        []string `json:"tags"`
	IngredientIDs []string `json:"ingredients"`
}

// UpdateRecipeRequest carries a partial update; nil fields are left as-is.
type UpdateRecipeRequest struct {
	Title         *string   `json:"title"`
	TimeMinutes   *int      `json:"time_minutes"`
	Price         *float64  `json:"price"`
	TagIDs        *[]string `json:"tags"`
	IngredientIDs *[]string `json:"ingredients"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
