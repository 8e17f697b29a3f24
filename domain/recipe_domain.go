package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes        = "success get recipes"
	MessageSuccessGetRecipeDetail   = "success get recipe detail"
	MessageSuccessCreateRecipe      = "recipe created successfully"
	MessageSuccessUpdateRecipe      = "recipe updated successfully"
	MessageSuccessDeleteRecipe      = "recipe deleted successfully"
	MessageSuccessUploadRecipeImage = "recipe image uploaded successfully"

	MessageFailedGetRecipes        = "failed to get recipes"
	MessageFailedGetRecipeDetail   = "failed to get recipe detail"
	MessageFailedCreateRecipe      = "failed to create recipe"
	MessageFailedUpdateRecipe      = "failed to update recipe"
	MessageFailedDeleteRecipe      = "failed to delete recipe"
	MessageFailedUploadRecipeImage = "failed to upload recipe image"

	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrTitleTooShort    = errors.New("title must be at least 3 characters")
	ErrDescriptionShort = errors.New("description must be at least 10 characters")
	ErrInvalidUnit      = errors.New("invalid ingredient unit")
	ErrInvalidMinRating = errors.New("min_rating must be between 0 and 5")
)

// IngredientUnits is the fixed unit vocabulary ingredients may use.
// An empty unit is also accepted (unitless ingredients, e.g. "2 eggs").
var IngredientUnits = []string{
	"g", "kg", "ml", "l", "tsp", "tbsp", "cup",
	"oz", "lb", "piece", "pinch", "to taste",
}

func ValidIngredientUnit(unit string) bool {
	if unit == "" {
		return true
	}
	for _, u := range IngredientUnits {
		if u == unit {
			return true
		}
	}
	return false
}

type (
	IngredientRequest struct {
		Name     string   `json:"name" validate:"required,max=200"`
		Quantity *float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit     string   `json:"unit" validate:"omitempty,max=20"`
		Notes    string   `json:"notes" validate:"omitempty,max=200"`
	}

	CreateRecipeRequest struct {
		Title           string              `json:"title" validate:"required,min=3,max=255"`
		Description     string              `json:"description" validate:"required,min=10"`
		Instructions    string              `json:"instructions" validate:"omitempty"`
		CategoryID      string              `json:"category_id" validate:"omitempty,uuid"`
		PrepTimeMinutes int                 `json:"prep_time_minutes" validate:"omitempty,min=0"`
		CookTimeMinutes int                 `json:"cook_time_minutes" validate:"omitempty,min=0"`
		Servings        int                 `json:"servings" validate:"omitempty,min=1"`
		ImageURL        string              `json:"image_url" validate:"omitempty,url"`
		IsPublished     *bool               `json:"is_published"`
		Ingredients     []IngredientRequest `json:"ingredients" validate:"omitempty,dive"`
	}

	UpdateRecipeRequest struct {
		Title           *string             `json:"title" validate:"omitempty,min=3,max=255"`
		Description     *string             `json:"description" validate:"omitempty,min=10"`
		Instructions    *string             `json:"instructions"`
		CategoryID      *string             `json:"category_id" validate:"omitempty,uuid"`
		PrepTimeMinutes *int                `json:"prep_time_minutes" validate:"omitempty,min=0"`
		CookTimeMinutes *int                `json:"cook_time_minutes" validate:"omitempty,min=0"`
		Servings        *int                `json:"servings" validate:"omitempty,min=1"`
		ImageURL        *string             `json:"image_url" validate:"omitempty,url"`
		IsPublished     *bool               `json:"is_published"`
		Ingredients     []IngredientRequest `json:"ingredients" validate:"omitempty,dive"`
	}

	RecipeFilter struct {
		Search     string
		CategoryID string
		Author     string
		MinRating  float64
		Page       int
		Limit      int
	}

	IngredientResponse struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Quantity *float64 `json:"quantity,omitempty"`
		Unit     string   `json:"unit,omitempty"`
		Notes    string   `json:"notes,omitempty"`
	}

	RecipeSummary struct {
		ID              string    `json:"id"`
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		ImageURL        string    `json:"image_url,omitempty"`
		Author          string    `json:"author"`
		AuthorID        string    `json:"author_id"`
		CategoryID      string    `json:"category_id,omitempty"`
		CategoryName    string    `json:"category_name,omitempty"`
		PrepTimeMinutes int       `json:"prep_time_minutes"`
		CookTimeMinutes int       `json:"cook_time_minutes"`
		TotalTime       int       `json:"total_time"`
		Servings        int       `json:"servings"`
		AverageRating   float64   `json:"average_rating"`
		TotalRatings    int64     `json:"total_ratings"`
		IsFavorited     bool      `json:"is_favorited"`
		IsPublished     bool      `json:"is_published"`
		CreatedAt       time.Time `json:"created_at"`
	}

	RecipeDetail struct {
		RecipeSummary
		Instructions string               `json:"instructions"`
		Ingredients  []IngredientResponse `json:"ingredients"`
		Ratings      []RatingResponse     `json:"ratings"`
		Comments     []CommentResponse    `json:"comments"`
		UserRating   *int                 `json:"user_rating,omitempty"`
		IsAuthor     bool                 `json:"is_author"`
		UpdatedAt    time.Time            `json:"updated_at"`
	}
)
