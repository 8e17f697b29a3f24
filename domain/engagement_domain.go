package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessFavorite      = "recipe favorited successfully"
	MessageAlreadyFavorited     = "recipe already favorited"
	MessageSuccessUnfavorite    = "recipe unfavorited successfully"
	MessageFavoriteNotFound     = "recipe was not favorited"
	MessageSuccessRate          = "rating saved successfully"
	MessageSuccessComment       = "comment added successfully"
	MessageSuccessUpdateComment = "comment updated successfully"
	MessageSuccessDeleteComment = "comment deleted successfully"
	MessageSuccessGetFavorites  = "favorites retrieved successfully"
	MessageSuccessGetMyRecipes  = "success get my recipes"

	MessageFailedFavorite      = "failed to favorite recipe"
	MessageFailedUnfavorite    = "failed to unfavorite recipe"
	MessageFailedRate          = "failed to rate recipe"
	MessageFailedComment       = "failed to add comment"
	MessageFailedUpdateComment = "failed to update comment"
	MessageFailedDeleteComment = "failed to delete comment"
	MessageFailedGetFavorites  = "failed to retrieve favorites"
	MessageFailedGetMyRecipes  = "failed to get my recipes"

	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrCommentEmpty     = errors.New("comment text cannot be empty")
)

type (
	RateRecipeRequest struct {
		Rating int `json:"rating" validate:"required"`
	}

	CommentRequest struct {
		Text string `json:"text" validate:"required"`
	}

	FavoriteResult struct {
		Created bool `json:"created"`
	}

	UnfavoriteResult struct {
		Removed bool `json:"removed"`
	}

	RatingResponse struct {
		ID        string    `json:"id"`
		User      string    `json:"user"`
		UserID    string    `json:"user_id"`
		Rating    int       `json:"rating"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	RateResult struct {
		Rating  RatingResponse `json:"rating"`
		Created bool           `json:"created"`
	}

	CommentResponse struct {
		ID        string    `json:"id"`
		User      string    `json:"user"`
		UserID    string    `json:"user_id"`
		RecipeID  string    `json:"recipe_id"`
		Text      string    `json:"text"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}

	FavoriteEntry struct {
		ID        string        `json:"id"`
		Recipe    RecipeSummary `json:"recipe"`
		CreatedAt time.Time     `json:"created_at"`
	}
)
