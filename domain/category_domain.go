package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetCategories  = "categories retrieved successfully"
	MessageSuccessGetCategory    = "success get category detail"
	MessageSuccessCreateCategory = "category created successfully"
	MessageSuccessUpdateCategory = "category updated successfully"
	MessageSuccessDeleteCategory = "category deleted successfully"

	MessageFailedGetCategories  = "failed to retrieve categories"
	MessageFailedGetCategory    = "failed to get category detail"
	MessageFailedCreateCategory = "failed to create category"
	MessageFailedUpdateCategory = "failed to update category"
	MessageFailedDeleteCategory = "failed to delete category"

	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameTaken = errors.New("category name already exists")
)

type (
	CategoryRequest struct {
		Name        string `json:"name" validate:"required,min=1,max=100"`
		Description string `json:"description" validate:"omitempty"`
	}

	CategoryResponse struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Description  string    `json:"description,omitempty"`
		RecipesCount int64     `json:"recipes_count"`
		CreatedAt    time.Time `json:"created_at"`
	}
)
