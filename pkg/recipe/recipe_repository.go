package recipe

import (
	"context"
	"errors"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.Ingredient) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipeDetailByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]*entities.Recipe, int64, error)
		GetRecipesByAuthor(ctx context.Context, authorID string, page, limit int) ([]*entities.Recipe, int64, error)
		GetAllRecipes(ctx context.Context, page, limit int) ([]*entities.Recipe, int64, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.Ingredient) error
		DeleteRecipe(ctx context.Context, id string) error
		CategoryExists(ctx context.Context, id string) (bool, error)

		GetRatingStats(ctx context.Context, recipeID string) (float64, int64, error)
		IsFavorited(ctx context.Context, userID, recipeID string) (bool, error)
		GetUserRating(ctx context.Context, userID, recipeID string) (*int, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe writes the recipe and its nested ingredients in one
// transaction so a failed ingredient insert never leaves a bare recipe.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.Ingredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		for _, ingredient := range ingredients {
			ingredient.RecipeID = recipe.ID
			if err := tx.Create(ingredient).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeDetailByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredients.seq asc, ingredients.id asc")
		}).
		Preload("Ratings", func(db *gorm.DB) *gorm.DB {
			return db.Order("ratings.created_at desc")
		}).
		Preload("Ratings.User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at desc")
		}).
		Preload("Comments.User").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) applyFilter(query *gorm.DB, filter domain.RecipeFilter, viewerID string) *gorm.DB {
	// Published recipes are public; drafts only surface for their author.
	if viewerID != "" {
		query = query.Where("recipes.is_published = ? OR recipes.author_id = ?", true, viewerID)
	} else {
		query = query.Where("recipes.is_published = ?", true)
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"recipes.title ILIKE ? OR recipes.description ILIKE ? OR EXISTS "+
				"(SELECT 1 FROM ingredients WHERE ingredients.recipe_id = recipes.id AND ingredients.name ILIKE ?)",
			pattern, pattern, pattern,
		)
	}

	if filter.CategoryID != "" {
		query = query.Where("recipes.category_id = ?", filter.CategoryID)
	}

	if filter.Author != "" {
		query = query.Where(
			"recipes.author_id IN (SELECT id FROM users WHERE LOWER(username) = LOWER(?))",
			filter.Author,
		)
	}

	if filter.MinRating > 0 {
		query = query.Where(
			"(SELECT COALESCE(AVG(rating), 0) FROM ratings WHERE ratings.recipe_id = recipes.id) >= ?",
			filter.MinRating,
		)
	}

	return query
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	countQuery := r.applyFilter(r.db.WithContext(ctx).Model(&entities.Recipe{}), filter, viewerID)
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	listQuery := r.applyFilter(r.db.WithContext(ctx).Model(&entities.Recipe{}), filter, viewerID)
	if err := listQuery.
		Preload("Author").
		Preload("Category").
		Offset(offset).
		Limit(filter.Limit).
		Order("recipes.created_at desc, recipes.id desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetRecipesByAuthor(ctx context.Context, authorID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("author_id = ?", authorID).
		Offset(offset).
		Limit(limit).
		Order("created_at desc, id desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetAllRecipes(ctx context.Context, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Offset(offset).
		Limit(limit).
		Order("created_at desc, id desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

// UpdateRecipe saves the recipe fields and, when ingredients is non-nil,
// replaces the full ingredient list (delete then recreate) in the same
// transaction. A nil slice leaves the existing ingredients untouched.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.Ingredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		if ingredients == nil {
			return nil
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		for _, ingredient := range ingredients {
			ingredient.RecipeID = recipe.ID
			if err := tx.Create(ingredient).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteRecipe removes the recipe row; the store cascades ingredients,
// favorites, ratings and comments through their FK constraints.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recipeRepository) CategoryExists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Category{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetRatingStats recomputes the aggregate on every call; derived rating
// fields are never stored.
func (r *recipeRepository) GetRatingStats(ctx context.Context, recipeID string) (float64, int64, error) {
	var stats struct {
		Average float64
		Total   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("recipe_id = ?", recipeID).
		Scan(&stats).Error; err != nil {
		return 0, 0, err
	}
	return stats.Average, stats.Total, nil
}

func (r *recipeRepository) IsFavorited(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetUserRating(ctx context.Context, userID, recipeID string) (*int, error) {
	var rating entities.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating.Rating, nil
}
