package engagement

import (
	"context"

	"Recipe-Share-Backend/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	EngagementRepository interface {
		CreateFavorite(ctx context.Context, favorite *entities.Favorite) (bool, error)
		DeleteFavorite(ctx context.Context, userID, recipeID string) (bool, error)
		GetFavorites(ctx context.Context, userID string, page, limit int) ([]*entities.Favorite, int64, error)

		UpsertRating(ctx context.Context, rating *entities.Rating) error
		GetRating(ctx context.Context, userID, recipeID string) (*entities.Rating, error)

		CreateComment(ctx context.Context, comment *entities.Comment) error
		GetCommentByID(ctx context.Context, id string) (*entities.Comment, error)
		UpdateComment(ctx context.Context, comment *entities.Comment) error
		DeleteComment(ctx context.Context, id string) error
	}

	engagementRepository struct {
		db *gorm.DB
	}
)

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// CreateFavorite is an atomic insert-if-absent: the (user_id, recipe_id)
// unique index backs an ON CONFLICT DO NOTHING, so two concurrent identical
// requests cannot produce duplicate rows. Returns whether a row was created.
func (r *engagementRepository) CreateFavorite(ctx context.Context, favorite *entities.Favorite) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoNothing: true,
		}).
		Create(favorite)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *engagementRepository) DeleteFavorite(ctx context.Context, userID, recipeID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *engagementRepository) GetFavorites(ctx context.Context, userID string, page, limit int) ([]*entities.Favorite, int64, error) {
	var favorites []*entities.Favorite
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Preload("Recipe.Author").
		Preload("Recipe.Category").
		Where("user_id = ?", userID).
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&favorites).Error; err != nil {
		return nil, 0, err
	}

	return favorites, count, nil
}

// UpsertRating is a single conditional write keyed on the (user_id,
// recipe_id) unique index: insert when absent, overwrite rating and
// updated_at when present. The store's constraint is the correctness
// backstop under concurrent identical requests.
func (r *engagementRepository) UpsertRating(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).
		Create(rating).Error
}

func (r *engagementRepository) GetRating(ctx context.Context, userID, recipeID string) (*entities.Rating, error) {
	var rating entities.Rating
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *engagementRepository) CreateComment(ctx context.Context, comment *entities.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *engagementRepository) GetCommentByID(ctx context.Context, id string) (*entities.Comment, error) {
	var comment entities.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *engagementRepository) UpdateComment(ctx context.Context, comment *entities.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *engagementRepository) DeleteComment(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
