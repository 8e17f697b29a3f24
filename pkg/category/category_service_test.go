package category

import (
	"context"
	"strings"
	"testing"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCategoryRepository struct {
	categories      map[string]*entities.Category
	publishedCounts map[string]int64
}

func newFakeCategoryRepository() *fakeCategoryRepository {
	return &fakeCategoryRepository{
		categories:      make(map[string]*entities.Category),
		publishedCounts: make(map[string]int64),
	}
}

func (f *fakeCategoryRepository) CreateCategory(_ context.Context, category *entities.Category) error {
	f.categories[category.ID.String()] = category
	return nil
}

func (f *fakeCategoryRepository) GetCategoryByID(_ context.Context, id string) (*entities.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}

func (f *fakeCategoryRepository) GetCategoryByName(_ context.Context, name string) (*entities.Category, error) {
	for _, category := range f.categories {
		if strings.EqualFold(category.Name, name) {
			return category, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepository) GetCategories(_ context.Context) ([]*entities.Category, error) {
	categories := make([]*entities.Category, 0, len(f.categories))
	for _, category := range f.categories {
		categories = append(categories, category)
	}
	return categories, nil
}

func (f *fakeCategoryRepository) UpdateCategory(_ context.Context, category *entities.Category) error {
	f.categories[category.ID.String()] = category
	return nil
}

func (f *fakeCategoryRepository) DeleteCategory(_ context.Context, id string) error {
	if _, ok := f.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepository) CountPublishedRecipes(_ context.Context, categoryID string) (int64, error) {
	return f.publishedCounts[categoryID], nil
}

func seedCategory(repo *fakeCategoryRepository, name string) *entities.Category {
	category := &entities.Category{ID: uuid.New(), Name: name}
	repo.categories[category.ID.String()] = category
	return category
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("creates category", func(t *testing.T) {
		repo := newFakeCategoryRepository()
		svc := NewCategoryService(repo)

		res, err := svc.CreateCategory(ctx, domain.CategoryRequest{Name: "Desserts", Description: "Sweet things"})
		require.NoError(t, err)
		assert.Equal(t, "Desserts", res.Name)
		assert.Len(t, repo.categories, 1)
	})

	t.Run("rejects duplicate name case-insensitively", func(t *testing.T) {
		repo := newFakeCategoryRepository()
		svc := NewCategoryService(repo)
		seedCategory(repo, "Desserts")

		_, err := svc.CreateCategory(ctx, domain.CategoryRequest{Name: "desserts"})
		assert.ErrorIs(t, err, domain.ErrCategoryNameTaken)
	})
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("renames category", func(t *testing.T) {
		repo := newFakeCategoryRepository()
		svc := NewCategoryService(repo)
		category := seedCategory(repo, "Soups")

		res, err := svc.UpdateCategory(ctx, category.ID.String(), domain.CategoryRequest{Name: "Soups & Stews"})
		require.NoError(t, err)
		assert.Equal(t, "Soups & Stews", res.Name)
	})

	t.Run("keeping own name is not a conflict", func(t *testing.T) {
		repo := newFakeCategoryRepository()
		svc := NewCategoryService(repo)
		category := seedCategory(repo, "Salads")

		_, err := svc.UpdateCategory(ctx, category.ID.String(), domain.CategoryRequest{Name: "Salads", Description: "greens"})
		assert.NoError(t, err)
	})

	t.Run("rejects name held by another category", func(t *testing.T) {
		repo := newFakeCategoryRepository()
		svc := NewCategoryService(repo)
		seedCategory(repo, "Breakfast")
		category := seedCategory(repo, "Brunch")

		_, err := svc.UpdateCategory(ctx, category.ID.String(), domain.CategoryRequest{Name: "Breakfast"})
		assert.ErrorIs(t, err, domain.ErrCategoryNameTaken)
	})

	t.Run("unknown category", func(t *testing.T) {
		repo := newFakeCategoryRepository()
		svc := NewCategoryService(repo)

		_, err := svc.UpdateCategory(ctx, uuid.NewString(), domain.CategoryRequest{Name: "Anything"})
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCategoryRepository()
	svc := NewCategoryService(repo)
	category := seedCategory(repo, "Drinks")

	require.NoError(t, svc.DeleteCategory(ctx, category.ID.String()))
	assert.Empty(t, repo.categories)
	assert.ErrorIs(t, svc.DeleteCategory(ctx, category.ID.String()), domain.ErrCategoryNotFound)
}

func TestGetCategoryDetail(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCategoryRepository()
	svc := NewCategoryService(repo)
	category := seedCategory(repo, "Pasta")
	repo.publishedCounts[category.ID.String()] = 7

	res, err := svc.GetCategoryDetail(ctx, category.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.RecipesCount)

	_, err = svc.GetCategoryDetail(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
