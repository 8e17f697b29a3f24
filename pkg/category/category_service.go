package category

import (
	"context"
	"errors"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CategoryService interface {
		GetCategories(ctx context.Context) ([]domain.CategoryResponse, error)
		GetCategoryDetail(ctx context.Context, id string) (domain.CategoryResponse, error)
		CreateCategory(ctx context.Context, req domain.CategoryRequest) (domain.CategoryResponse, error)
		UpdateCategory(ctx context.Context, id string, req domain.CategoryRequest) (domain.CategoryResponse, error)
		DeleteCategory(ctx context.Context, id string) error
	}

	categoryService struct {
		categoryRepository CategoryRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository) CategoryService {
	return &categoryService{categoryRepository: categoryRepository}
}

func (s *categoryService) toResponse(ctx context.Context, category *entities.Category) domain.CategoryResponse {
	recipesCount, err := s.categoryRepository.CountPublishedRecipes(ctx, category.ID.String())
	if err != nil {
		recipesCount = 0
	}
	return domain.CategoryResponse{
		ID:           category.ID.String(),
		Name:         category.Name,
		Description:  category.Description,
		RecipesCount: recipesCount,
		CreatedAt:    category.CreatedAt,
	}
}

func (s *categoryService) GetCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.categoryRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, s.toResponse(ctx, c))
	}
	return result, nil
}

func (s *categoryService) GetCategoryDetail(ctx context.Context, id string) (domain.CategoryResponse, error) {
	category, err := s.categoryRepository.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CategoryResponse{}, domain.ErrCategoryNotFound
		}
		return domain.CategoryResponse{}, err
	}
	return s.toResponse(ctx, category), nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req domain.CategoryRequest) (domain.CategoryResponse, error) {
	if _, err := s.categoryRepository.GetCategoryByName(ctx, req.Name); err == nil {
		return domain.CategoryResponse{}, domain.ErrCategoryNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CategoryResponse{}, err
	}

	category := &entities.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.categoryRepository.CreateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}
	return s.toResponse(ctx, category), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id string, req domain.CategoryRequest) (domain.CategoryResponse, error) {
	category, err := s.categoryRepository.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CategoryResponse{}, domain.ErrCategoryNotFound
		}
		return domain.CategoryResponse{}, err
	}

	if existing, err := s.categoryRepository.GetCategoryByName(ctx, req.Name); err == nil && existing.ID != category.ID {
		return domain.CategoryResponse{}, domain.ErrCategoryNameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CategoryResponse{}, err
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := s.categoryRepository.UpdateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}
	return s.toResponse(ctx, category), nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categoryRepository.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCategoryNotFound
		}
		return err
	}
	return nil
}
