package recipe

import (
	"context"
	"errors"
	"math"
	"mime/multipart"
	"strings"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/authz"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewer authz.Identity) ([]domain.RecipeSummary, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID string, viewer authz.Identity) (domain.RecipeDetail, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, author authz.Identity) (domain.RecipeDetail, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, requester authz.Identity) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, recipeID string, requester authz.Identity) error
		UploadRecipeImage(ctx context.Context, recipeID string, image *multipart.FileHeader, requester authz.Identity) (string, error)
		GetAllRecipes(ctx context.Context, page, limit int) ([]domain.RecipeSummary, int64, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
	}
}

func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// Summary assembles the list representation, recomputing the derived
// fields (average rating, total ratings, total time) on every call.
func (s *recipeService) toSummary(ctx context.Context, recipe *entities.Recipe, viewer authz.Identity) domain.RecipeSummary {
	summary := domain.RecipeSummary{
		ID:              recipe.ID.String(),
		Title:           recipe.Title,
		Description:     recipe.Description,
		ImageURL:        recipe.ImageURL,
		AuthorID:        recipe.AuthorID.String(),
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		CookTimeMinutes: recipe.CookTimeMinutes,
		TotalTime:       recipe.PrepTimeMinutes + recipe.CookTimeMinutes,
		Servings:        recipe.Servings,
		IsPublished:     recipe.IsPublished,
		CreatedAt:       recipe.CreatedAt,
	}

	if recipe.Author != nil {
		summary.Author = recipe.Author.Username
	}
	if recipe.Category != nil {
		summary.CategoryID = recipe.Category.ID.String()
		summary.CategoryName = recipe.Category.Name
	} else if recipe.CategoryID != nil {
		summary.CategoryID = recipe.CategoryID.String()
	}

	avg, total, err := s.recipeRepository.GetRatingStats(ctx, summary.ID)
	if err == nil {
		summary.AverageRating = roundRating(avg)
		summary.TotalRatings = total
	}

	if !viewer.IsAnonymous() {
		favorited, err := s.recipeRepository.IsFavorited(ctx, viewer.UserID.String(), summary.ID)
		if err == nil {
			summary.IsFavorited = favorited
		}
	}

	return summary
}

func (s *recipeService) toDetail(ctx context.Context, recipe *entities.Recipe, viewer authz.Identity) domain.RecipeDetail {
	detail := domain.RecipeDetail{
		RecipeSummary: s.toSummary(ctx, recipe, viewer),
		Instructions:  recipe.Instructions,
		Ingredients:   make([]domain.IngredientResponse, 0, len(recipe.Ingredients)),
		Ratings:       make([]domain.RatingResponse, 0, len(recipe.Ratings)),
		Comments:      make([]domain.CommentResponse, 0, len(recipe.Comments)),
		UpdatedAt:     recipe.UpdatedAt,
	}

	for _, ingredient := range recipe.Ingredients {
		detail.Ingredients = append(detail.Ingredients, domain.IngredientResponse{
			ID:       ingredient.ID.String(),
			Name:     ingredient.Name,
			Quantity: ingredient.Quantity,
			Unit:     ingredient.Unit,
			Notes:    ingredient.Notes,
		})
	}

	for _, rating := range recipe.Ratings {
		res := domain.RatingResponse{
			ID:        rating.ID.String(),
			UserID:    rating.UserID.String(),
			Rating:    rating.Rating,
			CreatedAt: rating.CreatedAt,
			UpdatedAt: rating.UpdatedAt,
		}
		if rating.User != nil {
			res.User = rating.User.Username
		}
		detail.Ratings = append(detail.Ratings, res)
	}

	for _, comment := range recipe.Comments {
		res := domain.CommentResponse{
			ID:        comment.ID.String(),
			UserID:    comment.UserID.String(),
			RecipeID:  comment.RecipeID.String(),
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
			UpdatedAt: comment.UpdatedAt,
		}
		if comment.User != nil {
			res.User = comment.User.Username
		}
		detail.Comments = append(detail.Comments, res)
	}

	if !viewer.IsAnonymous() {
		detail.IsAuthor = viewer.UserID == recipe.AuthorID
		userRating, err := s.recipeRepository.GetUserRating(ctx, viewer.UserID.String(), recipe.ID.String())
		if err == nil {
			detail.UserRating = userRating
		}
	}

	return detail
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewer authz.Identity) ([]domain.RecipeSummary, int64, error) {
	if filter.MinRating < 0 || filter.MinRating > 5 {
		return nil, 0, domain.ErrInvalidMinRating
	}

	viewerID := ""
	if !viewer.IsAnonymous() {
		viewerID = viewer.UserID.String()
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, viewerID)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeSummary, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, s.toSummary(ctx, recipe, viewer))
	}
	return result, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, viewer authz.Identity) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeDetailByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	// A hidden draft is indistinguishable from a missing recipe.
	if !authz.CanSee(viewer, recipe, recipe.IsPublished) {
		return domain.RecipeDetail{}, domain.ErrRecipeNotFound
	}

	return s.toDetail(ctx, recipe, viewer), nil
}

func buildIngredients(reqs []domain.IngredientRequest) ([]*entities.Ingredient, error) {
	ingredients := make([]*entities.Ingredient, 0, len(reqs))
	for i, req := range reqs {
		if !domain.ValidIngredientUnit(req.Unit) {
			return nil, domain.ErrInvalidUnit
		}
		ingredients = append(ingredients, &entities.Ingredient{
			ID:       uuid.New(),
			Name:     req.Name,
			Quantity: req.Quantity,
			Unit:     req.Unit,
			Notes:    req.Notes,
			Seq:      i,
		})
	}
	return ingredients, nil
}

func (s *recipeService) resolveCategory(ctx context.Context, categoryID string) (*uuid.UUID, error) {
	if categoryID == "" {
		return nil, nil
	}
	categoryUUID, err := uuid.Parse(categoryID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	exists, err := s.recipeRepository.CategoryExists(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrCategoryNotFound
	}
	return &categoryUUID, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, author authz.Identity) (domain.RecipeDetail, error) {
	if len(strings.TrimSpace(req.Title)) < 3 {
		return domain.RecipeDetail{}, domain.ErrTitleTooShort
	}
	if len(strings.TrimSpace(req.Description)) < 10 {
		return domain.RecipeDetail{}, domain.ErrDescriptionShort
	}

	categoryID, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	ingredients, err := buildIngredients(req.Ingredients)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	servings := req.Servings
	if servings == 0 {
		servings = 1
	}
	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}

	// The author is always the authenticated identity; the payload cannot
	// assign a recipe to someone else.
	recipe := &entities.Recipe{
		ID:              uuid.New(),
		AuthorID:        author.UserID,
		CategoryID:      categoryID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Instructions:    req.Instructions,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        servings,
		ImageURL:        req.ImageURL,
		IsPublished:     isPublished,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, ingredients); err != nil {
		return domain.RecipeDetail{}, err
	}

	created, err := s.recipeRepository.GetRecipeDetailByID(ctx, recipe.ID.String())
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return s.toDetail(ctx, created, author), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, requester authz.Identity) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}

	if err := authz.RequireOwnerOrAdmin(requester, recipe); err != nil {
		return domain.RecipeDetail{}, err
	}

	if req.Title != nil {
		if len(strings.TrimSpace(*req.Title)) < 3 {
			return domain.RecipeDetail{}, domain.ErrTitleTooShort
		}
		recipe.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		if len(strings.TrimSpace(*req.Description)) < 10 {
			return domain.RecipeDetail{}, domain.ErrDescriptionShort
		}
		recipe.Description = *req.Description
	}
	if req.Instructions != nil {
		recipe.Instructions = *req.Instructions
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			recipe.CategoryID = nil
			recipe.Category = nil
		} else {
			categoryID, err := s.resolveCategory(ctx, *req.CategoryID)
			if err != nil {
				return domain.RecipeDetail{}, err
			}
			recipe.CategoryID = categoryID
			recipe.Category = nil
		}
	}
	if req.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = *req.PrepTimeMinutes
	}
	if req.CookTimeMinutes != nil {
		recipe.CookTimeMinutes = *req.CookTimeMinutes
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.ImageURL != nil {
		recipe.ImageURL = *req.ImageURL
	}
	if req.IsPublished != nil {
		recipe.IsPublished = *req.IsPublished
	}

	// A supplied ingredient list replaces the old one wholesale; nil means
	// leave ingredients alone.
	var ingredients []*entities.Ingredient
	if req.Ingredients != nil {
		ingredients, err = buildIngredients(req.Ingredients)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, ingredients); err != nil {
		return domain.RecipeDetail{}, err
	}

	updated, err := s.recipeRepository.GetRecipeDetailByID(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	return s.toDetail(ctx, updated, requester), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, requester authz.Identity) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if err := authz.RequireOwnerOrAdmin(requester, recipe); err != nil {
		return err
	}

	if recipe.ImageURL != "" {
		if objectKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL); objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipeID string, image *multipart.FileHeader, requester authz.Identity) (string, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrRecipeNotFound
		}
		return "", err
	}

	if err := authz.RequireOwnerOrAdmin(requester, recipe); err != nil {
		return "", err
	}

	var objectKey string
	existingKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL)
	if existingKey != "" {
		objectKey, err = s.s3.UpdateFile(existingKey, image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(recipe.ID.String(), image, "recipes", storage.AllowImage...)
	}
	if err != nil {
		return "", err
	}

	recipe.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, nil); err != nil {
		return "", err
	}

	return recipe.ImageURL, nil
}

func (s *recipeService) GetAllRecipes(ctx context.Context, page, limit int) ([]domain.RecipeSummary, int64, error) {
	recipes, count, err := s.recipeRepository.GetAllRecipes(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeSummary, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, s.toSummary(ctx, recipe, authz.Identity{}))
	}
	return result, count, nil
}
