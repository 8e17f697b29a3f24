package engagement

import (
	"context"
	"errors"
	"math"
	"strings"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/pkg/authz"
	"Recipe-Share-Backend/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	EngagementService interface {
		FavoriteRecipe(ctx context.Context, recipeID string, user authz.Identity) (domain.FavoriteResult, error)
		UnfavoriteRecipe(ctx context.Context, recipeID string, user authz.Identity) (domain.UnfavoriteResult, error)
		RateRecipe(ctx context.Context, recipeID string, req domain.RateRecipeRequest, user authz.Identity) (domain.RateResult, error)
		CommentRecipe(ctx context.Context, recipeID string, req domain.CommentRequest, user authz.Identity) (domain.CommentResponse, error)
		UpdateComment(ctx context.Context, commentID string, req domain.CommentRequest, requester authz.Identity) (domain.CommentResponse, error)
		DeleteComment(ctx context.Context, commentID string, requester authz.Identity) error
		GetMyRecipes(ctx context.Context, page, limit int, user authz.Identity) ([]domain.RecipeSummary, int64, error)
		GetMyFavorites(ctx context.Context, page, limit int, user authz.Identity) ([]domain.FavoriteEntry, int64, error)
	}

	engagementService struct {
		engagementRepository EngagementRepository
		recipeRepository     recipe.RecipeRepository
	}
)

func NewEngagementService(
	engagementRepository EngagementRepository,
	recipeRepository recipe.RecipeRepository,
) EngagementService {
	return &engagementService{
		engagementRepository: engagementRepository,
		recipeRepository:     recipeRepository,
	}
}

// visibleRecipe resolves the target recipe and hides drafts the user may
// not see, mirroring the detail endpoint's NotFound behavior.
func (s *engagementService) visibleRecipe(ctx context.Context, recipeID string, user authz.Identity) (*entities.Recipe, error) {
	target, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if !authz.CanSee(user, target, target.IsPublished) {
		return nil, domain.ErrRecipeNotFound
	}
	return target, nil
}

func (s *engagementService) FavoriteRecipe(ctx context.Context, recipeID string, user authz.Identity) (domain.FavoriteResult, error) {
	target, err := s.visibleRecipe(ctx, recipeID, user)
	if err != nil {
		return domain.FavoriteResult{}, err
	}

	favorite := &entities.Favorite{
		ID:       uuid.New(),
		UserID:   user.UserID,
		RecipeID: target.ID,
	}
	created, err := s.engagementRepository.CreateFavorite(ctx, favorite)
	if err != nil {
		return domain.FavoriteResult{}, err
	}

	// A repeat favorite is not an error; the caller just learns nothing new
	// was created.
	return domain.FavoriteResult{Created: created}, nil
}

func (s *engagementService) UnfavoriteRecipe(ctx context.Context, recipeID string, user authz.Identity) (domain.UnfavoriteResult, error) {
	removed, err := s.engagementRepository.DeleteFavorite(ctx, user.UserID.String(), recipeID)
	if err != nil {
		return domain.UnfavoriteResult{}, err
	}
	return domain.UnfavoriteResult{Removed: removed}, nil
}

func toRatingResponse(rating *entities.Rating) domain.RatingResponse {
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
	return res
}

func (s *engagementService) RateRecipe(ctx context.Context, recipeID string, req domain.RateRecipeRequest, user authz.Identity) (domain.RateResult, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return domain.RateResult{}, domain.ErrRatingOutOfRange
	}

	target, err := s.visibleRecipe(ctx, recipeID, user)
	if err != nil {
		return domain.RateResult{}, err
	}

	// The created flag is presentational; the write itself is a single
	// conditional upsert backed by the unique (user, recipe) index.
	created := true
	if _, err := s.engagementRepository.GetRating(ctx, user.UserID.String(), recipeID); err == nil {
		created = false
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RateResult{}, err
	}

	rating := &entities.Rating{
		ID:       uuid.New(),
		UserID:   user.UserID,
		RecipeID: target.ID,
		Rating:   req.Rating,
	}
	if err := s.engagementRepository.UpsertRating(ctx, rating); err != nil {
		return domain.RateResult{}, err
	}

	stored, err := s.engagementRepository.GetRating(ctx, user.UserID.String(), recipeID)
	if err != nil {
		return domain.RateResult{}, err
	}

	return domain.RateResult{
		Rating:  toRatingResponse(stored),
		Created: created,
	}, nil
}

func toCommentResponse(comment *entities.Comment) domain.CommentResponse {
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
	return res
}

func (s *engagementService) CommentRecipe(ctx context.Context, recipeID string, req domain.CommentRequest, user authz.Identity) (domain.CommentResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return domain.CommentResponse{}, domain.ErrCommentEmpty
	}

	target, err := s.visibleRecipe(ctx, recipeID, user)
	if err != nil {
		return domain.CommentResponse{}, err
	}

	comment := &entities.Comment{
		ID:       uuid.New(),
		UserID:   user.UserID,
		RecipeID: target.ID,
		Text:     text,
	}
	if err := s.engagementRepository.CreateComment(ctx, comment); err != nil {
		return domain.CommentResponse{}, err
	}

	return toCommentResponse(comment), nil
}

func (s *engagementService) UpdateComment(ctx context.Context, commentID string, req domain.CommentRequest, requester authz.Identity) (domain.CommentResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return domain.CommentResponse{}, domain.ErrCommentEmpty
	}

	comment, err := s.engagementRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CommentResponse{}, domain.ErrCommentNotFound
		}
		return domain.CommentResponse{}, err
	}

	if err := authz.RequireOwnerOrAdmin(requester, comment); err != nil {
		return domain.CommentResponse{}, err
	}

	comment.Text = text
	if err := s.engagementRepository.UpdateComment(ctx, comment); err != nil {
		return domain.CommentResponse{}, err
	}

	return toCommentResponse(comment), nil
}

func (s *engagementService) DeleteComment(ctx context.Context, commentID string, requester authz.Identity) error {
	comment, err := s.engagementRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCommentNotFound
		}
		return err
	}

	if err := authz.RequireOwnerOrAdmin(requester, comment); err != nil {
		return err
	}

	return s.engagementRepository.DeleteComment(ctx, commentID)
}

// GetMyRecipes lists everything the caller authored, drafts included,
// independent of the published-only filter of the public listing.
func (s *engagementService) GetMyRecipes(ctx context.Context, page, limit int, user authz.Identity) ([]domain.RecipeSummary, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipesByAuthor(ctx, user.UserID.String(), page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeSummary, 0, len(recipes))
	for _, entry := range recipes {
		result = append(result, s.summaryFor(ctx, entry, user))
	}
	return result, count, nil
}

// summaryFor mirrors the recipe service's summary assembly for entities the
// engagement layer already loaded.
func (s *engagementService) summaryFor(ctx context.Context, entry *entities.Recipe, user authz.Identity) domain.RecipeSummary {
	summary := domain.RecipeSummary{
		ID:              entry.ID.String(),
		Title:           entry.Title,
		Description:     entry.Description,
		ImageURL:        entry.ImageURL,
		AuthorID:        entry.AuthorID.String(),
		PrepTimeMinutes: entry.PrepTimeMinutes,
		CookTimeMinutes: entry.CookTimeMinutes,
		TotalTime:       entry.PrepTimeMinutes + entry.CookTimeMinutes,
		Servings:        entry.Servings,
		IsPublished:     entry.IsPublished,
		CreatedAt:       entry.CreatedAt,
	}
	if entry.Author != nil {
		summary.Author = entry.Author.Username
	}
	if entry.Category != nil {
		summary.CategoryID = entry.Category.ID.String()
		summary.CategoryName = entry.Category.Name
	}

	avg, total, err := s.recipeRepository.GetRatingStats(ctx, summary.ID)
	if err == nil {
		summary.AverageRating = math.Round(avg*10) / 10
		summary.TotalRatings = total
	}
	if !user.IsAnonymous() {
		favorited, err := s.recipeRepository.IsFavorited(ctx, user.UserID.String(), summary.ID)
		if err == nil {
			summary.IsFavorited = favorited
		}
	}
	return summary
}

func (s *engagementService) GetMyFavorites(ctx context.Context, page, limit int, user authz.Identity) ([]domain.FavoriteEntry, int64, error) {
	favorites, count, err := s.engagementRepository.GetFavorites(ctx, user.UserID.String(), page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.FavoriteEntry, 0, len(favorites))
	for _, favorite := range favorites {
		entry := domain.FavoriteEntry{
			ID:        favorite.ID.String(),
			CreatedAt: favorite.CreatedAt,
		}
		if favorite.Recipe != nil {
			entry.Recipe = s.summaryFor(ctx, favorite.Recipe, user)
			entry.Recipe.IsFavorited = true
		}
		result = append(result, entry)
	}
	return result, count, nil
}
