package recipe

import (
	"context"
	"mime/multipart"
	"testing"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/pkg/authz"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRecipeRepository struct {
	recipes    map[string]*entities.Recipe
	categories map[string]*entities.Category
	ratings    map[string][]int    // recipeID -> rating values
	userRating map[string]int      // userID|recipeID -> rating
	favorites  map[string]struct{} // userID|recipeID
	deleted    []string
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{
		recipes:    make(map[string]*entities.Recipe),
		categories: make(map[string]*entities.Category),
		ratings:    make(map[string][]int),
		userRating: make(map[string]int),
		favorites:  make(map[string]struct{}),
	}
}

func (f *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe, ingredients []*entities.Ingredient) error {
	for _, ingredient := range ingredients {
		ingredient.RecipeID = recipe.ID
	}
	recipe.Ingredients = ingredients
	f.recipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (f *fakeRecipeRepository) GetRecipeDetailByID(ctx context.Context, id string) (*entities.Recipe, error) {
	return f.GetRecipeByID(ctx, id)
}

func (f *fakeRecipeRepository) GetRecipes(_ context.Context, filter domain.RecipeFilter, viewerID string) ([]*entities.Recipe, int64, error) {
	var result []*entities.Recipe
	for _, recipe := range f.recipes {
		if !recipe.IsPublished && recipe.AuthorID.String() != viewerID {
			continue
		}
		result = append(result, recipe)
	}
	return result, int64(len(result)), nil
}

func (f *fakeRecipeRepository) GetRecipesByAuthor(_ context.Context, authorID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var result []*entities.Recipe
	for _, recipe := range f.recipes {
		if recipe.AuthorID.String() == authorID {
			result = append(result, recipe)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeRecipeRepository) GetAllRecipes(_ context.Context, page, limit int) ([]*entities.Recipe, int64, error) {
	var result []*entities.Recipe
	for _, recipe := range f.recipes {
		result = append(result, recipe)
	}
	return result, int64(len(result)), nil
}

func (f *fakeRecipeRepository) UpdateRecipe(_ context.Context, recipe *entities.Recipe, ingredients []*entities.Ingredient) error {
	if ingredients != nil {
		for _, ingredient := range ingredients {
			ingredient.RecipeID = recipe.ID
		}
		recipe.Ingredients = ingredients
	}
	f.recipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepository) DeleteRecipe(_ context.Context, id string) error {
	if _, ok := f.recipes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.recipes, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRecipeRepository) CategoryExists(_ context.Context, id string) (bool, error) {
	_, ok := f.categories[id]
	return ok, nil
}

func (f *fakeRecipeRepository) GetRatingStats(_ context.Context, recipeID string) (float64, int64, error) {
	values := f.ratings[recipeID]
	if len(values) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values)), int64(len(values)), nil
}

func (f *fakeRecipeRepository) IsFavorited(_ context.Context, userID, recipeID string) (bool, error) {
	_, ok := f.favorites[userID+"|"+recipeID]
	return ok, nil
}

func (f *fakeRecipeRepository) GetUserRating(_ context.Context, userID, recipeID string) (*int, error) {
	rating, ok := f.userRating[userID+"|"+recipeID]
	if !ok {
		return nil, nil
	}
	return &rating, nil
}

// fakeS3 records deletions and fakes public links.
type fakeS3 struct {
	deletedKeys []string
}

func (f *fakeS3) UploadFile(fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	return folder + "/" + fileName, nil
}

func (f *fakeS3) UpdateFile(objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	return objectKey, nil
}

func (f *fakeS3) DeleteFile(objectKey string) error {
	f.deletedKeys = append(f.deletedKeys, objectKey)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.example.com/" + objectKey
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	const prefix = "https://bucket.example.com/"
	if len(link) <= len(prefix) || link[:len(prefix)] != prefix {
		return ""
	}
	return link[len(prefix):]
}

func newTestRecipeService() (*fakeRecipeRepository, *fakeS3, RecipeService) {
	repo := newFakeRecipeRepository()
	s3 := &fakeS3{}
	return repo, s3, NewRecipeService(repo, s3)
}

func userIdentity() authz.Identity {
	return authz.Identity{UserID: uuid.New(), Role: domain.RoleUser}
}

func seedRecipe(repo *fakeRecipeRepository, author authz.Identity, published bool) *entities.Recipe {
	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    author.UserID,
		Title:       "Seeded recipe",
		Description: "A recipe seeded for tests",
		IsPublished: published,
		Servings:    2,
	}
	repo.recipes[recipe.ID.String()] = recipe
	return recipe
}

func TestCreateRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("creates recipe with ingredients in order", func(t *testing.T) {
		repo, _, svc := newTestRecipeService()
		author := userIdentity()

		quantity := 2.5
		res, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
			Title:           "Tomato Soup",
			Description:     "A warming tomato soup",
			Instructions:    "Simmer everything",
			PrepTimeMinutes: 10,
			CookTimeMinutes: 30,
			Ingredients: []domain.IngredientRequest{
				{Name: "tomatoes", Quantity: &quantity, Unit: "kg"},
				{Name: "salt", Unit: "pinch"},
			},
		}, author)
		require.NoError(t, err)

		assert.Equal(t, "Tomato Soup", res.Title)
		assert.Equal(t, author.UserID.String(), res.AuthorID)
		assert.Equal(t, 40, res.TotalTime)
		assert.True(t, res.IsPublished)
		require.Len(t, res.Ingredients, 2)
		assert.Equal(t, "tomatoes", res.Ingredients[0].Name)
		assert.Equal(t, "salt", res.Ingredients[1].Name)

		stored := repo.recipes[res.ID]
		require.NotNil(t, stored)
		assert.Equal(t, 0, stored.Ingredients[0].Seq)
		assert.Equal(t, 1, stored.Ingredients[1].Seq)
	})

	t.Run("title boundary", func(t *testing.T) {
		_, _, svc := newTestRecipeService()
		author := userIdentity()

		_, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
			Title:       "ab",
			Description: "long enough description",
		}, author)
		assert.ErrorIs(t, err, domain.ErrTitleTooShort)

		_, err = svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
			Title:       "abc",
			Description: "long enough description",
		}, author)
		assert.NoError(t, err)
	})

	t.Run("whitespace does not count toward the title minimum", func(t *testing.T) {
		_, _, svc := newTestRecipeService()

		_, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
			Title:       "  a  ",
			Description: "long enough description",
		}, userIdentity())
		assert.ErrorIs(t, err, domain.ErrTitleTooShort)
	})

	t.Run("short description", func(t *testing.T) {
		_, _, svc := newTestRecipeService()

		_, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
			Title:       "Valid title",
			Description: "too short",
		}, userIdentity())
		assert.ErrorIs(t, err, domain.ErrDescriptionShort)
	})

	t.Run("rejects unknown ingredient unit", func(t *testing.T) {
		_, _, svc := newTestRecipeService()

		_, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
			Title:       "Valid title",
			Description: "long enough description",
			Ingredients: []domain.IngredientRequest{{Name: "flour", Unit: "handful"}},
		}, userIdentity())
		assert.ErrorIs(t, err, domain.ErrInvalidUnit)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, _, svc := newTestRecipeService()

		_, err := svc.CreateRecipe(ctx, domain.CreateRecipeRequest{
			Title:       "Valid title",
			Description: "long enough description",
			CategoryID:  uuid.NewString(),
		}, userIdentity())
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})
}

func TestGetRecipeDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("draft is not found for strangers", func(t *testing.T) {
		repo, _, svc := newTestRecipeService()
		author := userIdentity()
		draft := seedRecipe(repo, author, false)

		_, err := svc.GetRecipeDetail(ctx, draft.ID.String(), userIdentity())
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

		_, err = svc.GetRecipeDetail(ctx, draft.ID.String(), authz.Identity{})
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	})

	t.Run("draft is visible to its author and admins", func(t *testing.T) {
		repo, _, svc := newTestRecipeService()
		author := userIdentity()
		draft := seedRecipe(repo, author, false)

		res, err := svc.GetRecipeDetail(ctx, draft.ID.String(), author)
		require.NoError(t, err)
		assert.True(t, res.IsAuthor)

		_, err = svc.GetRecipeDetail(ctx, draft.ID.String(), authz.Identity{UserID: uuid.New(), Role: domain.RoleAdmin})
		assert.NoError(t, err)
	})

	t.Run("average rating rounds to one decimal", func(t *testing.T) {
		repo, _, svc := newTestRecipeService()
		author := userIdentity()
		recipe := seedRecipe(repo, author, true)
		repo.ratings[recipe.ID.String()] = []int{3, 5}

		res, err := svc.GetRecipeDetail(ctx, recipe.ID.String(), authz.Identity{})
		require.NoError(t, err)
		assert.Equal(t, 4.0, res.AverageRating)
		assert.Equal(t, int64(2), res.TotalRatings)
	})

	t.Run("thirds round to one decimal", func(t *testing.T) {
		repo, _, svc := newTestRecipeService()
		recipe := seedRecipe(repo, userIdentity(), true)
		repo.ratings[recipe.ID.String()] = []int{1, 2, 2}

		res, err := svc.GetRecipeDetail(ctx, recipe.ID.String(), authz.Identity{})
		require.NoError(t, err)
		assert.Equal(t, 1.7, res.AverageRating)
	})

	t.Run("viewer sees own favorite and rating", func(t *testing.T) {
		repo, _, svc := newTestRecipeService()
		recipe := seedRecipe(repo, userIdentity(), true)
		viewer := userIdentity()
		repo.favorites[viewer.UserID.String()+"|"+recipe.ID.String()] = struct{}{}
		repo.userRating[viewer.UserID.String()+"|"+recipe.ID.String()] = 4

		res, err := svc.GetRecipeDetail(ctx, recipe.ID.String(), viewer)
		require.NoError(t, err)
		assert.True(t, res.IsFavorited)
		require.NotNil(t, res.UserRating)
		assert.Equal(t, 4, *res.UserRating)
		assert.False(t, res.IsAuthor)
	})
}

func TestGetRecipes(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects out-of-range min rating", func(t *testing.T) {
		_, _, svc := newTestRecipeService()

		_, _, err := svc.GetRecipes(ctx, domain.RecipeFilter{MinRating: 5.5, Page: 1, Limit: 20}, authz.Identity{})
		assert.ErrorIs(t, err, domain.ErrInvalidMinRating)
	})

	t.Run("anonymous viewers only see published recipes", func(t *testing.T) {
		repo, _, svc := newTestRecipeService()
		author := userIdentity()
		seedRecipe(repo, author, true)
		seedRecipe(repo, author, false)

		recipes, count, err := svc.GetRecipes(ctx, domain.RecipeFilter{Page: 1, Limit: 20}, authz.Identity{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.Len(t, recipes, 1)
	})

	t.Run("authors see their own drafts in the listing", func(t *testing.T) {
		repo, _, svc := newTestRecipeService()
		author := userIdentity()
		seedRecipe(repo, author, true)
		seedRecipe(repo, author, false)

		_, count, err := svc.GetRecipes(ctx, domain.RecipeFilter{Page: 1, Limit: 20}, author)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestUpdateRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("author applies partial update", func(t *testing.T) {
		repo, _, svc := newTestRecipeService()
		author := userIdentity()
		recipe := seedRecipe(repo, author, true)

		title := "Renamed recipe"
		unpublish := false
		res, err := svc.UpdateRecipe(ctx, recipe.ID.String(), domain.UpdateRecipeRequest{
			Title:       &title,
			IsPublished: &unpublish,
		}, author)
		require.NoError(t, err)
		assert.Equal(t, "Renamed recipe", res.Title)
		assert.False(t, res.IsPublished)
		// Untouched fields survive.
		assert.Equal(t, "A recipe seeded for tests", res.Description)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		repo, _, svc := newTestRecipeService()
		recipe := seedRecipe(repo, userIdentity(), true)

		title := "Hijacked"
		_, err := svc.UpdateRecipe(ctx, recipe.ID.String(), domain.UpdateRecipeRequest{Title: &title}, userIdentity())
		assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
	})

	t.Run("admin can update any recipe", func(t *testing.T) {
		repo, _, svc := newTestRecipeService()
		recipe := seedRecipe(repo, userIdentity(), true)

		title := "Moderated title"
		_, err := svc.UpdateRecipe(ctx, recipe.ID.String(), domain.UpdateRecipeRequest{Title: &title},
			authz.Identity{UserID: uuid.New(), Role: domain.RoleAdmin})
		assert.NoError(t, err)
	})

	t.Run("supplied ingredients replace the old list", func(t *testing.T) {
		repo, _, svc := newTestRecipeService()
		author := userIdentity()
		recipe := seedRecipe(repo, author, true)
		recipe.Ingredients = []*entities.Ingredient{{ID: uuid.New(), Name: "old", Seq: 0}}

		res, err := svc.UpdateRecipe(ctx, recipe.ID.String(), domain.UpdateRecipeRequest{
			Ingredients: []domain.IngredientRequest{{Name: "new one"}, {Name: "new two"}},
		}, author)
		require.NoError(t, err)
		require.Len(t, res.Ingredients, 2)
		assert.Equal(t, "new one", res.Ingredients[0].Name)
	})
}

func TestDeleteRecipe(t *testing.T) {
	ctx := context.Background()

	t.Run("author deletes recipe and its stored image", func(t *testing.T) {
		repo, s3, svc := newTestRecipeService()
		author := userIdentity()
		recipe := seedRecipe(repo, author, true)
		recipe.ImageURL = "https://bucket.example.com/recipes/" + recipe.ID.String()

		require.NoError(t, svc.DeleteRecipe(ctx, recipe.ID.String(), author))
		assert.Empty(t, repo.recipes)
		assert.Equal(t, []string{"recipes/" + recipe.ID.String()}, s3.deletedKeys)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		repo, _, svc := newTestRecipeService()
		recipe := seedRecipe(repo, userIdentity(), true)

		err := svc.DeleteRecipe(ctx, recipe.ID.String(), userIdentity())
		assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
		assert.Len(t, repo.recipes, 1)
	})

	t.Run("missing recipe", func(t *testing.T) {
		_, _, svc := newTestRecipeService()

		err := svc.DeleteRecipe(ctx, uuid.NewString(), userIdentity())
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	})
}
