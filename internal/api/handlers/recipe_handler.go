package handlers

import (
	"strconv"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		UploadRecipeImage(c *fiber.Ctx) error

		GetAllRecipes(c *fiber.Ctx) error
		AdminDeleteRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	viewer := identityFromCtx(c)
	page, limit := parsePagination(c)

	filter := domain.RecipeFilter{
		Search:     c.Query("search", ""),
		CategoryID: c.Query("category_id", ""),
		Author:     c.Query("author", ""),
		Page:       page,
		Limit:      limit,
	}

	if raw := c.Query("min_rating", ""); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipes, domain.ErrInvalidMinRating)
		}
		filter.MinRating = minRating
	}

	recipes, count, err := h.recipeService.GetRecipes(c.Context(), filter, viewer)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes": recipes,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	viewer := identityFromCtx(c)
	recipeID := c.Params("id")

	if recipeID == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetRecipeDetail, domain.ErrRecipeNotFound)
	}

	res, err := h.recipeService.GetRecipeDetail(c.Context(), recipeID, viewer)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	author := identityFromCtx(c)
	req := new(domain.CreateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, author)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	requester := identityFromCtx(c)
	recipeID := c.Params("id")
	req := new(domain.UpdateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), recipeID, *req, requester)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	requester := identityFromCtx(c)
	recipeID := c.Params("id")

	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID, requester); err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) UploadRecipeImage(c *fiber.Ctx) error {
	requester := identityFromCtx(c)
	recipeID := c.Params("id")

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadRecipeImage, err)
	}

	imageURL, err := h.recipeService.UploadRecipeImage(c.Context(), recipeID, image, requester)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedUploadRecipeImage, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"image_url": imageURL,
	}, fiber.StatusOK, domain.MessageSuccessUploadRecipeImage)
}

func (h *recipeHandler) GetAllRecipes(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	recipes, count, err := h.recipeService.GetAllRecipes(c.Context(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes": recipes,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

// AdminDeleteRecipe reuses the owner-or-admin service path; the admin role
// on the identity authorizes the delete.
func (h *recipeHandler) AdminDeleteRecipe(c *fiber.Ctx) error {
	requester := identityFromCtx(c)

	if err := h.recipeService.DeleteRecipe(c.Context(), c.Params("id"), requester); err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}
