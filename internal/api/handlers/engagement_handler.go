package handlers

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/pkg/engagement"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	EngagementHandler interface {
		FavoriteRecipe(c *fiber.Ctx) error
		UnfavoriteRecipe(c *fiber.Ctx) error
		RateRecipe(c *fiber.Ctx) error
		CommentRecipe(c *fiber.Ctx) error
		UpdateComment(c *fiber.Ctx) error
		DeleteComment(c *fiber.Ctx) error
		GetMyRecipes(c *fiber.Ctx) error
		GetMyFavorites(c *fiber.Ctx) error
	}

	engagementHandler struct {
		engagementService engagement.EngagementService
		validator         *validator.Validate
	}
)

func NewEngagementHandler(engagementService engagement.EngagementService, validator *validator.Validate) EngagementHandler {
	return &engagementHandler{
		engagementService: engagementService,
		validator:         validator,
	}
}

func (h *engagementHandler) FavoriteRecipe(c *fiber.Ctx) error {
	user := identityFromCtx(c)

	res, err := h.engagementService.FavoriteRecipe(c.Context(), c.Params("id"), user)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedFavorite, err)
	}

	if !res.Created {
		return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageAlreadyFavorited)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessFavorite)
}

func (h *engagementHandler) UnfavoriteRecipe(c *fiber.Ctx) error {
	user := identityFromCtx(c)

	res, err := h.engagementService.UnfavoriteRecipe(c.Context(), c.Params("id"), user)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedUnfavorite, err)
	}

	if !res.Removed {
		return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageFavoriteNotFound)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUnfavorite)
}

func (h *engagementHandler) RateRecipe(c *fiber.Ctx) error {
	user := identityFromCtx(c)
	req := new(domain.RateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRate, err)
	}

	res, err := h.engagementService.RateRecipe(c.Context(), c.Params("id"), *req, user)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedRate, err)
	}

	status := fiber.StatusOK
	if res.Created {
		status = fiber.StatusCreated
	}
	return presenters.SuccessResponse(c, res, status, domain.MessageSuccessRate)
}

func (h *engagementHandler) CommentRecipe(c *fiber.Ctx) error {
	user := identityFromCtx(c)
	req := new(domain.CommentRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedComment, err)
	}

	res, err := h.engagementService.CommentRecipe(c.Context(), c.Params("id"), *req, user)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedComment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessComment)
}

func (h *engagementHandler) UpdateComment(c *fiber.Ctx) error {
	requester := identityFromCtx(c)
	req := new(domain.CommentRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateComment, err)
	}

	res, err := h.engagementService.UpdateComment(c.Context(), c.Params("id"), *req, requester)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedUpdateComment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateComment)
}

func (h *engagementHandler) DeleteComment(c *fiber.Ctx) error {
	requester := identityFromCtx(c)

	if err := h.engagementService.DeleteComment(c.Context(), c.Params("id"), requester); err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedDeleteComment, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteComment)
}

func (h *engagementHandler) GetMyRecipes(c *fiber.Ctx) error {
	user := identityFromCtx(c)
	page, limit := parsePagination(c)

	recipes, count, err := h.engagementService.GetMyRecipes(c.Context(), page, limit, user)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetMyRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes": recipes,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetMyRecipes)
}

func (h *engagementHandler) GetMyFavorites(c *fiber.Ctx) error {
	user := identityFromCtx(c)
	page, limit := parsePagination(c)

	favorites, count, err := h.engagementService.GetMyFavorites(c.Context(), page, limit, user)
	if err != nil {
		return presenters.ErrorResponse(c, domain.StatusCode(err), domain.MessageFailedGetFavorites, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"favorites": favorites,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}
