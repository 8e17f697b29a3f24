package domain

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	MessageFailedBodyRequest    = "failed to process request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "token invalid"
	MessageUserNotAllowed       = "user not allowed"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// StatusCode maps a domain error to the HTTP status the handlers report.
// Anything unclassified is a plain bad request.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrRecipeNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrCommentNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrFavoriteNotFound),
		errors.Is(err, ErrRefreshTokenNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrUserNotAllowed),
		errors.Is(err, ErrAccountInactive):
		return fiber.StatusForbidden
	case errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrCategoryNameTaken):
		return fiber.StatusConflict
	case errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrRefreshTokenRevoked),
		errors.Is(err, ErrRefreshTokenExpired),
		errors.Is(err, ErrCredentialsInvalid):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusBadRequest
	}
}
