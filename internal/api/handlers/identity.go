package handlers

import (
	"Recipe-Share-Backend/pkg/authz"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// identityFromCtx rebuilds the caller identity the auth middleware stored
// in the request locals. Requests without a resolved user stay anonymous.
func identityFromCtx(c *fiber.Ctx) authz.Identity {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return authz.Identity{}
	}
	parsed, err := uuid.Parse(userID)
	if err != nil {
		return authz.Identity{}
	}
	role, _ := c.Locals("role").(string)
	return authz.Identity{UserID: parsed, Role: role}
}
