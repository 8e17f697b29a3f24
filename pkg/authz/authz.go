package authz

import (
	"Recipe-Share-Backend/domain"

	"github.com/google/uuid"
)

type (
	// Identity is the resolved caller of a request. Anonymous requests carry
	// the zero Identity.
	Identity struct {
		UserID uuid.UUID
		Role   string
	}

	// Ownable is implemented by every entity with a single owning user.
	// Recipes expose their author, engagement rows expose their user.
	Ownable interface {
		OwnerID() uuid.UUID
	}
)

func (i Identity) IsAnonymous() bool {
	return i.UserID == uuid.Nil
}

func (i Identity) IsAdmin() bool {
	return i.Role == domain.RoleAdmin
}

// CanModify reports whether the identity may mutate the target: the owner
// or an admin. Reads are never gated through this check.
func CanModify(i Identity, target Ownable) bool {
	if i.IsAnonymous() {
		return false
	}
	if i.IsAdmin() {
		return true
	}
	return i.UserID == target.OwnerID()
}

// RequireOwnerOrAdmin is CanModify as an error, for service-layer guards.
func RequireOwnerOrAdmin(i Identity, target Ownable) error {
	if !CanModify(i, target) {
		return domain.ErrUserNotAllowed
	}
	return nil
}

// RequireAdmin gates admin-or-read-only writes.
func RequireAdmin(i Identity) error {
	if !i.IsAdmin() {
		return domain.ErrUserNotAllowed
	}
	return nil
}

// CanSee reports whether the identity may read the target recipe-like
// entity given its publish state: published entities are public, drafts
// are visible to the owner and admins only.
func CanSee(i Identity, target Ownable, published bool) bool {
	if published {
		return true
	}
	return CanModify(i, target)
}
