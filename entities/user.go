package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `gorm:"default:user" json:"role"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`

	Recipes   []*Recipe   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Favorites []*Favorite `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Ratings   []*Rating   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Comments  []*Comment  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

type RefreshToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string     `gorm:"uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time  `gorm:"type:timestamp;not null" json:"expires_at"`
	RevokedAt *time.Time `gorm:"type:timestamp" json:"revoked_at,omitempty"`
	CreatedAt time.Time  `gorm:"type:timestamp;autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
