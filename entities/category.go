package entities

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"type:timestamp;autoCreateTime" json:"created_at"`

	Recipes []*Recipe `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}
