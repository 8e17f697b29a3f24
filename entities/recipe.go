package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	CategoryID      *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Title           string     `gorm:"not null" json:"title"`
	Description     string     `gorm:"type:text;not null" json:"description"`
	Instructions    string     `gorm:"type:text" json:"instructions"`
	PrepTimeMinutes int        `gorm:"default:0" json:"prep_time_minutes"`
	CookTimeMinutes int        `gorm:"default:0" json:"cook_time_minutes"`
	Servings        int        `gorm:"default:1" json:"servings"`
	ImageURL        string     `json:"image_url,omitempty"`
	IsPublished     bool       `gorm:"default:true" json:"is_published"`

	Author      *User         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Category    *Category     `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Ingredients []*Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Favorites   []*Favorite   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ratings     []*Rating     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Comments    []*Comment    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Timestamp
}

// OwnerID satisfies authz.Ownable.
func (r *Recipe) OwnerID() uuid.UUID {
	return r.AuthorID
}

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Name     string    `gorm:"not null" json:"name"`
	Quantity *float64  `json:"quantity,omitempty"`
	Unit     string    `json:"unit,omitempty"`
	Notes    string    `json:"notes,omitempty"`
	// Seq preserves insertion order within a recipe.
	Seq int `gorm:"not null;default:0" json:"-"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
