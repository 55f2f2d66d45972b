// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a published story or article.
//
// Image holds the raw media reference exactly as stored: possibly a bare
// filename (the canonical form), a stale-prefixed path, an absolute path, or
// empty. It is resolved on read by the media resolver and never persisted in
// resolved form, except when a repair rewrites it back to canonical.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"size:300;not null" json:"title"`
	Slug    string `gorm:"size:300;index" json:"slug"`
	Content string `gorm:"type:text;not null" json:"content"`
	Excerpt string `gorm:"type:text" json:"excerpt,omitempty"`

	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	// LegacyCategory is the free-text category column left behind by old
	// schema versions. The category sweep folds it into CategoryID; nothing
	// writes it anymore.
	LegacyCategory string `gorm:"column:category;size:100" json:"-"`

	Image string `gorm:"size:255" json:"image,omitempty"`

	Views    uint `gorm:"not null;default:0" json:"views"`
	Likes    uint `gorm:"not null;default:0" json:"likes"`
	Dislikes uint `gorm:"not null;default:0" json:"dislikes"`

	Published bool `gorm:"not null;default:true" json:"published"`
	Featured  bool `gorm:"not null;default:false" json:"featured"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}
