package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxCategoryLevel bounds the taxonomy depth. Level 1 is a top category,
// 2 a subcategory, 3 a sub-subcategory.
const MaxCategoryLevel = 3

type Category struct {
	ID        string      `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string      `gorm:"size:100;not null"`
	Slug      string      `gorm:"size:255;not null;uniqueIndex"`
	ParentID  *string     `gorm:"size:36;index"`
	Parent    *Category   `gorm:"foreignKey:ParentID"`
	Children  []*Category `gorm:"foreignKey:ParentID"`
	Level     int         `gorm:"not null;index"`
	IsActive  bool        `gorm:"not null;default:true"`
	SortOrder int         `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// IsRoot reports whether the category sits at the top of the taxonomy.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
