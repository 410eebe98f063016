package models

import "time"

// CategoryFilter is the flat assignment form: one row per (category, filter)
// pair with no hierarchy awareness. The auto-assignment classifier writes
// these and the product value binder reads them.
type CategoryFilter struct {
	CategoryID string `gorm:"size:36;primaryKey"`
	FilterID   string `gorm:"size:36;primaryKey"`
	Category   Category
	Filter     Filter
	IsRequired bool `gorm:"not null;default:false"`
	IsActive   bool `gorm:"not null;default:true"`
	SortOrder  int  `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
