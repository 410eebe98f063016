package models

import (
	"time"

	"gorm.io/gorm"
)

type FilterOption struct {
	ID           string  `gorm:"size:36;not null;uniqueIndex;primary_key"`
	FilterID     string  `gorm:"size:36;not null;uniqueIndex:idx_filter_option_value"`
	Value        string  `gorm:"size:100;not null;uniqueIndex:idx_filter_option_value"`
	DisplayValue string  `gorm:"size:150;not null"`
	ColorCode    *string `gorm:"size:6"`
	IsActive     bool    `gorm:"not null;default:true"`
	SortOrder    int     `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
