package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID           string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name         string `gorm:"size:255;not null"`
	Slug         string `gorm:"size:255;not null;uniqueIndex"`
	Sku          string `gorm:"size:100;uniqueIndex"`
	Description  string `gorm:"type:text"`
	CategoryID   string `gorm:"size:36;not null;index"`
	Category     Category
	Price        decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Stock        int             `gorm:"not null"`
	IsActive     bool            `gorm:"not null;default:true"`
	FilterValues []ProductFilterValue `gorm:"foreignKey:ProductID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
