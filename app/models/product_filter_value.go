package models

import "time"

// ProductFilterValue binds a product to one of its category's assigned
// filters, either through a catalog option or a free-form custom value.
// Exactly one of FilterOptionID and CustomValue is set.
type ProductFilterValue struct {
	ID             string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID      string `gorm:"size:36;not null;uniqueIndex:idx_product_filter_value"`
	FilterID       string `gorm:"size:36;not null;uniqueIndex:idx_product_filter_value"`
	Filter         Filter
	FilterOptionID *string `gorm:"size:36;index"`
	FilterOption   *FilterOption
	CustomValue    *string `gorm:"size:255"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
