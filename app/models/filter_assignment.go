package models

import (
	"time"

	"gorm.io/gorm"
)

// FilterAssignment is the hierarchical assignment form. For levels above 1
// each assignment links to the same filter's assignment on the parent
// category, so the assignment tree mirrors a sub-tree of the category tree
// scoped per filter.
type FilterAssignment struct {
	ID                 string  `gorm:"size:36;not null;uniqueIndex;primary_key"`
	FilterID           string  `gorm:"size:36;not null;uniqueIndex:idx_assignment_category_filter"`
	CategoryID         string  `gorm:"size:36;not null;uniqueIndex:idx_assignment_category_filter"`
	Filter             Filter
	Category           Category
	CategoryLevel      int               `gorm:"not null"`
	ParentAssignmentID *string           `gorm:"size:36;index"`
	ParentAssignment   *FilterAssignment `gorm:"foreignKey:ParentAssignmentID"`
	IsRequired         bool              `gorm:"not null;default:false"`
	IsActive           bool              `gorm:"not null;default:true"`
	SortOrder          int               `gorm:"not null;default:0"`
	AssignedAt         time.Time         `gorm:"not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}
