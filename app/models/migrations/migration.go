package migrations

import (
	"github.com/Rakhulsr/go-taxonomy/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Filter{},
		&models.FilterOption{},
		&models.CategoryFilter{},
		&models.FilterAssignment{},
		&models.Product{},
		&models.ProductFilterValue{},
	)
}
