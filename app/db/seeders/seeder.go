package seeders

import (
	"context"
	"log"
	"time"

	"github.com/Rakhulsr/go-taxonomy/app/helpers"
	"github.com/Rakhulsr/go-taxonomy/app/models"
	"github.com/Rakhulsr/go-taxonomy/app/repositories"
	"github.com/Rakhulsr/go-taxonomy/app/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DBSeed loads a demo taxonomy: a three-level category chain, the base
// filters materialized by the classifier, and one product. Safe to run
// repeatedly; existing rows are left alone.
func DBSeed(db *gorm.DB) error {
	ctx := context.Background()

	categoryRepo := repositories.NewCategoryRepository(db)
	filterRepo := repositories.NewFilterRepository(db)
	optionRepo := repositories.NewFilterOptionRepository(db)
	categoryFilterRepo := repositories.NewCategoryFilterRepository(db)
	productRepo := repositories.NewProductRepository(db)

	categoryService := services.NewCategoryService(categoryRepo, productRepo)
	classifier := services.NewClassifierService(categoryRepo, filterRepo, optionRepo, categoryFilterRepo)

	men, err := ensureCategory(ctx, categoryRepo, categoryService, "Men", nil)
	if err != nil {
		return err
	}
	shirts, err := ensureCategory(ctx, categoryRepo, categoryService, "Shirts", men)
	if err != nil {
		return err
	}
	casual, err := ensureCategory(ctx, categoryRepo, categoryService, "Casual Shirts", shirts)
	if err != nil {
		return err
	}

	for _, category := range []*models.Category{men, shirts, casual} {
		if err := classifier.Classify(ctx, category.ID); err != nil {
			return err
		}
	}

	existing, err := productRepo.GetBySlug(ctx, "oxford-shirt")
	if err != nil {
		return err
	}
	if existing == nil {
		now := time.Now()
		product := &models.Product{
			ID:         uuid.New().String(),
			Name:       "Oxford Shirt",
			Slug:       "oxford-shirt",
			Sku:        "SHIRT-OXF-001",
			CategoryID: casual.ID,
			Price:      decimal.NewFromFloat(349000.00),
			Stock:      25,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
	}

	log.Println("Seed complete")
	return nil
}

// ensureCategory creates the category unless a row with its derived slug
// already exists from an earlier seed run.
func ensureCategory(ctx context.Context, repo repositories.CategoryRepositoryImpl, service *services.CategoryService, name string, parent *models.Category) (*models.Category, error) {
	slug := helpers.GenerateSlug(name)
	var parentID *string
	if parent != nil {
		slug = parent.Slug + "-" + slug
		parentID = &parent.ID
	}

	existing, err := repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	return service.Create(ctx, services.CreateCategoryInput{Name: name, ParentID: parentID})
}
