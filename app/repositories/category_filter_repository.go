package repositories

import (
	"context"

	"github.com/Rakhulsr/go-taxonomy/app/models"
	"gorm.io/gorm"
)

type CategoryFilterRepositoryImpl interface {
	Create(ctx context.Context, assignment *models.CategoryFilter) error
	Get(ctx context.Context, categoryID, filterID string) (*models.CategoryFilter, error)
	GetByCategory(ctx context.Context, categoryID string, activeOnly bool) ([]models.CategoryFilter, error)
	CountByFilter(ctx context.Context, filterID string) (int64, error)
	Update(ctx context.Context, assignment *models.CategoryFilter) error
	Delete(ctx context.Context, categoryID, filterID string) error
}

type categoryFilterRepository struct {
	db *gorm.DB
}

func NewCategoryFilterRepository(db *gorm.DB) CategoryFilterRepositoryImpl {
	return &categoryFilterRepository{db: db}
}

func (r *categoryFilterRepository) Create(ctx context.Context, assignment *models.CategoryFilter) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *categoryFilterRepository) Get(ctx context.Context, categoryID, filterID string) (*models.CategoryFilter, error) {
	var assignment models.CategoryFilter
	err := r.db.WithContext(ctx).
		First(&assignment, "category_id = ? AND filter_id = ?", categoryID, filterID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *categoryFilterRepository) GetByCategory(ctx context.Context, categoryID string, activeOnly bool) ([]models.CategoryFilter, error) {
	var assignments []models.CategoryFilter
	query := r.db.WithContext(ctx).
		Preload("Filter").
		Where("category_id = ?", categoryID).
		Order("sort_order ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *categoryFilterRepository) CountByFilter(ctx context.Context, filterID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CategoryFilter{}).Where("filter_id = ?", filterID).Count(&count).Error
	return count, err
}

func (r *categoryFilterRepository) Update(ctx context.Context, assignment *models.CategoryFilter) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *categoryFilterRepository) Delete(ctx context.Context, categoryID, filterID string) error {
	return r.db.WithContext(ctx).
		Delete(&models.CategoryFilter{}, "category_id = ? AND filter_id = ?", categoryID, filterID).Error
}
