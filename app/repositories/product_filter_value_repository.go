package repositories

import (
	"context"

	"github.com/Rakhulsr/go-taxonomy/app/models"
	"gorm.io/gorm"
)

type ProductFilterValueRepositoryImpl interface {
	GetByProduct(ctx context.Context, productID string) ([]models.ProductFilterValue, error)
	CountByFilter(ctx context.Context, filterID string) (int64, error)
	CountByOption(ctx context.Context, optionID string) (int64, error)
	DeleteByProduct(ctx context.Context, productID string) error
	CreateBatch(ctx context.Context, values []models.ProductFilterValue) error
}

type productFilterValueRepository struct {
	db *gorm.DB
}

func NewProductFilterValueRepository(db *gorm.DB) ProductFilterValueRepositoryImpl {
	return &productFilterValueRepository{db: db}
}

func (r *productFilterValueRepository) GetByProduct(ctx context.Context, productID string) ([]models.ProductFilterValue, error) {
	var values []models.ProductFilterValue
	err := r.db.WithContext(ctx).
		Preload("Filter").
		Preload("FilterOption").
		Where("product_id = ?", productID).
		Find(&values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *productFilterValueRepository) CountByFilter(ctx context.Context, filterID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductFilterValue{}).Where("filter_id = ?", filterID).Count(&count).Error
	return count, err
}

func (r *productFilterValueRepository) CountByOption(ctx context.Context, optionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductFilterValue{}).Where("filter_option_id = ?", optionID).Count(&count).Error
	return count, err
}

func (r *productFilterValueRepository) DeleteByProduct(ctx context.Context, productID string) error {
	return r.db.WithContext(ctx).Delete(&models.ProductFilterValue{}, "product_id = ?", productID).Error
}

func (r *productFilterValueRepository) CreateBatch(ctx context.Context, values []models.ProductFilterValue) error {
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&values).Error
}
