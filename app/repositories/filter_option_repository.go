package repositories

import (
	"context"

	"github.com/Rakhulsr/go-taxonomy/app/models"
	"gorm.io/gorm"
)

type FilterOptionRepositoryImpl interface {
	Create(ctx context.Context, option *models.FilterOption) error
	CreateBatch(ctx context.Context, options []models.FilterOption) error
	GetByID(ctx context.Context, id string) (*models.FilterOption, error)
	GetByFilter(ctx context.Context, filterID string) ([]models.FilterOption, error)
	GetByFilterAndValue(ctx context.Context, filterID, value string) (*models.FilterOption, error)
	Update(ctx context.Context, option *models.FilterOption) error
	Delete(ctx context.Context, id string) error
}

type filterOptionRepository struct {
	db *gorm.DB
}

func NewFilterOptionRepository(db *gorm.DB) FilterOptionRepositoryImpl {
	return &filterOptionRepository{db: db}
}

func (r *filterOptionRepository) Create(ctx context.Context, option *models.FilterOption) error {
	return r.db.WithContext(ctx).Create(option).Error
}

func (r *filterOptionRepository) CreateBatch(ctx context.Context, options []models.FilterOption) error {
	if len(options) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&options).Error
}

func (r *filterOptionRepository) GetByID(ctx context.Context, id string) (*models.FilterOption, error) {
	var option models.FilterOption
	err := r.db.WithContext(ctx).First(&option, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

func (r *filterOptionRepository) GetByFilter(ctx context.Context, filterID string) ([]models.FilterOption, error) {
	var options []models.FilterOption
	err := r.db.WithContext(ctx).
		Where("filter_id = ?", filterID).
		Order("sort_order ASC, value ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *filterOptionRepository) GetByFilterAndValue(ctx context.Context, filterID, value string) (*models.FilterOption, error) {
	var option models.FilterOption
	err := r.db.WithContext(ctx).First(&option, "filter_id = ? AND value = ?", filterID, value).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}

func (r *filterOptionRepository) Update(ctx context.Context, option *models.FilterOption) error {
	return r.db.WithContext(ctx).Save(option).Error
}

func (r *filterOptionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.FilterOption{}, "id = ?", id).Error
}
