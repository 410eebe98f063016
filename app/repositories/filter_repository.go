package repositories

import (
	"context"

	"github.com/Rakhulsr/go-taxonomy/app/models"
	"gorm.io/gorm"
)

type FilterRepositoryImpl interface {
	Create(ctx context.Context, filter *models.Filter) error
	GetByID(ctx context.Context, id string) (*models.Filter, error)
	GetByName(ctx context.Context, name string) (*models.Filter, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Filter, error)
	GetAll(ctx context.Context, activeOnly bool) ([]models.Filter, error)
	Update(ctx context.Context, filter *models.Filter) error
	Delete(ctx context.Context, id string) error
}

type filterRepository struct {
	db *gorm.DB
}

func NewFilterRepository(db *gorm.DB) FilterRepositoryImpl {
	return &filterRepository{db: db}
}

func (r *filterRepository) Create(ctx context.Context, filter *models.Filter) error {
	return r.db.WithContext(ctx).Create(filter).Error
}

func (r *filterRepository) GetByID(ctx context.Context, id string) (*models.Filter, error) {
	var filter models.Filter
	err := r.db.WithContext(ctx).Preload("Options").First(&filter, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &filter, nil
}

func (r *filterRepository) GetByName(ctx context.Context, name string) (*models.Filter, error) {
	var filter models.Filter
	err := r.db.WithContext(ctx).First(&filter, "name = ?", name).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &filter, nil
}

func (r *filterRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Filter, error) {
	var filters []models.Filter
	if len(ids) == 0 {
		return filters, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&filters).Error
	if err != nil {
		return nil, err
	}
	return filters, nil
}

func (r *filterRepository) GetAll(ctx context.Context, activeOnly bool) ([]models.Filter, error) {
	var filters []models.Filter
	query := r.db.WithContext(ctx).Order("sort_order ASC, name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&filters).Error; err != nil {
		return nil, err
	}
	return filters, nil
}

func (r *filterRepository) Update(ctx context.Context, filter *models.Filter) error {
	return r.db.WithContext(ctx).Save(filter).Error
}

func (r *filterRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Filter{}, "id = ?", id).Error
}
