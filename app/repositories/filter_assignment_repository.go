package repositories

import (
	"context"

	"github.com/Rakhulsr/go-taxonomy/app/models"
	"gorm.io/gorm"
)

type FilterAssignmentRepositoryImpl interface {
	Create(ctx context.Context, assignment *models.FilterAssignment) error
	CreateBatch(ctx context.Context, assignments []models.FilterAssignment) error
	GetByID(ctx context.Context, id string) (*models.FilterAssignment, error)
	GetByCategoryAndFilter(ctx context.Context, categoryID, filterID string) (*models.FilterAssignment, error)
	GetByCategory(ctx context.Context, categoryID string, activeOnly bool) ([]models.FilterAssignment, error)
	CountByFilter(ctx context.Context, filterID string) (int64, error)
	CountActiveChildren(ctx context.Context, assignmentID string) (int64, error)
	Update(ctx context.Context, assignment *models.FilterAssignment) error
	Delete(ctx context.Context, id string) error
}

type filterAssignmentRepository struct {
	db *gorm.DB
}

func NewFilterAssignmentRepository(db *gorm.DB) FilterAssignmentRepositoryImpl {
	return &filterAssignmentRepository{db: db}
}

func (r *filterAssignmentRepository) Create(ctx context.Context, assignment *models.FilterAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *filterAssignmentRepository) CreateBatch(ctx context.Context, assignments []models.FilterAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&assignments).Error
}

func (r *filterAssignmentRepository) GetByID(ctx context.Context, id string) (*models.FilterAssignment, error) {
	var assignment models.FilterAssignment
	err := r.db.WithContext(ctx).First(&assignment, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *filterAssignmentRepository) GetByCategoryAndFilter(ctx context.Context, categoryID, filterID string) (*models.FilterAssignment, error) {
	var assignment models.FilterAssignment
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

func (r *filterAssignmentRepository) GetByCategory(ctx context.Context, categoryID string, activeOnly bool) ([]models.FilterAssignment, error) {
	var assignments []models.FilterAssignment
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

func (r *filterAssignmentRepository) CountByFilter(ctx context.Context, filterID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FilterAssignment{}).Where("filter_id = ?", filterID).Count(&count).Error
	return count, err
}

func (r *filterAssignmentRepository) CountActiveChildren(ctx context.Context, assignmentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FilterAssignment{}).
		Where("parent_assignment_id = ? AND is_active = ?", assignmentID, true).
		Count(&count).Error
	return count, err
}

func (r *filterAssignmentRepository) Update(ctx context.Context, assignment *models.FilterAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *filterAssignmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.FilterAssignment{}, "id = ?", id).Error
}
