package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/Rakhulsr/go-taxonomy/app/apperrors"
	"github.com/Rakhulsr/go-taxonomy/app/models"
	"github.com/Rakhulsr/go-taxonomy/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var colorCodePattern = regexp.MustCompile(`^(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type FilterSpec struct {
	Name           string `validate:"required,min=1,max=100"`
	DisplayName    string `validate:"required,min=1,max=150"`
	Description    string
	Type           models.FilterType     `validate:"required,oneof=single multiple range"`
	DataType       models.FilterDataType `validate:"required,oneof=string number boolean"`
	CategoryLevels []int                 `validate:"required,min=1,dive,gte=1,lte=3"`
	SortOrder      int
}

type UpdateFilterInput struct {
	DisplayName    *string `validate:"omitempty,min=1,max=150"`
	Description    *string
	Type           *models.FilterType     `validate:"omitempty,oneof=single multiple range"`
	DataType       *models.FilterDataType `validate:"omitempty,oneof=string number boolean"`
	CategoryLevels []int                  `validate:"omitempty,min=1,dive,gte=1,lte=3"`
	SortOrder      *int
}

type OptionSpec struct {
	Value        string `validate:"required,min=1,max=100"`
	DisplayValue string `validate:"required,min=1,max=150"`
	ColorCode    *string
	SortOrder    int
}

type FilterService struct {
	filterRepo         repositories.FilterRepositoryImpl
	optionRepo         repositories.FilterOptionRepositoryImpl
	categoryFilterRepo repositories.CategoryFilterRepositoryImpl
	assignmentRepo     repositories.FilterAssignmentRepositoryImpl
	valueRepo          repositories.ProductFilterValueRepositoryImpl
	validator          *validator.Validate
}

func NewFilterService(
	filterRepo repositories.FilterRepositoryImpl,
	optionRepo repositories.FilterOptionRepositoryImpl,
	categoryFilterRepo repositories.CategoryFilterRepositoryImpl,
	assignmentRepo repositories.FilterAssignmentRepositoryImpl,
	valueRepo repositories.ProductFilterValueRepositoryImpl,
) *FilterService {
	return &FilterService{
		filterRepo:         filterRepo,
		optionRepo:         optionRepo,
		categoryFilterRepo: categoryFilterRepo,
		assignmentRepo:     assignmentRepo,
		valueRepo:          valueRepo,
		validator:          validator.New(),
	}
}

// CreateFilter registers a filter under a unique machine name. The name
// check is case-sensitive exact match.
func (s *FilterService) CreateFilter(ctx context.Context, spec FilterSpec) (*models.Filter, error) {
	if err := s.validator.Struct(&spec); err != nil {
		return nil, err
	}

	existing, err := s.filterRepo.GetByName(ctx, spec.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up filter name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("filter %s: %w", spec.Name, apperrors.ErrDuplicateName)
	}

	now := time.Now()
	filter := &models.Filter{
		ID:             uuid.New().String(),
		Name:           spec.Name,
		DisplayName:    spec.DisplayName,
		Description:    spec.Description,
		Type:           spec.Type,
		DataType:       spec.DataType,
		CategoryLevels: models.LevelList(spec.CategoryLevels),
		IsActive:       true,
		SortOrder:      spec.SortOrder,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.filterRepo.Create(ctx, filter); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("filter name %s taken concurrently: %w", spec.Name, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create filter: %w", err)
	}
	return filter, nil
}

func (s *FilterService) UpdateFilter(ctx context.Context, id string, input UpdateFilterInput) (*models.Filter, error) {
	if err := s.validator.Struct(&input); err != nil {
		return nil, err
	}

	filter, err := s.filterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filter: %w", err)
	}
	if filter == nil {
		return nil, fmt.Errorf("filter %s: %w", id, apperrors.ErrNotFound)
	}

	if input.DisplayName != nil {
		filter.DisplayName = *input.DisplayName
	}
	if input.Description != nil {
		filter.Description = *input.Description
	}
	if input.Type != nil {
		filter.Type = *input.Type
	}
	if input.DataType != nil {
		filter.DataType = *input.DataType
	}
	if input.CategoryLevels != nil {
		filter.CategoryLevels = models.LevelList(input.CategoryLevels)
	}
	if input.SortOrder != nil {
		filter.SortOrder = *input.SortOrder
	}
	filter.UpdatedAt = time.Now()

	if err := s.filterRepo.Update(ctx, filter); err != nil {
		return nil, fmt.Errorf("failed to update filter: %w", err)
	}
	return filter, nil
}

func (s *FilterService) ToggleFilter(ctx context.Context, id string) (*models.Filter, error) {
	filter, err := s.filterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filter: %w", err)
	}
	if filter == nil {
		return nil, fmt.Errorf("filter %s: %w", id, apperrors.ErrNotFound)
	}
	filter.IsActive = !filter.IsActive
	filter.UpdatedAt = time.Now()
	if err := s.filterRepo.Update(ctx, filter); err != nil {
		return nil, fmt.Errorf("failed to toggle filter: %w", err)
	}
	return filter, nil
}

func (s *FilterService) GetFilter(ctx context.Context, id string) (*models.Filter, error) {
	filter, err := s.filterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filter: %w", err)
	}
	if filter == nil {
		return nil, fmt.Errorf("filter %s: %w", id, apperrors.ErrNotFound)
	}
	return filter, nil
}

func (s *FilterService) ListFilters(ctx context.Context, activeOnly bool) ([]models.Filter, error) {
	return s.filterRepo.GetAll(ctx, activeOnly)
}

// DeleteFilter refuses while any assignment or product value references the
// filter.
func (s *FilterService) DeleteFilter(ctx context.Context, id string) error {
	filter, err := s.filterRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch filter: %w", err)
	}
	if filter == nil {
		return fmt.Errorf("filter %s: %w", id, apperrors.ErrNotFound)
	}

	flat, err := s.categoryFilterRepo.CountByFilter(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count flat assignments: %w", err)
	}
	hier, err := s.assignmentRepo.CountByFilter(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count assignments: %w", err)
	}
	values, err := s.valueRepo.CountByFilter(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count product values: %w", err)
	}
	if flat+hier+values > 0 {
		return fmt.Errorf("filter %s is referenced by %d assignments and %d product values: %w",
			id, flat+hier, values, apperrors.ErrInUse)
	}

	return s.filterRepo.Delete(ctx, id)
}

func (s *FilterService) CreateOption(ctx context.Context, filterID string, spec OptionSpec) (*models.FilterOption, error) {
	if err := s.validateOptionSpec(&spec); err != nil {
		return nil, err
	}

	filter, err := s.filterRepo.GetByID(ctx, filterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filter: %w", err)
	}
	if filter == nil {
		return nil, fmt.Errorf("filter %s: %w", filterID, apperrors.ErrNotFound)
	}

	existing, err := s.optionRepo.GetByFilterAndValue(ctx, filterID, spec.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to look up option value: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("value %s on filter %s: %w", spec.Value, filterID, apperrors.ErrValueExists)
	}

	option := newFilterOption(filterID, spec)
	if err := s.optionRepo.Create(ctx, option); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("option value %s taken concurrently: %w", spec.Value, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create option: %w", err)
	}
	return option, nil
}

// BulkCreateOptions inserts the whole value list or nothing. Internal
// duplicates and already-existing values are rejected before any write.
func (s *FilterService) BulkCreateOptions(ctx context.Context, filterID string, specs []OptionSpec) ([]models.FilterOption, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("option list is empty")
	}
	for i := range specs {
		if err := s.validateOptionSpec(&specs[i]); err != nil {
			return nil, err
		}
	}

	filter, err := s.filterRepo.GetByID(ctx, filterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filter: %w", err)
	}
	if filter == nil {
		return nil, fmt.Errorf("filter %s: %w", filterID, apperrors.ErrNotFound)
	}

	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		if seen[spec.Value] {
			return nil, fmt.Errorf("value %s appears twice: %w", spec.Value, apperrors.ErrDuplicateValues)
		}
		seen[spec.Value] = true
	}

	existing, err := s.optionRepo.GetByFilter(ctx, filterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	for _, opt := range existing {
		if seen[opt.Value] {
			return nil, fmt.Errorf("value %s on filter %s: %w", opt.Value, filterID, apperrors.ErrValueExists)
		}
	}

	options := make([]models.FilterOption, 0, len(specs))
	for _, spec := range specs {
		options = append(options, *newFilterOption(filterID, spec))
	}
	if err := s.optionRepo.CreateBatch(ctx, options); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("option values taken concurrently: %w", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create options: %w", err)
	}
	return options, nil
}

func (s *FilterService) ToggleOption(ctx context.Context, id string) (*models.FilterOption, error) {
	option, err := s.optionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch option: %w", err)
	}
	if option == nil {
		return nil, fmt.Errorf("option %s: %w", id, apperrors.ErrNotFound)
	}
	option.IsActive = !option.IsActive
	option.UpdatedAt = time.Now()
	if err := s.optionRepo.Update(ctx, option); err != nil {
		return nil, fmt.Errorf("failed to toggle option: %w", err)
	}
	return option, nil
}

// DeleteOption refuses while any product value references the option.
func (s *FilterService) DeleteOption(ctx context.Context, id string) error {
	option, err := s.optionRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch option: %w", err)
	}
	if option == nil {
		return fmt.Errorf("option %s: %w", id, apperrors.ErrNotFound)
	}

	values, err := s.valueRepo.CountByOption(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count product values: %w", err)
	}
	if values > 0 {
		return fmt.Errorf("option %s is referenced by %d product values: %w", id, values, apperrors.ErrInUse)
	}

	return s.optionRepo.Delete(ctx, id)
}

func (s *FilterService) validateOptionSpec(spec *OptionSpec) error {
	if err := s.validator.Struct(spec); err != nil {
		return err
	}
	if spec.ColorCode != nil && !colorCodePattern.MatchString(*spec.ColorCode) {
		return fmt.Errorf("color code %q must be 3 or 6 hex digits", *spec.ColorCode)
	}
	return nil
}

func newFilterOption(filterID string, spec OptionSpec) *models.FilterOption {
	now := time.Now()
	return &models.FilterOption{
		ID:           uuid.New().String(),
		FilterID:     filterID,
		Value:        spec.Value,
		DisplayValue: spec.DisplayValue,
		ColorCode:    spec.ColorCode,
		IsActive:     true,
		SortOrder:    spec.SortOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
