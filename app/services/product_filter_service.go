package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-taxonomy/app/apperrors"
	"github.com/Rakhulsr/go-taxonomy/app/models"
	"github.com/Rakhulsr/go-taxonomy/app/repositories"
	"github.com/google/uuid"
)

type ValueSpec struct {
	FilterID       string
	FilterOptionID *string
	CustomValue    *string
}

// ProductFilterService binds products to the filters assigned to their
// category.
type ProductFilterService struct {
	productRepo        repositories.ProductRepositoryImpl
	categoryFilterRepo repositories.CategoryFilterRepositoryImpl
	optionRepo         repositories.FilterOptionRepositoryImpl
	valueRepo          repositories.ProductFilterValueRepositoryImpl
}

func NewProductFilterService(
	productRepo repositories.ProductRepositoryImpl,
	categoryFilterRepo repositories.CategoryFilterRepositoryImpl,
	optionRepo repositories.FilterOptionRepositoryImpl,
	valueRepo repositories.ProductFilterValueRepositoryImpl,
) *ProductFilterService {
	return &ProductFilterService{
		productRepo:        productRepo,
		categoryFilterRepo: categoryFilterRepo,
		optionRepo:         optionRepo,
		valueRepo:          valueRepo,
	}
}

// SetValues validates the supplied values against the product category's
// active assignments and replaces all prior bindings with the new set. A
// partial input is therefore a subtractive update, not a merge.
func (s *ProductFilterService) SetValues(ctx context.Context, productID string, values []ValueSpec) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to fetch product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}

	assignments, err := s.categoryFilterRepo.GetByCategory(ctx, product.CategoryID, true)
	if err != nil {
		return fmt.Errorf("failed to list category assignments: %w", err)
	}
	validFilters := make(map[string]bool, len(assignments))
	requiredFilters := make(map[string]bool)
	for _, assignment := range assignments {
		validFilters[assignment.FilterID] = true
		if assignment.IsRequired {
			requiredFilters[assignment.FilterID] = true
		}
	}

	now := time.Now()
	rows := make([]models.ProductFilterValue, 0, len(values))
	provided := make(map[string]bool, len(values))
	for _, value := range values {
		if !validFilters[value.FilterID] {
			return fmt.Errorf("filter %s on product %s: %w", value.FilterID, productID, apperrors.ErrFilterNotAssigned)
		}

		row := models.ProductFilterValue{
			ID:        uuid.New().String(),
			ProductID: productID,
			FilterID:  value.FilterID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		switch {
		case value.FilterOptionID != nil:
			option, err := s.optionRepo.GetByID(ctx, *value.FilterOptionID)
			if err != nil {
				return fmt.Errorf("failed to fetch option: %w", err)
			}
			if option == nil || option.FilterID != value.FilterID {
				return fmt.Errorf("option %s for filter %s: %w", *value.FilterOptionID, value.FilterID, apperrors.ErrInvalidOption)
			}
			// Option wins when both are supplied; the custom value is
			// cleared, never stored alongside.
			row.FilterOptionID = value.FilterOptionID
		case value.CustomValue != nil:
			row.CustomValue = value.CustomValue
		default:
			return fmt.Errorf("filter %s on product %s: %w", value.FilterID, productID, apperrors.ErrMissingValue)
		}

		provided[value.FilterID] = true
		rows = append(rows, row)
	}

	for filterID := range requiredFilters {
		if !provided[filterID] {
			return fmt.Errorf("filter %s on product %s: %w", filterID, productID, apperrors.ErrMissingRequired)
		}
	}

	if err := s.valueRepo.DeleteByProduct(ctx, productID); err != nil {
		return fmt.Errorf("failed to clear prior values: %w", err)
	}
	if err := s.valueRepo.CreateBatch(ctx, rows); err != nil {
		if repositories.IsUniqueViolation(err) {
			return fmt.Errorf("product values written concurrently: %w", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to write values: %w", err)
	}
	return nil
}

func (s *ProductFilterService) GetValues(ctx context.Context, productID string) ([]models.ProductFilterValue, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", productID, apperrors.ErrNotFound)
	}
	return s.valueRepo.GetByProduct(ctx, productID)
}
