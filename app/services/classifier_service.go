package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Rakhulsr/go-taxonomy/app/apperrors"
	"github.com/Rakhulsr/go-taxonomy/app/models"
	"github.com/Rakhulsr/go-taxonomy/app/repositories"
	"github.com/google/uuid"
)

// ClassifierService seeds default filters for a newly created category by
// keyword match. Every step is check-then-create, so the whole operation is
// idempotent and safe to re-invoke after a partial failure; it is not
// wrapped in a transaction.
type ClassifierService struct {
	categoryRepo       repositories.CategoryRepositoryImpl
	filterRepo         repositories.FilterRepositoryImpl
	optionRepo         repositories.FilterOptionRepositoryImpl
	categoryFilterRepo repositories.CategoryFilterRepositoryImpl
}

func NewClassifierService(
	categoryRepo repositories.CategoryRepositoryImpl,
	filterRepo repositories.FilterRepositoryImpl,
	optionRepo repositories.FilterOptionRepositoryImpl,
	categoryFilterRepo repositories.CategoryFilterRepositoryImpl,
) *ClassifierService {
	return &ClassifierService{
		categoryRepo:       categoryRepo,
		filterRepo:         filterRepo,
		optionRepo:         optionRepo,
		categoryFilterRepo: categoryFilterRepo,
	}
}

// Classify materializes the matched rule's filters, options and flat
// assignments for the category.
func (s *ClassifierService) Classify(ctx context.Context, categoryID string) error {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to fetch category: %w", err)
	}
	if category == nil {
		return fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
	}

	matchContext, err := s.buildContext(ctx, category)
	if err != nil {
		return err
	}

	templates := matchRule(matchContext)
	for _, template := range templates {
		filter, err := s.ensureFilter(ctx, template)
		if err != nil {
			return err
		}
		if err := s.ensureOptions(ctx, filter.ID, template.Options); err != nil {
			return err
		}
		if err := s.ensureAssignment(ctx, categoryID, filter); err != nil {
			return err
		}
	}

	log.Printf("classified category %s (%s) with %d filters", category.Name, categoryID, len(templates))
	return nil
}

// buildContext joins the category's own name with its immediate parent's
// name, lower-cased.
func (s *ClassifierService) buildContext(ctx context.Context, category *models.Category) (string, error) {
	parts := []string{category.Name}
	if category.ParentID != nil {
		parent, err := s.categoryRepo.GetByID(ctx, *category.ParentID)
		if err != nil {
			return "", fmt.Errorf("failed to fetch parent category: %w", err)
		}
		if parent != nil {
			parts = append(parts, parent.Name)
		}
	}
	return strings.ToLower(strings.Join(parts, " ")), nil
}

// matchRule returns the filter templates of the first rule whose keyword
// set intersects the context, or the default size+color templates.
func matchRule(context string) []FilterTemplate {
	for _, rule := range classifierRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(context, keyword) {
				return rule.Filters
			}
		}
	}
	return defaultTemplates
}

// ensureFilter is an upsert-by-name: templated filters are created once and
// shared by every category the classifier touches afterwards.
func (s *ClassifierService) ensureFilter(ctx context.Context, template FilterTemplate) (*models.Filter, error) {
	existing, err := s.filterRepo.GetByName(ctx, template.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up filter %s: %w", template.Name, err)
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	filter := &models.Filter{
		ID:             uuid.New().String(),
		Name:           template.Name,
		DisplayName:    template.DisplayName,
		Description:    template.Description,
		Type:           template.Type,
		DataType:       template.DataType,
		CategoryLevels: models.LevelList{1, 2, 3},
		IsActive:       true,
		SortOrder:      priorityFor(template.Name),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.filterRepo.Create(ctx, filter); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("filter %s created concurrently: %w", template.Name, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create filter %s: %w", template.Name, err)
	}
	return filter, nil
}

func (s *ClassifierService) ensureOptions(ctx context.Context, filterID string, templates []OptionTemplate) error {
	for i, template := range templates {
		existing, err := s.optionRepo.GetByFilterAndValue(ctx, filterID, template.Value)
		if err != nil {
			return fmt.Errorf("failed to look up option %s: %w", template.Value, err)
		}
		if existing != nil {
			continue
		}

		now := time.Now()
		option := &models.FilterOption{
			ID:           uuid.New().String(),
			FilterID:     filterID,
			Value:        template.Value,
			DisplayValue: template.DisplayValue,
			IsActive:     true,
			SortOrder:    i + 1,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if template.ColorCode != "" {
			code := template.ColorCode
			option.ColorCode = &code
		}
		if err := s.optionRepo.Create(ctx, option); err != nil {
			if repositories.IsUniqueViolation(err) {
				return fmt.Errorf("option %s created concurrently: %w", template.Value, apperrors.ErrConflict)
			}
			return fmt.Errorf("failed to create option %s: %w", template.Value, err)
		}
	}
	return nil
}

func (s *ClassifierService) ensureAssignment(ctx context.Context, categoryID string, filter *models.Filter) error {
	existing, err := s.categoryFilterRepo.Get(ctx, categoryID, filter.ID)
	if err != nil {
		return fmt.Errorf("failed to look up assignment for filter %s: %w", filter.Name, err)
	}
	if existing != nil {
		return nil
	}

	now := time.Now()
	assignment := &models.CategoryFilter{
		CategoryID: categoryID,
		FilterID:   filter.ID,
		IsRequired: filter.Name == requiredFilterName,
		IsActive:   true,
		SortOrder:  priorityFor(filter.Name),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.categoryFilterRepo.Create(ctx, assignment); err != nil {
		if repositories.IsUniqueViolation(err) {
			return fmt.Errorf("assignment for filter %s created concurrently: %w", filter.Name, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to assign filter %s: %w", filter.Name, err)
	}
	return nil
}

func priorityFor(filterName string) int {
	if priority, ok := assignPriority[filterName]; ok {
		return priority
	}
	return defaultAssignPriority
}
