package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Rakhulsr/go-taxonomy/app/apperrors"
	"github.com/Rakhulsr/go-taxonomy/app/models"
	"github.com/Rakhulsr/go-taxonomy/app/repositories"
	"github.com/google/uuid"
)

type AssignSpec struct {
	FilterID   string
	IsRequired bool
	SortOrder  int
}

type UpdateAssignmentInput struct {
	IsRequired *bool
	SortOrder  *int
	IsActive   *bool
}

type AssignmentService struct {
	categoryRepo       repositories.CategoryRepositoryImpl
	filterRepo         repositories.FilterRepositoryImpl
	assignmentRepo     repositories.FilterAssignmentRepositoryImpl
	categoryFilterRepo repositories.CategoryFilterRepositoryImpl
}

func NewAssignmentService(
	categoryRepo repositories.CategoryRepositoryImpl,
	filterRepo repositories.FilterRepositoryImpl,
	assignmentRepo repositories.FilterAssignmentRepositoryImpl,
	categoryFilterRepo repositories.CategoryFilterRepositoryImpl,
) *AssignmentService {
	return &AssignmentService{
		categoryRepo:       categoryRepo,
		filterRepo:         filterRepo,
		assignmentRepo:     assignmentRepo,
		categoryFilterRepo: categoryFilterRepo,
	}
}

// Assign attaches a filter to a category in the hierarchical ledger. For
// levels above 1 the same filter must already be actively assigned to the
// parent category; the new assignment links to that parent assignment.
func (s *AssignmentService) Assign(ctx context.Context, filterID, categoryID string, isRequired bool, sortOrder int) (*models.FilterAssignment, error) {
	filter, err := s.filterRepo.GetByID(ctx, filterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filter: %w", err)
	}
	if filter == nil {
		return nil, fmt.Errorf("filter %s: %w", filterID, apperrors.ErrNotFound)
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
	}

	existing, err := s.assignmentRepo.GetByCategoryAndFilter(ctx, categoryID, filterID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up assignment: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("filter %s on category %s: %w", filterID, categoryID, apperrors.ErrAlreadyAssigned)
	}

	var parentAssignmentID *string
	if category.Level > 1 {
		parentAssignment, err := s.parentAssignment(ctx, category, filterID)
		if err != nil {
			return nil, err
		}
		parentAssignmentID = &parentAssignment.ID
	}

	now := time.Now()
	assignment := &models.FilterAssignment{
		ID:                 uuid.New().String(),
		FilterID:           filterID,
		CategoryID:         categoryID,
		CategoryLevel:      category.Level,
		ParentAssignmentID: parentAssignmentID,
		IsRequired:         isRequired,
		IsActive:           true,
		SortOrder:          sortOrder,
		AssignedAt:         now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("assignment pair taken concurrently: %w", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return assignment, nil
}

func (s *AssignmentService) Update(ctx context.Context, assignmentID string, input UpdateAssignmentInput) (*models.FilterAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if assignment == nil {
		return nil, fmt.Errorf("assignment %s: %w", assignmentID, apperrors.ErrNotFound)
	}

	if input.IsRequired != nil {
		assignment.IsRequired = *input.IsRequired
	}
	if input.SortOrder != nil {
		assignment.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		assignment.IsActive = *input.IsActive
	}
	assignment.UpdatedAt = time.Now()

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}
	return assignment, nil
}

// Remove deletes an assignment. Assignments with active children must be
// torn down top-down, children first.
func (s *AssignmentService) Remove(ctx context.Context, assignmentID string) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if assignment == nil {
		return fmt.Errorf("assignment %s: %w", assignmentID, apperrors.ErrNotFound)
	}

	children, err := s.assignmentRepo.CountActiveChildren(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to count child assignments: %w", err)
	}
	if children > 0 {
		return fmt.Errorf("assignment %s has %d active children: %w", assignmentID, children, apperrors.ErrHasDependents)
	}

	return s.assignmentRepo.Delete(ctx, assignmentID)
}

// BulkAssign validates the whole batch before writing anything: every
// filter must exist, none may already be assigned, and above level 1 each
// must already have a parent assignment.
func (s *AssignmentService) BulkAssign(ctx context.Context, categoryID string, specs []AssignSpec) ([]models.FilterAssignment, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("assignment list is empty")
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
	}

	parentIDs := make(map[string]*string, len(specs))
	for _, spec := range specs {
		filter, err := s.filterRepo.GetByID(ctx, spec.FilterID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch filter: %w", err)
		}
		if filter == nil {
			return nil, fmt.Errorf("filter %s: %w", spec.FilterID, apperrors.ErrNotFound)
		}

		existing, err := s.assignmentRepo.GetByCategoryAndFilter(ctx, categoryID, spec.FilterID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up assignment: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("filter %s on category %s: %w", spec.FilterID, categoryID, apperrors.ErrAlreadyAssigned)
		}

		if category.Level > 1 {
			parentAssignment, err := s.parentAssignment(ctx, category, spec.FilterID)
			if err != nil {
				return nil, err
			}
			parentIDs[spec.FilterID] = &parentAssignment.ID
		}
	}

	now := time.Now()
	assignments := make([]models.FilterAssignment, 0, len(specs))
	for _, spec := range specs {
		assignments = append(assignments, models.FilterAssignment{
			ID:                 uuid.New().String(),
			FilterID:           spec.FilterID,
			CategoryID:         categoryID,
			CategoryLevel:      category.Level,
			ParentAssignmentID: parentIDs[spec.FilterID],
			IsRequired:         spec.IsRequired,
			IsActive:           true,
			SortOrder:          spec.SortOrder,
			AssignedAt:         now,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}

	if err := s.assignmentRepo.CreateBatch(ctx, assignments); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("assignment pair taken concurrently: %w", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create assignments: %w", err)
	}
	return assignments, nil
}

func (s *AssignmentService) ListByCategory(ctx context.Context, categoryID string, activeOnly bool) ([]models.FilterAssignment, error) {
	return s.assignmentRepo.GetByCategory(ctx, categoryID, activeOnly)
}

// AssignFlat writes the flat, hierarchy-unaware assignment form used for a
// single category level. The classifier and the product value binder work
// against this ledger.
func (s *AssignmentService) AssignFlat(ctx context.Context, categoryID, filterID string, isRequired bool, sortOrder int) (*models.CategoryFilter, error) {
	filter, err := s.filterRepo.GetByID(ctx, filterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filter: %w", err)
	}
	if filter == nil {
		return nil, fmt.Errorf("filter %s: %w", filterID, apperrors.ErrNotFound)
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
	}

	existing, err := s.categoryFilterRepo.Get(ctx, categoryID, filterID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up flat assignment: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("filter %s on category %s: %w", filterID, categoryID, apperrors.ErrAlreadyAssigned)
	}

	now := time.Now()
	assignment := &models.CategoryFilter{
		CategoryID: categoryID,
		FilterID:   filterID,
		IsRequired: isRequired,
		IsActive:   true,
		SortOrder:  sortOrder,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.categoryFilterRepo.Create(ctx, assignment); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("assignment pair taken concurrently: %w", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create flat assignment: %w", err)
	}
	return assignment, nil
}

// AvailableFilters resolves which filters can still be assigned to a
// category. At level 1 any active filter admissible at level 1 qualifies;
// deeper levels only inherit: a child can offer a filter only if its parent
// already actively exposes it, regardless of the filter's declared levels.
func (s *AssignmentService) AvailableFilters(ctx context.Context, categoryID string, search *string) ([]models.Filter, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, apperrors.ErrNotFound)
	}

	assigned, err := s.assignedFilterIDs(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	var candidates []models.Filter
	if category.Level == 1 {
		all, err := s.filterRepo.GetAll(ctx, true)
		if err != nil {
			return nil, fmt.Errorf("failed to list filters: %w", err)
		}
		for _, filter := range all {
			if filter.CategoryLevels.Contains(1) {
				candidates = append(candidates, filter)
			}
		}
	} else {
		if category.ParentID == nil {
			return nil, fmt.Errorf("category %s has no parent: %w", categoryID, apperrors.ErrParentNotFound)
		}
		parent, err := s.categoryRepo.GetByID(ctx, *category.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch parent category: %w", err)
		}
		if parent == nil {
			return nil, fmt.Errorf("parent of category %s: %w", categoryID, apperrors.ErrParentNotFound)
		}

		parentAssignments, err := s.assignmentRepo.GetByCategory(ctx, parent.ID, true)
		if err != nil {
			return nil, fmt.Errorf("failed to list parent assignments: %w", err)
		}
		ids := make([]string, 0, len(parentAssignments))
		for _, assignment := range parentAssignments {
			ids = append(ids, assignment.FilterID)
		}
		filters, err := s.filterRepo.GetByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch parent filters: %w", err)
		}
		for _, filter := range filters {
			if filter.IsActive {
				candidates = append(candidates, filter)
			}
		}
	}

	available := candidates[:0]
	for _, filter := range candidates {
		if assigned[filter.ID] {
			continue
		}
		if search != nil && !matchesSearch(filter, *search) {
			continue
		}
		available = append(available, filter)
	}

	sort.Slice(available, func(i, j int) bool {
		return available[i].Name < available[j].Name
	})
	return available, nil
}

// parentAssignment finds the active assignment of filterID on the parent of
// category, the precondition for assigning below level 1.
func (s *AssignmentService) parentAssignment(ctx context.Context, category *models.Category, filterID string) (*models.FilterAssignment, error) {
	if category.ParentID == nil {
		return nil, fmt.Errorf("category %s at level %d has no parent: %w", category.ID, category.Level, apperrors.ErrParentNotAssigned)
	}
	assignment, err := s.assignmentRepo.GetByCategoryAndFilter(ctx, *category.ParentID, filterID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up parent assignment: %w", err)
	}
	if assignment == nil || !assignment.IsActive {
		return nil, fmt.Errorf("filter %s on parent of category %s: %w", filterID, category.ID, apperrors.ErrParentNotAssigned)
	}
	return assignment, nil
}

// assignedFilterIDs unions the flat and hierarchical ledgers so the two
// forms cannot disagree about what is already taken.
func (s *AssignmentService) assignedFilterIDs(ctx context.Context, categoryID string) (map[string]bool, error) {
	assigned := make(map[string]bool)

	hierarchical, err := s.assignmentRepo.GetByCategory(ctx, categoryID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	for _, assignment := range hierarchical {
		assigned[assignment.FilterID] = true
	}

	flat, err := s.categoryFilterRepo.GetByCategory(ctx, categoryID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list flat assignments: %w", err)
	}
	for _, assignment := range flat {
		assigned[assignment.FilterID] = true
	}
	return assigned, nil
}

func matchesSearch(filter models.Filter, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(filter.Name), needle) ||
		strings.Contains(strings.ToLower(filter.DisplayName), needle)
}
