package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-taxonomy/app/apperrors"
	"github.com/Rakhulsr/go-taxonomy/app/helpers"
	"github.com/Rakhulsr/go-taxonomy/app/models"
	"github.com/Rakhulsr/go-taxonomy/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CreateCategoryInput struct {
	Name      string `validate:"required,min=1,max=100"`
	ParentID  *string
	SortOrder int
}

type UpdateCategoryInput struct {
	Name      *string `validate:"omitempty,min=1,max=100"`
	ParentID  *string
	SortOrder *int
	IsActive  *bool
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	validator    *validator.Validate
}

func NewCategoryService(categoryRepo repositories.CategoryRepositoryImpl, productRepo repositories.ProductRepositoryImpl) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		validator:    validator.New(),
	}
}

// Create resolves the parent, derives the level server-side and generates a
// unique slug. The caller never supplies level or slug.
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	if err := s.validator.Struct(&input); err != nil {
		return nil, err
	}

	var parent *models.Category
	level := 1
	if input.ParentID != nil {
		var err error
		parent, err = s.categoryRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent category: %w", err)
		}
		if parent == nil {
			return nil, fmt.Errorf("parent category %s: %w", *input.ParentID, apperrors.ErrNotFound)
		}
		level = parent.Level + 1
		if level > models.MaxCategoryLevel {
			return nil, fmt.Errorf("parent %s is at level %d: %w", parent.ID, parent.Level, apperrors.ErrDepthExceeded)
		}
	}

	slug, err := s.uniqueSlug(ctx, input.Name, parent, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	category := &models.Category{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Slug:      slug,
		ParentID:  input.ParentID,
		Level:     level,
		IsActive:  true,
		SortOrder: input.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("slug %s taken concurrently: %w", slug, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// Update renames and/or re-parents a category. A nil field is left
// unchanged. Rename and re-parent both regenerate the slug; re-parenting
// recomputes the level of the category and of its descendants.
func (s *CategoryService) Update(ctx context.Context, id string, input UpdateCategoryInput) (*models.Category, error) {
	if err := s.validator.Struct(&input); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", id, apperrors.ErrNotFound)
	}

	var parent *models.Category
	reparented := false
	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, fmt.Errorf("category %s: %w", id, apperrors.ErrSelfParent)
		}
		parent, err = s.categoryRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent category: %w", err)
		}
		if parent == nil {
			return nil, fmt.Errorf("parent category %s: %w", *input.ParentID, apperrors.ErrNotFound)
		}
		newLevel := parent.Level + 1
		height, err := s.subtreeHeight(ctx, id)
		if err != nil {
			return nil, err
		}
		if newLevel+height-1 > models.MaxCategoryLevel {
			return nil, fmt.Errorf("re-parenting %s under %s: %w", id, parent.ID, apperrors.ErrDepthExceeded)
		}
		category.ParentID = input.ParentID
		category.Level = newLevel
		reparented = true
	} else if category.ParentID != nil {
		parent, err = s.categoryRepo.GetByID(ctx, *category.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent category: %w", err)
		}
	}

	renamed := false
	if input.Name != nil && *input.Name != category.Name {
		category.Name = *input.Name
		renamed = true
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if renamed || reparented {
		slug, err := s.uniqueSlug(ctx, category.Name, parent, category.ID)
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}

	category.UpdatedAt = time.Now()
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("slug %s taken concurrently: %w", category.Slug, apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if renamed || reparented {
		if err := s.refreshDescendants(ctx, category); err != nil {
			return nil, err
		}
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", id, apperrors.ErrNotFound)
	}
	return category, nil
}

func (s *CategoryService) ListByLevel(ctx context.Context, level int, parentID *string) ([]models.Category, error) {
	if level < 1 || level > models.MaxCategoryLevel {
		return nil, fmt.Errorf("level must be between 1 and %d", models.MaxCategoryLevel)
	}
	return s.categoryRepo.GetByLevel(ctx, level, parentID)
}

// Path returns the root-to-node breadcrumb. The depth bound keeps the walk
// to at most three hops.
func (s *CategoryService) Path(ctx context.Context, id string) ([]models.Category, error) {
	current, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("category %s: %w", id, apperrors.ErrNotFound)
	}

	path := []models.Category{*current}
	for current.ParentID != nil {
		parent, err := s.categoryRepo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch parent category: %w", err)
		}
		if parent == nil {
			return nil, fmt.Errorf("parent category %s: %w", *current.ParentID, apperrors.ErrNotFound)
		}
		path = append([]models.Category{*parent}, path...)
		current = parent
	}
	return path, nil
}

// Tree materializes the forest from one flat scan, grouping children by
// parent in a single pass. rootID narrows the result to one subtree.
func (s *CategoryService) Tree(ctx context.Context, activeOnly bool, rootID *string) ([]*models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	index := make(map[string]*models.Category, len(categories))
	for i := range categories {
		categories[i].Children = nil
		index[categories[i].ID] = &categories[i]
	}

	var roots []*models.Category
	for i := range categories {
		node := &categories[i]
		if node.ParentID != nil {
			if parent, ok := index[*node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	if rootID != nil {
		root, ok := index[*rootID]
		if !ok {
			return nil, fmt.Errorf("category %s: %w", *rootID, apperrors.ErrNotFound)
		}
		return []*models.Category{root}, nil
	}
	return roots, nil
}

// Delete removes a leaf category with no bound products.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch category: %w", err)
	}
	if category == nil {
		return fmt.Errorf("category %s: %w", id, apperrors.ErrNotFound)
	}

	children, err := s.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count children: %w", err)
	}
	if children > 0 {
		return fmt.Errorf("category %s has %d child categories: %w", id, children, apperrors.ErrInUse)
	}

	products, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if products > 0 {
		return fmt.Errorf("category %s has %d bound products: %w", id, products, apperrors.ErrInUse)
	}

	return s.categoryRepo.Delete(ctx, id)
}

// uniqueSlug derives the slug from name (prefixed with the parent slug for
// non-root categories) and probes with -1, -2, ... until free.
func (s *CategoryService) uniqueSlug(ctx context.Context, name string, parent *models.Category, excludeID string) (string, error) {
	base := helpers.GenerateSlug(name)
	if base == "" {
		return "", fmt.Errorf("name %q: %w", name, apperrors.ErrEmptySlug)
	}
	if parent != nil {
		base = parent.Slug + "-" + base
	}

	candidate := base
	for suffix := 1; ; suffix++ {
		exists, err := s.categoryRepo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("failed to probe slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}

func (s *CategoryService) subtreeHeight(ctx context.Context, id string) (int, error) {
	children, err := s.categoryRepo.GetChildren(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch children: %w", err)
	}
	height := 1
	for i := range children {
		childHeight, err := s.subtreeHeight(ctx, children[i].ID)
		if err != nil {
			return 0, err
		}
		if childHeight+1 > height {
			height = childHeight + 1
		}
	}
	return height, nil
}

// refreshDescendants recomputes level and slug for the subtree below parent
// after a rename or re-parent, so child slugs keep the parent-slug prefix.
func (s *CategoryService) refreshDescendants(ctx context.Context, parent *models.Category) error {
	children, err := s.categoryRepo.GetChildren(ctx, parent.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch children: %w", err)
	}
	for i := range children {
		child := &children[i]
		child.Level = parent.Level + 1
		slug, err := s.uniqueSlug(ctx, child.Name, parent, child.ID)
		if err != nil {
			return err
		}
		child.Slug = slug
		child.UpdatedAt = time.Now()
		if err := s.categoryRepo.Update(ctx, child); err != nil {
			return fmt.Errorf("failed to update child category %s: %w", child.ID, err)
		}
		if err := s.refreshDescendants(ctx, child); err != nil {
			return err
		}
	}
	return nil
}
