package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-taxonomy/app/apperrors"
	"github.com/Rakhulsr/go-taxonomy/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFilter(t *testing.T, env *testEnv, name string, levels []int) *models.Filter {
	t.Helper()
	filter, err := env.filters.CreateFilter(context.Background(), FilterSpec{
		Name:           name,
		DisplayName:    name,
		Type:           models.FilterTypeSingle,
		DataType:       models.FilterDataString,
		CategoryLevels: levels,
	})
	require.NoError(t, err)
	return filter
}

func TestAssignRootLevel(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	men, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Men"})
	require.NoError(t, err)
	size := createFilter(t, env, "size", []int{1, 2, 3})

	assignment, err := env.assignments.Assign(ctx, size.ID, men.ID, true, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, assignment.CategoryLevel)
	assert.Nil(t, assignment.ParentAssignmentID)
	assert.True(t, assignment.IsActive)
}

func TestAssignInheritanceChain(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	men, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Men"})
	require.NoError(t, err)
	shirts, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Shirts", ParentID: &men.ID})
	require.NoError(t, err)
	size := createFilter(t, env, "size", []int{1, 2, 3})
	color := createFilter(t, env, "color", []int{1, 2, 3})

	parent, err := env.assignments.Assign(ctx, size.ID, men.ID, true, 1)
	require.NoError(t, err)

	// "size" is assigned to Men, so Shirts may take it; the child links to
	// the parent assignment.
	child, err := env.assignments.Assign(ctx, size.ID, shirts.ID, false, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, child.CategoryLevel)
	require.NotNil(t, child.ParentAssignmentID)
	assert.Equal(t, parent.ID, *child.ParentAssignmentID)

	resolved, err := env.assignmentRepo.GetByID(ctx, *child.ParentAssignmentID)
	require.NoError(t, err)
	assert.Equal(t, child.FilterID, resolved.FilterID)
	assert.Equal(t, child.CategoryLevel-1, resolved.CategoryLevel)
	assert.Equal(t, *shirts.ParentID, resolved.CategoryID)

	// "color" was never assigned to Men.
	_, err = env.assignments.Assign(ctx, color.ID, shirts.ID, false, 2)
	assert.ErrorIs(t, err, apperrors.ErrParentNotAssigned)
}

func TestAssignAlreadyAssigned(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	men, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Men"})
	require.NoError(t, err)
	size := createFilter(t, env, "size", []int{1})

	_, err = env.assignments.Assign(ctx, size.ID, men.ID, true, 1)
	require.NoError(t, err)
	_, err = env.assignments.Assign(ctx, size.ID, men.ID, true, 1)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyAssigned)
}

func TestAssignInactiveParentAssignment(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	men, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Men"})
	require.NoError(t, err)
	shirts, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Shirts", ParentID: &men.ID})
	require.NoError(t, err)
	size := createFilter(t, env, "size", []int{1, 2})

	parent, err := env.assignments.Assign(ctx, size.ID, men.ID, true, 1)
	require.NoError(t, err)

	inactive := false
	_, err = env.assignments.Update(ctx, parent.ID, UpdateAssignmentInput{IsActive: &inactive})
	require.NoError(t, err)

	_, err = env.assignments.Assign(ctx, size.ID, shirts.ID, false, 1)
	assert.ErrorIs(t, err, apperrors.ErrParentNotAssigned)
}

func TestRemoveWithDependents(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	men, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Men"})
	require.NoError(t, err)
	shirts, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Shirts", ParentID: &men.ID})
	require.NoError(t, err)
	size := createFilter(t, env, "size", []int{1, 2})

	parent, err := env.assignments.Assign(ctx, size.ID, men.ID, true, 1)
	require.NoError(t, err)
	child, err := env.assignments.Assign(ctx, size.ID, shirts.ID, false, 1)
	require.NoError(t, err)

	// Teardown must be top-down: children first.
	err = env.assignments.Remove(ctx, parent.ID)
	assert.ErrorIs(t, err, apperrors.ErrHasDependents)

	require.NoError(t, env.assignments.Remove(ctx, child.ID))
	require.NoError(t, env.assignments.Remove(ctx, parent.ID))
}

func TestBulkAssignPreconditions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	men, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Men"})
	require.NoError(t, err)
	shirts, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Shirts", ParentID: &men.ID})
	require.NoError(t, err)
	size := createFilter(t, env, "size", []int{1, 2})
	color := createFilter(t, env, "color", []int{1, 2})

	_, err = env.assignments.Assign(ctx, size.ID, men.ID, true, 1)
	require.NoError(t, err)

	// "color" has no parent assignment, so the whole batch is rejected
	// before anything is written.
	_, err = env.assignments.BulkAssign(ctx, shirts.ID, []AssignSpec{
		{FilterID: size.ID, IsRequired: true, SortOrder: 1},
		{FilterID: color.ID, SortOrder: 2},
	})
	assert.ErrorIs(t, err, apperrors.ErrParentNotAssigned)

	listed, err := env.assignments.ListByCategory(ctx, shirts.ID, false)
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = env.assignments.Assign(ctx, color.ID, men.ID, false, 2)
	require.NoError(t, err)

	created, err := env.assignments.BulkAssign(ctx, shirts.ID, []AssignSpec{
		{FilterID: size.ID, IsRequired: true, SortOrder: 1},
		{FilterID: color.ID, SortOrder: 2},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)
	for _, assignment := range created {
		assert.Equal(t, 2, assignment.CategoryLevel)
		assert.NotNil(t, assignment.ParentAssignmentID)
	}
}

func TestAvailableFiltersRootLevel(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	men, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Men"})
	require.NoError(t, err)
	size := createFilter(t, env, "size", []int{1, 2})
	createFilter(t, env, "color", []int{1, 2})
	createFilter(t, env, "voltage", []int{2, 3}) // not admissible at level 1

	available, err := env.assignments.AvailableFilters(ctx, men.ID, nil)
	require.NoError(t, err)
	require.Len(t, available, 2)
	assert.Equal(t, "color", available[0].Name)
	assert.Equal(t, "size", available[1].Name)

	_, err = env.assignments.Assign(ctx, size.ID, men.ID, true, 1)
	require.NoError(t, err)

	available, err = env.assignments.AvailableFilters(ctx, men.ID, nil)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "color", available[0].Name)
}

func TestAvailableFiltersInheritanceGate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	men, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Men"})
	require.NoError(t, err)
	shirts, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Shirts", ParentID: &men.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, shirts.Level)
	assert.Equal(t, "men-shirts", shirts.Slug)

	size := createFilter(t, env, "size", []int{1, 2})
	createFilter(t, env, "color", []int{1, 2})

	// Nothing assigned to the parent yet: the child can offer nothing.
	available, err := env.assignments.AvailableFilters(ctx, shirts.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, available)

	_, err = env.assignments.Assign(ctx, size.ID, men.ID, true, 1)
	require.NoError(t, err)

	available, err = env.assignments.AvailableFilters(ctx, shirts.ID, nil)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "size", available[0].Name)

	_, err = env.assignments.Assign(ctx, size.ID, shirts.ID, false, 1)
	require.NoError(t, err)

	available, err = env.assignments.AvailableFilters(ctx, shirts.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestAvailableFiltersIgnoresLevelsAboveRoot(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	men, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Men"})
	require.NoError(t, err)
	shirts, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Shirts", ParentID: &men.ID})
	require.NoError(t, err)

	// Declared admissible at level 1 only; inheritance still exposes it to
	// the level-2 child once the parent carries it.
	size := createFilter(t, env, "size", []int{1})
	_, err = env.assignments.Assign(ctx, size.ID, men.ID, true, 1)
	require.NoError(t, err)

	available, err := env.assignments.AvailableFilters(ctx, shirts.ID, nil)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "size", available[0].Name)
}

func TestAvailableFiltersSearch(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	men, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Men"})
	require.NoError(t, err)
	createFilter(t, env, "size", []int{1})
	createFilter(t, env, "color", []int{1})

	search := "SIZ"
	available, err := env.assignments.AvailableFilters(ctx, men.ID, &search)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "size", available[0].Name)
}

func TestAvailableFiltersSubtractsFlatAssignments(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	men, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Men"})
	require.NoError(t, err)
	size := createFilter(t, env, "size", []int{1})

	_, err = env.assignments.AssignFlat(ctx, men.ID, size.ID, true, 1)
	require.NoError(t, err)

	available, err := env.assignments.AvailableFilters(ctx, men.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestAssignFlatAlreadyAssigned(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	men, err := env.categories.Create(ctx, CreateCategoryInput{Name: "Men"})
	require.NoError(t, err)
	size := createFilter(t, env, "size", []int{1})

	_, err = env.assignments.AssignFlat(ctx, men.ID, size.ID, true, 1)
	require.NoError(t, err)
	_, err = env.assignments.AssignFlat(ctx, men.ID, size.ID, true, 1)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyAssigned)
}
