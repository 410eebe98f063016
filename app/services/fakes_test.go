package services

import (
	"context"
	"sort"
	"strings"

	"github.com/Rakhulsr/go-taxonomy/app/models"
)

// In-memory repository fakes backing the service tests. They mimic the
// gorm repositories' contract: point lookups return (nil, nil) when the
// row is absent, and list methods return rows ordered the same way.

type fakeCategoryRepo struct {
	categories map[string]*models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*models.Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *models.Category) error {
	clone := *category
	f.categories[category.ID] = &clone
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*models.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	clone := *category
	return &clone, nil
}

func (f *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, category := range f.categories {
		if category.Slug == slug {
			clone := *category
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) GetAll(_ context.Context, activeOnly bool) ([]models.Category, error) {
	var out []models.Category
	for _, category := range f.categories {
		if activeOnly && !category.IsActive {
			continue
		}
		out = append(out, *category)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeCategoryRepo) GetByLevel(_ context.Context, level int, parentID *string) ([]models.Category, error) {
	var out []models.Category
	for _, category := range f.categories {
		if category.Level != level {
			continue
		}
		if parentID != nil && (category.ParentID == nil || *category.ParentID != *parentID) {
			continue
		}
		out = append(out, *category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryRepo) GetChildren(_ context.Context, parentID string) ([]models.Category, error) {
	var out []models.Category
	for _, category := range f.categories {
		if category.ParentID != nil && *category.ParentID == parentID {
			out = append(out, *category)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryRepo) SlugExists(_ context.Context, slug string, excludeID string) (bool, error) {
	for _, category := range f.categories {
		if category.Slug == slug && category.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryRepo) CountChildren(_ context.Context, id string) (int64, error) {
	var count int64
	for _, category := range f.categories {
		if category.ParentID != nil && *category.ParentID == id {
			count++
		}
	}
	return count, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *models.Category) error {
	clone := *category
	f.categories[category.ID] = &clone
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	delete(f.categories, id)
	return nil
}

type fakeFilterRepo struct {
	filters map[string]*models.Filter
}

func newFakeFilterRepo() *fakeFilterRepo {
	return &fakeFilterRepo{filters: make(map[string]*models.Filter)}
}

func (f *fakeFilterRepo) Create(_ context.Context, filter *models.Filter) error {
	clone := *filter
	f.filters[filter.ID] = &clone
	return nil
}

func (f *fakeFilterRepo) GetByID(_ context.Context, id string) (*models.Filter, error) {
	filter, ok := f.filters[id]
	if !ok {
		return nil, nil
	}
	clone := *filter
	return &clone, nil
}

func (f *fakeFilterRepo) GetByName(_ context.Context, name string) (*models.Filter, error) {
	for _, filter := range f.filters {
		if filter.Name == name {
			clone := *filter
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeFilterRepo) GetByIDs(_ context.Context, ids []string) ([]models.Filter, error) {
	var out []models.Filter
	for _, id := range ids {
		if filter, ok := f.filters[id]; ok {
			out = append(out, *filter)
		}
	}
	return out, nil
}

func (f *fakeFilterRepo) GetAll(_ context.Context, activeOnly bool) ([]models.Filter, error) {
	var out []models.Filter
	for _, filter := range f.filters {
		if activeOnly && !filter.IsActive {
			continue
		}
		out = append(out, *filter)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeFilterRepo) Update(_ context.Context, filter *models.Filter) error {
	clone := *filter
	f.filters[filter.ID] = &clone
	return nil
}

func (f *fakeFilterRepo) Delete(_ context.Context, id string) error {
	delete(f.filters, id)
	return nil
}

type fakeOptionRepo struct {
	options map[string]*models.FilterOption
}

func newFakeOptionRepo() *fakeOptionRepo {
	return &fakeOptionRepo{options: make(map[string]*models.FilterOption)}
}

func (f *fakeOptionRepo) Create(_ context.Context, option *models.FilterOption) error {
	clone := *option
	f.options[option.ID] = &clone
	return nil
}

func (f *fakeOptionRepo) CreateBatch(_ context.Context, options []models.FilterOption) error {
	for i := range options {
		clone := options[i]
		f.options[clone.ID] = &clone
	}
	return nil
}

func (f *fakeOptionRepo) GetByID(_ context.Context, id string) (*models.FilterOption, error) {
	option, ok := f.options[id]
	if !ok {
		return nil, nil
	}
	clone := *option
	return &clone, nil
}

func (f *fakeOptionRepo) GetByFilter(_ context.Context, filterID string) ([]models.FilterOption, error) {
	var out []models.FilterOption
	for _, option := range f.options {
		if option.FilterID == filterID {
			out = append(out, *option)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Value < out[j].Value
	})
	return out, nil
}

func (f *fakeOptionRepo) GetByFilterAndValue(_ context.Context, filterID, value string) (*models.FilterOption, error) {
	for _, option := range f.options {
		if option.FilterID == filterID && option.Value == value {
			clone := *option
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeOptionRepo) Update(_ context.Context, option *models.FilterOption) error {
	clone := *option
	f.options[option.ID] = &clone
	return nil
}

func (f *fakeOptionRepo) Delete(_ context.Context, id string) error {
	delete(f.options, id)
	return nil
}

type flatKey struct {
	categoryID string
	filterID   string
}

type fakeCategoryFilterRepo struct {
	assignments map[flatKey]*models.CategoryFilter
}

func newFakeCategoryFilterRepo() *fakeCategoryFilterRepo {
	return &fakeCategoryFilterRepo{assignments: make(map[flatKey]*models.CategoryFilter)}
}

func (f *fakeCategoryFilterRepo) Create(_ context.Context, assignment *models.CategoryFilter) error {
	clone := *assignment
	f.assignments[flatKey{assignment.CategoryID, assignment.FilterID}] = &clone
	return nil
}

func (f *fakeCategoryFilterRepo) Get(_ context.Context, categoryID, filterID string) (*models.CategoryFilter, error) {
	assignment, ok := f.assignments[flatKey{categoryID, filterID}]
	if !ok {
		return nil, nil
	}
	clone := *assignment
	return &clone, nil
}

func (f *fakeCategoryFilterRepo) GetByCategory(_ context.Context, categoryID string, activeOnly bool) ([]models.CategoryFilter, error) {
	var out []models.CategoryFilter
	for _, assignment := range f.assignments {
		if assignment.CategoryID != categoryID {
			continue
		}
		if activeOnly && !assignment.IsActive {
			continue
		}
		out = append(out, *assignment)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakeCategoryFilterRepo) CountByFilter(_ context.Context, filterID string) (int64, error) {
	var count int64
	for _, assignment := range f.assignments {
		if assignment.FilterID == filterID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCategoryFilterRepo) Update(_ context.Context, assignment *models.CategoryFilter) error {
	clone := *assignment
	f.assignments[flatKey{assignment.CategoryID, assignment.FilterID}] = &clone
	return nil
}

func (f *fakeCategoryFilterRepo) Delete(_ context.Context, categoryID, filterID string) error {
	delete(f.assignments, flatKey{categoryID, filterID})
	return nil
}

type fakeAssignmentRepo struct {
	assignments map[string]*models.FilterAssignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[string]*models.FilterAssignment)}
}

func (f *fakeAssignmentRepo) Create(_ context.Context, assignment *models.FilterAssignment) error {
	clone := *assignment
	f.assignments[assignment.ID] = &clone
	return nil
}

func (f *fakeAssignmentRepo) CreateBatch(_ context.Context, assignments []models.FilterAssignment) error {
	for i := range assignments {
		clone := assignments[i]
		f.assignments[clone.ID] = &clone
	}
	return nil
}

func (f *fakeAssignmentRepo) GetByID(_ context.Context, id string) (*models.FilterAssignment, error) {
	assignment, ok := f.assignments[id]
	if !ok {
		return nil, nil
	}
	clone := *assignment
	return &clone, nil
}

func (f *fakeAssignmentRepo) GetByCategoryAndFilter(_ context.Context, categoryID, filterID string) (*models.FilterAssignment, error) {
	for _, assignment := range f.assignments {
		if assignment.CategoryID == categoryID && assignment.FilterID == filterID {
			clone := *assignment
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeAssignmentRepo) GetByCategory(_ context.Context, categoryID string, activeOnly bool) ([]models.FilterAssignment, error) {
	var out []models.FilterAssignment
	for _, assignment := range f.assignments {
		if assignment.CategoryID != categoryID {
			continue
		}
		if activeOnly && !assignment.IsActive {
			continue
		}
		out = append(out, *assignment)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakeAssignmentRepo) CountByFilter(_ context.Context, filterID string) (int64, error) {
	var count int64
	for _, assignment := range f.assignments {
		if assignment.FilterID == filterID {
			count++
		}
	}
	return count, nil
}

func (f *fakeAssignmentRepo) CountActiveChildren(_ context.Context, assignmentID string) (int64, error) {
	var count int64
	for _, assignment := range f.assignments {
		if assignment.ParentAssignmentID != nil && *assignment.ParentAssignmentID == assignmentID && assignment.IsActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeAssignmentRepo) Update(_ context.Context, assignment *models.FilterAssignment) error {
	clone := *assignment
	f.assignments[assignment.ID] = &clone
	return nil
}

func (f *fakeAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(f.assignments, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*models.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	clone := *product
	return &clone, nil
}

func (f *fakeProductRepo) GetBySlug(_ context.Context, slug string) (*models.Product, error) {
	for _, product := range f.products {
		if product.Slug == slug {
			clone := *product
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	var count int64
	for _, product := range f.products {
		if product.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *models.Product) error {
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

type fakeValueRepo struct {
	values map[string]*models.ProductFilterValue
}

func newFakeValueRepo() *fakeValueRepo {
	return &fakeValueRepo{values: make(map[string]*models.ProductFilterValue)}
}

func (f *fakeValueRepo) GetByProduct(_ context.Context, productID string) ([]models.ProductFilterValue, error) {
	var out []models.ProductFilterValue
	for _, value := range f.values {
		if value.ProductID == productID {
			out = append(out, *value)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i].FilterID, out[j].FilterID) < 0 })
	return out, nil
}

func (f *fakeValueRepo) CountByFilter(_ context.Context, filterID string) (int64, error) {
	var count int64
	for _, value := range f.values {
		if value.FilterID == filterID {
			count++
		}
	}
	return count, nil
}

func (f *fakeValueRepo) CountByOption(_ context.Context, optionID string) (int64, error) {
	var count int64
	for _, value := range f.values {
		if value.FilterOptionID != nil && *value.FilterOptionID == optionID {
			count++
		}
	}
	return count, nil
}

func (f *fakeValueRepo) DeleteByProduct(_ context.Context, productID string) error {
	for id, value := range f.values {
		if value.ProductID == productID {
			delete(f.values, id)
		}
	}
	return nil
}

func (f *fakeValueRepo) CreateBatch(_ context.Context, values []models.ProductFilterValue) error {
	for i := range values {
		clone := values[i]
		f.values[clone.ID] = &clone
	}
	return nil
}

// testEnv bundles the fakes and the services under test.
type testEnv struct {
	categoryRepo       *fakeCategoryRepo
	filterRepo         *fakeFilterRepo
	optionRepo         *fakeOptionRepo
	categoryFilterRepo *fakeCategoryFilterRepo
	assignmentRepo     *fakeAssignmentRepo
	productRepo        *fakeProductRepo
	valueRepo          *fakeValueRepo

	categories  *CategoryService
	filters     *FilterService
	assignments *AssignmentService
	classifier  *ClassifierService
	binder      *ProductFilterService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		categoryRepo:       newFakeCategoryRepo(),
		filterRepo:         newFakeFilterRepo(),
		optionRepo:         newFakeOptionRepo(),
		categoryFilterRepo: newFakeCategoryFilterRepo(),
		assignmentRepo:     newFakeAssignmentRepo(),
		productRepo:        newFakeProductRepo(),
		valueRepo:          newFakeValueRepo(),
	}
	env.categories = NewCategoryService(env.categoryRepo, env.productRepo)
	env.filters = NewFilterService(env.filterRepo, env.optionRepo, env.categoryFilterRepo, env.assignmentRepo, env.valueRepo)
	env.assignments = NewAssignmentService(env.categoryRepo, env.filterRepo, env.assignmentRepo, env.categoryFilterRepo)
	env.classifier = NewClassifierService(env.categoryRepo, env.filterRepo, env.optionRepo, env.categoryFilterRepo)
	env.binder = NewProductFilterService(env.productRepo, env.categoryFilterRepo, env.optionRepo, env.valueRepo)
	return env
}
