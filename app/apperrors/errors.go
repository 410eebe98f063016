package apperrors

import "errors"

// Sentinel error kinds returned by the taxonomy services. Callers match
// with errors.Is; messages wrapped around these carry the entity detail.
var (
	ErrNotFound          = errors.New("not found")
	ErrDepthExceeded     = errors.New("category depth exceeded")
	ErrSelfParent        = errors.New("category cannot be its own parent")
	ErrEmptySlug         = errors.New("name yields an empty slug")
	ErrDuplicateName     = errors.New("name already exists")
	ErrDuplicateValues   = errors.New("duplicate values in request")
	ErrValueExists       = errors.New("option value already exists")
	ErrInUse             = errors.New("entity is still referenced")
	ErrAlreadyAssigned   = errors.New("filter already assigned to category")
	ErrParentNotAssigned = errors.New("filter must be assigned to parent category first")
	ErrHasDependents     = errors.New("assignment has dependent child assignments")
	ErrParentNotFound    = errors.New("parent category not found")
	ErrFilterNotAssigned = errors.New("filter is not assigned to the product's category")
	ErrInvalidOption     = errors.New("option does not belong to filter")
	ErrMissingValue      = errors.New("either an option or a custom value is required")
	ErrMissingRequired   = errors.New("required filter value is missing")

	// ErrConflict means a uniqueness race was lost at the store; the
	// caller should re-read and retry.
	ErrConflict = errors.New("conflict")
)
