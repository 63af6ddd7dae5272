package domain

import "errors"

// Sentinel errors used across layers. Callers wrap them with detail and
// match with errors.Is.
var (
	// Insertion.
	ErrInvalidType           = errors.New("invalid entry type")
	ErrInvalidName           = errors.New("invalid entry name")
	ErrDuplicateName         = errors.New("entry name must be unique")
	ErrInvalidCookTime       = errors.New("invalid cookTime")
	ErrEmptyRequiredItems    = errors.New("requiredItems must be a non-empty list")
	ErrInvalidRequiredItem   = errors.New("invalid required item")
	ErrDuplicateRequiredItem = errors.New("duplicate required item")

	// Resolution.
	ErrNotFound         = errors.New("not found")
	ErrNotARecipe       = errors.New("not a recipe")
	ErrMissingReference = errors.New("missing reference")
	ErrCyclicDependency = errors.New("cyclic dependency")
	ErrOverflow         = errors.New("numeric overflow")

	// Transport.
	ErrMalformedRequest = errors.New("malformed request")
	ErrNoName           = errors.New("no valid name")
)

// Kind is the stable, wire-level name of a failure.
type Kind string

const (
	KindUnknown               Kind = "unknown"
	KindInvalidType           Kind = "invalid_type"
	KindInvalidName           Kind = "invalid_name"
	KindDuplicateName         Kind = "duplicate_name"
	KindInvalidCookTime       Kind = "invalid_cook_time"
	KindEmptyRequiredItems    Kind = "empty_or_missing_required_items"
	KindInvalidRequiredItem   Kind = "invalid_required_item"
	KindDuplicateRequiredItem Kind = "duplicate_required_item"
	KindNotFound              Kind = "not_found"
	KindNotARecipe            Kind = "not_a_recipe"
	KindMissingReference      Kind = "missing_reference"
	KindCyclicDependency      Kind = "cyclic_dependency"
	KindOverflow              Kind = "overflow"
	KindMalformedRequest      Kind = "malformed_request"
	KindNoName                Kind = "no_valid_name"
)

// Category is the coarse class a caller needs to react to a failure.
type Category string

const (
	CategoryInvalid  Category = "invalid"
	CategoryNotFound Category = "not_found"
	CategoryConflict Category = "conflict"
	CategoryInternal Category = "internal"
)

type errorClass struct {
	err      error
	kind     Kind
	category Category
}

// classes is ordered; the first match wins.
var classes = []errorClass{
	{ErrInvalidType, KindInvalidType, CategoryInvalid},
	{ErrInvalidName, KindInvalidName, CategoryInvalid},
	{ErrDuplicateName, KindDuplicateName, CategoryConflict},
	{ErrInvalidCookTime, KindInvalidCookTime, CategoryInvalid},
	{ErrEmptyRequiredItems, KindEmptyRequiredItems, CategoryInvalid},
	{ErrInvalidRequiredItem, KindInvalidRequiredItem, CategoryInvalid},
	{ErrDuplicateRequiredItem, KindDuplicateRequiredItem, CategoryInvalid},
	{ErrNotFound, KindNotFound, CategoryNotFound},
	{ErrNotARecipe, KindNotARecipe, CategoryConflict},
	{ErrMissingReference, KindMissingReference, CategoryConflict},
	{ErrCyclicDependency, KindCyclicDependency, CategoryConflict},
	{ErrOverflow, KindOverflow, CategoryConflict},
	{ErrMalformedRequest, KindMalformedRequest, CategoryInvalid},
	{ErrNoName, KindNoName, CategoryInvalid},
}

func classify(err error) (errorClass, bool) {
	for _, c := range classes {
		if errors.Is(err, c.err) {
			return c, true
		}
	}
	return errorClass{}, false
}

// KindOf returns the wire kind of err, or KindUnknown.
func KindOf(err error) Kind {
	if c, ok := classify(err); ok {
		return c.kind
	}
	return KindUnknown
}

// CategoryOf returns the category of err. Errors that are not domain
// failures are CategoryInternal.
func CategoryOf(err error) Category {
	if c, ok := classify(err); ok {
		return c.category
	}
	return CategoryInternal
}

// ErrorForKind maps a wire kind back to its sentinel. Returns nil for
// unknown kinds.
func ErrorForKind(kind Kind) error {
	for _, c := range classes {
		if c.kind == kind {
			return c.err
		}
	}
	return nil
}
