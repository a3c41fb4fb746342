//nolint:revive // types is a standard Go package name pattern
package types

// Selection is the operator's choice between creating a new record and editing an existing one.
type Selection[T any] struct {
	existing *T
}

// NewSelection selects a new, not yet saved record.
func NewSelection[T any]() Selection[T] {
	return Selection[T]{}
}

// ExistingSelection selects a stored record.
func ExistingSelection[T any](record T) Selection[T] {
	return Selection[T]{existing: &record}
}

// IsNew reports whether the selection is for a new record.
func (s Selection[T]) IsNew() bool {
	return s.existing == nil
}

// Draft returns the editable copy feeding the save action: the stored record,
// or blank() for a new one.
func (s Selection[T]) Draft(blank func() T) T {
	if s.existing == nil {
		return blank()
	}
	return *s.existing
}
