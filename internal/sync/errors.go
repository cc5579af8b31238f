package sync

import "fmt"

// ValidationError reports a field-level constraint violation on a draft,
// identified by its caller-chosen code.
type ValidationError struct {
	Code   string // symbolic code of the offending draft
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q: %s", e.Code, e.Reason)
}

// ReferenceError reports a record draft pointing at a shelf code absent from
// the batch.
type ReferenceError struct {
	Code      string // symbolic code of the record draft
	ShelfCode string // the unresolvable shelf code
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("record %q references unknown shelf code %q", e.Code, e.ShelfCode)
}

// NotFoundError reports a referenced pre-existing shelf id that does not
// exist in the store.
type NotFoundError struct {
	Code    string // symbolic code of the record draft
	ShelfID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %q references shelf id %d which does not exist", e.Code, e.ShelfID)
}

// PermissionError reports a shelf owned by someone other than the caller.
type PermissionError struct {
	Code    string // symbolic code of the record draft
	ShelfID uint
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("record %q references shelf id %d not owned by the caller", e.Code, e.ShelfID)
}
