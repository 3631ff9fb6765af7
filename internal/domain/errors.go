package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateKey indicates a job with the same job number is already registered.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrJobNotFound indicates the job does not exist or no job is selected.
	ErrJobNotFound = errors.New("job not found")

	// ErrIndexOutOfRange indicates a line item index outside the edit buffer.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidEnumValue indicates a value outside an enumerated field's allowed set.
	ErrInvalidEnumValue = errors.New("invalid enum value")

	// ErrInvalidNumber indicates a numeric field received a negative,
	// non-finite or unparseable value.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrUnknownField indicates a field name that is not part of a line item.
	ErrUnknownField = errors.New("unknown field")

	// ErrMissingField indicates a required job field is empty.
	ErrMissingField = errors.New("missing required field")

	// ErrIncompleteItem indicates a non-blank line item without a service
	// line or WBS task.
	ErrIncompleteItem = errors.New("incomplete line item")

	// ErrStorageUnavailable indicates the backing store could not be reached.
	// Operations failing with it committed nothing and may be retried.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrSchemaMismatch indicates the persisted schema differs from the
	// expected column set and needs an explicit migration.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// IndexError reports an out-of-range buffer index.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range (buffer has %d items)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// EnumError reports a value rejected by an enumerated field.
type EnumError struct {
	Field   Field
	Value   string
	Allowed []string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("invalid value %q for %s (allowed: %v)", e.Value, e.Field, e.Allowed)
}

func (e *EnumError) Unwrap() error { return ErrInvalidEnumValue }
