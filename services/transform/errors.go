package transform

import "fmt"

// ValidationError is the record-level failure every field-level error is
// wrapped into. Construction of a Snapshot either fully succeeds or
// returns one of these; a partially validated record never escapes.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TypeMismatchError reports a raw value of an unexpected shape, e.g. a
// number where the tabular source should have produced a string.
type TypeMismatchError struct {
	Value any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected a string, got %T", e.Value)
}

// CoercionError reports a string that failed to parse into its target
// representation.
type CoercionError struct {
	Value  string
	Target string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%q is not a valid %s", e.Value, e.Target)
}

// SchemaError reports a JSON sub-document that is either unparsable or
// fails its structural schema.
type SchemaError struct {
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation: %s", e.Detail)
}

type DomainError struct {
	Value string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%q is not a valid domain", e.Value)
}

type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%q is not a valid ISO-8601 date", e.Value)
}
