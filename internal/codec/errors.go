package codec

import (
	"errors"
	"fmt"
)

// DecodeError represents a failure while decoding an entity from its
// JSON tree form.
//
// Decode failures include:
//   - Unknown variant: discriminator value outside the family's set
//   - Arity mismatch: payload list length wrong for the variant
//   - Missing required field: a mandatory key is absent
//   - Unexpected field: a key outside the entity's field set (strict only)
//   - Type mismatch: a value of the wrong JSON kind
//
// DecodeError includes structured fields for diagnostics. Decoding is
// fail-fast: the error propagates unchanged to the top-level decode entry
// point and no partial object is ever returned next to it.
type DecodeError struct {
	// Code identifies the error category.
	Code DecodeErrorCode

	// Message is a human-readable description.
	Message string

	// Entity names what was being decoded ("person", "celltype", ...).
	Entity string

	// Field is the offending key or discriminator value, when one is
	// involved.
	Field string
}

// DecodeErrorCode categorizes decode errors.
type DecodeErrorCode string

const (
	// ErrCodeUnknownVariant indicates a discriminator value outside the
	// family's variant set.
	ErrCodeUnknownVariant DecodeErrorCode = "UNKNOWN_VARIANT"

	// ErrCodeArityMismatch indicates a payload list whose length does not
	// match the variant's shape.
	ErrCodeArityMismatch DecodeErrorCode = "ARITY_MISMATCH"

	// ErrCodeMissingRequiredField indicates an absent mandatory key.
	ErrCodeMissingRequiredField DecodeErrorCode = "MISSING_REQUIRED_FIELD"

	// ErrCodeUnexpectedField indicates a key outside the entity's field
	// set. Only the strict dialect raises it.
	ErrCodeUnexpectedField DecodeErrorCode = "UNEXPECTED_FIELD"

	// ErrCodeTypeMismatch indicates a value of the wrong JSON kind.
	ErrCodeTypeMismatch DecodeErrorCode = "TYPE_MISMATCH"
)

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Entity != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s (entity=%s, field=%s)", e.Code, e.Message, e.Entity, e.Field)
	}
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s (entity=%s)", e.Code, e.Message, e.Entity)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HasCode reports whether err is, or wraps, a DecodeError with the given
// code.
func HasCode(err error, code DecodeErrorCode) bool {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// AsDecodeError unwraps err to a DecodeError, if it is one.
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// NewUnknownVariantError creates a DecodeError for a discriminator value
// outside the family's set.
func NewUnknownVariantError(family, got string) *DecodeError {
	return &DecodeError{
		Code:    ErrCodeUnknownVariant,
		Message: fmt.Sprintf("unknown variant %q", got),
		Entity:  family,
		Field:   got,
	}
}

// NewArityMismatchError creates a DecodeError for a payload list of the
// wrong length.
func NewArityMismatchError(variant string, want, got int) *DecodeError {
	return &DecodeError{
		Code:    ErrCodeArityMismatch,
		Message: fmt.Sprintf("variant %s expects %d payload values, got %d", variant, want, got),
		Entity:  variant,
	}
}

// NewMissingFieldError creates a DecodeError for an absent mandatory key.
func NewMissingFieldError(entity, field string) *DecodeError {
	return &DecodeError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("required field %q is missing", field),
		Entity:  entity,
		Field:   field,
	}
}

// NewUnexpectedFieldError creates a DecodeError for a key outside the
// entity's field set.
func NewUnexpectedFieldError(entity, field string) *DecodeError {
	return &DecodeError{
		Code:    ErrCodeUnexpectedField,
		Message: fmt.Sprintf("unexpected field %q", field),
		Entity:  entity,
		Field:   field,
	}
}

// NewTypeMismatchError creates a DecodeError for a value of the wrong
// JSON kind.
func NewTypeMismatchError(entity, field, want, got string) *DecodeError {
	return &DecodeError{
		Code:    ErrCodeTypeMismatch,
		Message: fmt.Sprintf("expected %s, got %s", want, got),
		Entity:  entity,
		Field:   field,
	}
}
