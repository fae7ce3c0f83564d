package errors

import (
	e "errors"
	"fmt"
)

// Kind classifies an error.
//
// All kinds except Other, NotFound and Validation abort the conversion of the
// page on which they occur.
type Kind int

const (
	Other Kind = iota
	NotFound
	Validation
	MalformedStyle
	InvalidPenWidth
	InvalidColor
	EmptyOrMismatchedArrays
	DegeneratePath
	MissingStyleForLine
	UnsupportedItemType
	AssetNotFound
	AssetDecodeFailed
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Validation:
		return "validation failed"
	case MalformedStyle:
		return "malformed style"
	case InvalidPenWidth:
		return "invalid pen width"
	case InvalidColor:
		return "invalid color"
	case EmptyOrMismatchedArrays:
		return "empty or mismatched arrays"
	case DegeneratePath:
		return "degenerate path"
	case MissingStyleForLine:
		return "missing style for line"
	case UnsupportedItemType:
		return "unsupported item type"
	case AssetNotFound:
		return "asset not found"
	case AssetDecodeFailed:
		return "asset decode failed"
	default:
		return "error"
	}
}

// Error is an error with a Kind and an optional cause.
type Error struct {
	Kind    Kind
	message string
	cause   error
}

func (x *Error) Error() string {
	if x.cause != nil {
		return fmt.Sprintf("%v: %v: %v", x.Kind, x.message, x.cause)
	}
	return fmt.Sprintf("%v: %v", x.Kind, x.message)
}

func (x *Error) Unwrap() error {
	return x.cause
}

// New creates an error of the given kind from a format string.
func New(k Kind, msg string, v ...interface{}) error {
	return &Error{Kind: k, message: fmt.Sprintf(msg, v...)}
}

// WithCause creates an error of the given kind that wraps cause.
func WithCause(k Kind, cause error, msg string, v ...interface{}) error {
	return &Error{Kind: k, message: fmt.Sprintf(msg, v...), cause: cause}
}

// Wrap wraps an error by prepending additional text.
// The text can contain formatting parameters.
//
// The Kind of the wrapped error is still reported by KindOf.
func Wrap(err error, msg string, v ...interface{}) error {
	msg = fmt.Sprintf(msg, v...)
	return fmt.Errorf("%v: %w", msg, err)
}

// KindOf returns the Kind of the first Error in err's chain,
// or Other if there is none.
func KindOf(err error) Kind {
	var x *Error
	if e.As(err, &x) {
		return x.Kind
	}
	return Other
}

// Is tells if err has the given kind.
func Is(err error, k Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == k
}

// NewNotFound creates a new "not found" error.
func NewNotFound(s string, v ...interface{}) error {
	return New(NotFound, s, v...)
}

// AsNotFound marks err as a "not found" error, keeping err as the cause.
func AsNotFound(err error) error {
	return WithCause(NotFound, err, "not found")
}

// IsNotFound checks if the given error is a "not found" error.
func IsNotFound(err error) bool {
	return Is(err, NotFound)
}

// NewValidationError creates an error of from the given format string.
func NewValidationError(msg string, v ...interface{}) error {
	return New(Validation, msg, v...)
}

// IsValidation checks if the given error is a validation error.
func IsValidation(err error) bool {
	return Is(err, Validation)
}
