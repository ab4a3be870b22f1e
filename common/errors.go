// Package common holds the pieces every assembly stage shares: the error
// taxonomy, media type handling and small XML text helpers.
package common

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the library surfaces to the caller.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindDuplicatePath
	KindMultipleCovers
	KindMissingCover
	KindTemplate
	KindPackaging
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation error"
	case KindDuplicatePath:
		return "duplicate path"
	case KindMultipleCovers:
		return "multiple covers"
	case KindMissingCover:
		return "missing cover"
	case KindTemplate:
		return "template error"
	case KindPackaging:
		return "packaging error"
	case KindIO:
		return "i/o error"
	default:
		return fmt.Sprintf("unknown error kind (%d)", int(k))
	}
}

// Error tags an underlying failure with its Kind and, where it helps the
// caller, the name of the offending entity (resource path, template name,
// external command).
type Error struct {
	Kind Kind
	Name string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Name != "" && e.Err != nil:
		return fmt.Sprintf("%s %q: %v", e.Kind, e.Name, e.Err)
	case e.Name != "":
		return fmt.Sprintf("%s %q", e.Kind, e.Name)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether any error in err's chain carries kind k.
func IsKind(err error, k Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == k
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Err: fmt.Errorf(format, args...)}
}

// DuplicatePath reports a collision with an already registered resource
// or a reserved artifact path.
func DuplicatePath(path string) *Error {
	return &Error{Kind: KindDuplicatePath, Name: path}
}

// MultipleCovers reports a second cover-image registration.
func MultipleCovers(path string) *Error {
	return &Error{Kind: KindMultipleCovers, Name: path}
}

// MissingCover reports a requested cover page without a registered cover
// image resource.
func MissingCover() *Error {
	return &Error{Kind: KindMissingCover, Err: errors.New("cover page requested but no cover image was registered")}
}

// TemplateError wraps a failure from the templating capability. It always
// carries the failing template name.
func TemplateError(name string, err error) *Error {
	return &Error{Kind: KindTemplate, Name: name, Err: err}
}

// PackagingError wraps an archive-write failure or an external archiver
// failure.
func PackagingError(err error) *Error {
	return &Error{Kind: KindPackaging, Err: err}
}

// IOError wraps a sink write failure.
func IOError(err error) *Error {
	return &Error{Kind: KindIO, Err: err}
}
