package jqlb

import "github.com/pkg/errors"

// Standard errors returned by the jqlb package. Wrapped errors keep these as
// their cause, so callers should test with errors.Is.
var (
	// ErrInvalidArgument indicates a construction method received an absent
	// value, an empty required list, or a list holding an absent element.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIllegalBuilderState indicates a structural method was called in a
	// state that does not permit it, e.g. and() with no preceding clause.
	ErrIllegalBuilderState = errors.New("illegal builder state")

	// ErrUnsupportedClause indicates an adapter could not translate a clause
	// or operand to its backend.
	ErrUnsupportedClause = errors.New("unsupported clause")

	// ErrMalformedDocument indicates a serialized query document could not be decoded.
	ErrMalformedDocument = errors.New("malformed query document")
)

func invalidArgument(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func illegalState(format string, args ...any) error {
	return errors.Wrapf(ErrIllegalBuilderState, format, args...)
}

func unsupported(format string, args ...any) error {
	return errors.Wrapf(ErrUnsupportedClause, format, args...)
}

func malformed(format string, args ...any) error {
	return errors.Wrapf(ErrMalformedDocument, format, args...)
}

func withField(err error, field string, op Operator) error {
	return errors.WithMessagef(err, "%s %s", field, op)
}
