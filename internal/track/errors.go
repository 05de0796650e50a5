package track

import (
	"errors"
	"fmt"
)

// Parse failure kinds. A *ParseError matches one of them with errors.Is.
var (
	ErrMalformed           = errors.New("malformed track data")
	ErrNoPoints            = errors.New("no track points found")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// ErrInsufficientData is matched by every *InsufficientDataError.
var ErrInsufficientData = errors.New("insufficient data")

// ParseError reports input that cannot be turned into a Track. It is fatal:
// no partial result accompanies it.
type ParseError struct {
	Kind error
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return "parse track: " + e.Kind.Error()
	}
	return fmt.Sprintf("parse track: %v: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// InsufficientDataError means a computation needed at least two usable
// points. Callers treat it as "feature unavailable".
type InsufficientDataError struct {
	Op     string
	Points int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data: %d point(s), need at least 2", e.Op, e.Points)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// RequirePoints returns an *InsufficientDataError when points has fewer than
// two entries.
func RequirePoints(op string, points []TrackPoint) error {
	if len(points) < 2 {
		return &InsufficientDataError{Op: op, Points: len(points)}
	}
	return nil
}
