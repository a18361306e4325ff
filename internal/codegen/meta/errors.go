package meta

import (
	"errors"
	"fmt"

	"github.com/reprompi/benchgen/internal/codegen/scanner"
)

// ErrInvalidTag is wrapped by every fatal resolution error.
var ErrInvalidTag = errors.New("invalid tag")

// MissingFieldError reports a required print_result parameter that is
// absent or empty.
type MissingFieldError struct {
	Path  string
	Line  int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s:%d: incorrect %s specification (missing %s)", e.Path, e.Line, scanner.KeywordPrintResult, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrInvalidTag }

// InvalidValueError reports a parameter whose value is outside its allowed set.
type InvalidValueError struct {
	Path    string
	Line    int
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s:%d: invalid %s=%q (expected one of %v)", e.Path, e.Line, e.Field, e.Value, e.Allowed)
}

func (e *InvalidValueError) Unwrap() error { return ErrInvalidTag }

// MissingTimestampError reports a timestamp tag without a bare key naming the array.
type MissingTimestampError struct {
	Path    string
	Line    int
	Keyword scanner.Keyword
	Source  string
}

func (e *MissingTimestampError) Error() string {
	return fmt.Sprintf("%s:%d: incorrect %s annotation, no timestamp array named: %s", e.Path, e.Line, e.Keyword, e.Source)
}

func (e *MissingTimestampError) Unwrap() error { return ErrInvalidTag }
