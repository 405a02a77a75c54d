// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package json5

import (
	"errors"
	"fmt"
)

// A Location describes the position of a token or error in source text.
// Lines and columns are 1-based and counted in code points; a full line
// terminator ("\n", "\r", U+2028, U+2029, with "\r\n" counting as one)
// begins a new line.  The zero Location means the position is unknown.
type Location struct {
	Line   int // line number, 1-based; 0 if unknown
	Column int // column number, 1-based; 0 if unknown
}

func (loc Location) String() string { return fmt.Sprintf("%d:%d", loc.Line, loc.Column) }

// An Error is the error reported for all malformed input: lexical errors,
// unsatisfied grammar expectations, and failed value conversions.  When the
// position of the offending input is known, it is recorded in Location.
type Error struct {
	Location Location // position of the offending input; zero if unknown
	Message  string

	err error // wrapped underlying error, or nil
}

func (e *Error) Error() string {
	if e.Location == (Location{}) {
		return e.Message
	}
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// ErrExtraInput is wrapped by the error reported when input continues after
// a complete top-level value.
var ErrExtraInput = errors.New("multiple top-level values")
