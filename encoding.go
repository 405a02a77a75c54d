// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package json5

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/json5/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON5 string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// Unquote decodes a JSON5 string value: one complete string literal in
// either quotation style, with all escape sequences resolved.  Anything
// other than whitespace around the literal is an error.
func Unquote(src string) (string, error) {
	sc := NewScanner(strings.NewReader(src))
	if err := sc.Next(); err != nil {
		if err == io.EOF {
			return "", &Error{Message: "missing string"}
		}
		return "", err
	}
	if sc.Token() != String {
		return "", &Error{
			Location: sc.Location(),
			Message:  fmt.Sprintf("expected a string, got %v", sc.Token()),
		}
	}
	text := string(sc.Text())
	switch err := sc.Next(); err {
	case io.EOF:
		return text, nil
	case nil:
		return "", &Error{Location: sc.Location(), Message: ErrExtraInput.Error(), err: ErrExtraInput}
	default:
		return "", err
	}
}
