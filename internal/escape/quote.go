// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package escape renders strings in the quoted form used by the JSON5
// writer.  Decoding of string literals is part of the lexical scanner.
package escape

import "go4.org/mem"

// controlEsc maps the control bytes having short escapes to their letters.
// The space sentinel sizes the array to cover all the control bytes.
var controlEsc = [...]byte{
	0:    '0',
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	'\v': 'v',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

func isOctal(b byte) bool { return b >= '0' && b <= '7' }

// Quote encodes src as a double-quoted JSON5 string literal.  Control
// characters use their short escape forms where one exists and \xHH
// otherwise; printable ASCII other than the quote and backslash passes
// through; bytes outside ASCII pass through unchanged, so valid UTF-8
// input remains valid UTF-8 output.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	for i := 0; i < src.Len(); i++ {
		b := src.At(i)
		switch {
		case b == '"' || b == '\\':
			buf = append(buf, '\\', b)
		case b < ' ':
			// The reader consumes up to three digits after an octal escape,
			// so \0 cannot be followed by an octal digit.
			e := controlEsc[b]
			if b == 0 && i+1 < src.Len() && isOctal(src.At(i+1)) {
				e = 0
			}
			if e != 0 {
				buf = append(buf, '\\', e)
			} else {
				buf = append(buf, '\\', 'x', hexDigit[b>>4], hexDigit[b&15])
			}
		case b == 0x7f:
			buf = append(buf, '\\', 'x', hexDigit[b>>4], hexDigit[b&15])
		default:
			buf = append(buf, b)
		}
	}
	return append(buf, '"')
}
