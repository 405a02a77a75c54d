// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package json5

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON5 grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	EOF                  // end of input
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Null                 // reserved word: null
	True                 // reserved word: true
	False                // reserved word: false
	Name                 // unquoted identifier
	String               // quoted string (text is the decoded content)

	Decimal     // number: decimal, with optional fraction and/or exponent
	Hexadecimal // number: 0x prefix
	Octal       // number: leading 0 without prefix
	Binary      // number: 0b prefix
	PosInf      // number: Infinity
	NegInf      // number: -Infinity
	PosNaN      // number: NaN
	NegNaN      // number: -NaN

	// Do not modify the order of the number constants above: the numeric
	// token check below depends on them being contiguous.

	LineComment  // comment: // ... <terminator>
	BlockComment // comment: /* ... */
)

var tokenStr = [...]string{
	Invalid:      "invalid token",
	EOF:          "end of input",
	LBrace:       `"{"`,
	RBrace:       `"}"`,
	LSquare:      `"["`,
	RSquare:      `"]"`,
	Comma:        `","`,
	Colon:        `":"`,
	Null:         "null",
	True:         "true",
	False:        "false",
	Name:         "name",
	String:       "string",
	Decimal:      "number",
	Hexadecimal:  "hexadecimal number",
	Octal:        "octal number",
	Binary:       "binary number",
	PosInf:       "Infinity",
	NegInf:       "-Infinity",
	PosNaN:       "NaN",
	NegNaN:       "-NaN",
	LineComment:  "line comment",
	BlockComment: "block comment",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// IsNumber reports whether t is a numeric literal token.
func (t Token) IsNumber() bool { return t >= Decimal && t <= NegNaN }

// Unicode line separator and paragraph separator, which the grammar treats
// as line terminators along with "\n" and "\r".
const (
	lineSep = ' '
	paraSep = ' '
)

// A Scanner reads lexical tokens from an input stream.  Each call to Next
// advances the scanner to the next token, or reports an error.
//
// String tokens are decoded as they are scanned: the text of a String token
// is the content of the literal with quotes removed and all escape sequences
// resolved.  The text of a number token is the literal with any radix prefix
// and digit separators removed, and with a leading "-" retained if present.
// Reserved word tokens have empty text.
type Scanner struct {
	r        *bufio.Reader
	comments bool         // report comment tokens
	buf      bytes.Buffer // current token
	tok      Token
	err      error

	cur     rune // lookahead code point
	haveCur bool
	lastCR  bool // previous consumed code point was "\r"

	// Apparent line and column (1-based, counted in code points) of the next
	// unconsumed code point, and of the start of the current token.
	line, col   int
	tline, tcol int
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br, line: 1, col: 1, tline: 1, tcol: 1}
}

// ReportComments configures the scanner to report (true) or skip (false)
// comment tokens.  Comments are always part of the grammar; by default they
// are consumed and discarded, and Next never returns them.
func (s *Scanner) ReportComments(ok bool) { s.comments = ok }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.buf.Reset()
	s.err = nil
	s.tok = Invalid

	for {
		s.tline, s.tcol = s.line, s.col
		ch, err := s.peek()
		if err == io.EOF {
			return s.setErr(err)
		} else if err != nil {
			return err
		}

		// Discard whitespace, including line terminators.
		if isSpace(ch) {
			s.bump()
			continue
		}

		// Comments are always accepted, but are reported as tokens only when
		// the caller asked for them.
		if ch == '/' {
			s.bump()
			if err := s.scanComment(); err != nil {
				return err
			}
			if s.comments {
				return nil
			}
			s.buf.Reset()
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.bump()
			s.buf.WriteRune(ch)
			s.tok = t
			return nil
		}

		// Handle string values.
		if ch == '"' || ch == '\'' {
			s.bump()
			return s.scanString(ch)
		}

		// Handle numbers.
		if isNumStart(ch) {
			return s.scanNumber()
		}

		// Everything else is an identifier, possibly a reserved word.
		return s.scanName()
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the decoded text of the current token.  The return value is
// only valid until the next call of Next. The caller must copy the contents
// of the returned slice if it is needed beyond that.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Copy returns a copy of the decoded text of the current token.
func (s *Scanner) Copy() []byte { return append([]byte(nil), s.buf.Bytes()...) }

// Location returns the location of the start of the current token.  After
// Next has returned io.EOF, it is the location of the end of the input.
func (s *Scanner) Location() Location { return Location{Line: s.tline, Column: s.tcol} }

// peek returns the next code point of the input without consuming it.
// At the end of input it returns io.EOF; malformed UTF-8 is an error.
func (s *Scanner) peek() (rune, error) {
	if s.haveCur {
		return s.cur, nil
	}
	ch, nb, err := s.r.ReadRune()
	if err == io.EOF {
		return 0, io.EOF
	} else if err != nil {
		return 0, s.fail(err)
	} else if ch == unicode.ReplacementChar && nb == 1 {
		return 0, s.failf("invalid UTF-8 encoding")
	}
	s.cur, s.haveCur = ch, true
	return ch, nil
}

// bump consumes the current lookahead code point and updates the apparent
// line and column.  A full line terminator, of which "\r\n" counts as one,
// advances the line and resets the column.
func (s *Scanner) bump() rune {
	ch := s.cur
	s.haveCur = false
	switch {
	case ch == '\n':
		if s.lastCR {
			s.lastCR = false // second half of "\r\n", already counted
		} else {
			s.line++
			s.col = 1
		}
	case ch == '\r':
		s.line++
		s.col = 1
		s.lastCR = true
	case ch == lineSep || ch == paraSep:
		s.line++
		s.col = 1
		s.lastCR = false
	default:
		s.col++
		s.lastCR = false
	}
	return ch
}

func (s *Scanner) scanString(open rune) error {
	for {
		ch, err := s.peek()
		if err == io.EOF {
			return s.failf("unterminated string")
		} else if err != nil {
			return err
		}
		if ch == open {
			s.bump()
			s.tok = String
			return nil
		} else if isTerminator(ch) {
			return s.failf("unescaped line terminator in string")
		}
		s.bump()
		if ch != '\\' {
			s.buf.WriteRune(ch)
			continue
		}

		// Decode a backslash escape.
		esc, err := s.peek()
		if err == io.EOF {
			return s.failf("unterminated string")
		} else if err != nil {
			return err
		}
		s.bump()
		switch {
		case esc == 'b':
			s.buf.WriteByte('\b')
		case esc == 'f':
			s.buf.WriteByte('\f')
		case esc == 'n':
			s.buf.WriteByte('\n')
		case esc == 'r':
			s.buf.WriteByte('\r')
		case esc == 't':
			s.buf.WriteByte('\t')
		case esc == 'v':
			s.buf.WriteByte('\v')
		case esc >= '0' && esc <= '7':
			// Octal escape, up to three digits total.
			cp := esc - '0'
			for i := 0; i < 2; i++ {
				ch, err := s.peek()
				if err == io.EOF || (err == nil && !isOctDigit(ch)) {
					break
				} else if err != nil {
					return err
				}
				cp = cp*8 + (ch - '0')
				s.bump()
			}
			s.buf.WriteRune(cp)
		case esc == 'x':
			cp, err := s.readHex(2)
			if err != nil {
				return err
			}
			s.buf.WriteRune(cp)
		case esc == 'u':
			cp, err := s.readHex(4)
			if err != nil {
				return err
			} else if err := s.writeEscape(cp); err != nil {
				return err
			}
		case esc == 'U':
			cp, err := s.readHex(8)
			if err != nil {
				return err
			} else if err := s.writeEscape(cp); err != nil {
				return err
			}
		case isTerminator(esc):
			// Line continuation: the terminator is consumed and nothing is
			// added to the token.
			if esc == '\r' {
				if nx, err := s.peek(); err == nil && nx == '\n' {
					s.bump()
				}
			}
		default:
			// Any other escaped character stands for itself.
			s.buf.WriteRune(esc)
		}
	}
}

// writeEscape appends the code point decoded from a Unicode escape, which
// must be a valid scalar value.
func (s *Scanner) writeEscape(cp rune) error {
	if cp < 0 || cp > unicode.MaxRune || (cp >= 0xd800 && cp <= 0xdfff) {
		return s.failf("invalid code point %#x in escape", cp)
	}
	s.buf.WriteRune(cp)
	return nil
}

// readHex reads exactly n hexadecimal digits and returns their value.
func (s *Scanner) readHex(n int) (rune, error) {
	var cp rune
	for i := 0; i < n; i++ {
		ch, err := s.peek()
		if err == io.EOF {
			return 0, s.failf("too few digits in escape")
		} else if err != nil {
			return 0, err
		} else if !isHexDigit(ch) {
			return 0, s.failf("not a hex digit: %q", ch)
		}
		cp = cp*16 + hexValue(ch)
		s.bump()
	}
	return cp, nil
}

func (s *Scanner) scanNumber() error {
	neg := false
	ch, _ := s.peek()
	if ch == '+' || ch == '-' {
		// A leading "+" is accepted and discarded; "-" is kept.
		neg = ch == '-'
		s.bump()

		var err error
		ch, err = s.peek()
		if err == io.EOF {
			return s.failf("missing number")
		} else if err != nil {
			return err
		}
		if ch != '.' && !isDigit(ch) {
			return s.scanSignedWord(neg)
		}
	}
	if neg {
		s.buf.WriteByte('-')
	}

	if ch == '0' {
		s.bump()
		nx, err := s.peek()
		if err != nil && err != io.EOF {
			return err
		}
		switch {
		case err == nil && (nx == 'x' || nx == 'X'):
			s.bump()
			n, err := s.readDigits(isHexDigit)
			if err != nil {
				return err
			} else if n == 0 {
				return s.failf("missing digits in hexadecimal number")
			}
			s.tok = Hexadecimal
		case err == nil && (nx == 'b' || nx == 'B'):
			s.bump()
			n, err := s.readDigits(isBinDigit)
			if err != nil {
				return err
			} else if n == 0 {
				return s.failf("missing digits in binary number")
			}
			s.tok = Binary
		case err == nil && nx == '.':
			// A leading 0 followed by a decimal point is a decimal.
			s.buf.WriteByte('0')
			return s.scanDecimal(1)
		default:
			// A leading 0 without a radix prefix or decimal point is octal.
			s.buf.WriteByte('0')
			if _, err := s.readDigits(isOctDigit); err != nil {
				return err
			}
			s.tok = Octal
		}
		return s.checkNumEnd()
	}

	n, err := s.readDigits(isDigit)
	if err != nil {
		return err
	}
	return s.scanDecimal(n)
}

// scanSignedWord recognizes the reserved words Infinity and NaN after a
// numeric sign.
func (s *Scanner) scanSignedWord(neg bool) error {
	if err := s.readName(); err != nil {
		return err
	}
	got := mem.B(s.buf.Bytes())
	switch {
	case got.Equal(mem.S("Infinity")):
		s.tok = PosInf
		if neg {
			s.tok = NegInf
		}
	case got.Equal(mem.S("NaN")):
		s.tok = PosNaN
		if neg {
			s.tok = NegNaN
		}
	default:
		return s.failf("missing number")
	}
	s.buf.Reset()
	return nil
}

// scanDecimal consumes the fraction and exponent of a decimal literal whose
// integer part had digits digits, and verifies the literal's end.
func (s *Scanner) scanDecimal(digits int) error {
	ch, err := s.peek()
	if err == io.EOF {
		if digits == 0 {
			return s.failf("missing number")
		}
		s.tok = Decimal
		return nil
	} else if err != nil {
		return err
	}

	if ch == '.' {
		s.buf.WriteByte('.')
		s.bump()
		n, err := s.readDigits(isDigit)
		if err != nil {
			return err
		}
		digits += n
	}
	if digits == 0 {
		return s.failf("missing number")
	}

	ch, err = s.peek()
	if err == io.EOF {
		s.tok = Decimal
		return nil
	} else if err != nil {
		return err
	}
	if ch == 'e' || ch == 'E' {
		s.buf.WriteRune(ch)
		s.bump()
		ch, err = s.peek()
		if err == nil && (ch == '+' || ch == '-') {
			s.buf.WriteRune(ch)
			s.bump()
		} else if err != nil && err != io.EOF {
			return err
		}
		n, err := s.readDigits(isDigit)
		if err != nil {
			return err
		} else if n == 0 {
			return s.failf("missing exponent digits")
		}
	}
	s.tok = Decimal
	return s.checkNumEnd()
}

// checkNumEnd verifies that the input following a numeric literal is able
// to end it: EOF, whitespace, punctuation, a quote, or a comment.
func (s *Scanner) checkNumEnd() error {
	ch, err := s.peek()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	if isNameEnd(ch) {
		return nil
	}
	return s.failf("invalid character %q after number", ch)
}

// readDigits consumes digits matching f, discarding underscore separators,
// and reports the number of digits consumed.
func (s *Scanner) readDigits(f func(rune) bool) (int, error) {
	var n int
	for {
		ch, err := s.peek()
		if err == io.EOF {
			return n, nil
		} else if err != nil {
			return n, err
		}
		if ch == '_' {
			s.bump()
			continue
		} else if !f(ch) {
			return n, nil
		}
		s.buf.WriteRune(ch)
		s.bump()
		n++
	}
}

func (s *Scanner) scanComment() error {
	ch, err := s.peek()
	if err == io.EOF {
		return s.failf("unexpected end of input after %q", "/")
	} else if err != nil {
		return err
	}
	switch ch {
	case '/': // line comment, to the end of the line
		s.bump()
		s.buf.WriteString("//")
		for {
			ch, err := s.peek()
			if err == io.EOF {
				break
			} else if err != nil {
				return err
			} else if isTerminator(ch) {
				break
			}
			s.buf.WriteRune(ch)
			s.bump()
		}
		s.tok = LineComment
		return nil

	case '*': // block comment
		s.bump()
		s.buf.WriteString("/*")
		var star bool
		for {
			ch, err := s.peek()
			if err == io.EOF {
				return s.failf("unterminated block comment")
			} else if err != nil {
				return err
			}
			s.bump()
			s.buf.WriteRune(ch)
			if star && ch == '/' {
				s.tok = BlockComment
				return nil
			}
			star = ch == '*'
		}

	default:
		return s.failf("invalid %q in comment", ch)
	}
}

// readName accumulates an identifier run into the token buffer.
func (s *Scanner) readName() error {
	for {
		ch, err := s.peek()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		} else if isNameEnd(ch) {
			return nil
		}
		s.buf.WriteRune(ch)
		s.bump()
	}
}

// scanName scans an identifier and classifies the reserved words.
func (s *Scanner) scanName() error {
	if err := s.readName(); err != nil {
		return err
	}
	got := mem.B(s.buf.Bytes())
	switch {
	case got.Equal(mem.S("null")):
		s.tok = Null
	case got.Equal(mem.S("true")):
		s.tok = True
	case got.Equal(mem.S("false")):
		s.tok = False
	case got.Equal(mem.S("Infinity")):
		s.tok = PosInf
	case got.Equal(mem.S("NaN")):
		s.tok = PosNaN
	default:
		s.tok = Name
		return nil
	}
	s.buf.Reset()
	return nil
}

// here returns the location of the next unconsumed code point, where scan
// errors are detected.
func (s *Scanner) here() Location { return Location{Line: s.line, Column: s.col} }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) fail(err error) error {
	return s.setErr(&Error{Location: s.here(), Message: err.Error(), err: err})
}

func (s *Scanner) failf(msg string, args ...any) error {
	return s.setErr(&Error{Location: s.here(), Message: fmt.Sprintf(msg, args...)})
}

// isSpace reports whether ch is whitespace, including the line terminators
// and the Unicode space separators.
func isSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\v', '\f', '\u00a0', '\ufeff', '\n', '\r', lineSep, paraSep:
		return true
	}
	return unicode.Is(unicode.Zs, ch)
}

func isTerminator(ch rune) bool {
	return ch == '\n' || ch == '\r' || ch == lineSep || ch == paraSep
}

func isNumStart(ch rune) bool { return ch == '-' || ch == '+' || ch == '.' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isOctDigit(ch rune) bool { return '0' <= ch && ch <= '7' }
func isBinDigit(ch rune) bool { return ch == '0' || ch == '1' }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func hexValue(ch rune) rune {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	default:
		return ch - 'A' + 10
	}
}

// isNameEnd reports whether ch ends an identifier or numeric literal:
// whitespace, punctuation, a quote, or the start of a comment.
func isNameEnd(ch rune) bool {
	if isSpace(ch) || ch == '"' || ch == '\'' || ch == '/' {
		return true
	}
	_, ok := selfDelim(ch)
	return ok
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
