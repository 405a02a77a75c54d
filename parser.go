// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package json5

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// A ValueVisitor receives values from the ParseValue, ParseArray, and
// ParseDocument methods of a Parser.  Primitive values are delivered
// decoded; for objects and arrays the visitor receives the parser with the
// opening delimiter still pending, and must fully consume the nested
// structure before returning, typically by calling ParseObject, ParseArray,
// or Skip.
//
// Embed a VisitorBase to reject the kinds a visitor does not handle.
type ValueVisitor interface {
	VisitNull(loc Location) error
	VisitBool(v bool, loc Location) error
	VisitString(s string, loc Location) error
	VisitNumber(v float64, loc Location) error
	VisitObject(p *Parser, loc Location) error
	VisitArray(p *Parser, loc Location) error
}

// A PropertyVisitor receives the members of an object parsed by the
// ParseObject method of a Parser.  The visitor is called with each decoded
// member key and must fully consume the member's value before returning.
type PropertyVisitor interface {
	VisitProperty(key string, loc Location, p *Parser) error
}

// VisitorBase implements ValueVisitor with methods that report a type
// mismatch Error for every kind of value.
type VisitorBase struct{}

func (VisitorBase) VisitNull(loc Location) error              { return mismatch("null", loc) }
func (VisitorBase) VisitBool(_ bool, loc Location) error      { return mismatch("boolean", loc) }
func (VisitorBase) VisitString(_ string, loc Location) error  { return mismatch("string", loc) }
func (VisitorBase) VisitNumber(_ float64, loc Location) error { return mismatch("number", loc) }
func (VisitorBase) VisitObject(_ *Parser, loc Location) error { return mismatch("object", loc) }
func (VisitorBase) VisitArray(_ *Parser, loc Location) error  { return mismatch("array", loc) }

func mismatch(kind string, loc Location) error {
	return &Error{Location: loc, Message: "unexpected " + kind}
}

// Discard is a ValueVisitor that accepts any value and discards it,
// including all the contents of nested structure.
var Discard ValueVisitor = discard{}

type discard struct{}

func (discard) VisitNull(Location) error            { return nil }
func (discard) VisitBool(bool, Location) error      { return nil }
func (discard) VisitString(string, Location) error  { return nil }
func (discard) VisitNumber(float64, Location) error { return nil }

func (discard) VisitObject(p *Parser, _ Location) error {
	_, err := p.ParseObject(discardProps{})
	return err
}

func (discard) VisitArray(p *Parser, _ Location) error {
	_, err := p.ParseArray(Discard)
	return err
}

type discardProps struct{}

func (discardProps) VisitProperty(_ string, _ Location, p *Parser) error { return p.Skip() }

// A Parser is a recursive-descent parser over the token stream of a
// Scanner, with one token of lookahead.
//
// The parse methods assert the form of the next value in the input: each
// consumes the expected production and returns its result along with the
// location of its first token, or reports an *Error naming what was
// expected and found.  Comments in the input are consumed and discarded.
//
// A Parser is not safe for concurrent use, as the lookahead token is cached
// between calls.  Distinct parsers are fully independent.
type Parser struct {
	sc   *Scanner
	have bool // lookahead holds a token
	eof  bool // lookahead reached the end of input
}

// NewParser constructs a parser that consumes input from r.
func NewParser(r io.Reader) *Parser { return &Parser{sc: NewScanner(r)} }

// NewParserFromScanner constructs a parser that consumes tokens from sc.
func NewParserFromScanner(sc *Scanner) *Parser { return &Parser{sc: sc} }

// Peek reports the type of the next token without consuming it.  At the end
// of the input it reports EOF.
func (p *Parser) Peek() (Token, error) {
	if p.have {
		return p.sc.Token(), nil
	} else if p.eof {
		return EOF, nil
	}
	for {
		err := p.sc.Next()
		if err == io.EOF {
			p.eof = true
			return EOF, nil
		} else if err != nil {
			return Invalid, err
		}
		switch p.sc.Token() {
		case LineComment, BlockComment:
			continue
		}
		p.have = true
		return p.sc.Token(), nil
	}
}

// Eat consumes the next token if it has type want, and reports its
// location.  Otherwise it consumes nothing and reports an *Error.
func (p *Parser) Eat(want Token) (Location, error) {
	tok, err := p.Peek()
	if err != nil {
		return Location{}, err
	}
	loc := p.Location()
	if tok != want {
		return loc, p.expected(tok, want.String())
	}
	p.advance()
	return loc, nil
}

// Location returns the position of the next token.
func (p *Parser) Location() Location { return p.sc.Location() }

// advance discards the lookahead so that the next Peek scans a new token.
func (p *Parser) advance() { p.have = false }

// expected reports a grammar error for finding got where label was wanted.
func (p *Parser) expected(got Token, label string) error {
	err := &Error{Location: p.Location(), Message: fmt.Sprintf("expected %s, got %v", label, got)}
	if got == EOF {
		err.err = io.EOF
	}
	return err
}

// ParseNull parses a null value.
func (p *Parser) ParseNull() (Location, error) { return p.Eat(Null) }

// ParseBool parses a boolean value.
func (p *Parser) ParseBool() (bool, Location, error) {
	tok, err := p.Peek()
	if err != nil {
		return false, Location{}, err
	}
	loc := p.Location()
	if tok != True && tok != False {
		return false, loc, p.expected(tok, "a boolean")
	}
	p.advance()
	return tok == True, loc, nil
}

// ParseString parses a string value and returns its decoded content.
func (p *Parser) ParseString() (string, Location, error) {
	tok, err := p.Peek()
	if err != nil {
		return "", Location{}, err
	}
	loc := p.Location()
	if tok != String {
		return "", loc, p.expected(tok, "a string")
	}
	text := string(p.sc.Text())
	p.advance()
	return text, loc, nil
}

// ParseNumber parses a numeric value of any radix, including the signed
// Infinity and NaN literals.
func (p *Parser) ParseNumber() (float64, Location, error) {
	tok, err := p.Peek()
	if err != nil {
		return 0, Location{}, err
	}
	loc := p.Location()
	if !tok.IsNumber() {
		return 0, loc, p.expected(tok, "a number")
	}
	v, err := p.decodeNumber(tok, loc)
	if err != nil {
		return 0, loc, err
	}
	p.advance()
	return v, loc, nil
}

// decodeNumber converts the lookahead numeric token to its value.
func (p *Parser) decodeNumber(tok Token, loc Location) (float64, error) {
	switch tok {
	case PosInf:
		return math.Inf(1), nil
	case NegInf:
		return math.Inf(-1), nil
	case PosNaN:
		return math.NaN(), nil
	case NegNaN:
		return math.Copysign(math.NaN(), -1), nil
	case Decimal:
		v, err := strconv.ParseFloat(string(p.sc.Text()), 64)
		if err != nil {
			return 0, &Error{Location: loc, Message: fmt.Sprintf("invalid number %q", p.sc.Text()), err: err}
		}
		return v, nil
	}

	// Hexadecimal, octal, or binary: parse the magnitude in the radix, then
	// negate if the literal recorded a sign.
	var radix int
	switch tok {
	case Hexadecimal:
		radix = 16
	case Octal:
		radix = 8
	case Binary:
		radix = 2
	}
	text := string(p.sc.Text())
	digits, neg := strings.CutPrefix(text, "-")
	mag, err := strconv.ParseUint(digits, radix, 64)
	if err != nil {
		return 0, &Error{Location: loc, Message: fmt.Sprintf("invalid number %q", text), err: err}
	}
	v := float64(mag)
	if neg {
		v = -v
	}
	return v, nil
}

// ParseValue parses a single value of any kind and delivers it to v.
func (p *Parser) ParseValue(v ValueVisitor) error {
	tok, err := p.Peek()
	if err != nil {
		return err
	}
	loc := p.Location()
	switch {
	case tok == Null:
		p.advance()
		return v.VisitNull(loc)
	case tok == True, tok == False:
		p.advance()
		return v.VisitBool(tok == True, loc)
	case tok == String:
		text := string(p.sc.Text())
		p.advance()
		return v.VisitString(text, loc)
	case tok.IsNumber():
		f, err := p.decodeNumber(tok, loc)
		if err != nil {
			return err
		}
		p.advance()
		return v.VisitNumber(f, loc)
	case tok == LBrace:
		return v.VisitObject(p, loc)
	case tok == LSquare:
		return v.VisitArray(p, loc)
	}
	return p.expected(tok, "a value")
}

// ParseObject parses an object and delivers each member to v.  It reports
// the location of the opening brace.  Member keys may be either names or
// strings; a single trailing comma is accepted after the last member.
func (p *Parser) ParseObject(v PropertyVisitor) (Location, error) {
	oloc, err := p.Eat(LBrace)
	if err != nil {
		return oloc, err
	}
	for {
		tok, err := p.Peek()
		if err != nil {
			return oloc, err
		}
		if tok == RBrace {
			p.advance()
			return oloc, nil
		}
		kloc := p.Location()
		if tok != Name && tok != String {
			return oloc, p.expected(tok, `"}" or an object key`)
		}
		key := string(p.sc.Text())
		p.advance()
		if _, err := p.Eat(Colon); err != nil {
			return oloc, err
		}
		if err := v.VisitProperty(key, kloc, p); err != nil {
			return oloc, err
		}

		tok, err = p.Peek()
		if err != nil {
			return oloc, err
		}
		switch tok {
		case Comma:
			p.advance()
		case RBrace:
			p.advance()
			return oloc, nil
		default:
			return oloc, p.expected(tok, `"," or "}"`)
		}
	}
}

// ParseArray parses an array and delivers each element to v.  It reports
// the location of the opening bracket.  A single trailing comma is accepted
// after the last element.
func (p *Parser) ParseArray(v ValueVisitor) (Location, error) {
	aloc, err := p.Eat(LSquare)
	if err != nil {
		return aloc, err
	}
	for {
		tok, err := p.Peek()
		if err != nil {
			return aloc, err
		}
		if tok == RSquare {
			p.advance()
			return aloc, nil
		}
		if err := p.ParseValue(v); err != nil {
			return aloc, err
		}

		tok, err = p.Peek()
		if err != nil {
			return aloc, err
		}
		switch tok {
		case Comma:
			p.advance()
		case RSquare:
			p.advance()
			return aloc, nil
		default:
			return aloc, p.expected(tok, `"," or "]"`)
		}
	}
}

// ParseDocument parses a single value spanning the entire input and
// delivers it to v.  Anything other than whitespace and comments after the
// value is an error wrapping ErrExtraInput.
func (p *Parser) ParseDocument(v ValueVisitor) error {
	if err := p.ParseValue(v); err != nil {
		return err
	}
	return p.CheckEnd()
}

// CheckEnd verifies that nothing but whitespace and comments remains in
// the input.  Otherwise it reports an error wrapping ErrExtraInput.
func (p *Parser) CheckEnd() error {
	tok, err := p.Peek()
	if err != nil {
		return err
	}
	if tok != EOF {
		return &Error{Location: p.Location(), Message: ErrExtraInput.Error(), err: ErrExtraInput}
	}
	return nil
}

// Skip parses and discards a single value of any kind.
func (p *Parser) Skip() error { return p.ParseValue(Discard) }
