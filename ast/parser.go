// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"
	"strings"

	"github.com/creachadair/json5"
)

// Parse parses a single JSON5 value comprising the whole input from r.
// If any input remains after the value, Parse reports an error that wraps
// json5.ErrExtraInput.
func Parse(r io.Reader) (Value, error) {
	var b builder
	if err := json5.NewParser(r).ParseDocument(&b); err != nil {
		return nil, err
	}
	return b.v, nil
}

// ParseString is shorthand for Parse on the contents of s.
func ParseString(s string) (Value, error) { return Parse(strings.NewReader(s)) }

// ParseValue materializes the next value of any kind from p.
func ParseValue(p *json5.Parser) (Value, error) {
	var b builder
	if err := p.ParseValue(&b); err != nil {
		return nil, err
	}
	return b.v, nil
}

// ParseObject materializes the next object from p.  If a key occurs
// multiple times, the first member with that key wins and the later ones
// are parsed but discarded.
func ParseObject(p *json5.Parser) (*Object, error) {
	o := new(Object)
	if _, err := p.ParseObject(memberBuilder{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ParseArray materializes the next array from p.
func ParseArray(p *json5.Parser) (Array, error) {
	a := Array{}
	if _, err := p.ParseArray(&arrayBuilder{&a}); err != nil {
		return nil, err
	}
	return a, nil
}

// A builder is a json5.ValueVisitor that materializes the single value it
// is given.
type builder struct {
	v Value
}

func (b *builder) VisitNull(json5.Location) error               { b.v = Null; return nil }
func (b *builder) VisitBool(v bool, _ json5.Location) error     { b.v = Bool(v); return nil }
func (b *builder) VisitString(s string, _ json5.Location) error { b.v = String(s); return nil }
func (b *builder) VisitNumber(v float64, _ json5.Location) error {
	b.v = Number(v)
	return nil
}

func (b *builder) VisitObject(p *json5.Parser, _ json5.Location) error {
	o, err := ParseObject(p)
	if err != nil {
		return err
	}
	b.v = o
	return nil
}

func (b *builder) VisitArray(p *json5.Parser, _ json5.Location) error {
	a, err := ParseArray(p)
	if err != nil {
		return err
	}
	b.v = a
	return nil
}

// A memberBuilder is a json5.PropertyVisitor that adds each member to an
// object, keeping the first value bound to each key.
type memberBuilder struct{ o *Object }

func (m memberBuilder) VisitProperty(key string, _ json5.Location, p *json5.Parser) error {
	v, err := ParseValue(p)
	if err != nil {
		return err
	}
	m.o.Add(key, v)
	return nil
}

// An arrayBuilder is a json5.ValueVisitor that appends each value it is
// given to an array.
type arrayBuilder struct{ a *Array }

func (b *arrayBuilder) add(v Value) error { *b.a = append(*b.a, v); return nil }

func (b *arrayBuilder) VisitNull(json5.Location) error                { return b.add(Null) }
func (b *arrayBuilder) VisitBool(v bool, _ json5.Location) error      { return b.add(Bool(v)) }
func (b *arrayBuilder) VisitString(s string, _ json5.Location) error  { return b.add(String(s)) }
func (b *arrayBuilder) VisitNumber(v float64, _ json5.Location) error { return b.add(Number(v)) }

func (b *arrayBuilder) VisitObject(p *json5.Parser, _ json5.Location) error {
	o, err := ParseObject(p)
	if err != nil {
		return err
	}
	return b.add(o)
}

func (b *arrayBuilder) VisitArray(p *json5.Parser, _ json5.Location) error {
	a, err := ParseArray(p)
	if err != nil {
		return err
	}
	return b.add(a)
}
