// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package codec implements encoding and decoding of JSON5 documents to
// and from Go values.
//
// Encoding is driven by a Writer, which renders ast.Value trees and
// arbitrary Go values as configurably pretty-printed JSON5 text.  The
// output uses only plain JSON syntax: the writer never emits comments,
// unquoted keys, or trailing commas, so any document it produces is also
// valid JSON.
//
// Decoding is driven by a Reader, which wraps a json5.Parser and fills Go
// values from the token stream.  All the JSON5 input extensions are
// accepted.
//
// Go structs are encoded positionally: the exported fields of a struct, in
// declaration order, form an array, except that a struct with exactly one
// exported field encodes as that field's value alone.  Maps encode as
// objects with their keys sorted.  Types can override the default rules by
// implementing the Marshaler or Unmarshaler interfaces.
package codec

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/creachadair/json5"
	"github.com/creachadair/json5/ast"
)

// Options carry the layout settings for a Writer.  The zero value is
// ready for use and gives the default pretty-printed layout.
type Options struct {
	// Starting indentation of the value, in columns.  This affects the
	// continuation lines and closing delimiters of multi-line containers;
	// the first line of output is never padded.
	Indentation int

	// Additional columns of indentation per nesting level (0 means 4).
	Indent int

	// The character used for indentation (0 means a space).
	IndentChar byte

	// Render values without any newlines or padding.
	Compact bool

	// The maximum recursive size of an object that may be rendered on a
	// single line (0 means 4, negative disables single-line objects).  The
	// recursive size of a container counts its kept descendants: each
	// primitive or empty container costs 1, and each non-empty container
	// costs 1 plus the total cost of its children.  Object keys are free.
	MaxSingleLineProperties int

	// The maximum recursive size of an array that may be rendered on a
	// single line (0 means 4, negative disables single-line arrays).
	MaxSingleLineItems int

	// If set, object members for which the filter reports false are
	// omitted from the output.  A nil filter keeps all members.
	KeepMember func(key string, v ast.Value) bool

	// If set, array elements for which the filter reports false are
	// omitted from the output.  A nil filter keeps all elements.
	KeepElement func(v ast.Value) bool
}

// A Marshaler renders itself to a writer, overriding the default encoding
// rules for its type.  The writer treats a Marshaler as opaque: its output
// is never folded onto one line with its siblings.
type Marshaler interface {
	MarshalJSON5(*Writer) error
}

// An Unmarshaler fills itself from a reader, overriding the default
// decoding rules for its type.
type Unmarshaler interface {
	UnmarshalJSON5(*Reader) error
}

// Marshal encodes v as JSON5 text with the default options.
func Marshal(v any) ([]byte, error) { return Options{}.Marshal(v) }

// MarshalString encodes v as JSON5 text with the default options.
func MarshalString(v any) (string, error) { return Options{}.MarshalString(v) }

// Encode writes the encoding of v to w with the default options.
func Encode(w io.Writer, v any) error { return Options{}.Encode(w, v) }

// Marshal encodes v as JSON5 text with the options from o.
func (o Options) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := o.Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalString encodes v as JSON5 text with the options from o.
func (o Options) MarshalString(v any) (string, error) {
	data, err := o.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Encode writes the encoding of v to w with the options from o.
func (o Options) Encode(w io.Writer, v any) error {
	wr := NewWriter(w, &o)
	if err := wr.Marshal(v); err != nil {
		return err
	}
	return wr.Flush()
}

// Unmarshal decodes data into v, which must be a non-nil pointer.  The
// input must comprise exactly one value; anything other than whitespace
// and comments after the value is an error wrapping json5.ErrExtraInput.
func Unmarshal(data []byte, v any) error {
	r := NewReader(bytes.NewReader(data))
	if err := r.Unmarshal(v); err != nil {
		return err
	}
	return r.checkEnd()
}

// Decode decodes a single value from r into v, which must be a non-nil
// pointer.  Unlike Unmarshal it does not require that the value span the
// whole input.  A clean end of input reports an error satisfying
// errors.Is(err, io.EOF).
//
// Each call to Decode constructs a new Reader, which buffers ahead; to
// decode successive values from one stream, create a single Reader and
// call its Unmarshal method repeatedly.
func Decode(r io.Reader, v any) error { return NewReader(r).Unmarshal(v) }

// badTypeError reports that values of type t are not handled by the
// default encoding rules.
func badTypeError(verb string, t reflect.Type) error {
	return &json5.Error{Message: fmt.Sprintf("%s not implemented for %s", verb, t)}
}

// structFields reports the indices of the exported fields of t in
// declaration order.  Results are cached per type.
func structFields(t reflect.Type) []int {
	if v, ok := fieldCache.Load(t); ok {
		return v.([]int)
	}
	fields := make([]int, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			fields = append(fields, i)
		}
	}
	v, _ := fieldCache.LoadOrStore(t, fields)
	return v.([]int)
}

var fieldCache sync.Map // map[reflect.Type][]int
