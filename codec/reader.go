// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package codec

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"

	"github.com/creachadair/json5"
	"github.com/creachadair/json5/ast"
)

// A Reader decodes JSON5 values from an input stream.
//
// The primitive operations (ReadNull, ReadBool, ReadString, ReadNumber)
// consume a single value of the named kind and report the location of its
// first token.  The tree operations (ReadValue, ReadObject, ReadArray)
// materialize ast values.  Unmarshal fills an arbitrary Go value from the
// input; see the package documentation for the decoding rules.
//
// The reader buffers ahead in the underlying stream, and is not safe for
// concurrent use.
type Reader struct {
	p *json5.Parser
}

// NewReader constructs a Reader that consumes input from r.
func NewReader(r io.Reader) *Reader { return &Reader{p: json5.NewParser(r)} }

// ReadNull consumes a null value.
func (r *Reader) ReadNull() (json5.Location, error) { return r.p.ParseNull() }

// ReadBool consumes a boolean value.
func (r *Reader) ReadBool() (bool, json5.Location, error) { return r.p.ParseBool() }

// ReadString consumes a string value and returns its decoded content.
func (r *Reader) ReadString() (string, json5.Location, error) { return r.p.ParseString() }

// ReadNumber consumes a numeric value of any radix, including the signed
// Infinity and NaN literals.
func (r *Reader) ReadNumber() (float64, json5.Location, error) { return r.p.ParseNumber() }

// ReadValue materializes the next value of any kind.
func (r *Reader) ReadValue() (ast.Value, error) { return ast.ParseValue(r.p) }

// ReadObject materializes the next object.  If a key occurs multiple
// times, the first member with that key wins.
func (r *Reader) ReadObject() (*ast.Object, error) { return ast.ParseObject(r.p) }

// ReadArray materializes the next array.
func (r *Reader) ReadArray() (ast.Array, error) { return ast.ParseArray(r.p) }

// Skip consumes and discards the next value of any kind.
func (r *Reader) Skip() error { return r.p.Skip() }

// checkEnd verifies that no input remains after the decoded value.
func (r *Reader) checkEnd() error { return r.p.CheckEnd() }

// Unmarshal decodes the next value from the input into v, which must be a
// non-nil pointer.  At a clean end of input, Unmarshal reports an error
// satisfying errors.Is(err, io.EOF).
//
// The container rules populate the target as they go: if decoding fails
// partway through a map, slice, or struct, the members decoded before the
// failure remain in the target.  A caller that needs atomicity should
// decode into a temporary and assign on success.
func (r *Reader) Unmarshal(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &json5.Error{Message: fmt.Sprintf("target is %T, not a non-nil pointer", v)}
	}
	return r.unmarshal(rv.Elem())
}

var (
	unmarshalerType = reflect.TypeFor[Unmarshaler]()
	astValueType    = reflect.TypeFor[ast.Value]()
	astObjectType   = reflect.TypeFor[*ast.Object]()
	astArrayType    = reflect.TypeFor[ast.Array]()
)

// unmarshal decodes the next value of the input into the addressable
// target rv.
func (r *Reader) unmarshal(rv reflect.Value) error {
	// A custom Unmarshaler gets first crack at the input.
	if rv.CanAddr() {
		if pv := rv.Addr(); pv.Type().Implements(unmarshalerType) {
			return pv.Interface().(Unmarshaler).UnmarshalJSON5(r)
		}
	}

	// Model targets materialize directly.
	switch rv.Type() {
	case astValueType:
		v, err := r.ReadValue()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(v))
		return nil
	case astObjectType:
		o, err := r.ReadObject()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(o))
		return nil
	case astArrayType:
		a, err := r.ReadArray()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(a))
		return nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		tok, err := r.p.Peek()
		if err != nil {
			return err
		}
		if tok == json5.Null {
			if _, err := r.p.ParseNull(); err != nil {
				return err
			}
			rv.SetZero()
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return r.unmarshal(rv.Elem())

	case reflect.Bool:
		b, _, err := r.ReadBool()
		if err != nil {
			return err
		}
		rv.SetBool(b)
		return nil

	case reflect.String:
		s, _, err := r.ReadString()
		if err != nil {
			return err
		}
		rv.SetString(s)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, loc, err := r.ReadNumber()
		if err != nil {
			return err
		}
		return setInt(rv, f, loc)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		f, loc, err := r.ReadNumber()
		if err != nil {
			return err
		}
		return setUint(rv, f, loc)

	case reflect.Float32, reflect.Float64:
		f, loc, err := r.ReadNumber()
		if err != nil {
			return err
		}
		if rv.OverflowFloat(f) {
			return overflowError(f, rv.Type(), loc)
		}
		rv.SetFloat(f)
		return nil

	case reflect.Interface:
		if rv.NumMethod() == 0 {
			v, err := r.readAny()
			if err != nil {
				return err
			}
			if v == nil {
				rv.SetZero()
			} else {
				rv.Set(reflect.ValueOf(v))
			}
			return nil
		}

	case reflect.Map:
		return r.unmarshalMap(rv)

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			s, _, err := r.ReadString()
			if err != nil {
				return err
			}
			rv.SetBytes([]byte(s))
			return nil
		}
		return r.unmarshalSlice(rv)

	case reflect.Array:
		return r.unmarshalArray(rv)

	case reflect.Struct:
		return r.unmarshalStruct(rv)
	}
	return badTypeError("deserialization", rv.Type())
}

// setInt stores f into the integer target rv, requiring an integral value
// in the target's range.
func setInt(rv reflect.Value, f float64, loc json5.Location) error {
	if math.Trunc(f) != f || math.IsInf(f, 0) {
		return notIntegerError(f, loc)
	}
	if f < -(1<<63) || f >= 1<<63 || rv.OverflowInt(int64(f)) {
		return overflowError(f, rv.Type(), loc)
	}
	rv.SetInt(int64(f))
	return nil
}

// setUint stores f into the unsigned integer target rv.
func setUint(rv reflect.Value, f float64, loc json5.Location) error {
	if math.Trunc(f) != f || math.IsInf(f, 0) {
		return notIntegerError(f, loc)
	}
	if math.Signbit(f) {
		return &json5.Error{
			Location: loc,
			Message:  fmt.Sprintf("number %s is negative", ast.Number(f)),
		}
	}
	if f >= 1<<64 || rv.OverflowUint(uint64(f)) {
		return overflowError(f, rv.Type(), loc)
	}
	rv.SetUint(uint64(f))
	return nil
}

func notIntegerError(f float64, loc json5.Location) error {
	return &json5.Error{
		Location: loc,
		Message:  fmt.Sprintf("number %s is not an integer", ast.Number(f)),
	}
}

func overflowError(f float64, t reflect.Type, loc json5.Location) error {
	return &json5.Error{
		Location: loc,
		Message:  fmt.Sprintf("number %s overflows %s", ast.Number(f), t),
	}
}

// readAny decodes the next value into the generic shapes: nil, bool,
// float64, string, []any, and map[string]any.
func (r *Reader) readAny() (any, error) {
	tok, err := r.p.Peek()
	if err != nil {
		return nil, err
	}
	switch {
	case tok == json5.Null:
		_, err := r.p.ParseNull()
		return nil, err
	case tok == json5.True, tok == json5.False:
		b, _, err := r.p.ParseBool()
		return b, err
	case tok == json5.String:
		s, _, err := r.p.ParseString()
		return s, err
	case tok.IsNumber():
		f, _, err := r.p.ParseNumber()
		return f, err
	case tok == json5.LBrace:
		return r.readAnyObject()
	case tok == json5.LSquare:
		return r.readAnyArray()
	}
	return nil, r.p.Skip() // reports the standard grammar error
}

func (r *Reader) readAnyObject() (map[string]any, error) {
	m := make(map[string]any)
	if _, err := r.p.ParseObject(anyMember{r, m}); err != nil {
		return nil, err
	}
	return m, nil
}

// anyMember adds each member of an object to a generic map, keeping the
// first value bound to each key.
type anyMember struct {
	r *Reader
	m map[string]any
}

func (a anyMember) VisitProperty(key string, _ json5.Location, p *json5.Parser) error {
	if _, ok := a.m[key]; ok {
		return p.Skip()
	}
	v, err := a.r.readAny()
	if err != nil {
		return err
	}
	a.m[key] = v
	return nil
}

func (r *Reader) readAnyArray() ([]any, error) {
	out := []any{}
	err := r.readElements(func() error {
		v, err := r.readAny()
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// readElements parses an array form, calling each with the parser
// positioned at the start of every element.  It accepts the same grammar
// as the parser's ParseArray, including a single trailing comma.
func (r *Reader) readElements(each func() error) error {
	if _, err := r.p.Eat(json5.LSquare); err != nil {
		return err
	}
	for {
		tok, err := r.p.Peek()
		if err != nil {
			return err
		}
		if tok == json5.RSquare {
			_, err := r.p.Eat(json5.RSquare)
			return err
		}
		if err := each(); err != nil {
			return err
		}

		tok, err = r.p.Peek()
		if err != nil {
			return err
		}
		switch tok {
		case json5.Comma:
			r.p.Eat(json5.Comma)
		case json5.RSquare:
			_, err := r.p.Eat(json5.RSquare)
			return err
		default:
			return r.grammarError(`expected "," or "]", got %v`, tok)
		}
	}
}

func (r *Reader) grammarError(msg string, args ...any) error {
	return &json5.Error{Location: r.p.Location(), Message: fmt.Sprintf(msg, args...)}
}

// unmarshalMap decodes an object into the map target rv.  The map is
// cleared before any members are decoded, and keeps members decoded before
// a failure.  Duplicate keys resolve to the first occurrence.
func (r *Reader) unmarshalMap(rv reflect.Value) error {
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(rv.Type()))
	} else {
		rv.Clear()
	}
	_, err := r.p.ParseObject(mapMember{r, rv})
	return err
}

// mapMember decodes each member of an object into a map entry.
type mapMember struct {
	r *Reader
	m reflect.Value
}

func (mm mapMember) VisitProperty(key string, loc json5.Location, p *json5.Parser) error {
	kv, err := mapKeyValue(mm.m.Type().Key(), key, loc)
	if err != nil {
		return err
	}
	if mm.m.MapIndex(kv).IsValid() {
		return p.Skip() // first binding wins
	}
	ev := reflect.New(mm.m.Type().Elem()).Elem()
	if err := mm.r.unmarshal(ev); err != nil {
		return err
	}
	mm.m.SetMapIndex(kv, ev)
	return nil
}

// mapKeyValue converts an object key to a value of the map key type kt.
func mapKeyValue(kt reflect.Type, key string, loc json5.Location) (reflect.Value, error) {
	kv := reflect.New(kt).Elem()
	switch kt.Kind() {
	case reflect.String:
		kv.SetString(key)
		return kv, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, 64)
		if err != nil || kv.OverflowInt(n) {
			return kv, &json5.Error{Location: loc, Message: fmt.Sprintf("invalid %s key %q", kt, key)}
		}
		kv.SetInt(n)
		return kv, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(key, 10, 64)
		if err != nil || kv.OverflowUint(n) {
			return kv, &json5.Error{Location: loc, Message: fmt.Sprintf("invalid %s key %q", kt, key)}
		}
		kv.SetUint(n)
		return kv, nil
	}
	return kv, &json5.Error{Message: fmt.Sprintf("unsupported map key type %s", kt)}
}

// unmarshalSlice decodes an array into the slice target rv.  The slice is
// truncated before any elements are decoded and grows as elements arrive,
// so a failure partway leaves the prefix in the target.
func (r *Reader) unmarshalSlice(rv reflect.Value) error {
	if rv.IsNil() {
		rv.Set(reflect.MakeSlice(rv.Type(), 0, 0))
	} else {
		rv.SetLen(0)
	}
	et := rv.Type().Elem()
	return r.readElements(func() error {
		ev := reflect.New(et).Elem()
		if err := r.unmarshal(ev); err != nil {
			return err
		}
		rv.Set(reflect.Append(rv, ev))
		return nil
	})
}

// unmarshalArray decodes an array into the fixed-size array target rv.
// Excess input elements are an error; absent trailing elements are zeroed.
func (r *Reader) unmarshalArray(rv reflect.Value) error {
	i, n := 0, rv.Len()
	err := r.readElements(func() error {
		if i >= n {
			return r.grammarError("too many elements for %s", rv.Type())
		}
		if err := r.unmarshal(rv.Index(i)); err != nil {
			return err
		}
		i++
		return nil
	})
	if err != nil {
		return err
	}
	for ; i < n; i++ {
		rv.Index(i).SetZero()
	}
	return nil
}

// unmarshalStruct decodes the positional aggregate form of a struct: a
// struct with a single exported field reads the bare field value, and any
// other struct reads an array of its exported fields in declaration order.
// One trailing comma is accepted after the last field.
func (r *Reader) unmarshalStruct(rv reflect.Value) error {
	fields := structFields(rv.Type())
	if len(fields) == 1 {
		return r.unmarshal(rv.Field(fields[0]))
	}
	if _, err := r.p.Eat(json5.LSquare); err != nil {
		return err
	}
	for i, fi := range fields {
		if i > 0 {
			tok, err := r.p.Peek()
			if err != nil {
				return err
			}
			if tok != json5.Comma {
				return r.grammarError("expected a comma, got %v", tok)
			}
			r.p.Eat(json5.Comma)
		}
		if err := r.unmarshal(rv.Field(fi)); err != nil {
			return err
		}
	}
	tok, err := r.p.Peek()
	if err != nil {
		return err
	}
	if tok == json5.Comma {
		r.p.Eat(json5.Comma)
		tok, err = r.p.Peek()
		if err != nil {
			return err
		}
	}
	if tok != json5.RSquare {
		return r.grammarError("missing end of array, got %v", tok)
	}
	r.p.Eat(json5.RSquare)
	return nil
}
