// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package ast defines the JSON5 value model, and a parser that
// materializes values from JSON5 source.
//
// A Value is one of exactly six alternatives: Null, Bool, String, Number,
// *Object, or Array.  Strings hold decoded text, and all numbers are IEEE
// 754 double precision values regardless of their radix in the source.
// Objects keep their members sorted by key at all times.
package ast

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/json5/internal/escape"

	"go4.org/mem"
)

// Kind enumerates the alternatives of a Value.  Comparisons between values
// of different kinds order them by Kind.
type Kind byte

// Constants defining the valid Kind values, in comparison order.
const (
	KindNull Kind = iota
	KindBool
	KindString
	KindNumber
	KindObject
	KindArray
)

var kindStr = [...]string{"null", "boolean", "string", "number", "object", "array"}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid"
	}
	return kindStr[k]
}

// A Value is a JSON5 value.  The set of implementations is closed: a Value
// is Null, a Bool, a String, a Number, an *Object, or an Array.
type Value interface {
	// Kind reports which alternative the value holds.
	Kind() Kind

	// String returns a plain-text rendering of the value.  For strings this
	// is the decoded content without quotes; for all other values it is the
	// same as JSON.
	String() string

	// JSON returns a compact JSON5 rendering of the value.
	JSON() string

	isValue()
}

// Null is the JSON5 null value.
var Null Value = nullValue{}

type nullValue struct{}

func (nullValue) Kind() Kind     { return KindNull }
func (nullValue) String() string { return "null" }
func (nullValue) JSON() string   { return "null" }
func (nullValue) isValue()       {}

// A Bool is a boolean value.
type Bool bool

// Convenience constants for the boolean values.
const (
	True  Bool = true
	False Bool = false
)

func (b Bool) Kind() Kind { return KindBool }

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) JSON() string { return b.String() }
func (b Bool) isValue()     {}

// A String is a string value holding decoded text: escape sequences in the
// source have already been resolved.
type String string

func (s String) Kind() Kind     { return KindString }
func (s String) String() string { return string(s) }
func (s String) JSON() string   { return string(escape.Quote(mem.S(string(s)))) }
func (s String) isValue()       {}

// A Number is a numeric value.
type Number float64

func (n Number) Kind() Kind     { return KindNumber }
func (n Number) String() string { return formatFloat(float64(n)) }
func (n Number) JSON() string   { return n.String() }
func (n Number) isValue()       {}

// formatFloat renders v in the shortest decimal form that parses back to
// the same value.  The non-finite values use their JSON5 literals, chosen
// by the sign bit; finite values use an exponent only at extreme
// magnitudes, in the manner of encoding/json.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		if math.Signbit(v) {
			return "-NaN"
		}
		return "NaN"
	case math.IsInf(v, 0):
		if math.Signbit(v) {
			return "-Infinity"
		}
		return "Infinity"
	}
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	out := strconv.AppendFloat(make([]byte, 0, 24), v, format, -1, 64)
	if format == 'e' {
		// Trim the leading zero of a small negative exponent (e-09 to e-9).
		if n := len(out); n >= 4 && out[n-4] == 'e' && out[n-3] == '-' && out[n-2] == '0' {
			out[n-2] = out[n-1]
			out = out[:n-1]
		}
	}
	return string(out)
}

// A Member is a single key/value property of an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs a Member with the given key, converting v to a Value
// with ToValue.
func Field(key string, v any) Member { return Member{Key: key, Value: ToValue(v)} }

// An Object is a collection of key/value members, kept sorted by key in
// lexicographic byte order.  Keys are unique: where an operation would bind
// an already-present key, the first binding wins.
type Object struct {
	ms []Member // invariant: sorted by Key, keys unique
}

// ObjectOf constructs an Object from the given members.  If a key repeats,
// the first occurrence wins.
func ObjectOf(ms ...Member) *Object {
	o := new(Object)
	for _, m := range ms {
		o.Add(m.Key, m.Value)
	}
	return o
}

func (o *Object) Kind() Kind { return KindObject }
func (o *Object) isValue()   {}

func (o *Object) String() string { return o.JSON() }

func (o *Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o.ms {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.Write(escape.Quote(mem.S(m.Key)))
		sb.WriteByte(':')
		sb.WriteString(m.Value.JSON())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Len reports the number of members of o.  A nil *Object has length 0.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.ms)
}

// index reports the position of key in o and whether it is present.  For
// an absent key the position is where it would be inserted.
func (o *Object) index(key string) (int, bool) {
	return slices.BinarySearchFunc(o.ms, key, func(m Member, key string) int {
		return strings.Compare(m.Key, key)
	})
}

// At returns the member at position i in key order.  It panics if i is out
// of range, in the manner of a slice index.
func (o *Object) At(i int) Member { return o.ms[i] }

// Find returns the member of o with the given key, or nil if there is
// none.  The caller must not modify the Key of the result.
func (o *Object) Find(key string) *Member {
	if i, ok := o.index(key); ok {
		return &o.ms[i]
	}
	return nil
}

// Get returns the value bound to key, and reports whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	if i, ok := o.index(key); ok {
		return o.ms[i].Value, true
	}
	return nil, false
}

// Has reports whether o contains a member with the given key.
func (o *Object) Has(key string) bool { _, ok := o.index(key); return ok }

// Index reports the position of key among the members of o in key order,
// or -1 if the key is not present.
func (o *Object) Index(key string) int {
	if i, ok := o.index(key); ok {
		return i
	}
	return -1
}

// Set binds key to value, replacing any existing binding.
func (o *Object) Set(key string, v Value) {
	if i, ok := o.index(key); ok {
		o.ms[i].Value = v
	} else {
		o.ms = slices.Insert(o.ms, i, Member{Key: key, Value: v})
	}
}

// Add binds key to value if key is not already present, and reports
// whether it did so.
func (o *Object) Add(key string, v Value) bool {
	i, ok := o.index(key)
	if ok {
		return false
	}
	o.ms = slices.Insert(o.ms, i, Member{Key: key, Value: v})
	return true
}

// Remove removes the member with the given key, and reports whether a
// member was removed.
func (o *Object) Remove(key string) bool {
	if i, ok := o.index(key); ok {
		o.ms = slices.Delete(o.ms, i, i+1)
		return true
	}
	return false
}

// Clear removes all members of o.
func (o *Object) Clear() { o.ms = o.ms[:0] }

// Keys returns the keys of o in sorted order.
func (o *Object) Keys() []string {
	keys := make([]string, o.Len())
	for i, m := range o.ms {
		keys[i] = m.Key
	}
	return keys
}

// All ranges the members of o in key order.
func (o *Object) All() iter.Seq[Member] {
	return func(yield func(Member) bool) {
		if o == nil {
			return
		}
		for _, m := range o.ms {
			if !yield(m) {
				return
			}
		}
	}
}

// Equal reports whether o and p have the same members with equal values.
// A nil *Object is equal to an empty one.
func (o *Object) Equal(p *Object) bool {
	if o.Len() != p.Len() {
		return false
	} else if o.Len() == 0 {
		return true
	}
	for i, m := range o.ms {
		if m.Key != p.ms[i].Key || !Equal(m.Value, p.ms[i].Value) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of o.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	cp := &Object{ms: make([]Member, len(o.ms))}
	for i, m := range o.ms {
		cp.ms[i] = Member{Key: m.Key, Value: Clone(m.Value)}
	}
	return cp
}

// An Array is a sequence of values.  The ordinary slice operations are its
// sequence API: index, slice, append, len.
type Array []Value

// ArrayOf constructs an Array of the given values, converting each to a
// Value with ToValue.
func ArrayOf[T any](vs ...T) Array {
	out := make(Array, len(vs))
	for i, v := range vs {
		out[i] = ToValue(v)
	}
	return out
}

func (a Array) Kind() Kind { return KindArray }
func (a Array) isValue()   {}

func (a Array) String() string { return a.JSON() }

func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.JSON())
	}
	sb.WriteByte(']')
	return sb.String()
}

// ToValue converts a plain Go value to the corresponding Value.  It
// accepts nil, bool, string, int, int64, float64, and values that are
// already Values; any other type causes ToValue to panic.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Number(t)
	case int64:
		return Number(t)
	case float64:
		return Number(t)
	}
	panic(fmt.Sprintf("no conversion for value of type %T", v))
}
