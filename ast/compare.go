// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"cmp"
	"math"
	"strings"
)

// Equal reports whether a and b are structurally equal: the same kind,
// with equal contents.  Numbers compare by IEEE 754 equality, so a NaN is
// not equal to anything including itself, and negative zero is equal to
// zero.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch t := a.(type) {
	case nullValue:
		return true
	case Bool:
		return t == b.(Bool)
	case String:
		return t == b.(String)
	case Number:
		return t == b.(Number)
	case *Object:
		return t.Equal(b.(*Object))
	case Array:
		u := b.(Array)
		if len(t) != len(u) {
			return false
		}
		for i, v := range t {
			if !Equal(v, u[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare orders a and b, returning a negative, zero, or positive result
// as a is less than, equal to, or greater than b.  The ok result reports
// whether the values are ordered at all: comparing a NaN with any number
// is unordered, as is any comparison of containers whose corresponding
// elements are unordered.  Values of different kinds order by Kind.
//
// Within a kind: false orders before true, strings order by lexicographic
// byte order, numbers by IEEE 754 order, and containers element by element
// with a prefix ordering before its extension.  Objects compare their
// members in key order, each member first by key and then by value.
func Compare(a, b Value) (int, bool) {
	if ka, kb := a.Kind(), b.Kind(); ka != kb {
		return cmp.Compare(ka, kb), true
	}
	switch t := a.(type) {
	case nullValue:
		return 0, true
	case Bool:
		u := b.(Bool)
		switch {
		case t == u:
			return 0, true
		case bool(u):
			return -1, true
		}
		return 1, true
	case String:
		return strings.Compare(string(t), string(b.(String))), true
	case Number:
		u := b.(Number)
		if math.IsNaN(float64(t)) || math.IsNaN(float64(u)) {
			return 0, false
		}
		return cmp.Compare(float64(t), float64(u)), true
	case *Object:
		u := b.(*Object)
		n := min(t.Len(), u.Len())
		for i := 0; i < n; i++ {
			if c := strings.Compare(t.ms[i].Key, u.ms[i].Key); c != 0 {
				return c, true
			}
			if c, ok := Compare(t.ms[i].Value, u.ms[i].Value); !ok || c != 0 {
				return c, ok
			}
		}
		return cmp.Compare(t.Len(), u.Len()), true
	case Array:
		u := b.(Array)
		n := min(len(t), len(u))
		for i := 0; i < n; i++ {
			if c, ok := Compare(t[i], u[i]); !ok || c != 0 {
				return c, ok
			}
		}
		return cmp.Compare(len(t), len(u)), true
	}
	return 0, false
}

// Clone returns a deep copy of v.  No object or array storage is shared
// between the copy and the original.
func Clone(v Value) Value {
	switch t := v.(type) {
	case *Object:
		return t.Clone()
	case Array:
		cp := make(Array, len(t))
		for i, v := range t {
			cp[i] = Clone(v)
		}
		return cp
	}
	return v
}
