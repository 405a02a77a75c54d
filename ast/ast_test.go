// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"math"
	"testing"

	"github.com/creachadair/json5/ast"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		input ast.Value
		want  string
	}{
		{ast.Null, "null"},

		{ast.Bool(false), "false"},
		{ast.Bool(true), "true"},

		{ast.String(""), `""`},
		{ast.String("a \t b"), `"a \t b"`},
		{ast.String(`"quoth"`), `"\"quoth\""`},
		{ast.String("back\\slash"), `"back\\slash"`},
		{ast.String("\x00\x01\x7f"), `"\0\x01\x7f"`},
		{ast.String("ικαρος"), `"ικαρος"`},

		{ast.Number(0), "0"},
		{ast.Number(15), "15"},
		{ast.Number(-25), "-25"},
		{ast.Number(-0.00239), "-0.00239"},
		{ast.Number(math.Copysign(0, -1)), "-0"},
		{ast.Number(1e21), "1e+21"},
		{ast.Number(2.5e-7), "2.5e-7"},
		{ast.Number(math.Inf(1)), "Infinity"},
		{ast.Number(math.Inf(-1)), "-Infinity"},
		{ast.Number(math.NaN()), "NaN"},
		{ast.Number(math.Copysign(math.NaN(), -1)), "-NaN"},

		{ast.Array{}, `[]`},
		{ast.ArrayOf(false), `[false]`},
		{ast.ArrayOf[any](true, 199), `[true,199]`},
		{ast.ArrayOf("free", "your", "mind"), `["free","your","mind"]`},

		{ast.ObjectOf(), `{}`},
		{ast.ObjectOf(ast.Field("xs", nil)), `{"xs":null}`},

		// Objects render their members in key order no matter how they were
		// constructed.
		{ast.ObjectOf(
			ast.Field("name", "Dennis"),
			ast.Field("age", 37),
			ast.Field("isOld", false),
		), `{"age":37,"isOld":false,"name":"Dennis"}`},

		{ast.ObjectOf(
			ast.Field("values", ast.ArrayOf[any](5, 10, true)),
			ast.Field("page", ast.ObjectOf(
				ast.Field("token", "xyz-pdq-zvm"),
				ast.Field("count", 100),
			)),
		), `{"page":{"count":100,"token":"xyz-pdq-zvm"},"values":[5,10,true]}`},
	}
	for _, test := range tests {
		got := test.input.JSON()
		if got != test.want {
			t.Errorf("Input: %+v\nGot:  %s\nWant: %s", test.input, got, test.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		input ast.Value
		want  string
	}{
		// Strings render their decoded content without quotes.
		{ast.String("a \t b"), "a \t b"},

		// Everything else renders as its JSON5 form.
		{ast.Null, "null"},
		{ast.Bool(true), "true"},
		{ast.Number(-1.5), "-1.5"},
		{ast.ArrayOf("x"), `["x"]`},
		{ast.ObjectOf(ast.Field("a", 1)), `{"a":1}`},
	}
	for _, test := range tests {
		if got := test.input.String(); got != test.want {
			t.Errorf("String of %s: got %q, want %q", test.input.JSON(), got, test.want)
		}
	}
}

func TestObject(t *testing.T) {
	o := ast.ObjectOf(
		ast.Field("watermelon", 1),
		ast.Field("apple", 2),
		ast.Field("pear", 3),
		ast.Field("apple", 4), // first binding wins
	)
	if got, want := o.Len(), 3; got != want {
		t.Errorf("Len: got %d, want %d", got, want)
	}
	if diff := cmp.Diff(o.Keys(), []string{"apple", "pear", "watermelon"}); diff != "" {
		t.Errorf("Keys (-got, +want):\n%s", diff)
	}
	if v, ok := o.Get("apple"); !ok || !ast.Equal(v, ast.Number(2)) {
		t.Errorf(`Get "apple": got %v, %v; want 2, true`, v, ok)
	}
	if !o.Has("pear") {
		t.Error(`Has "pear": got false, want true`)
	}
	if o.Has("plum") {
		t.Error(`Has "plum": got true, want false`)
	}
	if got, want := o.Index("pear"), 1; got != want {
		t.Errorf(`Index "pear": got %d, want %d`, got, want)
	}
	if got, want := o.Index("plum"), -1; got != want {
		t.Errorf(`Index "plum": got %d, want %d`, got, want)
	}
	if m := o.Find("watermelon"); m == nil {
		t.Error(`Find "watermelon": got nil, want a member`)
	} else if !ast.Equal(m.Value, ast.Number(1)) {
		t.Errorf(`Find "watermelon": got value %v, want 1`, m.Value)
	}
	if m := o.Find("nonesuch"); m != nil {
		t.Errorf(`Find "nonesuch": got %v, want nil`, m)
	}

	if o.Add("apple", ast.Number(5)) {
		t.Error(`Add "apple": got true, want false`)
	}
	if o.Add("banana", ast.Number(6)) {
		if got, want := o.Index("banana"), 1; got != want {
			t.Errorf(`Index "banana": got %d, want %d`, got, want)
		}
	} else {
		t.Error(`Add "banana": got false, want true`)
	}

	o.Set("apple", ast.Number(9))
	if v, _ := o.Get("apple"); !ast.Equal(v, ast.Number(9)) {
		t.Errorf(`Get "apple" after Set: got %v, want 9`, v)
	}
	o.Set("zebra", ast.Bool(true))
	if diff := cmp.Diff(o.Keys(), []string{"apple", "banana", "pear", "watermelon", "zebra"}); diff != "" {
		t.Errorf("Keys after Set (-got, +want):\n%s", diff)
	}

	if !o.Remove("pear") {
		t.Error(`Remove "pear": got false, want true`)
	}
	if o.Remove("pear") {
		t.Error(`Remove "pear" again: got true, want false`)
	}

	var keys []string
	for m := range o.All() {
		keys = append(keys, m.Key)
	}
	if diff := cmp.Diff(keys, o.Keys()); diff != "" {
		t.Errorf("All keys (-got, +want):\n%s", diff)
	}

	o.Clear()
	if got := o.Len(); got != 0 {
		t.Errorf("Len after Clear: got %d, want 0", got)
	}
	if got := o.JSON(); got != "{}" {
		t.Errorf("JSON after Clear: got %s, want {}", got)
	}
}

func TestEqual(t *testing.T) {
	nan := ast.Number(math.NaN())
	tests := []struct {
		a, b ast.Value
		want bool
	}{
		{ast.Null, ast.Null, true},
		{ast.Null, ast.Bool(false), false},

		{ast.Bool(true), ast.Bool(true), true},
		{ast.Bool(true), ast.Bool(false), false},

		{ast.String("a"), ast.String("a"), true},
		{ast.String("a"), ast.String("b"), false},
		{ast.String("1"), ast.Number(1), false},

		{ast.Number(1), ast.Number(1), true},
		{ast.Number(1), ast.Number(2), false},
		{ast.Number(0), ast.Number(math.Copysign(0, -1)), true},
		{nan, nan, false}, // IEEE equality: NaN is not equal to itself

		{ast.Array{}, ast.Array{}, true},
		{ast.ArrayOf(1, 2), ast.ArrayOf(1, 2), true},
		{ast.ArrayOf(1, 2), ast.ArrayOf(1, 2, 3), false},
		{ast.ArrayOf(1, 2), ast.ArrayOf(1, 5), false},
		{ast.Array{}, ast.ObjectOf(), false},

		{ast.ObjectOf(ast.Field("a", 1), ast.Field("b", 2)),
			ast.ObjectOf(ast.Field("b", 2), ast.Field("a", 1)), true},
		{ast.ObjectOf(ast.Field("a", 1)),
			ast.ObjectOf(ast.Field("a", 2)), false},
		{ast.ObjectOf(ast.Field("a", 1)),
			ast.ObjectOf(ast.Field("b", 1)), false},
		{ast.ObjectOf(ast.Field("a", 1)),
			ast.ObjectOf(ast.Field("a", 1), ast.Field("b", 2)), false},
	}
	for _, test := range tests {
		if got := ast.Equal(test.a, test.b); got != test.want {
			t.Errorf("Equal(%s, %s): got %v, want %v", test.a.JSON(), test.b.JSON(), got, test.want)
		}
	}
}

func TestCompare(t *testing.T) {
	nan := ast.Number(math.NaN())
	tests := []struct {
		a, b   ast.Value
		want   int
		wantOK bool
	}{
		{ast.Null, ast.Null, 0, true},
		{ast.Null, ast.Bool(false), -1, true},
		{ast.Array{}, ast.Null, 1, true},

		{ast.Bool(false), ast.Bool(true), -1, true},
		{ast.Bool(true), ast.Bool(false), 1, true},
		{ast.Bool(true), ast.Bool(true), 0, true},

		{ast.String("a"), ast.String("b"), -1, true},
		{ast.String("b"), ast.String("ab"), 1, true},
		{ast.String("a"), ast.String("a"), 0, true},

		{ast.Number(1), ast.Number(2), -1, true},
		{ast.Number(2), ast.Number(1), 1, true},
		{ast.Number(math.Inf(-1)), ast.Number(0), -1, true},
		{nan, ast.Number(1), 0, false},
		{ast.Number(1), nan, 0, false},
		{nan, nan, 0, false},

		// Different kinds are always ordered, even when a NaN is involved.
		{nan, ast.String("x"), 1, true},

		{ast.ArrayOf(1), ast.ArrayOf(1, 2), -1, true},
		{ast.ArrayOf(2), ast.ArrayOf(1, 9), 1, true},
		{ast.ArrayOf(1, 2), ast.ArrayOf(1, 2), 0, true},
		{ast.ArrayOf[ast.Value](nan), ast.ArrayOf[ast.Value](nan), 0, false},

		{ast.ObjectOf(ast.Field("a", 1)), ast.ObjectOf(ast.Field("a", 2)), -1, true},
		{ast.ObjectOf(ast.Field("a", 1)), ast.ObjectOf(ast.Field("b", 1)), -1, true},
		{ast.ObjectOf(ast.Field("a", 1)),
			ast.ObjectOf(ast.Field("a", 1), ast.Field("b", 2)), -1, true},
		{ast.ObjectOf(ast.Field("a", 1), ast.Field("b", 2)),
			ast.ObjectOf(ast.Field("b", 2), ast.Field("a", 1)), 0, true},
		{ast.ObjectOf(ast.Field("a", nan)), ast.ObjectOf(ast.Field("a", nan)), 0, false},
	}
	for _, test := range tests {
		got, ok := ast.Compare(test.a, test.b)
		if sign(got) != test.want || ok != test.wantOK {
			t.Errorf("Compare(%s, %s): got %d, %v; want %d, %v",
				test.a.JSON(), test.b.JSON(), got, ok, test.want, test.wantOK)
		}
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func TestClone(t *testing.T) {
	mk := func() ast.Value {
		return ast.ObjectOf(
			ast.Field("list", ast.ArrayOf[any](1, "two", ast.ObjectOf(ast.Field("x", 3)))),
			ast.Field("flag", true),
		)
	}
	orig := mk()
	cp := ast.Clone(orig)
	if !ast.Equal(cp, orig) {
		t.Fatalf("Clone: got %s, want %s", cp.JSON(), orig.JSON())
	}

	// Mutating the copy must not affect the original.
	co := cp.(*ast.Object)
	co.Set("flag", ast.Bool(false))
	lst, _ := co.Get("list")
	lst.(ast.Array)[0] = ast.Null
	inner := lst.(ast.Array)[2].(*ast.Object)
	inner.Set("x", ast.String("changed"))

	if !ast.Equal(orig, mk()) {
		t.Errorf("Original changed after mutating clone:\ngot  %s\nwant %s", orig.JSON(), mk().JSON())
	}
}

func TestToValue(t *testing.T) {
	tests := []struct {
		input any
		want  ast.Value
	}{
		{nil, ast.Null},
		{true, ast.Bool(true)},
		{false, ast.Bool(false)},
		{"whatever", ast.String("whatever")},
		{17, ast.Number(17)},
		{int64(-3), ast.Number(-3)},
		{2.25, ast.Number(2.25)},
		{ast.ArrayOf(1), ast.ArrayOf(1)},
	}
	for _, test := range tests {
		if got := ast.ToValue(test.input); !ast.Equal(got, test.want) {
			t.Errorf("ToValue %v: got %s, want %s", test.input, got.JSON(), test.want.JSON())
		}
	}

	t.Run("Panic", func(t *testing.T) {
		mtest.MustPanic(t, func() { ast.ToValue([]bool{true}) })
		mtest.MustPanic(t, func() { ast.ToValue(func() {}) })
		mtest.MustPanic(t, func() { ast.ToValue(make(chan struct{})) })
	})
}

func TestKind(t *testing.T) {
	tests := []struct {
		input ast.Value
		kind  ast.Kind
		want  string
	}{
		{ast.Null, ast.KindNull, "null"},
		{ast.Bool(true), ast.KindBool, "boolean"},
		{ast.String(""), ast.KindString, "string"},
		{ast.Number(0), ast.KindNumber, "number"},
		{ast.ObjectOf(), ast.KindObject, "object"},
		{ast.Array{}, ast.KindArray, "array"},
	}
	for _, test := range tests {
		if got := test.input.Kind(); got != test.kind {
			t.Errorf("Kind of %s: got %v, want %v", test.input.JSON(), got, test.kind)
		}
		if got := test.kind.String(); got != test.want {
			t.Errorf("Kind %d string: got %q, want %q", test.kind, got, test.want)
		}
	}
	if got, want := ast.Kind(100).String(), "invalid"; got != want {
		t.Errorf("Kind 100 string: got %q, want %q", got, want)
	}
}
