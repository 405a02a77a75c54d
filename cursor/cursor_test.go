// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"testing"

	"github.com/creachadair/json5/ast"
	"github.com/creachadair/json5/cursor"
)

const testDoc = `{
  list: [{x: 1}, {x: 2}],
  y: {hello: 'there'},
  o: ['hi', 'yourself'],
  xyz: {p: true, d: true, q: false},
}`

func TestCursor(t *testing.T) {
	v, err := ast.ParseString(testDoc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	list, _ := v.(*ast.Object).Get("list")
	ovals, _ := v.(*ast.Object).Get("o")

	tests := []struct {
		name string
		path []any
		want ast.Value
		fail bool
	}{
		{"NilInput", nil, v, false},
		{"NoMatch", []any{"nonesuch"}, v, true},
		{"IndexRange", []any{11}, v, true},
		{"WrongType", []any{"y", "hello", 0}, ast.String("there"), true},

		{"ArrayPos", []any{"list", 1}, ast.ObjectOf(ast.Field("x", 2)), false},
		{"ArrayNeg", []any{"list", -1}, ast.ObjectOf(ast.Field("x", 2)), false},
		{"ArrayRange", []any{"o", 25}, ovals, true},

		// Positional steps see object members in key order: d, p, q.
		{"ObjKey", []any{"xyz", "d"}, ast.Bool(true), false},
		{"ObjIndex", []any{"xyz", 0}, ast.Bool(true), false},
		{"ObjIndexNeg", []any{"xyz", -1}, ast.Bool(false), false},

		{"FuncArray", []any{"o", lenFunc}, ast.ToValue(2), false},
		{"FuncObj", []any{"xyz", lenFunc}, ast.ToValue(3), false},
		{"FuncWrong", []any{"xyz", "d", lenFunc}, ast.Bool(true), true},

		{"BadElement", []any{"list", 3.5}, list, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(v).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Fatalf("Down %+v: got %s, want error", tc.path, c.Value().JSON())
			}
			if got := c.Value(); !ast.Equal(got, tc.want) {
				t.Errorf("Down %+v: got %s, want %s", tc.path, got.JSON(), tc.want.JSON())
			} else if err == nil {
				t.Logf("Found %s OK", got.JSON())
			}
		})
	}
}

func TestCursorMoves(t *testing.T) {
	v, err := ast.ParseString(testDoc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	c := cursor.New(v)
	if !c.AtOrigin() {
		t.Error("New cursor should be at origin")
	}
	if got := c.Origin(); !ast.Equal(got, v) {
		t.Errorf("Origin: got %s, want %s", got.JSON(), v.JSON())
	}

	c.Down("list", 0, "x")
	if err := c.Err(); err != nil {
		t.Fatalf("Down: unexpected error: %v", err)
	}
	if got := len(c.Path()); got != 4 {
		t.Errorf("Path length: got %d, want 4", got)
	}
	if got, want := c.Value(), ast.Number(1); !ast.Equal(got, want) {
		t.Errorf("Value: got %s, want %s", got.JSON(), want.JSON())
	}

	c.Up()
	if got, want := c.Value(), ast.ObjectOf(ast.Field("x", 1)); !ast.Equal(got, want) {
		t.Errorf("Value after Up: got %s, want %s", got.JSON(), want.JSON())
	}

	c.Reset()
	if !c.AtOrigin() {
		t.Error("Cursor should be at origin after Reset")
	}

	// A later Down clears the error from a failed traversal.
	c.Down("nonesuch")
	if c.Err() == nil {
		t.Error("Down nonesuch: got nil error, want traversal failure")
	}
	c.Down("y", "hello")
	if err := c.Err(); err != nil {
		t.Errorf("Down after failure: unexpected error: %v", err)
	}
	if got, want := c.Value(), ast.String("there"); !ast.Equal(got, want) {
		t.Errorf("Value: got %s, want %s", got.JSON(), want.JSON())
	}
}

func TestPath(t *testing.T) {
	v, err := ast.ParseString(testDoc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	s, err := cursor.Path[ast.String](v, "y", "hello")
	if err != nil {
		t.Errorf("Path y/hello: unexpected error: %v", err)
	} else if s != "there" {
		t.Errorf("Path y/hello: got %q, want %q", s, "there")
	}

	n, err := cursor.Path[ast.Number](v, "list", 0, "x")
	if err != nil {
		t.Errorf("Path list/0/x: unexpected error: %v", err)
	} else if n != 1 {
		t.Errorf("Path list/0/x: got %v, want 1", n)
	}

	if a, err := cursor.Path[ast.Array](v, "y"); err == nil {
		t.Errorf("Path y as array: got %s, want error", a.JSON())
	}
	if _, err := cursor.Path[ast.Bool](v, "zzz"); err == nil {
		t.Error("Path zzz: got nil error, want traversal failure")
	}
}

func lenFunc(v ast.Value) (ast.Value, error) {
	switch t := v.(type) {
	case ast.Array:
		return ast.ToValue(len(t)), nil
	case *ast.Object:
		return ast.ToValue(t.Len()), nil
	}
	return nil, errors.New("not a thing with length")
}
