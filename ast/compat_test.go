// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"encoding/json"
	"testing"

	"github.com/creachadair/json5/ast"
	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/hujson"
	tjson5 "github.com/titanous/json5"
)

// plain converts v to the generic value shapes produced by encoding/json,
// so that parses can be compared with those of other decoders.
func plain(v ast.Value) any {
	switch t := v.(type) {
	case ast.Bool:
		return bool(t)
	case ast.String:
		return string(t)
	case ast.Number:
		return float64(t)
	case *ast.Object:
		m := make(map[string]any, t.Len())
		for mem := range t.All() {
			m[mem.Key] = plain(mem.Value)
		}
		return m
	case ast.Array:
		out := make([]any, len(t))
		for i, v := range t {
			out[i] = plain(v)
		}
		return out
	}
	return nil
}

// These documents use only syntax shared with the HuJSON dialect, meaning
// standard JSON plus comments and trailing commas.
var hujsonDocs = []string{
	`{"a": 1, "b": [true, false, null], "c": {"d": "e"}}`,
	"// leading comment\n{\"x\": [1, 2, 3,], /* mid */ \"y\": {},}\n",
	`[]`,
	`{}`,
	`[1.5, -2.25e3, 0.125, 1e100]`,
	`["\u2028 ok é", "escape \" sampler \\ \b\f\n\r\t"]`,
	`{"deep": [[[{"er": [{}]}]]]}`,
}

func TestHuJSONAgreement(t *testing.T) {
	for _, doc := range hujsonDocs {
		std, err := hujson.Standardize([]byte(doc))
		if err != nil {
			t.Errorf("Standardize %q: %v", doc, err)
			continue
		}
		var want any
		if err := json.Unmarshal(std, &want); err != nil {
			t.Errorf("Unmarshal %q: %v", std, err)
			continue
		}
		v, err := ast.ParseString(doc)
		if err != nil {
			t.Errorf("Parse %q: %v", doc, err)
			continue
		}
		if diff := cmp.Diff(plain(v), want); diff != "" {
			t.Errorf("Parse %q disagrees with hujson (-got, +want):\n%s", doc, diff)
		}
	}
}

// These documents use the JSON5 extensions over HuJSON: unquoted keys,
// single-quoted strings, hex numbers, and bare decimal points.
var json5Docs = []string{
	`{unquoted: 'single', hex: 0x1F, frac: .5, plus: +2}`,
	`{nested: {a: [1, 2, 3,],}, s: 'it\'s'}`,
	"{lead: /* inline */ 0.25, // line\n tail: 'end'}",
	`['mixed', "quotes", 'in \n one', "array",]`,
}

func TestJSON5Agreement(t *testing.T) {
	for _, doc := range json5Docs {
		var want any
		if err := tjson5.Unmarshal([]byte(doc), &want); err != nil {
			t.Errorf("json5.Unmarshal %q: %v", doc, err)
			continue
		}
		v, err := ast.ParseString(doc)
		if err != nil {
			t.Errorf("Parse %q: %v", doc, err)
			continue
		}
		if diff := cmp.Diff(plain(v), want); diff != "" {
			t.Errorf("Parse %q disagrees with json5 (-got, +want):\n%s", doc, diff)
		}
	}
}
