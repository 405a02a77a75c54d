// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package codec

import (
	"bufio"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/json5"
	"github.com/creachadair/json5/ast"
	"github.com/creachadair/json5/internal/escape"

	"go4.org/mem"
)

// A Writer renders JSON5 values to an output stream.  Output is buffered;
// the caller must invoke Flush when writing is complete.
//
// The primitive operations (WriteNull, WriteBool, WriteString,
// WriteNumber) emit a single value at the current output position.  The
// WriteValue and Marshal operations lay out whole trees according to the
// writer's options.
type Writer struct {
	w   *bufio.Writer
	o   Options // normalized at construction
	pb  []byte  // padding buffer, filled with the indent character
	err error   // first write error; all output stops once set
}

// NewWriter constructs a Writer that renders output to w using the
// settings from o.  Passing a nil o is equivalent to &Options{}.  The
// options are copied; later changes to o do not affect the writer.
func NewWriter(w io.Writer, o *Options) *Writer {
	var opt Options
	if o != nil {
		opt = *o
	}
	if opt.Indentation < 0 {
		opt.Indentation = 0
	}
	if opt.Indent == 0 {
		opt.Indent = 4
	} else if opt.Indent < 0 {
		opt.Indent = 0
	}
	if opt.IndentChar == 0 {
		opt.IndentChar = ' '
	}
	if opt.MaxSingleLineProperties == 0 {
		opt.MaxSingleLineProperties = 4
	}
	if opt.MaxSingleLineItems == 0 {
		opt.MaxSingleLineItems = 4
	}
	return &Writer{w: bufio.NewWriter(w), o: opt}
}

// Flush writes any buffered output to the underlying stream.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// WriteNull writes the null literal.
func (w *Writer) WriteNull() error { w.str("null"); return w.err }

// WriteBool writes a boolean literal.
func (w *Writer) WriteBool(b bool) error { w.str(strconv.FormatBool(b)); return w.err }

// WriteString writes s as a double-quoted string literal.
func (w *Writer) WriteString(s string) error { w.raw(escape.Quote(mem.S(s))); return w.err }

// WriteNumber writes a numeric literal.  The IEEE special values render
// as Infinity and NaN with a sign taken from the sign bit.
func (w *Writer) WriteNumber(v float64) error { w.str(ast.Number(v).JSON()); return w.err }

// WriteValue renders v according to the writer's layout options.
func (w *Writer) WriteValue(v ast.Value) error {
	if v == nil {
		v = ast.Null
	}
	return w.writeValue(v, w.o.Indentation)
}

// Marshal renders an arbitrary Go value according to the writer's layout
// options.  See the package documentation for the encoding rules.
func (w *Writer) Marshal(v any) error {
	n, err := w.marshalNode(reflect.ValueOf(v))
	if err != nil {
		return err
	}
	return w.render(n, w.o.Indentation)
}

func (w *Writer) str(s string) {
	if w.err == nil {
		_, w.err = w.w.WriteString(s)
	}
}

func (w *Writer) ch(b byte) {
	if w.err == nil {
		w.err = w.w.WriteByte(b)
	}
}

func (w *Writer) raw(b []byte) {
	if w.err == nil {
		_, w.err = w.w.Write(b)
	}
}

// pad writes n copies of the indent character.
func (w *Writer) pad(n int) {
	for len(w.pb) < n {
		w.pb = append(w.pb, w.o.IndentChar)
	}
	w.raw(w.pb[:n])
}

func (w *Writer) keepMember(key string, v ast.Value) bool {
	return w.o.KeepMember == nil || w.o.KeepMember(key, v)
}

func (w *Writer) keepElement(v ast.Value) bool {
	return w.o.KeepElement == nil || w.o.KeepElement(v)
}

// A wnode is a deferred rendering of a value: either a materialized
// ast.Value, an opaque custom Marshaler, or a container some of whose
// descendants are opaque.  Reflected Go data with no custom marshalers in
// it always materializes, so the container forms occur only around
// Marshaler implementations.
type wnode struct {
	val ast.Value
	m   Marshaler
	obj []wmember
	arr []wnode
}

type wmember struct {
	key string
	n   wnode
}

// render writes n at the given indentation.
func (w *Writer) render(n wnode, indent int) error {
	switch {
	case n.m != nil:
		// The writer does not adjust the layout of output produced by a
		// custom Marshaler.
		if err := n.m.MarshalJSON5(w); err != nil {
			return err
		}
		return w.err

	case n.val != nil:
		return w.writeValue(n.val, indent)

	case n.obj != nil:
		ms := make([]wmember, 0, len(n.obj))
		for _, m := range n.obj {
			if m.n.val == nil || w.keepMember(m.key, m.n.val) {
				ms = append(ms, m)
			}
		}
		return w.renderObject(ms, indent)

	default:
		ns := make([]wnode, 0, len(n.arr))
		for _, e := range n.arr {
			if e.val == nil || w.keepElement(e.val) {
				ns = append(ns, e)
			}
		}
		return w.renderArray(ns, indent)
	}
}

// writeValue renders a materialized value at the given indentation.
func (w *Writer) writeValue(v ast.Value, indent int) error {
	switch t := v.(type) {
	case *ast.Object:
		ms := make([]wmember, 0, t.Len())
		for m := range t.All() {
			if w.keepMember(m.Key, m.Value) {
				ms = append(ms, wmember{m.Key, wnode{val: m.Value}})
			}
		}
		return w.renderObject(ms, indent)
	case ast.Array:
		ns := make([]wnode, 0, len(t))
		for _, e := range t {
			if w.keepElement(e) {
				ns = append(ns, wnode{val: e})
			}
		}
		return w.renderArray(ns, indent)
	}
	w.str(v.JSON())
	return w.err
}

// renderObject writes the already-filtered members ms as an object.
func (w *Writer) renderObject(ms []wmember, indent int) error {
	if len(ms) == 0 {
		w.str("{}")
		return w.err
	}
	if w.o.Compact {
		w.ch('{')
		for i, m := range ms {
			if i > 0 {
				w.ch(',')
			}
			w.raw(escape.Quote(mem.S(m.key)))
			w.ch(':')
			if err := w.render(m.n, 0); err != nil {
				return err
			}
		}
		w.ch('}')
		return w.err
	}
	if w.measureMembers(ms) <= w.o.MaxSingleLineProperties {
		w.str("{ ")
		for i, m := range ms {
			if i > 0 {
				w.str(", ")
			}
			w.raw(escape.Quote(mem.S(m.key)))
			w.str(": ")
			if err := w.render(m.n, indent); err != nil {
				return err
			}
		}
		w.str(" }")
		return w.err
	}

	inner := indent + w.o.Indent
	w.str("{\n")
	for i, m := range ms {
		w.pad(inner)
		w.raw(escape.Quote(mem.S(m.key)))
		w.str(": ")
		if err := w.render(m.n, inner); err != nil {
			return err
		}
		if i+1 < len(ms) {
			w.ch(',')
		}
		w.ch('\n')
	}
	w.pad(indent)
	w.ch('}')
	return w.err
}

// renderArray writes the already-filtered elements ns as an array.
func (w *Writer) renderArray(ns []wnode, indent int) error {
	if len(ns) == 0 {
		w.str("[]")
		return w.err
	}
	if w.o.Compact {
		w.ch('[')
		for i, n := range ns {
			if i > 0 {
				w.ch(',')
			}
			if err := w.render(n, 0); err != nil {
				return err
			}
		}
		w.ch(']')
		return w.err
	}
	if w.measureElements(ns) <= w.o.MaxSingleLineItems {
		w.ch('[')
		for i, n := range ns {
			if i > 0 {
				w.str(", ")
			}
			if err := w.render(n, indent); err != nil {
				return err
			}
		}
		w.ch(']')
		return w.err
	}

	inner := indent + w.o.Indent
	w.str("[\n")
	for i, n := range ns {
		w.pad(inner)
		if err := w.render(n, inner); err != nil {
			return err
		}
		if i+1 < len(ns) {
			w.ch(',')
		}
		w.ch('\n')
	}
	w.pad(indent)
	w.ch(']')
	return w.err
}

// opaqueSize is the layout cost assigned to a custom Marshaler, large
// enough that no container holding one fits on a single line.
const opaqueSize = 1 << 30

func (w *Writer) measureMembers(ms []wmember) int {
	total := 0
	for _, m := range ms {
		total += w.nodeSize(m.n)
	}
	return total
}

func (w *Writer) measureElements(ns []wnode) int {
	total := 0
	for _, n := range ns {
		total += w.nodeSize(n)
	}
	return total
}

func (w *Writer) nodeSize(n wnode) int {
	switch {
	case n.m != nil:
		return opaqueSize
	case n.val != nil:
		return w.valueSize(n.val)
	case n.obj != nil:
		total := 0
		for _, m := range n.obj {
			if m.n.val == nil || w.keepMember(m.key, m.n.val) {
				total += w.nodeSize(m.n)
			}
		}
		return w.objectSize(total)
	default:
		total := 0
		for _, e := range n.arr {
			if e.val == nil || w.keepElement(e.val) {
				total += w.nodeSize(e)
			}
		}
		return w.arraySize(total)
	}
}

// valueSize reports the layout cost of v: 1 for a primitive or an empty
// container, otherwise 1 plus the total cost of the kept children.  A
// container too big for its own single-line limit costs opaqueSize, so
// that no enclosing container folds around a multi-line child.
func (w *Writer) valueSize(v ast.Value) int {
	switch t := v.(type) {
	case *ast.Object:
		total := 0
		for m := range t.All() {
			if w.keepMember(m.Key, m.Value) {
				total += w.valueSize(m.Value)
			}
		}
		return w.objectSize(total)
	case ast.Array:
		total := 0
		for _, e := range t {
			if w.keepElement(e) {
				total += w.valueSize(e)
			}
		}
		return w.arraySize(total)
	}
	return 1
}

func (w *Writer) objectSize(measure int) int {
	if measure == 0 {
		return 1
	} else if measure > w.o.MaxSingleLineProperties {
		return opaqueSize
	}
	return 1 + measure
}

func (w *Writer) arraySize(measure int) int {
	if measure == 0 {
		return 1
	} else if measure > w.o.MaxSingleLineItems {
		return opaqueSize
	}
	return 1 + measure
}

var marshalerType = reflect.TypeFor[Marshaler]()

// marshaler reports whether rv or its address implements Marshaler.
func marshaler(rv reflect.Value) (Marshaler, bool) {
	if rv.Type().Implements(marshalerType) {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, false
		}
		return rv.Interface().(Marshaler), true
	}
	if rv.CanAddr() {
		if pv := rv.Addr(); pv.Type().Implements(marshalerType) {
			return pv.Interface().(Marshaler), true
		}
	}
	return nil, false
}

// marshalNode converts rv to a rendering node, materializing as much of
// its structure as possible.
func (w *Writer) marshalNode(rv reflect.Value) (wnode, error) {
	if !rv.IsValid() {
		return wnode{val: ast.Null}, nil
	}
	if m, ok := marshaler(rv); ok {
		return wnode{m: m}, nil
	}
	if av, ok := rv.Interface().(ast.Value); ok {
		if av == nil {
			av = ast.Null
		}
		return wnode{val: av}, nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return wnode{val: ast.Null}, nil
		}
		return w.marshalNode(rv.Elem())

	case reflect.Bool:
		return wnode{val: ast.Bool(rv.Bool())}, nil

	case reflect.String:
		return wnode{val: ast.String(rv.String())}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return wnode{val: ast.Number(rv.Int())}, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return wnode{val: ast.Number(rv.Uint())}, nil

	case reflect.Float32, reflect.Float64:
		return wnode{val: ast.Number(rv.Float())}, nil

	case reflect.Map:
		return w.mapNode(rv)

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return wnode{val: ast.String(rv.Bytes())}, nil
		}
		return w.sliceNode(rv)

	case reflect.Array:
		return w.sliceNode(rv)

	case reflect.Struct:
		return w.structNode(rv)
	}
	return wnode{}, badTypeError("serialization", rv.Type())
}

// mapNode converts a map to an object node with its keys stringified and
// sorted.  A nil map encodes as an empty object.
func (w *Writer) mapNode(rv reflect.Value) (wnode, error) {
	ms := make([]wmember, 0, rv.Len())
	for iter := rv.MapRange(); iter.Next(); {
		key, err := mapKeyString(iter.Key())
		if err != nil {
			return wnode{}, err
		}
		n, err := w.marshalNode(iter.Value())
		if err != nil {
			return wnode{}, err
		}
		ms = append(ms, wmember{key, n})
	}
	slices.SortFunc(ms, func(a, b wmember) int { return strings.Compare(a.key, b.key) })
	if o, ok := collapseObject(ms); ok {
		return wnode{val: o}, nil
	}
	return wnode{obj: ms}, nil
}

// mapKeyString renders a map key as an object key.
func mapKeyString(rv reflect.Value) (string, error) {
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	}
	return "", &json5.Error{Message: fmt.Sprintf("unsupported map key type %s", rv.Type())}
}

func (w *Writer) sliceNode(rv reflect.Value) (wnode, error) {
	ns := make([]wnode, rv.Len())
	for i := range ns {
		n, err := w.marshalNode(rv.Index(i))
		if err != nil {
			return wnode{}, err
		}
		ns[i] = n
	}
	if a, ok := collapseArray(ns); ok {
		return wnode{val: a}, nil
	}
	return wnode{arr: ns}, nil
}

// structNode converts a struct to its positional aggregate form: the
// exported fields in declaration order as an array, except that a struct
// with a single exported field encodes as that field alone.
func (w *Writer) structNode(rv reflect.Value) (wnode, error) {
	fields := structFields(rv.Type())
	if len(fields) == 1 {
		return w.marshalNode(rv.Field(fields[0]))
	}
	ns := make([]wnode, len(fields))
	for i, fi := range fields {
		n, err := w.marshalNode(rv.Field(fi))
		if err != nil {
			return wnode{}, err
		}
		ns[i] = n
	}
	if a, ok := collapseArray(ns); ok {
		return wnode{val: a}, nil
	}
	return wnode{arr: ns}, nil
}

// collapseObject converts ms to a plain object if all its members were
// materialized.
func collapseObject(ms []wmember) (*ast.Object, bool) {
	o := new(ast.Object)
	for _, m := range ms {
		if m.n.val == nil {
			return nil, false
		}
		o.Add(m.key, m.n.val)
	}
	return o, true
}

// collapseArray converts ns to a plain array if all its elements were
// materialized.
func collapseArray(ns []wnode) (ast.Array, bool) {
	out := make(ast.Array, len(ns))
	for i, n := range ns {
		if n.val == nil {
			return nil, false
		}
		out[i] = n.val
	}
	return out, true
}
