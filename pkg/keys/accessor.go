package keys

import (
	"reflect"
	"strings"
)

// Kind tells the two accessor variants apart.
type Kind int

const (
	FieldSelector Kind = iota + 1
	PureFunc
)

func (k Kind) String() string {
	switch k {
	case FieldSelector:
		return "field"
	case PureFunc:
		return "func"
	default:
		return "unknown"
	}
}

// Selector is the type-erased view of an Accessor. It is what an accessor
// set is made of, so sets can mix value types freely.
type Selector interface {
	Name() string
	Kind() Kind
	// RecordType is the record type the accessor reads from.
	RecordType() reflect.Type
	// ValueType is the plain value type the accessor yields.
	ValueType() reflect.Type

	valueOf(rec any) any
	check() error
}

// Accessor reads a single value of type V out of a record of type R.
// Records are passed by value: an accessor never sees the caller's copy.
//
// Accessors are built with Field, Method or Func and cannot be implemented
// outside this package.
type Accessor[R, V any] interface {
	Selector
	Get(r R) V
}

type field[R, V any] struct {
	path  string
	index []int
	typ   reflect.Type
}

// Field selects the field at path on R. A path is a field name, or a
// dot-separated chain of names for nested structs ("Address.City").
// The field must be exported, must not be reached through a pointer, and
// its type must be V (or implement V when V is an interface type).
func Field[R, V any](path string) (Accessor[R, V], error) {
	rt := reflect.TypeFor[R]()
	index, typ, err := resolveField(rt, path)
	if err != nil {
		return nil, err
	}
	if !fits(typ, reflect.TypeFor[V]()) {
		return nil, configErr(path, -1, ErrNotInvocable, "field has type %s, want %s", typ, reflect.TypeFor[V]())
	}
	return &field[R, V]{path: path, index: index, typ: typ}, nil
}

// MustField is like Field but panics on error. Intended for package-level
// accessor declarations.
func MustField[R, V any](path string) Accessor[R, V] {
	return Must(Field[R, V](path))
}

func (f *field[R, V]) Name() string             { return f.path }
func (f *field[R, V]) Kind() Kind               { return FieldSelector }
func (f *field[R, V]) RecordType() reflect.Type { return reflect.TypeFor[R]() }
func (f *field[R, V]) ValueType() reflect.Type  { return f.typ }
func (f *field[R, V]) check() error             { return nil }

func (f *field[R, V]) Get(r R) V {
	return reflect.ValueOf(r).FieldByIndex(f.index).Interface().(V)
}

func (f *field[R, V]) valueOf(rec any) any {
	return reflect.ValueOf(rec).FieldByIndex(f.index).Interface()
}

func resolveField(rt reflect.Type, path string) ([]int, reflect.Type, error) {
	if rt.Kind() != reflect.Struct {
		return nil, nil, configErr(path, -1, ErrNotInvocable, "record type %s is not a struct", rt)
	}

	var index []int
	cur := rt
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, nil, configErr(path, -1, ErrNotInvocable, "empty path segment")
		}
		switch cur.Kind() {
		case reflect.Struct:
		case reflect.Pointer:
			return nil, nil, configErr(path, -1, ErrNotInvocable, "path goes through pointer %s", cur)
		default:
			return nil, nil, configErr(path, -1, ErrNotInvocable, "%s is not a struct", cur)
		}

		sf, ok := cur.FieldByName(part)
		if !ok {
			return nil, nil, configErr(path, -1, ErrNotInvocable, "no field %s in %s", part, cur)
		}
		if !sf.IsExported() {
			return nil, nil, configErr(path, -1, ErrNotInvocable, "field %s is unexported", part)
		}
		// promoted fields must not hide an embedded pointer
		t := cur
		for _, i := range sf.Index[:len(sf.Index)-1] {
			t = t.Field(i).Type
			if t.Kind() == reflect.Pointer {
				return nil, nil, configErr(path, -1, ErrNotInvocable, "field %s is promoted through pointer %s", part, t)
			}
		}

		index = append(index, sf.Index...)
		cur = sf.Type
	}
	return index, cur, nil
}

type function[R, V any] struct {
	name string
	fn   func(R) V
	out  reflect.Type
}

// Func wraps a pure function of the record. fn must not retain or modify r.
// A nil fn is reported when the accessor joins a set.
func Func[R, V any](name string, fn func(R) V) Accessor[R, V] {
	if name == "" {
		name = "func"
	}
	return &function[R, V]{name: name, fn: fn, out: reflect.TypeFor[V]()}
}

// Method turns a value-receiver method of R with no arguments and one
// result into an accessor. Methods with pointer receivers are refused: they
// are free to mutate the record. So are methods promoted through an embedded
// pointer or interface, which may be nil.
func Method[R, V any](name string) (Accessor[R, V], error) {
	label := name + "()"
	rt := reflect.TypeFor[R]()
	if rt.Kind() == reflect.Interface || rt.Kind() == reflect.Pointer {
		return nil, configErr(label, -1, ErrNotInvocable, "record type %s is not a value type", rt)
	}

	m, ok := rt.MethodByName(name)
	if !ok {
		if _, ok := reflect.PointerTo(rt).MethodByName(name); ok {
			return nil, configErr(label, -1, ErrNotInvocable, "method has a pointer receiver")
		}
		return nil, configErr(label, -1, ErrNotInvocable, "no method %s on %s", name, rt)
	}
	if via := promotedThroughPointer(rt, name); via != nil {
		return nil, configErr(label, -1, ErrNotInvocable, "method is promoted through %s", via)
	}
	mt := m.Type
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.IsVariadic() {
		return nil, configErr(label, -1, ErrNotInvocable, "method signature %s, want func() V", mt)
	}
	out := mt.Out(0)
	if !fits(out, reflect.TypeFor[V]()) {
		return nil, configErr(label, -1, ErrNotInvocable, "method returns %s, want %s", out, reflect.TypeFor[V]())
	}

	call := m.Func
	fn := func(r R) V {
		return call.Call([]reflect.Value{reflect.ValueOf(r)})[0].Interface().(V)
	}
	return &function[R, V]{name: label, fn: fn, out: out}, nil
}

// promotedThroughPointer returns the embedded pointer or interface type that
// supplies method name to rt, or nil when the method is reached without one.
// A method R declares itself that shadows such a field is still refused.
func promotedThroughPointer(rt reflect.Type, name string) reflect.Type {
	level := []reflect.Type{rt}
	seen := make(map[reflect.Type]bool)
	for len(level) > 0 {
		var next []reflect.Type
		byValue := false
		for _, t := range level {
			if t.Kind() != reflect.Struct || seen[t] {
				continue
			}
			seen[t] = true
			for i := 0; i < t.NumField(); i++ {
				f := t.Field(i)
				if !f.Anonymous {
					continue
				}
				switch f.Type.Kind() {
				case reflect.Pointer, reflect.Interface:
					if _, ok := f.Type.MethodByName(name); ok {
						return f.Type
					}
				default:
					if _, ok := f.Type.MethodByName(name); ok {
						byValue = true
					}
					next = append(next, f.Type)
				}
			}
		}
		if byValue {
			return nil
		}
		level = next
	}
	return nil
}

func (f *function[R, V]) Name() string             { return f.name }
func (f *function[R, V]) Kind() Kind               { return PureFunc }
func (f *function[R, V]) RecordType() reflect.Type { return reflect.TypeFor[R]() }
func (f *function[R, V]) ValueType() reflect.Type  { return f.out }
func (f *function[R, V]) Get(r R) V                { return f.fn(r) }
func (f *function[R, V]) valueOf(rec any) any      { return f.fn(rec.(R)) }

func (f *function[R, V]) check() error {
	if f.fn == nil {
		return configErr(f.name, -1, ErrNotInvocable, "nil function")
	}
	return nil
}

// fits reports whether a value of type have can be returned as a want.
func fits(have, want reflect.Type) bool {
	if want.Kind() == reflect.Interface {
		return have.Implements(want)
	}
	return have == want
}

// Must panics if err is non-nil and returns v otherwise.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
