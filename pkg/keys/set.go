package keys

import (
	"errors"
	"reflect"
	"strings"
	"time"
)

// Set is an ordered, non-empty list of selectors over one record type.
type Set struct {
	selectors []Selector
	model     reflect.Type
}

// NewSet validates sels and fixes their order. The record type of the first
// selector is the model every other selector has to agree with.
func NewSet(sels ...Selector) (*Set, error) {
	if len(sels) == 0 {
		return nil, &ConfigError{Position: -1, Err: ErrEmptySet}
	}

	var model reflect.Type
	for i, s := range sels {
		if s == nil {
			return nil, configErr("", i, ErrNotInvocable, "nil accessor")
		}
		if err := s.check(); err != nil {
			var ce *ConfigError
			if errors.As(err, &ce) {
				c := *ce
				c.Position = i
				return nil, &c
			}
			return nil, err
		}
		if i == 0 {
			model = s.RecordType()
			continue
		}
		if s.RecordType() != model {
			return nil, configErr(s.Name(), i, ErrModelMismatch, "reads %s, want %s", s.RecordType(), model)
		}
	}

	return &Set{
		selectors: append([]Selector(nil), sels...),
		model:     model,
	}, nil
}

func (s *Set) Len() int {
	return len(s.selectors)
}

// ModelType is the record type shared by every selector.
func (s *Set) ModelType() reflect.Type {
	return s.model
}

// KeyType is the value type of the only selector, or the Tuple type when
// the set has more than one.
func (s *Set) KeyType() reflect.Type {
	if len(s.selectors) == 1 {
		return s.selectors[0].ValueType()
	}
	return tupleType
}

// KeyTypes lists the value type of every position.
func (s *Set) KeyTypes() []reflect.Type {
	out := make([]reflect.Type, len(s.selectors))
	for i, sel := range s.selectors {
		out[i] = sel.ValueType()
	}
	return out
}

func (s *Set) Selectors() []Selector {
	return append([]Selector(nil), s.selectors...)
}

func (s *Set) Names() []string {
	out := make([]string, len(s.selectors))
	for i, sel := range s.selectors {
		out[i] = sel.Name()
	}
	return out
}

// KeyTypeName renders the key type, e.g. "int" or "(string, string)".
func (s *Set) KeyTypeName() string {
	if len(s.selectors) == 1 {
		return s.selectors[0].ValueType().String()
	}
	parts := make([]string, len(s.selectors))
	for i, sel := range s.selectors {
		parts[i] = sel.ValueType().String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (s *Set) String() string {
	return s.model.Name() + "(" + strings.Join(s.Names(), ", ") + ")"
}

// Conforms reports whether k has the shape of a key derived from s: the
// plain value for one selector, a Tuple of matching types otherwise.
func (s *Set) Conforms(k any) bool {
	if len(s.selectors) == 1 {
		return k != nil && reflect.TypeOf(k) == s.selectors[0].ValueType()
	}
	t, ok := k.(Tuple)
	if !ok || len(t) != len(s.selectors) {
		return false
	}
	for i, sel := range s.selectors {
		if t[i] == nil || reflect.TypeOf(t[i]) != sel.ValueType() {
			return false
		}
	}
	return true
}

func (s *Set) requireOrdered() error {
	for i, sel := range s.selectors {
		if !orderable(sel.ValueType()) {
			return configErr(sel.Name(), i, ErrUnorderedKey, "%s", sel.ValueType())
		}
	}
	return nil
}

var (
	tupleType = reflect.TypeFor[Tuple]()
	timeType  = reflect.TypeFor[time.Time]()
)

func orderable(t reflect.Type) bool {
	if t == timeType {
		return true
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.String, reflect.Bool:
		return true
	}
	return false
}
