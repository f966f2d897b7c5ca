package keys

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Parse builds a selector on R from text: a field path ("Age",
// "Address.City") or a method call ("FullName()").
func Parse[R any](text string) (Selector, error) {
	text = strings.TrimSpace(text)
	if name, ok := strings.CutSuffix(text, "()"); ok {
		return Method[R, any](name)
	}
	return Field[R, any](text)
}

// ParseSet parses every text with Parse and forms a set from the result.
func ParseSet[R any](texts ...string) (*Set, error) {
	sels := make([]Selector, 0, len(texts))
	for i, text := range texts {
		sel, err := Parse[R](text)
		if err != nil {
			if ce, ok := err.(*ConfigError); ok {
				ce.Position = i
			}
			return nil, err
		}
		sels = append(sels, sel)
	}
	return NewSet(sels...)
}

// ParseKey converts one text per selector into a key of the shape Many
// produces for this set.
func (s *Set) ParseKey(args []string) (any, error) {
	if len(args) != len(s.selectors) {
		return nil, fmt.Errorf("keys: %s takes %d key values, got %d", s, len(s.selectors), len(args))
	}
	t := make(Tuple, len(args))
	for i, sel := range s.selectors {
		v, err := parseValue(sel.ValueType(), args[i])
		if err != nil {
			return nil, fmt.Errorf("keys: %s: %w", sel.Name(), err)
		}
		t[i] = v
	}
	if len(t) == 1 {
		return t[0], nil
	}
	return t, nil
}

func parseValue(t reflect.Type, text string) (any, error) {
	if t == timeType {
		return time.Parse(time.RFC3339, text)
	}

	var v reflect.Value
	switch t.Kind() {
	case reflect.String:
		v = reflect.ValueOf(text)
	case reflect.Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, err
		}
		v = reflect.ValueOf(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		v = reflect.ValueOf(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(text, 10, t.Bits())
		if err != nil {
			return nil, err
		}
		v = reflect.ValueOf(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, t.Bits())
		if err != nil {
			return nil, err
		}
		v = reflect.ValueOf(f)
	default:
		return nil, fmt.Errorf("cannot parse %s", t)
	}
	return v.Convert(t).Interface(), nil
}
