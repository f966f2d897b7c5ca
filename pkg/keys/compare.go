package keys

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"time"
)

type valueClass int

const (
	classNil valueClass = iota
	classBool
	classInt
	classUint
	classFloat
	classString
	classTime
	classOther
)

func classify(v any) (valueClass, reflect.Value) {
	if v == nil {
		return classNil, reflect.Value{}
	}
	if _, ok := v.(time.Time); ok {
		return classTime, reflect.Value{}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return classBool, rv
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return classInt, rv
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return classUint, rv
	case reflect.Float32, reflect.Float64:
		return classFloat, rv
	case reflect.String:
		return classString, rv
	}
	return classOther, rv
}

// compareValues returns -1, 0 or 1. Values of different classes order by
// class so the result is a total order even for mixed input.
func compareValues(a, b any) int {
	ac, av := classify(a)
	bc, bv := classify(b)
	if ac != bc {
		return cmp.Compare(ac, bc)
	}

	switch ac {
	case classNil:
		return 0
	case classBool:
		x, y := av.Bool(), bv.Bool()
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case classInt:
		return cmp.Compare(av.Int(), bv.Int())
	case classUint:
		return cmp.Compare(av.Uint(), bv.Uint())
	case classFloat:
		return cmp.Compare(av.Float(), bv.Float())
	case classString:
		return strings.Compare(av.String(), bv.String())
	case classTime:
		return a.(time.Time).Compare(b.(time.Time))
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// compareKeys compares keys built by Many: a Tuple or a single value.
func compareKeys(a, b any) int {
	at, aok := a.(Tuple)
	bt, bok := b.(Tuple)
	if aok && bok {
		return at.Compare(bt)
	}
	return compareValues(a, b)
}
