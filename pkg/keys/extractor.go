package keys

import (
	"cmp"
	"reflect"
)

// Extractor computes the key K of a record R and orders keys. It is built
// once from an accessor set; Extract never fails for a value of type R.
type Extractor[R, K any] struct {
	set     *Set
	extract func(R) K
	compare func(a, b K) int
	accepts func(K) bool
}

// Extract returns the key of r. Accessors see r by value and are pure, so
// calling Extract twice on an unchanged record yields equal keys.
func (e *Extractor[R, K]) Extract(r R) K {
	return e.extract(r)
}

// Compare orders two keys: negative if a < b, zero if equal, positive if a > b.
func (e *Extractor[R, K]) Compare(a, b K) int {
	return e.compare(a, b)
}

// Accepts reports whether k has the shape of a key this extractor produces.
// Only dynamic extractors can be handed a malformed key.
func (e *Extractor[R, K]) Accepts(k K) bool {
	return e.accepts == nil || e.accepts(k)
}

func (e *Extractor[R, K]) Set() *Set {
	return e.set
}

func (e *Extractor[R, K]) ModelType() reflect.Type {
	return e.set.ModelType()
}

// KeyType is the Go type of the keys. For a dynamic extractor it is the
// value type of its only selector, or Tuple.
func (e *Extractor[R, K]) KeyType() reflect.Type {
	if t := reflect.TypeFor[K](); t.Kind() != reflect.Interface {
		return t
	}
	return e.set.KeyType()
}

// One keys records by a single accessor; the key is the accessor's value.
func One[R any, V cmp.Ordered](a Accessor[R, V]) (*Extractor[R, V], error) {
	set, err := NewSet(a)
	if err != nil {
		return nil, err
	}
	return &Extractor[R, V]{
		set:     set,
		extract: a.Get,
		compare: cmp.Compare[V],
	}, nil
}

// Two keys records by two accessors, in order.
func Two[R any, A, B cmp.Ordered](a Accessor[R, A], b Accessor[R, B]) (*Extractor[R, Pair[A, B]], error) {
	set, err := NewSet(a, b)
	if err != nil {
		return nil, err
	}
	return &Extractor[R, Pair[A, B]]{
		set: set,
		extract: func(r R) Pair[A, B] {
			return Pair[A, B]{First: a.Get(r), Second: b.Get(r)}
		},
		compare: func(x, y Pair[A, B]) int { return x.Compare(y) },
	}, nil
}

// Three keys records by three accessors, in order.
func Three[R any, A, B, C cmp.Ordered](a Accessor[R, A], b Accessor[R, B], c Accessor[R, C]) (*Extractor[R, Triple[A, B, C]], error) {
	set, err := NewSet(a, b, c)
	if err != nil {
		return nil, err
	}
	return &Extractor[R, Triple[A, B, C]]{
		set: set,
		extract: func(r R) Triple[A, B, C] {
			return Triple[A, B, C]{First: a.Get(r), Second: b.Get(r), Third: c.Get(r)}
		},
		compare: func(x, y Triple[A, B, C]) int { return x.Compare(y) },
	}, nil
}

// Many keys records by any number of selectors whose types are only known
// at run time, e.g. read from configuration. With one selector the key is
// that selector's value; with more it is a Tuple.
func Many[R any](sels ...Selector) (*Extractor[R, any], error) {
	set, err := NewSet(sels...)
	if err != nil {
		return nil, err
	}
	if want := reflect.TypeFor[R](); set.ModelType() != want {
		return nil, configErr(sels[0].Name(), 0, ErrModelMismatch, "reads %s, want %s", set.ModelType(), want)
	}
	if err := set.requireOrdered(); err != nil {
		return nil, err
	}

	sels = set.Selectors()
	var extract func(R) any
	if len(sels) == 1 {
		only := sels[0]
		extract = func(r R) any {
			return only.valueOf(r)
		}
	} else {
		extract = func(r R) any {
			t := make(Tuple, len(sels))
			for i, s := range sels {
				t[i] = s.valueOf(r)
			}
			return t
		}
	}

	return &Extractor[R, any]{
		set:     set,
		extract: extract,
		compare: compareKeys,
		accepts: set.Conforms,
	}, nil
}
