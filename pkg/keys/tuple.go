package keys

import (
	"cmp"
	"fmt"
	"strings"
)

// Pair is the key of a two-accessor extractor.
type Pair[A, B cmp.Ordered] struct {
	First  A
	Second B
}

// Compare orders pairs by First, then Second.
func (p Pair[A, B]) Compare(o Pair[A, B]) int {
	if c := cmp.Compare(p.First, o.First); c != 0 {
		return c
	}
	return cmp.Compare(p.Second, o.Second)
}

func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}

// Triple is the key of a three-accessor extractor.
type Triple[A, B, C cmp.Ordered] struct {
	First  A
	Second B
	Third  C
}

func (t Triple[A, B, C]) Compare(o Triple[A, B, C]) int {
	if c := cmp.Compare(t.First, o.First); c != 0 {
		return c
	}
	if c := cmp.Compare(t.Second, o.Second); c != 0 {
		return c
	}
	return cmp.Compare(t.Third, o.Third)
}

func (t Triple[A, B, C]) String() string {
	return fmt.Sprintf("(%v, %v, %v)", t.First, t.Second, t.Third)
}

// Tuple is the key of a dynamically built extractor with more than one
// selector. Element i is the value of selector i.
type Tuple []any

// Compare orders tuples position by position. A tuple that is a prefix of
// the other sorts first.
func (t Tuple) Compare(o Tuple) int {
	for i := 0; i < len(t) && i < len(o); i++ {
		if c := compareValues(t[i], o[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(t), len(o))
}

func (t Tuple) Equal(o Tuple) bool {
	return len(t) == len(o) && t.Compare(o) == 0
}

func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = fmt.Sprint(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
