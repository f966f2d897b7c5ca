package keys

import (
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	firstName = MustField[person, string]("FirstName")
	lastName  = MustField[person, string]("LastName")
	age       = MustField[person, int]("Age")
)

func TestOneKeyIsPlainValue(t *testing.T) {
	ex, err := One(age)
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeFor[int](), ex.KeyType())
	assert.Equal(t, reflect.TypeFor[person](), ex.ModelType())
	assert.Equal(t, 166, ex.Extract(alice))
	assert.Equal(t, ex.Extract(alice), ex.Extract(alice))
	assert.True(t, ex.Accepts(-1))
}

func TestTwoKeyIsOrderedPair(t *testing.T) {
	ex, err := Two(firstName, lastName)
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeFor[Pair[string, string]](), ex.KeyType())
	k := ex.Extract(alice)
	assert.Equal(t, Pair[string, string]{First: "Alice", Second: "Hargreaves"}, k)
	assert.Equal(t, "(Alice, Hargreaves)", k.String())
}

func TestThreeKey(t *testing.T) {
	ex, err := Three(lastName, firstName, age)
	require.NoError(t, err)
	assert.Equal(t, Triple[string, string, int]{"Hargreaves", "Alice", 166}, ex.Extract(alice))
}

func TestPairOrderingIsLexicographic(t *testing.T) {
	ex := Must(Two(lastName, age))

	a := ex.Extract(person{LastName: "Liddell", Age: 169})
	b := ex.Extract(person{LastName: "Liddell", Age: 163})
	c := ex.Extract(person{LastName: "Hargreaves", Age: 200})

	assert.Positive(t, ex.Compare(a, b))
	assert.Negative(t, ex.Compare(c, b))
	assert.Zero(t, ex.Compare(a, ex.Extract(person{FirstName: "Lorina", LastName: "Liddell", Age: 169})))
}

func TestManySingleSelectorKeepsValueType(t *testing.T) {
	ex, err := Many[person](MustField[person, any]("Age"))
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeFor[int](), ex.KeyType())
	assert.Equal(t, 166, ex.Extract(alice))
	assert.True(t, ex.Accepts(166))
	assert.False(t, ex.Accepts("166"))
}

func TestManyTupleFollowsSelectorOrder(t *testing.T) {
	set := Must(ParseSet[person]("LastName", "FirstName", "FullName()"))
	ex, err := Many[person](set.Selectors()...)
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeFor[Tuple](), ex.KeyType())
	k := ex.Extract(alice)
	assert.Equal(t, Tuple{"Hargreaves", "Alice", "Alice Hargreaves"}, k)
	assert.True(t, ex.Accepts(k))

	for i, sel := range set.Selectors() {
		assert.Equal(t, sel.valueOf(alice), k.(Tuple)[i])
	}
}

func TestManyRejectsForeignRecord(t *testing.T) {
	_, err := Many[pet](MustField[person, any]("Age"))
	assert.ErrorIs(t, err, ErrModelMismatch)

	_, err = Many[person](MustField[person, any]("Age"), MustField[pet, any]("Age"))
	assert.ErrorIs(t, err, ErrModelMismatch)
}

func TestManyRejectsUnorderedValues(t *testing.T) {
	_, err := Many[person](MustField[person, any]("Home"))
	require.ErrorIs(t, err, ErrUnorderedKey)
	assert.Contains(t, err.Error(), "keys.address")
}

func TestTupleCompare(t *testing.T) {
	early := time.Date(1852, 5, 4, 0, 0, 0, 0, time.UTC)
	late := early.AddDate(82, 0, 0)

	cases := []struct {
		a, b Tuple
		want int
	}{
		{Tuple{"Alice", 1}, Tuple{"Alice", 1}, 0},
		{Tuple{"Alice", 1}, Tuple{"Alice", 2}, -1},
		{Tuple{"Bob", 1}, Tuple{"Alice", 2}, 1},
		{Tuple{"Alice"}, Tuple{"Alice", 0}, -1},
		{Tuple{uint8(3), 1.5}, Tuple{uint8(3), 1.25}, 1},
		{Tuple{false, "x"}, Tuple{true, "a"}, -1},
		{Tuple{early}, Tuple{late}, -1},
		{Tuple{nil}, Tuple{0}, -1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.a.Compare(tc.b), "%v vs %v", tc.a, tc.b)
		assert.Equal(t, -tc.want, tc.b.Compare(tc.a), "%v vs %v", tc.b, tc.a)
		assert.Equal(t, tc.want == 0, tc.a.Equal(tc.b))
	}
}

func TestManyKeysSortLikeTheirComponents(t *testing.T) {
	ex := Must(Many[person](MustField[person, any]("LastName"), MustField[person, any]("Age")))
	people := []person{
		{LastName: "Liddell", Age: 169},
		{LastName: "Dodgson", Age: 194},
		{LastName: "Liddell", Age: 163},
		{LastName: "Hargreaves", Age: 166},
	}
	ks := make([]any, len(people))
	for i, p := range people {
		ks[i] = ex.Extract(p)
	}
	sort.Slice(ks, func(i, j int) bool { return ex.Compare(ks[i], ks[j]) < 0 })

	assert.Equal(t, []any{
		Tuple{"Dodgson", 194},
		Tuple{"Hargreaves", 166},
		Tuple{"Liddell", 163},
		Tuple{"Liddell", 169},
	}, ks)
}
