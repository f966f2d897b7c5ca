package core

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"rowindex/pkg/common"
	"rowindex/pkg/keys"
	"rowindex/pkg/monitor"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	firstName = keys.MustField[common.Person, string]("FirstName")
	lastName  = keys.MustField[common.Person, string]("LastName")
	age       = keys.MustField[common.Person, int]("Age")

	alice = common.Person{FirstName: "Alice", LastName: "Hargreaves", Age: 166}
)

func byAge(t *testing.T, opts Options) *Index[common.Person, int] {
	t.Helper()
	ex, err := keys.One(age)
	require.NoError(t, err)
	return New("by_age", ex, opts)
}

func TestInsertThenLookupByAge(t *testing.T) {
	ix := byAge(t, Options{})
	require.NoError(t, ix.Insert(alice, 7))

	row, ok := ix.Lookup(166)
	require.True(t, ok)
	assert.Equal(t, common.RowID(7), row)

	row, ok = ix.Find(common.Person{Age: 166})
	require.True(t, ok)
	assert.Equal(t, common.RowID(7), row)
}

func TestLookupMiss(t *testing.T) {
	ix := byAge(t, Options{})
	require.NoError(t, ix.Insert(alice, 7))

	row, ok := ix.Lookup(165)
	assert.False(t, ok)
	assert.Zero(t, row)
}

func TestOverwriteIsLastWriteWins(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ix := byAge(t, Options{Logger: &logger})

	require.NoError(t, ix.Insert(alice, 1))
	require.NoError(t, ix.Insert(common.Person{FirstName: "Alice", LastName: "Liddell", Age: 166}, 2))

	row, ok := ix.Lookup(166)
	require.True(t, ok)
	assert.Equal(t, common.RowID(2), row)
	assert.Equal(t, 1, ix.Len())
	assert.Contains(t, buf.String(), "key overwritten")
	assert.Contains(t, buf.String(), `"index":"by_age"`)

	s := ix.Stats().Snapshot()
	assert.Equal(t, uint64(2), s.Inserts)
	assert.Equal(t, uint64(1), s.Overwrites)
}

func TestRejectPolicyKeepsFirstRow(t *testing.T) {
	ix := byAge(t, Options{Policy: Reject})
	require.NoError(t, ix.Insert(alice, 1))

	dup := common.Person{FirstName: "Alice", LastName: "Liddell", Age: 166}
	assert.True(t, ix.Conflicts(dup))
	err := ix.Insert(dup, 2)
	require.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "held by row 1")

	row, _ := ix.Lookup(166)
	assert.Equal(t, common.RowID(1), row)
	assert.Equal(t, uint64(1), ix.Stats().Snapshot().Rejects)
	assert.False(t, ix.Conflicts(common.Person{Age: 1}))
}

func TestCompositeKeyByName(t *testing.T) {
	ex, err := keys.Two(firstName, lastName)
	require.NoError(t, err)
	ix := New("by_name", ex, Options{})

	key := ix.Key(alice)
	assert.Equal(t, keys.Pair[string, string]{First: "Alice", Second: "Hargreaves"}, key)
	assert.Equal(t, key, ix.Key(alice))

	require.NoError(t, ix.Insert(alice, 3))
	row, ok := ix.Lookup(keys.Pair[string, string]{First: "Alice", Second: "Hargreaves"})
	require.True(t, ok)
	assert.Equal(t, common.RowID(3), row)

	_, ok = ix.Lookup(keys.Pair[string, string]{First: "Alice", Second: "Liddell"})
	assert.False(t, ok)
}

func TestAscendFollowsKeyOrder(t *testing.T) {
	ex, err := keys.Two(lastName, firstName)
	require.NoError(t, err)
	ix := New("by_last_first", ex, Options{Degree: 2})

	for i, p := range common.SamplePeople() {
		require.NoError(t, ix.Insert(p, common.RowID(i)))
	}

	var got []string
	ix.Ascend(func(k keys.Pair[string, string], _ common.RowID) bool {
		got = append(got, k.String())
		return true
	})
	assert.Equal(t, []string{
		"(Dodgson, Charles)",
		"(Hargreaves, Alice)",
		"(Hargreaves, Reginald)",
		"(Liddell, Alice)",
		"(Liddell, Edith)",
		"(Liddell, Lorina)",
	}, got)

	var liddells []common.RowID
	ix.AscendRange(
		keys.Pair[string, string]{First: "Liddell"},
		keys.Pair[string, string]{First: "Liddell", Second: "F"},
		func(_ keys.Pair[string, string], row common.RowID) bool {
			liddells = append(liddells, row)
			return true
		})
	assert.Equal(t, []common.RowID{4, 2}, liddells)
}

func TestDynamicIndexRejectsMalformedKeys(t *testing.T) {
	set, err := keys.ParseSet[common.Person]("LastName", "Age")
	require.NoError(t, err)
	ex, err := keys.Many[common.Person](set.Selectors()...)
	require.NoError(t, err)
	ix := New("dyn", ex, Options{})

	require.NoError(t, ix.Insert(alice, 9))
	row, ok := ix.Lookup(keys.Tuple{"Hargreaves", 166})
	require.True(t, ok)
	assert.Equal(t, common.RowID(9), row)

	_, ok = ix.Lookup(keys.Tuple{"Hargreaves", int64(166)})
	assert.False(t, ok)
	_, ok = ix.Lookup("Hargreaves")
	assert.False(t, ok)
	assert.False(t, ix.Delete(keys.Tuple{"Hargreaves"}))
	assert.True(t, ix.Delete(keys.Tuple{"Hargreaves", 166}))
	assert.Zero(t, ix.Len())
}

func TestDeleteAndClear(t *testing.T) {
	ix := byAge(t, Options{})
	require.NoError(t, ix.Insert(alice, 1))
	require.NoError(t, ix.Insert(common.Person{Age: 10}, 2))

	assert.True(t, ix.Delete(166))
	assert.False(t, ix.Delete(166))
	_, ok := ix.Lookup(166)
	assert.False(t, ok)
	assert.Equal(t, uint64(1), ix.Stats().Snapshot().Deletes)

	ix.Clear()
	assert.Zero(t, ix.Len())
}

func TestSharedStats(t *testing.T) {
	stats := monitor.NewIndexStats()
	ix := byAge(t, Options{Stats: stats})
	require.NoError(t, ix.Insert(alice, 1))
	ix.Lookup(166)
	ix.Lookup(1)

	assert.Same(t, stats, ix.Stats())
	assert.InDelta(t, 0.5, stats.HitRatio(), 1e-9)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("reject")
	require.NoError(t, err)
	assert.Equal(t, Reject, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, Overwrite, p)

	_, err = ParsePolicy("merge")
	assert.Error(t, err)
	assert.Equal(t, "Policy(9)", Policy(9).String())
}

func TestLockedConcurrentAccess(t *testing.T) {
	l := NewLocked(byAge(t, Options{}))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				p := common.Person{FirstName: fmt.Sprint(w), Age: w*1000 + i}
				if err := l.Insert(p, common.RowID(p.Age)); err != nil {
					t.Error(err)
					return
				}
				l.Lookup(p.Age)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 1000, l.Len())
	row, ok := l.Find(common.Person{Age: 3249})
	require.True(t, ok)
	assert.Equal(t, common.RowID(3249), row)
	assert.True(t, l.Delete(3249))
	assert.Equal(t, "by_age", l.Name())

	n := 0
	l.Ascend(func(int, common.RowID) bool { n++; return true })
	assert.Equal(t, 999, n)
}
