package table

import (
	"fmt"

	"rowindex/pkg/common"
	"rowindex/pkg/core"

	"github.com/rs/zerolog"
)

// attached is the part of an index a table needs, independent of its key type.
type attached[R any] interface {
	Name() string
	Insert(r R, row common.RowID) error
	Conflicts(r R) bool
	Len() int
}

// Table is an append-only record store. A row id is the position of the
// row, so ids are dense and never reused.
type Table[R any] struct {
	name    string
	rows    []R
	indexes []attached[R]
	log     zerolog.Logger
}

func New[R any](name string, logger zerolog.Logger) *Table[R] {
	return &Table[R]{
		name: name,
		log:  logger.With().Str("table", name).Logger(),
	}
}

func (t *Table[R]) Name() string { return t.name }

func (t *Table[R]) Len() int { return len(t.rows) }

func (t *Table[R]) Get(row common.RowID) (R, bool) {
	var zero R
	if row < 0 || int(row) >= len(t.rows) {
		return zero, false
	}
	return t.rows[row], true
}

// Insert appends r and adds it to every attached index. Either all indexes
// take the row or none does.
func (t *Table[R]) Insert(r R) (common.RowID, error) {
	for _, ix := range t.indexes {
		if ix.Conflicts(r) {
			return -1, fmt.Errorf("table %s: index %s: %w", t.name, ix.Name(), core.ErrDuplicateKey)
		}
	}

	row := common.RowID(len(t.rows))
	t.rows = append(t.rows, r)
	for _, ix := range t.indexes {
		if err := ix.Insert(r, row); err != nil {
			// unreachable after the conflict check
			return -1, fmt.Errorf("table %s: index %s: %w", t.name, ix.Name(), err)
		}
	}
	return row, nil
}

// Scan walks rows in insertion order until fn returns false.
func (t *Table[R]) Scan(fn func(row common.RowID, r R) bool) {
	for i, r := range t.rows {
		if !fn(common.RowID(i), r) {
			return
		}
	}
}

// Attach adds ix to t and back-fills it with the rows already stored. A
// duplicate during back-fill leaves t unchanged and ix empty.
func Attach[R, K any](t *Table[R], ix *core.Index[R, K]) error {
	for _, existing := range t.indexes {
		if existing.Name() == ix.Name() {
			return fmt.Errorf("table %s: index %s already attached", t.name, ix.Name())
		}
	}
	for i, r := range t.rows {
		if err := ix.Insert(r, common.RowID(i)); err != nil {
			ix.Clear()
			return fmt.Errorf("table %s: back-fill %s: %w", t.name, ix.Name(), err)
		}
	}
	t.indexes = append(t.indexes, ix)
	t.log.Info().Str("index", ix.Name()).Int("rows", len(t.rows)).Int("keys", ix.Len()).Msg("index attached")
	return nil
}

// Find returns the row stored under key in ix.
func Find[R, K any](t *Table[R], ix core.Reader[K], key K) (R, common.RowID, bool) {
	var zero R
	row, ok := ix.Lookup(key)
	if !ok {
		return zero, -1, false
	}
	r, ok := t.Get(row)
	if !ok {
		return zero, -1, false
	}
	return r, row, true
}

// Indexes lists the names of attached indexes in attach order.
func (t *Table[R]) Indexes() []string {
	names := make([]string, len(t.indexes))
	for i, ix := range t.indexes {
		names[i] = ix.Name()
	}
	return names
}
