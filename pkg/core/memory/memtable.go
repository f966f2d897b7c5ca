package memory

import (
	"rowindex/pkg/common"

	"github.com/google/btree"
)

type Item[K any] struct {
	Key K
	Row common.RowID
}

// MemTable is an ordered map from K to a row id. It is not safe for
// concurrent use; callers lock around it.
type MemTable[K any] struct {
	tree *btree.BTreeG[Item[K]]
}

// NewMemTable orders keys with cmp, which must be a total order.
func NewMemTable[K any](degree int, cmp func(a, b K) int) *MemTable[K] {
	less := func(a, b Item[K]) bool {
		return cmp(a.Key, b.Key) < 0
	}
	return &MemTable[K]{
		tree: btree.NewG[Item[K]](degree, less),
	}
}

// Put stores key -> row, replacing any earlier row for the same key. The
// replaced row is returned with replaced=true.
func (mt *MemTable[K]) Put(key K, row common.RowID) (prev common.RowID, replaced bool) {
	old, replaced := mt.tree.ReplaceOrInsert(Item[K]{Key: key, Row: row})
	return old.Row, replaced
}

func (mt *MemTable[K]) Get(key K) (common.RowID, bool) {
	item, ok := mt.tree.Get(Item[K]{Key: key})
	if !ok {
		return 0, false
	}
	return item.Row, true
}

func (mt *MemTable[K]) Has(key K) bool {
	return mt.tree.Has(Item[K]{Key: key})
}

func (mt *MemTable[K]) Delete(key K) bool {
	_, ok := mt.tree.Delete(Item[K]{Key: key})
	return ok
}

func (mt *MemTable[K]) Count() int {
	return mt.tree.Len()
}

// Iterator walks all items in key order until fn returns false.
func (mt *MemTable[K]) Iterator(fn func(key K, row common.RowID) bool) {
	mt.tree.Ascend(func(item Item[K]) bool {
		return fn(item.Key, item.Row)
	})
}

// Scan walks items with from <= key < to in key order.
func (mt *MemTable[K]) Scan(from, to K, fn func(key K, row common.RowID) bool) {
	mt.tree.AscendRange(Item[K]{Key: from}, Item[K]{Key: to}, func(item Item[K]) bool {
		return fn(item.Key, item.Row)
	})
}

func (mt *MemTable[K]) Clear() {
	mt.tree.Clear(false)
}
