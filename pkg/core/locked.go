package core

import (
	"sync"

	"rowindex/pkg/common"
	"rowindex/pkg/monitor"
)

// Locked guards an Index with a single-writer / multi-reader lock for hosts
// that share one index between goroutines.
type Locked[R, K any] struct {
	mutex sync.RWMutex
	ix    *Index[R, K]
}

func NewLocked[R, K any](ix *Index[R, K]) *Locked[R, K] {
	return &Locked[R, K]{ix: ix}
}

func (l *Locked[R, K]) Insert(r R, row common.RowID) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.ix.Insert(r, row)
}

func (l *Locked[R, K]) Delete(key K) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.ix.Delete(key)
}

func (l *Locked[R, K]) Lookup(key K) (common.RowID, bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.ix.Lookup(key)
}

func (l *Locked[R, K]) Find(probe R) (common.RowID, bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.ix.Find(probe)
}

func (l *Locked[R, K]) Len() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.ix.Len()
}

// Ascend holds the read lock for the whole walk; fn must not write to l.
func (l *Locked[R, K]) Ascend(fn func(key K, row common.RowID) bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	l.ix.Ascend(fn)
}

func (l *Locked[R, K]) Name() string               { return l.ix.Name() }
func (l *Locked[R, K]) Stats() *monitor.IndexStats { return l.ix.Stats() }
