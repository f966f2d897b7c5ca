package core

import (
	"errors"
	"fmt"

	"rowindex/pkg/common"
	"rowindex/pkg/core/memory"
	"rowindex/pkg/keys"
	"rowindex/pkg/monitor"

	"github.com/rs/zerolog"
)

var ErrDuplicateKey = errors.New("core: duplicate key")

// Policy decides what Insert does with a key that is already present.
type Policy int

const (
	// Overwrite replaces the stored row id (last write wins).
	Overwrite Policy = iota
	// Reject keeps the stored row id and fails with ErrDuplicateKey.
	Reject
)

func (p Policy) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	case Reject:
		return "reject"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "overwrite":
		return Overwrite, nil
	case "reject":
		return Reject, nil
	}
	return 0, fmt.Errorf("core: unknown duplicate policy %q", s)
}

// Reader is the read side of an index.
type Reader[K any] interface {
	Lookup(key K) (common.RowID, bool)
	Len() int
	Name() string
}

type Options struct {
	Degree int
	Policy Policy
	Logger *zerolog.Logger
	Stats  *monitor.IndexStats
}

// Index maps keys derived from records of type R to row ids. It owns the
// keys only; records stay with the caller.
//
// An Index is not safe for concurrent use. Wrap it in Locked when
// goroutines share it.
type Index[R, K any] struct {
	name   string
	ext    *keys.Extractor[R, K]
	mem    *memory.MemTable[K]
	policy Policy
	stats  *monitor.IndexStats
	log    zerolog.Logger
}

func New[R, K any](name string, ext *keys.Extractor[R, K], opts Options) *Index[R, K] {
	applyDefaults(&opts)
	return &Index[R, K]{
		name:   name,
		ext:    ext,
		mem:    memory.NewMemTable(opts.Degree, ext.Compare),
		policy: opts.Policy,
		stats:  opts.Stats,
		log:    opts.Logger.With().Str("index", name).Logger(),
	}
}

func applyDefaults(opts *Options) {
	if opts.Degree < 2 {
		opts.Degree = 32
	}
	if opts.Logger == nil {
		nop := zerolog.Nop()
		opts.Logger = &nop
	}
	if opts.Stats == nil {
		opts.Stats = monitor.NewIndexStats()
	}
}

func (ix *Index[R, K]) Name() string                     { return ix.name }
func (ix *Index[R, K]) Policy() Policy                   { return ix.policy }
func (ix *Index[R, K]) Stats() *monitor.IndexStats       { return ix.stats }
func (ix *Index[R, K]) Extractor() *keys.Extractor[R, K] { return ix.ext }

// Key returns the key r would be stored under.
func (ix *Index[R, K]) Key(r R) K {
	return ix.ext.Extract(r)
}

// Insert stores Key(r) -> row.
func (ix *Index[R, K]) Insert(r R, row common.RowID) error {
	key := ix.ext.Extract(r)

	if ix.policy == Reject {
		if held, ok := ix.mem.Get(key); ok {
			ix.stats.RecordReject()
			return fmt.Errorf("%w: %v in %s (held by row %d)", ErrDuplicateKey, key, ix.name, held)
		}
	}

	prev, replaced := ix.mem.Put(key, row)
	ix.stats.RecordInsert()
	if replaced {
		ix.stats.RecordOverwrite()
		ix.log.Debug().Interface("key", key).Int64("old_row", int64(prev)).Int64("row", int64(row)).Msg("key overwritten")
	}
	return nil
}

// Conflicts reports whether inserting r would fail.
func (ix *Index[R, K]) Conflicts(r R) bool {
	return ix.policy == Reject && ix.mem.Has(ix.ext.Extract(r))
}

// Lookup returns the row id stored for key.
func (ix *Index[R, K]) Lookup(key K) (common.RowID, bool) {
	if !ix.ext.Accepts(key) {
		ix.stats.RecordLookup(false)
		return 0, false
	}
	row, ok := ix.mem.Get(key)
	ix.stats.RecordLookup(ok)
	return row, ok
}

// Find looks up the key of a probe record.
func (ix *Index[R, K]) Find(probe R) (common.RowID, bool) {
	return ix.Lookup(ix.ext.Extract(probe))
}

func (ix *Index[R, K]) Delete(key K) bool {
	if !ix.ext.Accepts(key) {
		return false
	}
	ok := ix.mem.Delete(key)
	if ok {
		ix.stats.RecordDelete()
	}
	return ok
}

func (ix *Index[R, K]) Len() int {
	return ix.mem.Count()
}

// Ascend calls fn for every entry in key order until fn returns false.
func (ix *Index[R, K]) Ascend(fn func(key K, row common.RowID) bool) {
	ix.mem.Iterator(fn)
}

// AscendRange is Ascend restricted to from <= key < to.
func (ix *Index[R, K]) AscendRange(from, to K, fn func(key K, row common.RowID) bool) {
	ix.mem.Scan(from, to, fn)
}

func (ix *Index[R, K]) Clear() {
	ix.mem.Clear()
}
