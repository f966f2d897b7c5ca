package monitor

import (
	"sync/atomic"
)

// IndexStats counts what happened to one index. Counters are atomic so a
// collector may read them while the owner writes.
type IndexStats struct {
	InsertCount    uint64
	OverwriteCount uint64
	RejectCount    uint64
	DeleteCount    uint64
	LookupCount    uint64
	HitCount       uint64
}

func NewIndexStats() *IndexStats {
	return &IndexStats{}
}

func (s *IndexStats) RecordInsert() {
	atomic.AddUint64(&s.InsertCount, 1)
}

func (s *IndexStats) RecordOverwrite() {
	atomic.AddUint64(&s.OverwriteCount, 1)
}

func (s *IndexStats) RecordReject() {
	atomic.AddUint64(&s.RejectCount, 1)
}

func (s *IndexStats) RecordDelete() {
	atomic.AddUint64(&s.DeleteCount, 1)
}

func (s *IndexStats) RecordLookup(hit bool) {
	atomic.AddUint64(&s.LookupCount, 1)
	if hit {
		atomic.AddUint64(&s.HitCount, 1)
	}
}

// Snapshot is a consistent-enough copy of the counters for reporting.
type Snapshot struct {
	Inserts    uint64 `json:"inserts"`
	Overwrites uint64 `json:"overwrites"`
	Rejects    uint64 `json:"rejects"`
	Deletes    uint64 `json:"deletes"`
	Lookups    uint64 `json:"lookups"`
	Hits       uint64 `json:"hits"`
}

func (s *IndexStats) Snapshot() Snapshot {
	return Snapshot{
		Inserts:    atomic.LoadUint64(&s.InsertCount),
		Overwrites: atomic.LoadUint64(&s.OverwriteCount),
		Rejects:    atomic.LoadUint64(&s.RejectCount),
		Deletes:    atomic.LoadUint64(&s.DeleteCount),
		Lookups:    atomic.LoadUint64(&s.LookupCount),
		Hits:       atomic.LoadUint64(&s.HitCount),
	}
}

// HitRatio is hits over lookups, 0 before the first lookup.
func (s *IndexStats) HitRatio() float64 {
	lookups := atomic.LoadUint64(&s.LookupCount)
	if lookups == 0 {
		return 0.0
	}
	return float64(atomic.LoadUint64(&s.HitCount)) / float64(lookups)
}
