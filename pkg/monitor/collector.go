package monitor

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Source is anything that owns IndexStats under a name, usually an index.
type Source interface {
	Name() string
	Stats() *IndexStats
}

// Collector exports the counters of registered sources as Prometheus
// counters labelled by index name.
type Collector struct {
	mu      sync.RWMutex
	sources map[string]*IndexStats

	inserts    *prometheus.Desc
	overwrites *prometheus.Desc
	rejects    *prometheus.Desc
	deletes    *prometheus.Desc
	lookups    *prometheus.Desc
	hits       *prometheus.Desc
}

func NewCollector(namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "index", name),
			help, []string{"index"}, nil,
		)
	}
	return &Collector{
		sources:    make(map[string]*IndexStats),
		inserts:    desc("inserts_total", "Keys inserted into the index."),
		overwrites: desc("overwrites_total", "Inserts that replaced the row id of an existing key."),
		rejects:    desc("rejects_total", "Inserts refused because the key already existed."),
		deletes:    desc("deletes_total", "Keys removed from the index."),
		lookups:    desc("lookups_total", "Key lookups."),
		hits:       desc("hits_total", "Key lookups that found a row id."),
	}
}

// Add registers src; a later source with the same name replaces it.
func (c *Collector) Add(src Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[src.Name()] = src.Stats()
}

func (c *Collector) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, name)
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.inserts
	ch <- c.overwrites
	ch <- c.rejects
	ch <- c.deletes
	ch <- c.lookups
	ch <- c.hits
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	stats := make([]Snapshot, len(names))
	for i, name := range names {
		stats[i] = c.sources[name].Snapshot()
	}
	c.mu.RUnlock()

	for i, name := range names {
		s := stats[i]
		ch <- prometheus.MustNewConstMetric(c.inserts, prometheus.CounterValue, float64(s.Inserts), name)
		ch <- prometheus.MustNewConstMetric(c.overwrites, prometheus.CounterValue, float64(s.Overwrites), name)
		ch <- prometheus.MustNewConstMetric(c.rejects, prometheus.CounterValue, float64(s.Rejects), name)
		ch <- prometheus.MustNewConstMetric(c.deletes, prometheus.CounterValue, float64(s.Deletes), name)
		ch <- prometheus.MustNewConstMetric(c.lookups, prometheus.CounterValue, float64(s.Lookups), name)
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits), name)
	}
}
