package main

import (
	"fmt"
	"io"
	"os"

	"rowindex/pkg/common"
	"rowindex/pkg/config"
	"rowindex/pkg/core"
	"rowindex/pkg/keys"
	"rowindex/pkg/monitor"
	"rowindex/pkg/table"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// catalog is the people table with every configured index attached.
type catalog struct {
	people    *table.Table[common.Person]
	indexes   map[string]*core.Index[common.Person, any]
	collector *monitor.Collector
}

func loadPeople(path string) ([]common.Person, error) {
	if path == "" {
		return common.SamplePeople(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var people []common.Person
	if err := yaml.Unmarshal(data, &people); err != nil {
		return nil, fmt.Errorf("data %s: %w", path, err)
	}
	return people, nil
}

func buildCatalog(cfg *config.Config, people []common.Person, logger zerolog.Logger) (*catalog, error) {
	c := &catalog{
		people:    table.New[common.Person]("people", logger),
		indexes:   make(map[string]*core.Index[common.Person, any]),
		collector: monitor.NewCollector(cfg.Metrics.Namespace),
	}
	for _, p := range people {
		if _, err := c.people.Insert(p); err != nil {
			return nil, err
		}
	}

	for _, spec := range cfg.Indexes {
		ix, err := newIndex(spec, logger)
		if err != nil {
			return nil, err
		}
		if err := table.Attach(c.people, ix); err != nil {
			return nil, err
		}
		c.indexes[spec.Name] = ix
		c.collector.Add(ix)
	}
	return c, nil
}

func newIndex(spec config.IndexSpec, logger zerolog.Logger) (*core.Index[common.Person, any], error) {
	set, err := keys.ParseSet[common.Person](spec.Fields...)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", spec.Name, err)
	}
	ex, err := keys.Many[common.Person](set.Selectors()...)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", spec.Name, err)
	}
	policy, err := core.ParsePolicy(spec.Duplicates)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", spec.Name, err)
	}

	logger.Debug().Str("index", spec.Name).Str("key", set.String()).Str("key_type", set.KeyTypeName()).Msg("index configured")
	return core.New(spec.Name, ex, core.Options{
		Degree: spec.Degree,
		Policy: policy,
		Logger: &logger,
	}), nil
}

func (c *catalog) index(name string) (*core.Index[common.Person, any], error) {
	ix, ok := c.indexes[name]
	if !ok {
		return nil, fmt.Errorf("no index %q in config", name)
	}
	return ix, nil
}

func (c *catalog) writeMetrics(w io.Writer) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(c.collector); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func openCatalog() (*catalog, error) {
	people, err := loadPeople(dataPath)
	if err != nil {
		return nil, err
	}
	return buildCatalog(cfg, people, logger)
}
