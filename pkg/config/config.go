package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log     LogConfig     `yaml:"log"`
	Index   IndexConfig   `yaml:"index"`
	Indexes []IndexSpec   `yaml:"indexes" validate:"unique=Name,dive"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool   `yaml:"pretty"`
}

// IndexConfig holds the defaults every index starts from.
type IndexConfig struct {
	Degree     int    `yaml:"degree" validate:"gte=2,lte=1024"`
	Duplicates string `yaml:"duplicates" validate:"oneof=overwrite reject"`
}

// IndexSpec names an index and the accessors its key is built from, e.g.
// fields: [LastName, FirstName] or fields: ["FullName()"].
type IndexSpec struct {
	Name       string   `yaml:"name" validate:"required,printascii"`
	Fields     []string `yaml:"fields" validate:"required,min=1,dive,required"`
	Duplicates string   `yaml:"duplicates" validate:"omitempty,oneof=overwrite reject"`
	Degree     int      `yaml:"degree" validate:"omitempty,gte=2,lte=1024"`
}

type MetricsConfig struct {
	Namespace string `yaml:"namespace" validate:"required"`
}

var validate = validator.New()

func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Index: IndexConfig{
			Degree:     32,
			Duplicates: "overwrite",
		},
		Indexes: []IndexSpec{
			{Name: "by_age", Fields: []string{"Age"}},
			{Name: "by_name", Fields: []string{"FirstName", "LastName"}},
		},
		Metrics: MetricsConfig{
			Namespace: "rowindex",
		},
	}
}

// Load reads configPath over the defaults. An empty path searches the usual
// locations and falls back to the defaults when none exists.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		for _, p := range []string{"configs/rowindex.yaml", "rowindex.yaml"} {
			data, err := os.ReadFile(p)
			if err == nil {
				return parse(cfg, data, p)
			}
		}
		applyDefaults(cfg)
		return cfg, nil // no file found: use defaults
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}
	return parse(cfg, data, configPath)
}

func parse(cfg *Config, data []byte, path string) (*Config, error) {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Index.Degree <= 0 {
		cfg.Index.Degree = 32
	}
	if cfg.Index.Duplicates == "" {
		cfg.Index.Duplicates = "overwrite"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "rowindex"
	}
	for i := range cfg.Indexes {
		spec := &cfg.Indexes[i]
		if spec.Duplicates == "" {
			spec.Duplicates = cfg.Index.Duplicates
		}
		if spec.Degree == 0 {
			spec.Degree = cfg.Index.Degree
		}
	}
}

func (c *Config) Validate() error {
	return validate.Struct(c)
}

// Spec returns the index spec called name.
func (c *Config) Spec(name string) (IndexSpec, bool) {
	for _, s := range c.Indexes {
		if s.Name == name {
			return s, true
		}
	}
	return IndexSpec{}, false
}
