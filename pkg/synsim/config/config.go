package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/synsim/pkg/synsim/cooccur"
	"github.com/cognicore/synsim/pkg/synsim/corpus"
	"github.com/cognicore/synsim/pkg/synsim/internalerr"
	"github.com/cognicore/synsim/pkg/synsim/questions"
)

// Config is the YAML run configuration.
type Config struct {
	Window    int           `yaml:"window"`
	CacheSize int           `yaml:"cache_size"`
	Corpus    Corpus        `yaml:"corpus"`
	Questions []QuestionSet `yaml:"questions"`
	Report    string        `yaml:"report"`
	Ledger    string        `yaml:"ledger"`
	Log       Log           `yaml:"log"`
}

// Corpus selects and samples the corpus files.
type Corpus struct {
	Root    string   `yaml:"root"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	Sample  int      `yaml:"sample"`
	Seed    uint64   `yaml:"seed"`
	Format  string   `yaml:"format"`
}

// QuestionSet names one question file.
type QuestionSet struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// Log configures logging output.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML configuration file. Relative paths inside the file are
// resolved against the file's directory. Defaults are applied but the
// result is not validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", path, err, internalerr.ErrInvalidConfig)
	}

	cfg.resolvePaths(filepath.Dir(path))
	cfg.ApplyDefaults()
	return &cfg, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func (c *Config) resolvePaths(base string) {
	c.Corpus.Root = resolve(base, c.Corpus.Root)
	c.Report = resolve(base, c.Report)
	c.Ledger = resolve(base, c.Ledger)
	for i := range c.Questions {
		c.Questions[i].Path = resolve(base, c.Questions[i].Path)
	}
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Window == 0 {
		c.Window = cooccur.DefaultWindow
	}
	if len(c.Corpus.Include) == 0 {
		c.Corpus.Include = []string{"**"}
	}
	if c.Corpus.Format == "" {
		c.Corpus.Format = string(corpus.FormatPlain)
	}
	for i := range c.Questions {
		if c.Questions[i].Name == "" {
			c.Questions[i].Name = filepath.Base(c.Questions[i].Path)
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate reports every problem found in the configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.Window <= 0 {
		errs = append(errs, fmt.Errorf("window must be positive, got %d", c.Window))
	}
	if c.Corpus.Root == "" {
		errs = append(errs, errors.New("corpus.root is required"))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize))
	}
	if c.Corpus.Sample < 0 {
		errs = append(errs, fmt.Errorf("corpus.sample must not be negative, got %d", c.Corpus.Sample))
	}
	if _, err := corpus.ParseFormat(c.Corpus.Format); err != nil {
		errs = append(errs, err)
	}
	seen := make(map[string]bool)
	for i, q := range c.Questions {
		if q.Path == "" {
			errs = append(errs, fmt.Errorf("questions[%d].path is required", i))
		}
		if _, err := questions.ParseFormat(q.Format); err != nil {
			errs = append(errs, fmt.Errorf("questions[%d]: %w", i, err))
		}
		if seen[q.Name] {
			errs = append(errs, fmt.Errorf("questions[%d]: duplicate name %q", i, q.Name))
		}
		seen[q.Name] = true
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", internalerr.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
