package config

import (
	"context"
	"fmt"

	"github.com/cognicore/synsim/pkg/synsim/corpus"
	"github.com/cognicore/synsim/pkg/synsim/evaluate"
	"github.com/cognicore/synsim/pkg/synsim/questions"
)

// Loader turns a validated Config into pipeline inputs.
type Loader struct {
	Config *Config

	// Warn receives skipped corpus records (JSONL format only).
	Warn func(path string, line int, err error)
}

// NamedQuestions is a parsed question set.
type NamedQuestions struct {
	Name      string
	Path      string
	Questions []evaluate.Question
}

// Components holds everything a run needs.
type Components struct {
	Files     []string
	Corpus    corpus.Source
	Questions []NamedQuestions
}

// Load discovers and samples the corpus and parses every question set.
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg := l.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	files, err := corpus.Discover(ctx, corpus.DiscoverOptions{
		Root:    cfg.Corpus.Root,
		Include: cfg.Corpus.Include,
		Exclude: cfg.Corpus.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("discover corpus: %w", err)
	}
	files = corpus.Sample(files, cfg.Corpus.Sample, cfg.Corpus.Seed)

	format, err := corpus.ParseFormat(cfg.Corpus.Format)
	if err != nil {
		return nil, err
	}

	comp := &Components{
		Files:  files,
		Corpus: corpus.Files{Paths: files, Format: format, Warn: l.Warn},
	}

	for _, qs := range cfg.Questions {
		format, err := questions.ParseFormat(qs.Format)
		if err != nil {
			return nil, err
		}
		parsed, err := questions.Load(qs.Path, format)
		if err != nil {
			return nil, fmt.Errorf("load question set %s: %w", qs.Name, err)
		}
		comp.Questions = append(comp.Questions, NamedQuestions{
			Name:      qs.Name,
			Path:      qs.Path,
			Questions: parsed,
		})
	}

	return comp, nil
}
