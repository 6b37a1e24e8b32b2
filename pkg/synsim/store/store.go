package store

import (
	"context"
	"time"
)

// Store is the run ledger: it persists evaluation runs and their predictions.
type Store interface {
	Close() error

	// SaveRun inserts a run, replacing any run with the same ID.
	SaveRun(ctx context.Context, r Run) error
	// GetRun returns a run without predictions. Missing runs yield internalerr.ErrNotFound.
	GetRun(ctx context.Context, id string) (Run, error)
	// ListRuns returns the newest runs first, without predictions.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	// Predictions returns one set's predictions ordered by position.
	Predictions(ctx context.Context, runID, set string) ([]Prediction, error)
}

// DefaultListLimit applies when ListRuns is called with a non-positive limit.
const DefaultListLimit = 20

// Run is one recorded build and evaluation.
type Run struct {
	ID        string
	CreatedAt time.Time
	Window    int
	Documents int64
	Tokens    int64
	VocabSize int
	Files     []string
	Sets      []Set
}

// Set is the summary of one question set within a run.
type Set struct {
	Name           string
	Total          int
	Correct        int
	NoAnswer       int
	MeanSimilarity float64
	StdSimilarity  float64
	Predictions    []Prediction
}

// Prediction is one stored answer.
type Prediction struct {
	Position   int
	Target     string
	Choice     string
	Expected   string
	Similarity float64
	Answered   bool
	Correct    bool
}

// Set returns the named set, if present.
func (r Run) Set(name string) (Set, bool) {
	for _, s := range r.Sets {
		if s.Name == name {
			return s, true
		}
	}
	return Set{}, false
}

// Accuracy is correct / total.
func (s Set) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}
