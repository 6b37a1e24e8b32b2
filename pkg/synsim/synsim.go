// Package synsim builds a PPMI word-similarity model from a corpus and uses
// it to answer multiple-choice synonym questions.
package synsim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cognicore/synsim/pkg/synsim/cooccur"
	"github.com/cognicore/synsim/pkg/synsim/corpus"
	"github.com/cognicore/synsim/pkg/synsim/evaluate"
	"github.com/cognicore/synsim/pkg/synsim/internalerr"
	"github.com/cognicore/synsim/pkg/synsim/matrix"
	"github.com/cognicore/synsim/pkg/synsim/pmi"
	"github.com/cognicore/synsim/pkg/synsim/similarity"
	"github.com/cognicore/synsim/pkg/synsim/vocab"
)

// Stage names used in timings and log fields.
const (
	StageVocabulary   = "vocabulary"
	StageCooccurrence = "cooccurrence"
	StagePPMI         = "ppmi"
	StageSimilarity   = "similarity"
)

// Options configures a model build.
type Options struct {
	Window int                // defaults to cooccur.DefaultWindow
	Logger logrus.FieldLogger // nil discards log output

	// CacheSize memoizes up to this many word-pair similarities. Zero disables the cache.
	CacheSize int
}

// Timing records how long one build stage took.
type Timing struct {
	Stage   string
	Elapsed time.Duration
}

// Model is the read-only result of a build. It is safe for concurrent reads.
type Model struct {
	vocab   *vocab.Vocabulary
	counts  *cooccur.Matrix
	ppmi    *matrix.Sparse
	engine  *similarity.Engine
	scorer  evaluate.Similarity
	window  int
	docs    int64
	tokens  int64
	timings []Timing
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Build scans src twice: once to close the vocabulary and once to count
// co-occurrences. It then derives the PPMI matrix and row norms.
func Build(ctx context.Context, src corpus.Source, opts Options) (*Model, error) {
	if opts.Window == 0 {
		opts.Window = cooccur.DefaultWindow
	}
	if opts.Window < 0 {
		return nil, fmt.Errorf("window size %d: %w", opts.Window, internalerr.ErrInvalidConfig)
	}
	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}

	m := &Model{window: opts.Window}

	start := time.Now()
	vb := vocab.NewBuilder()
	var docs int64
	err := src.Walk(ctx, func(d corpus.Document) error {
		docs++
		vb.AddDocument(d.Tokens)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build vocabulary: %w", err)
	}
	m.vocab = vb.Build()
	m.docs = docs
	m.record(log, StageVocabulary, start, logrus.Fields{"documents": docs, "words": m.vocab.Len()})
	if m.vocab.Len() == 0 {
		return nil, fmt.Errorf("corpus of %d documents: %w", docs, internalerr.ErrEmptyVocabulary)
	}

	start = time.Now()
	counter, err := cooccur.NewCounter(m.vocab, opts.Window)
	if err != nil {
		return nil, err
	}
	err = src.Walk(ctx, func(d corpus.Document) error {
		counter.AddDocument(d.Tokens)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count co-occurrences: %w", err)
	}
	m.counts = counter.Matrix()
	m.tokens = counter.Tokens()
	m.record(log, StageCooccurrence, start, logrus.Fields{
		"window":  opts.Window,
		"tokens":  counter.Tokens(),
		"total":   m.counts.Total(),
		"nonzero": m.counts.NonZero(),
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	m.ppmi = pmi.Transform(m.counts)
	m.record(log, StagePPMI, start, logrus.Fields{"nonzero": m.ppmi.NonZero()})

	start = time.Now()
	m.engine = similarity.New(m.ppmi)
	m.scorer = m.engine
	if opts.CacheSize > 0 {
		cached, err := similarity.NewCached(m.engine, opts.CacheSize)
		if err != nil {
			return nil, err
		}
		m.scorer = cached
	}
	m.record(log, StageSimilarity, start, logrus.Fields{"cache": opts.CacheSize})

	return m, nil
}

func (m *Model) record(log logrus.FieldLogger, stage string, start time.Time, fields logrus.Fields) {
	elapsed := time.Since(start)
	m.timings = append(m.timings, Timing{Stage: stage, Elapsed: elapsed})
	entry := log.WithField("stage", stage).WithField("elapsed", elapsed)
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	entry.Info("stage complete")
}

// Vocabulary returns the closed vocabulary.
func (m *Model) Vocabulary() *vocab.Vocabulary { return m.vocab }

// Counts returns the co-occurrence matrix.
func (m *Model) Counts() *cooccur.Matrix { return m.counts }

// PPMI returns the PPMI matrix.
func (m *Model) PPMI() *matrix.Sparse { return m.ppmi }

// Engine returns the similarity engine.
func (m *Model) Engine() *similarity.Engine { return m.engine }

// Window returns the window size the model was built with.
func (m *Model) Window() int { return m.window }

// Documents returns the number of documents scanned.
func (m *Model) Documents() int64 { return m.docs }

// Tokens returns the number of in-vocabulary tokens counted.
func (m *Model) Tokens() int64 { return m.tokens }

// Timings returns the duration of each build stage in order.
func (m *Model) Timings() []Timing {
	out := make([]Timing, len(m.timings))
	copy(out, m.timings)
	return out
}

// Index resolves a word to its vector index.
func (m *Model) Index(word string) (int, bool) {
	return m.vocab.Index(word)
}

// Similarity returns the cosine similarity of two words. ok is false when
// either word is unknown or has an all-zero PPMI row.
func (m *Model) Similarity(a, b string) (float64, bool) {
	i, ok := m.vocab.Index(a)
	if !ok {
		return 0, false
	}
	j, ok := m.vocab.Index(b)
	if !ok {
		return 0, false
	}
	return m.scorer.Cosine(i, j)
}

// Evaluator returns a synonym evaluator backed by this model.
func (m *Model) Evaluator() *evaluate.Evaluator {
	return evaluate.New(m.vocab, m.scorer)
}

// Evaluate answers every question and summarizes the outcome.
func (m *Model) Evaluate(questions []evaluate.Question) ([]evaluate.Prediction, evaluate.Summary, error) {
	return m.Evaluator().Evaluate(questions)
}
