package report

import (
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/synsim/pkg/synsim"
	"github.com/cognicore/synsim/pkg/synsim/analytics"
	"github.com/cognicore/synsim/pkg/synsim/evaluate"
	"github.com/cognicore/synsim/pkg/synsim/store"
)

// Builder constructs run reports with sortable unique IDs.
type Builder struct {
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
	topK    int
}

// New creates a new report builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
		topK:    analytics.DefaultTopWords,
	}
}

// SetResult is the evaluation of one question set.
type SetResult struct {
	Name        string
	Path        string
	Predictions []evaluate.Prediction
	Summary     evaluate.Summary
}

// Report describes one complete run.
type Report struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Window    int             `json:"window"`
	Files     []string        `json:"files"`
	Stats     analytics.Stats `json:"stats"`
	Timings   []Timing        `json:"timings"`
	Sets      []Set           `json:"sets"`
}

// Timing is a build stage duration.
type Timing struct {
	Stage   string  `json:"stage"`
	Seconds float64 `json:"seconds"`
}

// Set is the reported outcome of one question set.
type Set struct {
	Name        string       `json:"name"`
	Path        string       `json:"path,omitempty"`
	Summary     Summary      `json:"summary"`
	Predictions []Prediction `json:"predictions"`
}

// Summary mirrors evaluate.Summary with derived ratios.
type Summary struct {
	Total            int     `json:"total"`
	Correct          int     `json:"correct"`
	Wrong            int     `json:"wrong"`
	NoAnswer         int     `json:"no_answer"`
	Accuracy         float64 `json:"accuracy"`
	Coverage         float64 `json:"coverage"`
	AnsweredAccuracy float64 `json:"answered_accuracy"`
	MeanSimilarity   float64 `json:"mean_similarity"`
	StdSimilarity    float64 `json:"std_similarity"`
}

// Prediction is one reported answer.
type Prediction struct {
	Position   int     `json:"position"`
	Target     string  `json:"target"`
	Choice     string  `json:"choice,omitempty"`
	Expected   string  `json:"expected"`
	Similarity float64 `json:"similarity,omitempty"`
	Answered   bool    `json:"answered"`
	Correct    bool    `json:"correct"`
}

// NewID returns a fresh ULID string.
func (b *Builder) NewID() string {
	return ulid.MustNew(ulid.Timestamp(b.now()), b.entropy).String()
}

// Build assembles a report for a model and its evaluated question sets.
func (b *Builder) Build(m *synsim.Model, files []string, sets []SetResult) Report {
	r := Report{
		ID:        b.NewID(),
		CreatedAt: b.now().UTC(),
		Window:    m.Window(),
		Files:     files,
		Stats:     analytics.Analyze(m, b.topK),
		Timings:   make([]Timing, 0, len(m.Timings())),
		Sets:      make([]Set, 0, len(sets)),
	}
	for _, t := range m.Timings() {
		r.Timings = append(r.Timings, Timing{Stage: t.Stage, Seconds: t.Elapsed.Seconds()})
	}
	for _, s := range sets {
		r.Sets = append(r.Sets, NewSet(s))
	}
	return r
}

// NewSet converts an evaluation result into its reported form.
func NewSet(s SetResult) Set {
	out := Set{
		Name:        s.Name,
		Path:        s.Path,
		Summary:     NewSummary(s.Summary),
		Predictions: make([]Prediction, len(s.Predictions)),
	}
	for i, p := range s.Predictions {
		out.Predictions[i] = Prediction{
			Position:   p.Position,
			Target:     p.Target,
			Choice:     p.Choice,
			Expected:   p.Expected,
			Similarity: p.Similarity,
			Answered:   p.Answered,
			Correct:    p.Correct,
		}
	}
	return out
}

// NewSummary derives the reported ratios.
func NewSummary(s evaluate.Summary) Summary {
	return Summary{
		Total:            s.Total,
		Correct:          s.Correct,
		Wrong:            s.Wrong(),
		NoAnswer:         s.NoAnswer,
		Accuracy:         s.Accuracy(),
		Coverage:         s.Coverage(),
		AnsweredAccuracy: s.AnsweredAccuracy(),
		MeanSimilarity:   s.MeanSimilarity,
		StdSimilarity:    s.StdSimilarity,
	}
}

// Run converts the report into its ledger record.
func (r Report) Run() store.Run {
	run := store.Run{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Window:    r.Window,
		Documents: r.Stats.Documents,
		Tokens:    r.Stats.Tokens,
		VocabSize: r.Stats.VocabSize,
		Files:     r.Files,
		Sets:      make([]store.Set, len(r.Sets)),
	}
	for i, s := range r.Sets {
		set := store.Set{
			Name:           s.Name,
			Total:          s.Summary.Total,
			Correct:        s.Summary.Correct,
			NoAnswer:       s.Summary.NoAnswer,
			MeanSimilarity: s.Summary.MeanSimilarity,
			StdSimilarity:  s.Summary.StdSimilarity,
			Predictions:    make([]store.Prediction, len(s.Predictions)),
		}
		for j, p := range s.Predictions {
			set.Predictions[j] = store.Prediction{
				Position:   p.Position,
				Target:     p.Target,
				Choice:     p.Choice,
				Expected:   p.Expected,
				Similarity: p.Similarity,
				Answered:   p.Answered,
				Correct:    p.Correct,
			}
		}
		run.Sets[i] = set
	}
	return run
}

// WriteJSON writes the report as indented JSON, creating parent directories.
func (r Report) WriteJSON(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	buf, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}
