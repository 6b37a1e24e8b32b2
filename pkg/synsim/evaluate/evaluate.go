package evaluate

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Lexicon resolves words to vector indices.
type Lexicon interface {
	Index(word string) (int, bool)
}

// Similarity scores two vector indices. ok is false when the score is undefined.
type Similarity interface {
	Cosine(i, j int) (float64, bool)
}

// Prediction is the outcome for one question.
type Prediction struct {
	Position    int
	Target      string
	Choice      string // empty when Answered is false
	ChoiceIndex int    // -1 when Answered is false
	Similarity  float64
	Answered    bool
	Correct     bool
	Expected    string
}

// Summary aggregates predictions.
type Summary struct {
	Total          int
	Correct        int
	NoAnswer       int
	MeanSimilarity float64 // over answered questions
	StdSimilarity  float64
}

// Wrong returns the number of answered but incorrect questions.
func (s Summary) Wrong() int {
	return s.Total - s.Correct - s.NoAnswer
}

// Accuracy is correct / total.
func (s Summary) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// Coverage is the share of questions that received an answer.
func (s Summary) Coverage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Total-s.NoAnswer) / float64(s.Total)
}

// AnsweredAccuracy is correct / answered.
func (s Summary) AnsweredAccuracy() float64 {
	answered := s.Total - s.NoAnswer
	if answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(answered)
}

// Evaluator picks, for each question, the candidate closest to the target.
type Evaluator struct {
	lex Lexicon
	sim Similarity
}

// New creates an evaluator.
func New(lex Lexicon, sim Similarity) *Evaluator {
	return &Evaluator{lex: lex, sim: sim}
}

// Predict answers a single question.
//
// The best score starts at zero and only a strictly greater cosine
// replaces it, so ties keep the earliest candidate and a candidate with
// zero or undefined similarity is never chosen.
func (e *Evaluator) Predict(q Question) (Prediction, error) {
	if err := q.Validate(); err != nil {
		return Prediction{}, err
	}

	p := Prediction{
		Target:      q.Target,
		ChoiceIndex: -1,
		Expected:    q.Expected(),
	}

	target, ok := e.lex.Index(q.Target)
	if !ok {
		return p, nil
	}

	best := 0.0
	for k, cand := range q.Candidates {
		j, ok := e.lex.Index(cand)
		if !ok {
			continue
		}
		cos, ok := e.sim.Cosine(target, j)
		if !ok {
			continue
		}
		if cos > best {
			best = cos
			p.ChoiceIndex = k
		}
	}

	if p.ChoiceIndex < 0 {
		return p, nil
	}

	p.Answered = true
	p.Choice = q.Candidates[p.ChoiceIndex]
	p.Similarity = best
	p.Correct = p.Choice == p.Expected
	return p, nil
}

// Evaluate answers every question in order. A malformed question stops the
// run with an error naming its position.
func (e *Evaluator) Evaluate(questions []Question) ([]Prediction, Summary, error) {
	preds := make([]Prediction, 0, len(questions))
	for i, q := range questions {
		p, err := e.Predict(q)
		if err != nil {
			return nil, Summary{}, fmt.Errorf("question %d: %w", i+1, err)
		}
		p.Position = i
		preds = append(preds, p)
	}
	return preds, Summarize(preds), nil
}

// Summarize computes aggregate counts from predictions.
func Summarize(preds []Prediction) Summary {
	s := Summary{Total: len(preds)}
	var sims []float64
	for _, p := range preds {
		switch {
		case !p.Answered:
			s.NoAnswer++
		case p.Correct:
			s.Correct++
		}
		if p.Answered {
			sims = append(sims, p.Similarity)
		}
	}
	if len(sims) > 0 {
		s.MeanSimilarity = stat.Mean(sims, nil)
	}
	if len(sims) > 1 {
		s.StdSimilarity = stat.StdDev(sims, nil)
	}
	return s
}
