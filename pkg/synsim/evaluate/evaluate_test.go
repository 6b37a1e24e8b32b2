package evaluate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/synsim/pkg/synsim/internalerr"
)

type fakeLexicon map[string]int

func (f fakeLexicon) Index(word string) (int, bool) {
	i, ok := f[word]
	return i, ok
}

// fakeSimilarity scores pairs from a table; missing pairs are undefined.
type fakeSimilarity struct {
	scores map[[2]int]float64
	calls  int
}

func (f *fakeSimilarity) Cosine(i, j int) (float64, bool) {
	f.calls++
	s, ok := f.scores[[2]int{i, j}]
	return s, ok
}

var lex = fakeLexicon{"big": 0, "large": 1, "small": 2, "tiny": 3, "huge": 4}

func q(target string, answer Letter, cands ...string) Question {
	return Question{Target: target, Candidates: cands, Answer: answer}
}

func TestPredictPicksHighest(t *testing.T) {
	sim := &fakeSimilarity{scores: map[[2]int]float64{
		{0, 1}: 0.8, {0, 2}: 0.1, {0, 3}: 0.05, {0, 4}: 0.6,
	}}
	e := New(lex, sim)

	p, err := e.Predict(q("big", 'a', "large", "small", "tiny", "huge"))
	require.NoError(t, err)
	assert.True(t, p.Answered)
	assert.True(t, p.Correct)
	assert.Equal(t, "large", p.Choice)
	assert.Equal(t, 0, p.ChoiceIndex)
	assert.Equal(t, 0.8, p.Similarity)
	assert.Equal(t, "large", p.Expected)
}

func TestPredictWrongAnswer(t *testing.T) {
	sim := &fakeSimilarity{scores: map[[2]int]float64{{0, 4}: 0.9, {0, 1}: 0.2}}
	p, err := New(lex, sim).Predict(q("big", 'a', "large", "small", "tiny", "huge"))
	require.NoError(t, err)
	assert.True(t, p.Answered)
	assert.False(t, p.Correct)
	assert.Equal(t, "huge", p.Choice)
	assert.Equal(t, "large", p.Expected)
}

func TestPredictTargetMissing(t *testing.T) {
	sim := &fakeSimilarity{scores: map[[2]int]float64{}}
	p, err := New(lex, sim).Predict(q("enormous", 'b', "large", "small", "tiny", "huge"))
	require.NoError(t, err)
	assert.False(t, p.Answered)
	assert.False(t, p.Correct)
	assert.Equal(t, -1, p.ChoiceIndex)
	assert.Empty(t, p.Choice)
	assert.Equal(t, 0, sim.calls, "candidates must not be scored")
}

func TestPredictSingleKnownCandidate(t *testing.T) {
	sim := &fakeSimilarity{scores: map[[2]int]float64{{0, 3}: 0.0001}}
	p, err := New(lex, sim).Predict(q("big", 'c', "vast", "grand", "tiny", "massive"))
	require.NoError(t, err)
	assert.True(t, p.Answered)
	assert.Equal(t, "tiny", p.Choice)
	assert.True(t, p.Correct)
}

func TestPredictTieKeepsFirst(t *testing.T) {
	sim := &fakeSimilarity{scores: map[[2]int]float64{
		{0, 2}: 0.5, {0, 1}: 0.5, {0, 3}: 0.5,
	}}
	p, err := New(lex, sim).Predict(q("big", 'b', "small", "large", "tiny", "huge"))
	require.NoError(t, err)
	assert.Equal(t, "small", p.Choice)
	assert.Equal(t, 0, p.ChoiceIndex)
	assert.False(t, p.Correct)
}

func TestPredictUndefinedAndZeroSkipped(t *testing.T) {
	sim := &fakeSimilarity{scores: map[[2]int]float64{{0, 1}: 0, {0, 2}: 0}}
	p, err := New(lex, sim).Predict(q("big", 'a', "large", "small", "tiny", "huge"))
	require.NoError(t, err)
	assert.False(t, p.Answered)
	assert.Equal(t, 4, sim.calls)
}

func TestPredictMalformed(t *testing.T) {
	e := New(lex, &fakeSimilarity{})

	_, err := e.Predict(q("big", 'a', "large", "small", "tiny"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrMalformedQuestion))

	_, err = e.Predict(q("big", 'e', "large", "small", "tiny", "huge"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalerr.ErrMalformedQuestion))
}

func TestEvaluateSummary(t *testing.T) {
	sim := &fakeSimilarity{scores: map[[2]int]float64{
		{0, 1}: 0.9, // big → large (correct)
		{2, 3}: 0.4, // small → tiny (wrong: expected huge)
	}}
	qs := []Question{
		q("big", 'a', "large", "small", "tiny", "huge"),
		q("small", 'd', "large", "big", "tiny", "huge"),
		q("unknown", 'a', "large", "small", "tiny", "huge"),
	}

	preds, sum, err := New(lex, sim).Evaluate(qs)
	require.NoError(t, err)
	require.Len(t, preds, 3)
	for i, p := range preds {
		assert.Equal(t, i, p.Position)
	}

	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 1, sum.NoAnswer)
	assert.Equal(t, 1, sum.Wrong())
	assert.InDelta(t, 1.0/3, sum.Accuracy(), 1e-12)
	assert.InDelta(t, 2.0/3, sum.Coverage(), 1e-12)
	assert.InDelta(t, 0.5, sum.AnsweredAccuracy(), 1e-12)
	assert.InDelta(t, 0.65, sum.MeanSimilarity, 1e-12)
	assert.Greater(t, sum.StdSimilarity, 0.0)
}

func TestEvaluateStopsOnMalformed(t *testing.T) {
	qs := []Question{
		q("big", 'a', "large", "small", "tiny", "huge"),
		q("big", 'a', "large"),
	}
	_, _, err := New(lex, &fakeSimilarity{}).Evaluate(qs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question 2")
}

func TestSummaryEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.Accuracy())
	assert.Equal(t, 0.0, s.Coverage())
	assert.Equal(t, 0.0, s.AnsweredAccuracy())
}

func TestLetters(t *testing.T) {
	for i, s := range []string{"a", "b", "C", " d "} {
		l, err := ParseLetter(s)
		require.NoError(t, err)
		idx, ok := l.Index()
		require.True(t, ok)
		assert.Equal(t, i, idx)

		back, err := LetterFor(i)
		require.NoError(t, err)
		assert.Equal(t, l, back)
	}

	for _, s := range []string{"", "e", "ab", "1"} {
		_, err := ParseLetter(s)
		assert.Error(t, err, "ParseLetter(%q)", s)
	}
	_, err := LetterFor(4)
	assert.Error(t, err)
	assert.Equal(t, "c", Letter('c').String())
}
