package similarity

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/synsim/pkg/synsim/cooccur"
	"github.com/cognicore/synsim/pkg/synsim/matrix"
	"github.com/cognicore/synsim/pkg/synsim/pmi"
	"github.com/cognicore/synsim/pkg/synsim/vocab"
)

func engineFor(t *testing.T, window int, lines ...string) (*vocab.Vocabulary, *Engine) {
	t.Helper()
	docs := make([][]string, len(lines))
	for i, l := range lines {
		docs[i] = strings.Fields(l)
	}
	v := vocab.Build(docs)
	m, err := cooccur.Count(v, docs, window)
	require.NoError(t, err)
	return v, New(pmi.Transform(m))
}

func cosine(t *testing.T, v *vocab.Vocabulary, e *Engine, a, b string) (float64, bool) {
	t.Helper()
	i, ok := v.Index(a)
	require.True(t, ok)
	j, ok := v.Index(b)
	require.True(t, ok)
	return e.Cosine(i, j)
}

func TestCosineHandComputed(t *testing.T) {
	b := matrix.NewBuilder(3)
	b.Set(0, 0, 1)
	b.Set(0, 1, 1)
	b.Set(1, 1, 1)
	e := New(b.Build())

	c, ok := e.Cosine(0, 1)
	require.True(t, ok)
	assert.InDelta(t, 1/math.Sqrt2, c, 1e-12)
	assert.InDelta(t, math.Sqrt2, e.Norm(0), 1e-12)
	assert.Equal(t, 3, e.Size())
}

func TestCosineZeroVectorIsUndefined(t *testing.T) {
	b := matrix.NewBuilder(2)
	b.Set(0, 0, 3)
	e := New(b.Build())

	_, ok := e.Cosine(0, 1)
	assert.False(t, ok)
	_, ok = e.Cosine(1, 1)
	assert.False(t, ok)
}

func TestCosineReferenceScenario(t *testing.T) {
	v, e := engineFor(t, 2, "the cat sat on the mat", "the dog sat on the rug")

	theSat, ok := cosine(t, v, e, "the", "sat")
	require.True(t, ok)
	assert.InDelta(t, 0.1697, theSat, 1e-4)

	// cat and dog occur in exactly the same contexts
	catDog, ok := cosine(t, v, e, "cat", "dog")
	require.True(t, ok)
	assert.InDelta(t, 1.0, catDog, 1e-12)

	// cat and rug never co-occur but share neighbours
	catRug, ok := cosine(t, v, e, "cat", "rug")
	require.True(t, ok)
	assert.InDelta(t, 0.7234, catRug, 1e-4)

	// the and mat have disjoint PPMI rows
	theMat, ok := cosine(t, v, e, "the", "mat")
	require.True(t, ok)
	assert.Equal(t, 0.0, theMat)
}

func TestCosineBoundsAndSelfSimilarity(t *testing.T) {
	v, e := engineFor(t, 4,
		"a rose is a rose is a rose",
		"the quick brown fox jumps over the lazy dog",
		"dog eat dog world and the fox",
		"fox and dog and rose in the world",
	)

	for i := 0; i < v.Len(); i++ {
		for j := 0; j < v.Len(); j++ {
			c, ok := e.Cosine(i, j)
			if !ok {
				continue
			}
			assert.GreaterOrEqual(t, c, 0.0)
			assert.LessOrEqual(t, c, 1.0)
			other, _ := e.Cosine(j, i)
			assert.InDelta(t, c, other, 1e-12)
		}
		if e.Norm(i) > 0 {
			self, ok := e.Cosine(i, i)
			require.True(t, ok)
			assert.InDelta(t, 1.0, self, 1e-12, "word %q", v.Word(i))
		}
	}
}
