// Package similarity ranks words by the cosine of their PPMI row vectors.
package similarity

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/synsim/pkg/synsim/matrix"
)

// Engine answers cosine similarity queries over a read-only matrix.
// Row norms are computed once when the engine is created.
type Engine struct {
	m     *matrix.Sparse
	norms []float64
}

// New creates an engine for m.
func New(m *matrix.Sparse) *Engine {
	norms := make([]float64, m.Size())
	for i := range norms {
		if r := m.Row(i); r.Len() > 0 {
			norms[i] = floats.Norm(r.Value, 2)
		}
	}
	return &Engine{m: m, norms: norms}
}

// Size returns the number of rows.
func (e *Engine) Size() int {
	return len(e.norms)
}

// Norm returns the Euclidean norm of row i.
func (e *Engine) Norm(i int) float64 {
	return e.norms[i]
}

// Cosine returns the cosine similarity of rows i and j. The second return
// value is false when either row is the zero vector.
func (e *Engine) Cosine(i, j int) (float64, bool) {
	ni, nj := e.norms[i], e.norms[j]
	if ni == 0 || nj == 0 {
		return 0, false
	}
	cos := matrix.Dot(e.m.Row(i), e.m.Row(j)) / (ni * nj)
	return math.Max(-1, math.Min(1, cos)), true
}
