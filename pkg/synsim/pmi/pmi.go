package pmi

import (
	"math"

	"github.com/cognicore/synsim/pkg/synsim/cooccur"
	"github.com/cognicore/synsim/pkg/synsim/matrix"
)

// Calculator handles PMI (Pointwise Mutual Information) calculations
// against a fixed grand total of co-occurrence counts.
type Calculator struct {
	total float64 // D: sum of every cell of the co-occurrence matrix
}

// NewCalculator creates a calculator for a matrix whose cells sum to total.
func NewCalculator(total int64) *Calculator {
	return &Calculator{total: float64(total)}
}

// PMI calculates the pointwise mutual information of a cell, in bits.
//
// PMI(i,j) = log2( P(i,j) / (P(i) * P(j)) )
//
// Where:
//   - P(i,j) = x / D, x being the co-occurrence count of cell (i,j)
//   - P(i), P(j) = marginal count of each word / D
//   - D = sum of all cells
func (c *Calculator) PMI(x, marginalI, marginalJ int64) float64 {
	p1 := float64(x) / c.total
	p2 := float64(marginalI) / c.total
	p3 := float64(marginalJ) / c.total
	return math.Log2(p1 / (p2 * p3))
}

// PPMI is PMI with negative and undefined scores clamped to zero.
// A zero count is never evaluated.
func (c *Calculator) PPMI(x, marginalI, marginalJ int64) float64 {
	if x == 0 {
		return 0
	}
	p := c.PMI(x, marginalI, marginalJ)
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	return p
}

// Transform converts a co-occurrence matrix into its PPMI matrix.
// Only non-zero counts are visited, so zero cells stay zero.
func Transform(m *cooccur.Matrix) *matrix.Sparse {
	calc := NewCalculator(m.Total())
	b := matrix.NewBuilder(m.Size())

	for i := 0; i < m.Size(); i++ {
		mi := m.Marginal(i)
		m.Each(i, func(j int, x int64) {
			b.Set(i, j, calc.PPMI(x, mi, m.Marginal(j)))
		})
	}

	return b.Build()
}
