// Package matrix holds read-only sparse real matrices used as word vectors.
package matrix

import "sort"

// Row is one sparse row: column indices in ascending order with their values.
type Row struct {
	Index []int
	Value []float64
}

// Len returns the number of stored entries.
func (r Row) Len() int {
	return len(r.Index)
}

// At returns the value stored at column j, or 0.
func (r Row) At(j int) float64 {
	k := sort.SearchInts(r.Index, j)
	if k < len(r.Index) && r.Index[k] == j {
		return r.Value[k]
	}
	return 0
}

// Dot returns the inner product of two sparse rows.
func Dot(a, b Row) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Index) && j < len(b.Index) {
		switch {
		case a.Index[i] == b.Index[j]:
			sum += a.Value[i] * b.Value[j]
			i++
			j++
		case a.Index[i] < b.Index[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Sparse is an immutable n×n matrix stored row by row.
type Sparse struct {
	rows []Row
}

// Size returns the matrix dimension.
func (s *Sparse) Size() int {
	return len(s.rows)
}

// Row returns row i. The returned slices must not be modified.
func (s *Sparse) Row(i int) Row {
	return s.rows[i]
}

// At returns cell (i, j).
func (s *Sparse) At(i, j int) float64 {
	return s.rows[i].At(j)
}

// NonZero returns the number of stored entries.
func (s *Sparse) NonZero() int {
	n := 0
	for _, r := range s.rows {
		n += r.Len()
	}
	return n
}

// Builder assembles a Sparse matrix one row at a time.
type Builder struct {
	rows []Row
}

// NewBuilder creates a builder for an n×n matrix with all rows empty.
func NewBuilder(n int) *Builder {
	return &Builder{rows: make([]Row, n)}
}

// Set appends value v at column j of row i. Columns must be appended in
// ascending order and zeros are dropped.
func (b *Builder) Set(i, j int, v float64) {
	if v == 0 {
		return
	}
	r := &b.rows[i]
	if n := len(r.Index); n > 0 && r.Index[n-1] >= j {
		panic("matrix: columns must be set in ascending order")
	}
	r.Index = append(r.Index, j)
	r.Value = append(r.Value, v)
}

// Build returns the finished matrix. The builder must not be used afterwards.
func (b *Builder) Build() *Sparse {
	s := &Sparse{rows: b.rows}
	b.rows = nil
	return s
}
