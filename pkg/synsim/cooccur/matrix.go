package cooccur

import "sort"

// Matrix is a square, sparse, symmetric matrix of co-occurrence counts
// together with the marginal count of every word.
type Matrix struct {
	rows      []map[int]int64
	marginals []int64
	total     int64
}

// NewMatrix allocates an empty n×n matrix.
func NewMatrix(n int) *Matrix {
	rows := make([]map[int]int64, n)
	for i := range rows {
		rows[i] = make(map[int]int64)
	}
	return &Matrix{
		rows:      rows,
		marginals: make([]int64, n),
	}
}

// Size returns the matrix dimension (the vocabulary size).
func (m *Matrix) Size() int {
	return len(m.rows)
}

// At returns the count stored in cell (i, j).
func (m *Matrix) At(i, j int) int64 {
	return m.rows[i][j]
}

// Marginal returns the number of window pairs word i took part in.
func (m *Matrix) Marginal(i int) int64 {
	return m.marginals[i]
}

// Marginals returns a copy of all marginal counts.
func (m *Matrix) Marginals() []int64 {
	out := make([]int64, len(m.marginals))
	copy(out, m.marginals)
	return out
}

// Total returns the sum of every cell in the matrix.
func (m *Matrix) Total() int64 {
	return m.total
}

// RowSum returns the sum of row i.
func (m *Matrix) RowSum(i int) int64 {
	var sum int64
	for _, c := range m.rows[i] {
		sum += c
	}
	return sum
}

// RowLen returns the number of non-zero cells in row i.
func (m *Matrix) RowLen(i int) int {
	return len(m.rows[i])
}

// NonZero returns the number of non-zero cells.
func (m *Matrix) NonZero() int {
	n := 0
	for _, row := range m.rows {
		n += len(row)
	}
	return n
}

// Each calls fn for every non-zero cell of row i in ascending column order.
func (m *Matrix) Each(i int, fn func(j int, count int64)) {
	row := m.rows[i]
	cols := make([]int, 0, len(row))
	for j := range row {
		cols = append(cols, j)
	}
	sort.Ints(cols)
	for _, j := range cols {
		fn(j, row[j])
	}
}

// addPair records one window pair. Each direction is incremented
// separately, so a pair adds 2 to Total.
func (m *Matrix) addPair(current, previous int) {
	m.rows[current][previous]++
	m.rows[previous][current]++
	m.marginals[current]++
	m.marginals[previous]++
	m.total += 2
}
