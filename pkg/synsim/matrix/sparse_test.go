package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderAndAt(t *testing.T) {
	b := NewBuilder(3)
	b.Set(0, 1, 2.5)
	b.Set(0, 2, 0)
	b.Set(2, 0, 1)
	s := b.Build()

	assert.Equal(t, 3, s.Size())
	assert.Equal(t, 2.5, s.At(0, 1))
	assert.Equal(t, 0.0, s.At(0, 2))
	assert.Equal(t, 1.0, s.At(2, 0))
	assert.Equal(t, 0.0, s.At(1, 1))
	assert.Equal(t, 2, s.NonZero())
	assert.Equal(t, 0, s.Row(1).Len())
}

func TestBuilderRejectsUnorderedColumns(t *testing.T) {
	b := NewBuilder(2)
	b.Set(0, 1, 1)
	assert.Panics(t, func() { b.Set(0, 0, 1) })
}

func TestDot(t *testing.T) {
	a := Row{Index: []int{0, 2, 5}, Value: []float64{1, 2, 3}}
	b := Row{Index: []int{1, 2, 5, 7}, Value: []float64{4, 5, 6, 7}}

	assert.Equal(t, 2.0*5+3*6, Dot(a, b))
	assert.Equal(t, Dot(a, b), Dot(b, a))
	assert.Equal(t, 0.0, Dot(a, Row{}))
	assert.Equal(t, 1.0+4+9, Dot(a, a))
}
