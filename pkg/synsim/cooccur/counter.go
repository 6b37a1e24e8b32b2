package cooccur

import (
	"fmt"

	"github.com/cognicore/synsim/pkg/synsim/internalerr"
	"github.com/cognicore/synsim/pkg/synsim/vocab"
)

// DefaultWindow is the number of preceding in-vocabulary words a token is
// paired with.
const DefaultWindow = 4

// Counter slides a fixed-size window over documents and accumulates
// co-occurrence counts against a closed vocabulary.
type Counter struct {
	vocab  *vocab.Vocabulary
	window int
	matrix *Matrix
	buf    []int

	docs    int64
	tokens  int64
	skipped int64
}

// NewCounter creates a counter for the given vocabulary and window size.
func NewCounter(v *vocab.Vocabulary, window int) (*Counter, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window size %d: %w", window, internalerr.ErrInvalidConfig)
	}
	return &Counter{
		vocab:  v,
		window: window,
		matrix: NewMatrix(v.Len()),
		buf:    make([]int, 0, window+1),
	}, nil
}

// AddDocument counts every window pair of one document.
// The window starts empty for each document.
func (c *Counter) AddDocument(tokens []string) {
	c.docs++
	win := c.buf[:0]

	for _, tok := range tokens {
		current, ok := c.vocab.Lookup(tok)
		if !ok {
			c.skipped++
			continue
		}
		c.tokens++

		for _, previous := range win {
			c.matrix.addPair(current, previous)
		}

		win = append(win, current)
		if len(win) > c.window {
			copy(win, win[1:])
			win = win[:c.window]
		}
	}

	c.buf = win[:0]
}

// Matrix returns the accumulated counts.
func (c *Counter) Matrix() *Matrix {
	return c.matrix
}

// Window returns the configured window size.
func (c *Counter) Window() int {
	return c.window
}

// Docs returns the number of documents processed.
func (c *Counter) Docs() int64 {
	return c.docs
}

// Tokens returns the number of in-vocabulary tokens seen.
func (c *Counter) Tokens() int64 {
	return c.tokens
}

// Skipped returns the number of tokens ignored because they are not in
// the vocabulary.
func (c *Counter) Skipped() int64 {
	return c.skipped
}

// Count builds the co-occurrence matrix for in-memory documents.
func Count(v *vocab.Vocabulary, docs [][]string, window int) (*Matrix, error) {
	c, err := NewCounter(v, window)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		c.AddDocument(doc)
	}
	return c.Matrix(), nil
}
