package analytics

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/synsim/pkg/synsim"
)

// DefaultTopWords is the number of most-connected words reported.
const DefaultTopWords = 20

// WordCount pairs a word with its marginal count.
type WordCount struct {
	Word     string `json:"word"`
	Marginal int64  `json:"marginal"`
}

// Stats summarizes a built model.
type Stats struct {
	VocabSize     int         `json:"vocab_size"`
	Documents     int64       `json:"documents"`
	Tokens        int64       `json:"tokens"`
	Window        int         `json:"window"`
	Total         int64       `json:"total"` // sum of all co-occurrence cells
	Pairs         int64       `json:"pairs"` // window pairs observed (Total / 2)
	NonZeroCounts int         `json:"nonzero_counts"`
	NonZeroPPMI   int         `json:"nonzero_ppmi"`
	Density       float64     `json:"density"`   // NonZeroPPMI / VocabSize²
	ZeroRows      int         `json:"zero_rows"` // words that can never be compared
	MeanPPMI      float64     `json:"mean_ppmi"` // over non-zero cells
	TopWords      []WordCount `json:"top_words"`
}

// Analyze computes Stats for m, listing the topK words with the largest
// marginal counts. Ties are broken by vocabulary order.
func Analyze(m *synsim.Model, topK int) Stats {
	v := m.Vocabulary()
	counts := m.Counts()
	ppmi := m.PPMI()

	s := Stats{
		VocabSize:     v.Len(),
		Documents:     m.Documents(),
		Tokens:        m.Tokens(),
		Window:        m.Window(),
		Total:         counts.Total(),
		Pairs:         counts.Total() / 2,
		NonZeroCounts: counts.NonZero(),
		NonZeroPPMI:   ppmi.NonZero(),
	}
	if s.VocabSize > 0 {
		n := float64(s.VocabSize)
		s.Density = float64(s.NonZeroPPMI) / (n * n)
	}

	var sum float64
	for i := 0; i < ppmi.Size(); i++ {
		row := ppmi.Row(i)
		if row.Len() == 0 {
			s.ZeroRows++
			continue
		}
		sum += floats.Sum(row.Value)
	}
	if s.NonZeroPPMI > 0 {
		s.MeanPPMI = sum / float64(s.NonZeroPPMI)
	}

	s.TopWords = topWords(m, topK)
	return s
}

func topWords(m *synsim.Model, k int) []WordCount {
	v := m.Vocabulary()
	counts := m.Counts()
	if k <= 0 || v.Len() == 0 {
		return nil
	}

	order := make([]int, v.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts.Marginal(order[a]) > counts.Marginal(order[b])
	})
	if len(order) > k {
		order = order[:k]
	}

	out := make([]WordCount, len(order))
	for i, idx := range order {
		out[i] = WordCount{Word: v.Word(idx), Marginal: counts.Marginal(idx)}
	}
	return out
}
