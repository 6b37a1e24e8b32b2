package evaluate

import (
	"fmt"
	"strings"

	"github.com/cognicore/synsim/pkg/synsim/internalerr"
)

// Choices is the number of candidates every question offers.
const Choices = 4

// Letter identifies a candidate position: 'a' through 'd'.
type Letter byte

var letterIndex = [256]int8{'a': 1, 'b': 2, 'c': 3, 'd': 4}

// Index returns the 0-based candidate position for the letter.
func (l Letter) Index() (int, bool) {
	i := letterIndex[l]
	return int(i) - 1, i != 0
}

func (l Letter) String() string {
	return string(rune(l))
}

// LetterFor returns the letter naming candidate position i.
func LetterFor(i int) (Letter, error) {
	if i < 0 || i >= Choices {
		return 0, fmt.Errorf("candidate position %d: %w", i, internalerr.ErrInvalidInput)
	}
	return Letter('a' + i), nil
}

// ParseLetter accepts a single answer letter, case-insensitive.
func ParseLetter(s string) (Letter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 1 {
		return 0, fmt.Errorf("answer %q: %w", s, internalerr.ErrMalformedQuestion)
	}
	l := Letter(s[0])
	if _, ok := l.Index(); !ok {
		return 0, fmt.Errorf("answer %q out of range a-d: %w", s, internalerr.ErrMalformedQuestion)
	}
	return l, nil
}

// Question is one multiple-choice synonym item.
type Question struct {
	Target     string
	Candidates []string
	Answer     Letter
}

// Validate checks the candidate count and answer letter.
func (q Question) Validate() error {
	if len(q.Candidates) != Choices {
		return fmt.Errorf("question %q has %d candidates, want %d: %w",
			q.Target, len(q.Candidates), Choices, internalerr.ErrMalformedQuestion)
	}
	if _, ok := q.Answer.Index(); !ok {
		return fmt.Errorf("question %q answer %q out of range a-d: %w",
			q.Target, q.Answer.String(), internalerr.ErrMalformedQuestion)
	}
	return nil
}

// Expected returns the correct candidate word. The question must be valid.
func (q Question) Expected() string {
	i, _ := q.Answer.Index()
	return q.Candidates[i]
}
