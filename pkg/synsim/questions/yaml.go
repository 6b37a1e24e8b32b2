package questions

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/synsim/pkg/synsim/evaluate"
	"github.com/cognicore/synsim/pkg/synsim/internalerr"
)

// Set is the YAML layout of a question set.
type Set struct {
	Questions []Item `yaml:"questions"`
}

// Item is one question in a YAML set.
type Item struct {
	Target     string   `yaml:"target"`
	Candidates []string `yaml:"candidates"`
	Answer     string   `yaml:"answer"`
}

// ParseYAML reads a question set written as
//
//	questions:
//	  - target: enormously
//	    candidates: [appropriately, uniquely, tremendously, decidedly]
//	    answer: c
func ParseYAML(r io.Reader) ([]evaluate.Question, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("%v: %w", err, internalerr.ErrMalformedQuestion)
	}

	qs := make([]evaluate.Question, 0, len(set.Questions))
	for i, it := range set.Questions {
		cands := make([]string, len(it.Candidates))
		for k, c := range it.Candidates {
			cands[k] = cleanWord(c)
		}
		letter, err := evaluate.ParseLetter(it.Answer)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		q := evaluate.Question{Target: cleanWord(it.Target), Candidates: cands, Answer: letter}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		qs = append(qs, q)
	}
	return qs, nil
}
