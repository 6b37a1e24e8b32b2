package questions

import (
	"bufio"
	"io"
	"strings"

	"github.com/cognicore/synsim/pkg/synsim/evaluate"
)

// ParseESL reads the ESL synonym test layout, one question per line:
//
//	[target] ... |cand1|cand2|cand3|cand4":answer
//
// The answer is either a letter a-d or one of the candidate words.
func ParseESL(r io.Reader) ([]evaluate.Question, error) {
	var qs []evaluate.Question
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if skipLine(text) {
			continue
		}
		q, err := parseESLLine(line, text)
		if err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return qs, nil
}

func parseESLLine(line int, text string) (evaluate.Question, error) {
	open := strings.Index(text, "[")
	end := strings.Index(text, "]")
	if open < 0 || end < open {
		return evaluate.Question{}, malformed(line, "missing [target]")
	}
	target := cleanWord(text[open+1 : end])
	if target == "" {
		return evaluate.Question{}, malformed(line, "empty target")
	}

	rest := text[end+1:]
	bar := strings.Index(rest, "|")
	if bar < 0 {
		return evaluate.Question{}, malformed(line, "missing candidate list")
	}
	rest = rest[bar+1:]
	stop := strings.Index(rest, `":`)
	if stop < 0 {
		return evaluate.Question{}, malformed(line, `missing '":' before answer`)
	}

	parts := strings.Split(rest[:stop], "|")
	if len(parts) != evaluate.Choices {
		return evaluate.Question{}, malformed(line, "%d candidates, want %d", len(parts), evaluate.Choices)
	}
	cands := make([]string, len(parts))
	for i, p := range parts {
		cands[i] = cleanWord(p)
	}

	answer := cleanWord(rest[stop+2:])
	letter, err := eslAnswer(answer, cands)
	if err != nil {
		return evaluate.Question{}, malformed(line, "answer %q: %v", answer, err)
	}
	return evaluate.Question{Target: target, Candidates: cands, Answer: letter}, nil
}

func eslAnswer(answer string, cands []string) (evaluate.Letter, error) {
	if len(answer) == 1 {
		return evaluate.ParseLetter(answer)
	}
	for i, c := range cands {
		if c == answer {
			return evaluate.LetterFor(i)
		}
	}
	return evaluate.ParseLetter(answer)
}
