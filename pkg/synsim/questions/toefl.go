package questions

import (
	"bufio"
	"io"
	"regexp"
	"sort"
	"strconv"

	"github.com/cognicore/synsim/pkg/synsim/evaluate"
)

var (
	toeflStem   = regexp.MustCompile(`^\s*(\d+)\.\s+(\S.*?)\s*$`)
	toeflOption = regexp.MustCompile(`^\s*([a-dA-D])\.\s+(\S.*?)\s*$`)
	toeflAnswer = regexp.MustCompile(`^\s*(\d+)\b.*?([a-dA-D])\s*$`)
)

type toeflItem struct {
	line    int
	target  string
	options []string
}

// ParseTOEFL reads the TOEFL synonym test layout: numbered stems
// ("12.<tab>word"), four lettered options ("a.<tab>word") per stem, and an
// answer key whose lines start with the stem number and end with the
// correct letter. Stems and key may live in the same stream.
func ParseTOEFL(r io.Reader) ([]evaluate.Question, error) {
	items := make(map[int]*toeflItem)
	answers := make(map[int]evaluate.Letter)
	var current *toeflItem

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if skipLine(text) {
			continue
		}

		if m := toeflStem.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			if _, dup := items[n]; dup {
				return nil, malformed(line, "duplicate question %d", n)
			}
			current = &toeflItem{line: line, target: cleanWord(m[2])}
			items[n] = current
			continue
		}
		if m := toeflOption.FindStringSubmatch(text); m != nil {
			if current == nil {
				return nil, malformed(line, "option before any question")
			}
			want, _ := evaluate.LetterFor(len(current.options))
			if evaluate.Letter(cleanWord(m[1])[0]) != want {
				return nil, malformed(line, "expected option %s, got %s", want, m[1])
			}
			current.options = append(current.options, cleanWord(m[2]))
			continue
		}
		if m := toeflAnswer.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			l, err := evaluate.ParseLetter(m[2])
			if err != nil {
				return nil, malformed(line, "%v", err)
			}
			answers[n] = l
			current = nil
			continue
		}
		return nil, malformed(line, "unrecognised line %q", text)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	numbers := make([]int, 0, len(items))
	for n := range items {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	qs := make([]evaluate.Question, 0, len(numbers))
	for _, n := range numbers {
		it := items[n]
		ans, ok := answers[n]
		if !ok {
			return nil, malformed(it.line, "question %d has no answer", n)
		}
		q := evaluate.Question{Target: it.target, Candidates: it.options, Answer: ans}
		if err := q.Validate(); err != nil {
			return nil, malformed(it.line, "question %d: %v", n, err)
		}
		qs = append(qs, q)
	}
	return qs, nil
}
