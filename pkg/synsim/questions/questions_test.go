package questions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/synsim/pkg/synsim/evaluate"
	"github.com/cognicore/synsim/pkg/synsim/internalerr"
)

const toeflSample = `1.	enormously
a.	appropriately
b.	uniquely
c.	tremendously
d.	decidedly

2.	provisions
	a.	stipulations
	b.	interrelations
	c.	jurisdictions
	d.	interpretations

1	(a,a,1)	c

2	(a,a,1)	a
`

func TestParseTOEFL(t *testing.T) {
	qs, err := ParseTOEFL(strings.NewReader(toeflSample))
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "enormously", qs[0].Target)
	assert.Equal(t, []string{"appropriately", "uniquely", "tremendously", "decidedly"}, qs[0].Candidates)
	assert.Equal(t, evaluate.Letter('c'), qs[0].Answer)
	assert.Equal(t, "tremendously", qs[0].Expected())

	assert.Equal(t, "provisions", qs[1].Target)
	assert.Equal(t, "stipulations", qs[1].Expected())
}

func TestParseTOEFLErrors(t *testing.T) {
	cases := map[string]string{
		"missing answer": "1.\tbig\na.\tlarge\nb.\tsmall\nc.\ttiny\nd.\thuge\n",
		"three options":  "1.\tbig\na.\tlarge\nb.\tsmall\nc.\ttiny\n1\tx\ta\n",
		"option order":   "1.\tbig\nb.\tlarge\n",
		"orphan option":  "a.\tlarge\n",
		"garbage":        "hello world\n",
		"duplicate stem": "1.\tbig\n1.\tsmall\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTOEFL(strings.NewReader(input))
			require.Error(t, err)
			assert.ErrorIs(t, err, internalerr.ErrMalformedQuestion)
		})
	}
}

func TestParseESL(t *testing.T) {
	input := `# ESL sample
1. [rusty] "|corroded|black|dirty|painted":a
2. [brass] "|metal|wood|stone|plastic":metal

3. [Spin] "|Twirl|sing|dance|run":b
`
	qs, err := ParseESL(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, qs, 3)

	assert.Equal(t, "rusty", qs[0].Target)
	assert.Equal(t, []string{"corroded", "black", "dirty", "painted"}, qs[0].Candidates)
	assert.Equal(t, "corroded", qs[0].Expected())

	assert.Equal(t, evaluate.Letter('a'), qs[1].Answer)
	assert.Equal(t, "spin", qs[2].Target)
	assert.Equal(t, "twirl", qs[2].Candidates[0])
	assert.Equal(t, "sing", qs[2].Expected())
}

func TestParseESLErrors(t *testing.T) {
	cases := map[string]string{
		"no target":       `"|a|b|c|d":a`,
		"too few":         `[x] "|a|b|c":a`,
		"no answer mark":  `[x] "|a|b|c|d"`,
		"unknown answer":  `[x] "|a|b|c|d":zebra`,
		"letter too high": `[x] "|a|b|c|d":e`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseESL(strings.NewReader(input))
			require.Error(t, err)
			assert.ErrorIs(t, err, internalerr.ErrMalformedQuestion)
		})
	}
}

func TestParseYAML(t *testing.T) {
	input := `questions:
  - target: Enormously
    candidates: [appropriately, uniquely, tremendously, decidedly]
    answer: c
  - target: quick
    candidates: [fast, slow, red, heavy]
    answer: A
`
	qs, err := ParseYAML(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "enormously", qs[0].Target)
	assert.Equal(t, "tremendously", qs[0].Expected())
	assert.Equal(t, "fast", qs[1].Expected())
}

func TestParseYAMLErrors(t *testing.T) {
	_, err := ParseYAML(strings.NewReader("questions:\n  - target: a\n    candidates: [b, c]\n    answer: a\n"))
	assert.ErrorIs(t, err, internalerr.ErrMalformedQuestion)

	_, err = ParseYAML(strings.NewReader("questions:\n  - target: a\n    candidates: [b, c, d, e]\n    answer: f\n"))
	assert.ErrorIs(t, err, internalerr.ErrMalformedQuestion)

	_, err = ParseYAML(strings.NewReader("questions: [unterminated"))
	assert.ErrorIs(t, err, internalerr.ErrMalformedQuestion)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toefl.set")
	require.NoError(t, os.WriteFile(path, []byte(toeflSample), 0o644))

	qs, err := Load(path, FormatTOEFL)
	require.NoError(t, err)
	assert.Len(t, qs, 2)

	_, err = Load(filepath.Join(dir, "missing"), FormatESL)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(path, Format("csv"))
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" TOEFL ")
	require.NoError(t, err)
	assert.Equal(t, FormatTOEFL, f)

	_, err = ParseFormat("")
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}
