package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/synsim/pkg/synsim/internalerr"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "synsim.yaml", `window: 3
cache_size: 1024
corpus:
  root: extracted
  include: ["**/wiki_*"]
  sample: 25
  seed: 7
  format: wiki
questions:
  - name: toefl
    path: sets/toefl.set
    format: toefl
  - path: /abs/esl.set
    format: esl
report: out/report.json
ledger: runs.db
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Window)
	assert.Equal(t, 1024, cfg.CacheSize)
	assert.Equal(t, filepath.Join(dir, "extracted"), cfg.Corpus.Root)
	assert.Equal(t, []string{"**/wiki_*"}, cfg.Corpus.Include)
	assert.Equal(t, 25, cfg.Corpus.Sample)
	assert.Equal(t, uint64(7), cfg.Corpus.Seed)
	assert.Equal(t, "wiki", cfg.Corpus.Format)
	require.Len(t, cfg.Questions, 2)
	assert.Equal(t, filepath.Join(dir, "sets", "toefl.set"), cfg.Questions[0].Path)
	assert.Equal(t, "/abs/esl.set", cfg.Questions[1].Path)
	assert.Equal(t, "esl.set", cfg.Questions[1].Name)
	assert.Equal(t, filepath.Join(dir, "out", "report.json"), cfg.Report)
	assert.Equal(t, filepath.Join(dir, "runs.db"), cfg.Ledger)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestDefaults(t *testing.T) {
	cfg := &Config{Corpus: Corpus{Root: "x"}}
	cfg.ApplyDefaults()

	assert.Equal(t, 4, cfg.Window)
	assert.Equal(t, []string{"**"}, cfg.Corpus.Include)
	assert.Equal(t, "plain", cfg.Corpus.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := &Config{
		Window:    -2,
		CacheSize: -1,
		Corpus:    Corpus{Sample: -1, Format: "xml"},
		Questions: []QuestionSet{
			{Name: "a", Format: "csv"},
			{Name: "a", Path: "p", Format: "esl"},
		},
		Log: Log{Format: "xml"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
	for _, want := range []string{"window", "cache_size", "corpus.root", "corpus.sample", "xml", "questions[0].path", "duplicate name", "log.format"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("/nonexistent/synsim.yaml")
	assert.Error(t, err)

	path := write(t, t.TempDir(), "bad.yaml", "window: [1, 2")
	_, err = Load(path)
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "corpus/a.txt", "the cat sat on the mat\n")
	write(t, dir, "corpus/b.txt", "the dog sat on the rug\n")
	write(t, dir, "corpus/skip.md", "ignored\n")
	write(t, dir, "q.yaml", `questions:
  - target: cat
    candidates: [dog, the, on, sat]
    answer: a
`)
	cfgPath := write(t, dir, "synsim.yaml", `corpus:
  root: corpus
  include: ["*.txt"]
questions:
  - name: mini
    path: q.yaml
    format: yaml
`)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	comp, err := (&Loader{Config: cfg}).Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, comp.Files, 2)
	require.Len(t, comp.Questions, 1)
	assert.Equal(t, "mini", comp.Questions[0].Name)
	assert.Len(t, comp.Questions[0].Questions, 1)
	assert.NotNil(t, comp.Corpus)
}

func TestLoaderRejectsInvalidConfig(t *testing.T) {
	_, err := (&Loader{Config: &Config{}}).Load(context.Background())
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestLoaderMissingQuestionSet(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "corpus/a.txt", "x y\n")
	cfg := &Config{
		Corpus:    Corpus{Root: filepath.Join(dir, "corpus")},
		Questions: []QuestionSet{{Name: "gone", Path: filepath.Join(dir, "gone.set"), Format: "esl"}},
	}
	cfg.ApplyDefaults()

	_, err := (&Loader{Config: cfg}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone")
}
