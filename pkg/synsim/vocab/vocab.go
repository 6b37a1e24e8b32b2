package vocab

import (
	"regexp"
	"strings"
)

// stripped is the character class removed from every raw token.
var stripped = regexp.MustCompile(`[0-9$*+,:=?/\[\]@#|'<>.^"()%!-]`)

// Normalize lower-cases a raw token and removes digits and punctuation.
// An empty result means the token is discarded.
func Normalize(token string) string {
	return strings.ToLower(stripped.ReplaceAllString(token, ""))
}

// Vocabulary is the closed, indexed set of words seen in a corpus.
// Indices follow first-occurrence order and never change once built.
type Vocabulary struct {
	words []string
	index map[string]int
}

// Len returns the number of words.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.words)
}

// Word returns the word stored at index i.
func (v *Vocabulary) Word(i int) string {
	return v.words[i]
}

// Index returns the index of an already-normalized word.
func (v *Vocabulary) Index(word string) (int, bool) {
	if v == nil {
		return 0, false
	}
	i, ok := v.index[word]
	return i, ok
}

// Contains reports whether word is part of the vocabulary.
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.Index(word)
	return ok
}

// Lookup normalizes a raw token and resolves it to an index.
func (v *Vocabulary) Lookup(token string) (int, bool) {
	w := Normalize(token)
	if w == "" {
		return 0, false
	}
	return v.Index(w)
}

// Words returns a copy of the words in index order.
func (v *Vocabulary) Words() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}

// Builder collects distinct normalized words in first-seen order.
type Builder struct {
	words []string
	index map[string]int
}

// NewBuilder creates an empty vocabulary builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int)}
}

// Add normalizes a raw token and appends it if it is new.
// It returns the word's index and whether the token survived normalization.
func (b *Builder) Add(token string) (int, bool) {
	w := Normalize(token)
	if w == "" {
		return 0, false
	}
	if i, ok := b.index[w]; ok {
		return i, true
	}
	i := len(b.words)
	b.words = append(b.words, w)
	b.index[w] = i
	return i, true
}

// AddDocument adds every token of one document.
func (b *Builder) AddDocument(tokens []string) {
	for _, tok := range tokens {
		b.Add(tok)
	}
}

// Len returns the number of words collected so far.
func (b *Builder) Len() int {
	return len(b.words)
}

// Build closes the vocabulary. The builder is reset and may be reused.
func (b *Builder) Build() *Vocabulary {
	v := &Vocabulary{words: b.words, index: b.index}
	b.words = nil
	b.index = make(map[string]int)
	return v
}

// Build is a convenience wrapper for in-memory documents.
func Build(docs [][]string) *Vocabulary {
	b := NewBuilder()
	for _, doc := range docs {
		b.AddDocument(doc)
	}
	return b.Build()
}
