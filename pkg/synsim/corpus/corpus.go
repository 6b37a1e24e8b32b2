// Package corpus supplies documents to the model builder. A document is a
// sequence of raw whitespace-delimited tokens; normalization happens later.
package corpus

import (
	"context"
	"strconv"
	"strings"
)

// Document is one unit of text. Co-occurrence windows never cross
// document boundaries.
type Document struct {
	ID     string
	Tokens []string
}

// Source yields documents in a fixed order. Every call to Walk starts
// again from the first document.
type Source interface {
	Walk(ctx context.Context, fn func(Document) error) error
}

// Tokenize splits a line of raw text on whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// Documents is an in-memory Source.
type Documents []Document

// Walk implements Source.
func (d Documents) Walk(ctx context.Context, fn func(Document) error) error {
	for _, doc := range d {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}

// Text builds an in-memory Source with one document per string.
func Text(texts ...string) Documents {
	docs := make(Documents, len(texts))
	for i, t := range texts {
		docs[i] = Document{ID: strconv.Itoa(i), Tokens: Tokenize(t)}
	}
	return docs
}
