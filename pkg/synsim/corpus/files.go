package corpus

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/synsim/pkg/synsim/internalerr"
)

// Format describes how a corpus file is split into documents.
type Format string

const (
	// FormatPlain treats each file as one document.
	FormatPlain Format = "plain"
	// FormatLines treats each non-blank line as one document.
	FormatLines Format = "lines"
	// FormatWiki reads WikiExtractor output: every <doc> element is a document.
	FormatWiki Format = "wiki"
	// FormatJSONL reads one JSON object per line and uses its "text" field.
	FormatJSONL Format = "jsonl"
)

// ParseFormat validates a format name. The empty string means FormatPlain.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPlain, nil
	case FormatPlain, FormatLines, FormatWiki, FormatJSONL:
		return f, nil
	default:
		return "", fmt.Errorf("corpus format %q: %w", s, internalerr.ErrInvalidConfig)
	}
}

const maxLineSize = 16 * 1024 * 1024

// Files is a Source backed by files on disk. Each Walk re-reads them.
type Files struct {
	Paths  []string
	Format Format

	// Warn, if set, is told about skipped malformed JSONL records.
	Warn func(path string, line int, err error)
}

// Walk implements Source.
func (f Files) Walk(ctx context.Context, fn func(Document) error) error {
	format := f.Format
	if format == "" {
		format = FormatPlain
	}
	for _, path := range f.Paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f.walkFile(ctx, path, format, fn); err != nil {
			return err
		}
	}
	return nil
}

func (f Files) walkFile(ctx context.Context, path string, format Format, fn func(Document) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open corpus file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatPlain:
		err = readPlain(file, path, fn)
	case FormatLines:
		err = readLines(ctx, file, path, fn)
	case FormatWiki:
		err = readWiki(ctx, file, path, fn)
	case FormatJSONL:
		err = readJSONL(ctx, file, path, fn, f.Warn)
	default:
		err = fmt.Errorf("corpus format %q: %w", format, internalerr.ErrInvalidConfig)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return sc
}

func readPlain(r io.Reader, path string, fn func(Document) error) error {
	var tokens []string
	sc := newScanner(r)
	for sc.Scan() {
		tokens = append(tokens, Tokenize(sc.Text())...)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return fn(Document{ID: path, Tokens: tokens})
}

func readLines(ctx context.Context, r io.Reader, path string, fn func(Document) error) error {
	sc := newScanner(r)
	line := 0
	for sc.Scan() {
		line++
		tokens := Tokenize(sc.Text())
		if len(tokens) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(Document{ID: path + ":" + strconv.Itoa(line), Tokens: tokens}); err != nil {
			return err
		}
	}
	return sc.Err()
}

// readWiki splits WikiExtractor output on <doc id=".." title=".."> elements.
// Text outside an element is ignored.
func readWiki(ctx context.Context, r io.Reader, path string, fn func(Document) error) error {
	z := html.NewTokenizer(r)
	var (
		inDoc  bool
		id     string
		tokens []string
		seq    int
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				if inDoc && len(tokens) > 0 {
					return fn(Document{ID: id, Tokens: tokens})
				}
				return nil
			}
			return z.Err()
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "doc" {
				continue
			}
			seq++
			inDoc = true
			tokens = nil
			id = path + "#" + strconv.Itoa(seq)
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "id" && len(val) > 0 {
					id = path + "#" + string(val)
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) != "doc" || !inDoc {
				continue
			}
			inDoc = false
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(Document{ID: id, Tokens: tokens}); err != nil {
				return err
			}
		case html.TextToken:
			if inDoc {
				tokens = append(tokens, Tokenize(string(z.Text()))...)
			}
		}
	}
}

type jsonlRecord struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func readJSONL(ctx context.Context, r io.Reader, path string, fn func(Document) error, warn func(string, int, error)) error {
	sc := newScanner(r)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var rec jsonlRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			if warn != nil {
				warn(path, line, err)
			}
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		id := rec.ID
		if id == "" {
			id = path + ":" + strconv.Itoa(line)
		}
		if err := fn(Document{ID: id, Tokens: Tokenize(rec.Text)}); err != nil {
			return err
		}
	}
	return sc.Err()
}
