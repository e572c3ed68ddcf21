package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding indicates the configured character set is not recognized.
var ErrUnknownEncoding = errors.New("unknown character encoding")

// delimiterCandidates are tried in order when sniffing; ties go to the earlier one.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

type csvWorkbook struct {
	path string
	opts OpenOptions
}

func openCSV(path string, opts OpenOptions) (Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	if _, err := decoderFor(opts.Encoding); err != nil {
		return nil, err
	}
	return &csvWorkbook{path: path, opts: opts}, nil
}

func (w *csvWorkbook) Format() Format { return FormatCSV }

func (w *csvWorkbook) SheetNames() []string { return nil }

func (w *csvWorkbook) Rows(string) ([][]string, error) {
	fd, err := os.Open(w.path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	dec, err := decoderFor(w.opts.Encoding)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(transform.NewReader(fd, dec))
	if err != nil {
		return nil, fmt.Errorf("decode csv %s: %w", w.path, err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.Comma = w.opts.Delimiter
	if reader.Comma == 0 {
		reader.Comma = sniffDelimiter(data)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", w.path, err)
	}
	return rows, nil
}

func (w *csvWorkbook) Close() error { return nil }

// decoderFor returns a transformer that decodes the named charset to UTF-8.
// A byte order mark always wins over the configured charset.
func decoderFor(encoding string) (transform.Transformer, error) {
	name := strings.ToLower(strings.TrimSpace(encoding))
	if name == "" || name == "utf-8" || name == "utf8" {
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}
	return unicode.BOMOverride(enc.NewDecoder()), nil
}

// sniffDelimiter picks the candidate separator that occurs most often in the
// first line, ignoring quoted sections.
func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexAny(data, "\r\n"); idx >= 0 {
		line = data[:idx]
	}

	counts := make(map[rune]int, len(delimiterCandidates))
	quoted := false
	for _, r := range string(line) {
		if r == '"' {
			quoted = !quoted
			continue
		}
		if !quoted {
			counts[r]++
		}
	}

	best := delimiterCandidates[0]
	for _, c := range delimiterCandidates[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}
