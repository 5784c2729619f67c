// Package csv loads a header-led CSV file fully into memory as a
// records.Table. Unlike a lenient streaming loader it fails the whole read on
// the first malformed row: downstream consumers rely on the output having
// exactly as many rows as the input, so rows are never skipped.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/aarguelles2/nTOU/internal/errs"
	"github.com/aarguelles2/nTOU/internal/records"
)

// Options configures the CSV parser. Zero values select sensible defaults.
type Options struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune

	// Encoding is the IANA name of the input character set. Empty or any UTF-8
	// alias reads the bytes as-is.
	Encoding string

	// Required lists header names that must be present.
	Required []string
}

// Parser parses CSV input according to Options. It is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse reads the header and every data row from r.
//
// Errors:
//   - *errs.SchemaError for an empty input, duplicate header names or missing
//     required columns.
//   - *errs.ParseError for a malformed row (bad quoting, wrong field count).
//   - *errs.IOError when the underlying reader fails.
func (p *Parser) Parse(r io.Reader) (*records.Table, error) {
	dec, err := decoderFor(p.opt.Encoding)
	if err != nil {
		return nil, err
	}
	if dec != nil {
		r = transform.NewReader(r, unicode.BOMOverride(dec))
	}

	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}

	h, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &errs.SchemaError{Reason: "empty input: no header row"}
	}
	if err != nil {
		return nil, readErr(0, err)
	}
	headers, err := normalizeHeaders(h)
	if err != nil {
		return nil, err
	}
	if missing := missingColumns(headers, p.opt.Required); len(missing) > 0 {
		return nil, &errs.SchemaError{Missing: missing}
	}

	// The header fixes the width; encoding/csv rejects mismatching rows.
	cr.FieldsPerRecord = len(headers)

	t := &records.Table{Header: headers}
	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readErr(line, err)
		}
		rec := make(records.Record, len(row))
		for i, val := range row {
			rec[headers[i]] = val
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// decoderFor resolves an IANA charset name. A nil decoder means the input is
// already UTF-8.
func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("input encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("input encoding %q is not supported", name)
	}
	return enc.NewDecoder(), nil
}

// readErr classifies an error from csv.Reader.Read.
func readErr(line int, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &errs.ParseError{Row: line, Err: pe.Err}
	}
	return &errs.IOError{Op: "read", Err: err}
}

// normalizeHeaders trims header cells and rejects duplicates. Names are
// otherwise kept verbatim; the tariff schema is case-sensitive.
func normalizeHeaders(h []string) ([]string, error) {
	res := make([]string, len(h))
	seen := make(map[string]struct{}, len(h))
	for i, col := range h {
		if i == 0 {
			// Excel exports lead with a UTF-8 byte order mark.
			col = strings.TrimPrefix(col, "\uFEFF")
		}
		c := strings.TrimSpace(col)
		if _, dup := seen[c]; dup {
			return nil, &errs.SchemaError{Reason: fmt.Sprintf("duplicate column %q", c)}
		}
		seen[c] = struct{}{}
		res[i] = c
	}
	return res, nil
}

// missingColumns returns the required names absent from headers, in the
// order they were required.
func missingColumns(headers, required []string) []string {
	have := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		have[h] = struct{}{}
	}
	var missing []string
	for _, r := range required {
		if _, ok := have[r]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}
