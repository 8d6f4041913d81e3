package tabview

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ParseOptions configures how delimited text is parsed.
//
// Row width policy: a row with fewer fields than the header is padded with
// null cells; a row with more fields is truncated to the header width. This
// mirrors the leniency of the original data source and is applied
// consistently, never flagged as an error.
//
// Failure policy: the parser aborts the whole operation on the first
// malformed row and returns a ParseError carrying row, column, and reason.
//
// Example:
//
//	opts := NewParseOptions().
//		WithDelimiter('\t').
//		WithHeader(false)
type ParseOptions struct {
	// Delimiter is the field separator (default comma).
	Delimiter rune
	// HasHeader treats the first non-skipped row as the header. When false,
	// synthetic column names c1..cN are generated from the first row width.
	HasHeader bool
	// InferTypes enables per-cell type inference (integer, float, boolean,
	// text). When false every non-empty field is text. Empty fields are
	// null either way.
	InferTypes bool
	// SkipBlankLines drops rows whose every field is empty. Lines with no
	// fields at all are always skipped by the underlying reader.
	SkipBlankLines bool
}

// NewParseOptions creates default parse options: comma delimiter, header
// row, type inference, blank lines skipped.
func NewParseOptions() ParseOptions {
	return ParseOptions{
		Delimiter:      csvDelimiter,
		HasHeader:      true,
		InferTypes:     true,
		SkipBlankLines: true,
	}
}

// WithDelimiter sets the field delimiter.
func (o ParseOptions) WithDelimiter(delimiter rune) ParseOptions {
	o.Delimiter = delimiter
	return o
}

// WithHeader controls whether the first row is treated as the header.
func (o ParseOptions) WithHeader(hasHeader bool) ParseOptions {
	o.HasHeader = hasHeader
	return o
}

// WithTypeInference controls per-cell type inference.
func (o ParseOptions) WithTypeInference(infer bool) ParseOptions {
	o.InferTypes = infer
	return o
}

// WithSkipBlankLines controls whether all-empty rows are dropped.
func (o ParseOptions) WithSkipBlankLines(skip bool) ParseOptions {
	o.SkipBlankLines = skip
	return o
}

// delimiterOrDefault returns the configured delimiter, falling back to
// comma for the zero value.
func (o ParseOptions) delimiterOrDefault() rune {
	if o.Delimiter == 0 {
		return csvDelimiter
	}
	return o.Delimiter
}

// Parse reads delimited text and produces a Store holding the header and
// all typed records. It is a pure function over the input and options.
func Parse(r io.Reader, opts ParseOptions) (*Store, error) {
	var (
		header  Header
		records []Record
	)
	err := parseRows(context.Background(), r, opts, ChunkSize(DefaultRowsPerChunk), func(h Header, chunk []Record) error {
		header = h
		records = append(records, chunk...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewStore(header, records), nil
}

// ParseString parses delimited text held in a string.
func ParseString(s string, opts ParseOptions) (*Store, error) {
	return Parse(strings.NewReader(s), opts)
}

// ParseChunks reads delimited text and delivers typed records to fn in
// chunks of at most chunkSize rows. Chunks arrive in input order, chunk N
// strictly before chunk N+1, so the result is equivalent to an unchunked
// pass. The header is passed with every chunk. The context is checked
// between chunks; cancellation aborts with ErrContextCancelled.
func ParseChunks(ctx context.Context, r io.Reader, opts ParseOptions, chunkSize ChunkSize, fn func(header Header, records []Record) error) error {
	return parseRows(ctx, r, opts, chunkSize, fn)
}

// parseRows is the streaming core shared by Parse and ParseChunks.
func parseRows(ctx context.Context, r io.Reader, opts ParseOptions, chunkSize ChunkSize, fn func(Header, []Record) error) error {
	csvReader := csv.NewReader(r)
	csvReader.Comma = opts.delimiterOrDefault()
	// Row width mismatches are handled by the pad/truncate policy, not by
	// the reader.
	csvReader.FieldsPerRecord = -1

	size := chunkSize.Int()
	if size < MinChunkSize {
		size = DefaultRowsPerChunk
	}

	var (
		header      Header
		headerKnown bool
		chunk       []Record
		rowNumber   int
		delivered   bool
	)

	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		if err := fn(header, chunk); err != nil {
			return fmt.Errorf("chunk processor error: %w", err)
		}
		chunk = nil
		delivered = true
		return nil
	}

	for {
		row, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return parseErrorFromCSV(err)
		}
		rowNumber++

		if err := validateUTF8(row, rowNumber); err != nil {
			return err
		}

		if opts.SkipBlankLines && isBlankRow(row) {
			continue
		}

		if !headerKnown {
			if opts.HasHeader {
				header = headerFromRow(row)
				headerKnown = true
				continue
			}
			header = syntheticHeader(len(row))
			headerKnown = true
			// The first row is data in headerless mode; fall through.
		}

		chunk = append(chunk, alignRow(row, len(header), opts.InferTypes))

		if len(chunk) >= size {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("%w: %w", ErrContextCancelled, err)
			}
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if !headerKnown {
		return ErrEmptyData
	}
	if err := flush(); err != nil {
		return err
	}
	// Deliver the header even when there are no data rows, so callers can
	// build an empty store.
	if !delivered {
		return fn(header, nil)
	}
	return nil
}

// headerFromRow derives the header from the first row. Each token is
// trimmed of surrounding whitespace. Uniqueness is NOT enforced: display is
// positional and duplicate names are legal.
func headerFromRow(row []string) Header {
	names := make([]string, len(row))
	for i, name := range row {
		names[i] = strings.TrimSpace(name)
	}
	return newHeader(names)
}

// syntheticHeader generates c1..cN column names for headerless input.
func syntheticHeader(width int) Header {
	names := make([]string, width)
	for i := range names {
		names[i] = fmt.Sprintf("c%d", i+1)
	}
	return newHeader(names)
}

// alignRow converts raw fields into a typed record of exactly width cells:
// short rows are padded with null, long rows truncated.
func alignRow(row []string, width int, infer bool) Record {
	cells := make([]Value, width)
	for i := range cells {
		if i >= len(row) {
			cells[i] = Null()
			continue
		}
		if infer {
			cells[i] = InferValue(row[i])
		} else {
			cells[i] = RawValue(row[i])
		}
	}
	return newRecord(cells)
}

// isBlankRow reports whether every field in the row is empty.
func isBlankRow(row []string) bool {
	for _, field := range row {
		if field != "" {
			return false
		}
	}
	return true
}

// validateUTF8 rejects fields that are not valid UTF-8 text.
func validateUTF8(row []string, rowNumber int) error {
	for i, field := range row {
		if !utf8.ValidString(field) {
			return newParseError(rowNumber, i+1, "invalid UTF-8 encoding")
		}
	}
	return nil
}

// parseErrorFromCSV maps an encoding/csv error (malformed quoting or
// escaping) to a ParseError with row and column detail.
func parseErrorFromCSV(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return newParseError(csvErr.Line, csvErr.Column, csvErr.Err.Error())
	}
	return newParseError(0, 0, err.Error())
}
