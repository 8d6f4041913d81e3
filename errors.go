package tabview

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyData indicates that the input contains no rows at all.
	ErrEmptyData = errors.New("tabview: empty data source")

	// ErrUnsupportedFormat indicates an unsupported dataset format.
	ErrUnsupportedFormat = errors.New("tabview: unsupported dataset format")

	// ErrInvalidData indicates malformed or invalid input data.
	ErrInvalidData = errors.New("tabview: invalid data format")

	// ErrDataTooLarge indicates the input exceeds the configured size limit.
	ErrDataTooLarge = errors.New("tabview: input exceeds size limit")

	// ErrNoStore indicates that no dataset is currently loaded.
	ErrNoStore = errors.New("tabview: no dataset loaded")

	// ErrInvalidColumn indicates a column index outside the header range.
	ErrInvalidColumn = errors.New("tabview: invalid column index")

	// ErrInvalidPageSize indicates a non-positive page size.
	ErrInvalidPageSize = errors.New("tabview: page size must be positive")

	// ErrInvalidPageIndex indicates a negative page index.
	ErrInvalidPageIndex = errors.New("tabview: page index must not be negative")

	// ErrContextCancelled indicates the context was cancelled during a load.
	ErrContextCancelled = errors.New("tabview: context cancelled")

	// errBzip2WriteUnsupported is returned when bzip2 output is requested.
	// The standard library ships a bzip2 reader but no writer.
	errBzip2WriteUnsupported = errors.New("tabview: bzip2 compression is not supported for writing")
)

// ParseIssue describes a single malformed location in the input.
type ParseIssue struct {
	// Row is the 1-based line number of the offending row.
	Row int
	// Column is the 1-based column position within the row, or 0 if unknown.
	Column int
	// Reason is a human-readable description of what was malformed.
	Reason string
}

// String returns the issue in "row N, column M: reason" form.
func (pi ParseIssue) String() string {
	if pi.Column > 0 {
		return fmt.Sprintf("row %d, column %d: %s", pi.Row, pi.Column, pi.Reason)
	}
	return fmt.Sprintf("row %d: %s", pi.Row, pi.Reason)
}

// ParseError reports one or more malformed rows encountered while parsing.
// The parser aborts on the first malformed row, so Issues currently holds a
// single entry, but callers should not rely on that.
type ParseError struct {
	Issues []ParseIssue
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if len(e.Issues) == 0 {
		return "tabview: parse error"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return "tabview: parse error: " + strings.Join(parts, "; ")
}

// Unwrap allows errors.Is(err, ErrInvalidData) to match ParseError values.
func (e *ParseError) Unwrap() error {
	return ErrInvalidData
}

// newParseError creates a ParseError with a single issue.
func newParseError(row, column int, reason string) *ParseError {
	return &ParseError{Issues: []ParseIssue{{Row: row, Column: column, Reason: reason}}}
}

// LoadError reports that an input source was unavailable or undecodable.
type LoadError struct {
	// Source names the input that failed (file path or reader name).
	Source string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("tabview: load failed: %v", e.Err)
	}
	return fmt.Sprintf("tabview: load failed, source: %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// newLoadError creates a LoadError for the given source.
func newLoadError(source string, err error) *LoadError {
	return &LoadError{Source: source, Err: err}
}
