package tabview

import "strconv"

// Processing constants (rows-based)
const (
	// DefaultRowsPerChunk is the default number of rows per chunk
	DefaultRowsPerChunk = 1000
	// MinChunkSize is the minimum allowed rows per chunk
	MinChunkSize = 1
	// DefaultPageSize is the default number of rows per view page
	DefaultPageSize = 10
	// DefaultMaxInputSize is the default input size ceiling in bytes (50 MiB)
	DefaultMaxInputSize = 50 * 1024 * 1024
)

// Dataset delimiters
const (
	// csvDelimiter is the delimiter for CSV data
	csvDelimiter = ','
	// tsvDelimiter is the delimiter for TSV data
	tsvDelimiter = '\t'
)

// Header is the ordered sequence of column names. Positional correspondence
// is what matters; duplicate names are allowed and never looked up by name.
type Header []string

// newHeader creates a new header.
func newHeader(h []string) Header {
	return Header(h)
}

// equal compares headers positionally.
func (h Header) equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Record is one parsed data row: an ordered sequence of typed cell values,
// one per header position. Records are immutable once parsed.
type Record []Value

// newRecord creates a new record.
func newRecord(values []Value) Record {
	return Record(values)
}

// equal compares records cell by cell.
func (r Record) equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if !v.Equal(r2[i]) {
			return false
		}
	}
	return true
}

// strings returns the serialized string form of each cell.
func (r Record) strings() []string {
	out := make([]string, len(r))
	for i, v := range r {
		out[i] = v.String()
	}
	return out
}

// ChunkSize represents a chunk size with validation
type ChunkSize int

// NewChunkSize creates a new ChunkSize with validation
func NewChunkSize(size int) ChunkSize {
	if size < MinChunkSize {
		return ChunkSize(DefaultRowsPerChunk)
	}
	return ChunkSize(size)
}

// Int returns the int value of ChunkSize
func (cs ChunkSize) Int() int {
	return int(cs)
}

// String returns the string representation of ChunkSize
func (cs ChunkSize) String() string {
	return strconv.Itoa(int(cs))
}

// IsValid checks if the chunk size is valid
func (cs ChunkSize) IsValid() bool {
	return int(cs) >= MinChunkSize
}
