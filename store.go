package tabview

// Store owns the full, unfiltered ordered sequence of records plus the
// header. It is created on a successful parse and replaced wholesale on
// re-load; there is no mutation API. The store trusts the parser's
// invariant that every record's length equals the header length.
type Store struct {
	header  Header
	records []Record
}

// NewStore creates a store from a header and records.
func NewStore(header Header, records []Record) *Store {
	return &Store{header: header, records: records}
}

// Header returns the column names.
func (s *Store) Header() Header {
	return s.header
}

// ColumnCount returns the number of columns.
func (s *Store) ColumnCount() int {
	return len(s.header)
}

// RowCount returns the number of records.
func (s *Store) RowCount() int {
	return len(s.records)
}

// Row returns the record at index i and whether the index was in range.
func (s *Store) Row(i int) (Record, bool) {
	if i < 0 || i >= len(s.records) {
		return nil, false
	}
	return s.records[i], true
}

// Records returns the full record sequence. Callers must treat the result
// as read-only.
func (s *Store) Records() []Record {
	return s.records
}

// equal compares two stores by header and records. Test helper.
func (s *Store) equal(s2 *Store) bool {
	if !s.header.equal(s2.header) {
		return false
	}
	if len(s.records) != len(s2.records) {
		return false
	}
	for i, record := range s.records {
		if !record.equal(s2.records[i]) {
			return false
		}
	}
	return true
}
