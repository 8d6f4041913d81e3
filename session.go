package tabview

import (
	"context"
	"fmt"
	"io"
)

// Session owns exactly one Store and one ViewState, replacing the implicit
// "currently loaded table" with an explicit object passed to all
// operations. Loading is atomic: either a new store fully replaces the old
// one, or the old store (if any) remains untouched on failure.
//
// A Session is owned by a single logical actor and is not safe for
// concurrent use.
type Session struct {
	parseOpts ParseOptions
	chunkSize ChunkSize
	sizeLimit int64
	prefs     *PreferenceStore

	name  string
	store *Store
	state ViewState
}

// NewSession creates an empty session with the given parse options.
func NewSession(opts ParseOptions) *Session {
	return &Session{
		parseOpts: opts,
		chunkSize: NewChunkSize(DefaultRowsPerChunk),
		sizeLimit: DefaultMaxInputSize,
	}
}

// Name returns the display name of the loaded dataset, or "" when none is
// loaded.
func (s *Session) Name() string {
	return s.name
}

// Loaded reports whether a dataset is currently loaded.
func (s *Session) Loaded() bool {
	return s.store != nil
}

// Store returns the current store, or nil when none is loaded.
func (s *Session) Store() *Store {
	return s.store
}

// State returns a copy of the current view state.
func (s *Session) State() ViewState {
	state := s.state
	state.Visibility = append([]bool(nil), s.state.Visibility...)
	if s.state.Sort != nil {
		key := *s.state.Sort
		state.Sort = &key
	}
	return state
}

// LoadFile loads a dataset file, replacing any current store on success.
// The format and compression are detected from the extension, and the
// configured size limit is enforced before parsing.
func (s *Session) LoadFile(ctx context.Context, path string) error {
	d := newDataset(path)
	reader, closeFunc, err := d.open(s.sizeLimit)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeFunc() // Ignore close error after load
	}()

	return s.load(ctx, datasetName(path), d.typ, reader)
}

// LoadReader loads a dataset from an already opened byte stream. The
// format and compression are detected from name, which should carry the
// original file name or at least its extension. Size pre-filtering of
// reader input is the caller's responsibility.
func (s *Session) LoadReader(ctx context.Context, name string, r io.Reader) error {
	typ, compression := detectDatasetType(name)
	if typ == DatasetUnsupported {
		return newLoadError(name, ErrUnsupportedFormat)
	}

	decompressed, closeFunc, err := compression.newDecompressedReader(r)
	if err != nil {
		return newLoadError(name, err)
	}
	defer func() {
		_ = closeFunc() // Ignore close error after load
	}()

	return s.load(ctx, datasetName(name), typ, decompressed)
}

// load parses the stream into a new store, then swaps it in. Parsing into
// a local store first is what makes replacement atomic.
func (s *Session) load(ctx context.Context, name string, typ DatasetType, r io.Reader) error {
	store, err := s.parseDataset(ctx, typ, r)
	if err != nil {
		return err
	}

	s.name = name
	s.store = store
	s.state = NewViewState(store.ColumnCount())
	if s.prefs != nil {
		if snapshot, ok := s.prefs.Load(); ok {
			applySnapshot(&s.state, snapshot, store.ColumnCount())
		}
	}
	return nil
}

// parseDataset dispatches to the parser for the dataset type. The dataset
// type fixes the delimiter for delimited formats; the session's parse
// options control everything else.
func (s *Session) parseDataset(ctx context.Context, typ DatasetType, r io.Reader) (*Store, error) {
	switch typ {
	case DatasetCSV, DatasetTSV:
		opts := s.parseOpts.WithDelimiter(typ.delimiter())
		var (
			header  Header
			records []Record
		)
		err := ParseChunks(ctx, r, opts, s.chunkSize, func(h Header, chunk []Record) error {
			header = h
			records = append(records, chunk...)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return NewStore(header, records), nil
	case DatasetXLSX:
		return parseXLSX(r, s.parseOpts)
	case DatasetParquet:
		return parseParquet(ctx, r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// SetQuery sets the free-text search query. Queries are transient and not
// part of the persisted preference snapshot.
func (s *Session) SetQuery(query string) {
	s.state.Query = query
}

// SetSort sets the sort key.
func (s *Session) SetSort(column int, direction SortDirection) error {
	if s.store == nil {
		return ErrNoStore
	}
	if column < 0 || column >= s.store.ColumnCount() {
		return fmt.Errorf("%w: %d", ErrInvalidColumn, column)
	}
	s.state.Sort = &SortKey{Column: column, Direction: direction}
	s.persistPreferences()
	return nil
}

// ClearSort restores input order.
func (s *Session) ClearSort() {
	s.state.Sort = nil
	s.persistPreferences()
}

// SetPageSize sets the rows-per-page.
func (s *Session) SetPageSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}
	s.state.PageSize = size
	s.persistPreferences()
	return nil
}

// SetPage requests a zero-based page index. Indexes beyond the last page
// are clamped at compute time, never an error.
func (s *Session) SetPage(index int) error {
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPageIndex, index)
	}
	s.state.PageIndex = index
	return nil
}

// NextPage advances to the next page, staying on the last page at the end.
func (s *Session) NextPage() error {
	page, err := s.CurrentPage()
	if err != nil {
		return err
	}
	if page.PageIndex+1 < page.PageCount {
		s.state.PageIndex = page.PageIndex + 1
	} else {
		s.state.PageIndex = page.PageIndex
	}
	return nil
}

// PrevPage moves to the previous page, staying on the first page at the
// start.
func (s *Session) PrevPage() error {
	page, err := s.CurrentPage()
	if err != nil {
		return err
	}
	if page.PageIndex > 0 {
		s.state.PageIndex = page.PageIndex - 1
	} else {
		s.state.PageIndex = 0
	}
	return nil
}

// SetColumnVisible toggles one column's visibility. Visibility affects
// rendering and export only; it never changes which rows match or their
// order.
func (s *Session) SetColumnVisible(column int, visible bool) error {
	if s.store == nil {
		return ErrNoStore
	}
	if column < 0 || column >= len(s.state.Visibility) {
		return fmt.Errorf("%w: %d", ErrInvalidColumn, column)
	}
	s.state.Visibility[column] = visible
	s.persistPreferences()
	return nil
}

// CurrentPage computes the page for the current view state: filter, sort,
// paginate, in that order, recomputed in full.
func (s *Session) CurrentPage() (Page, error) {
	if s.store == nil {
		return Page{}, ErrNoStore
	}
	return ComputePage(s.store, s.state)
}

// MatchCount returns the number of rows matching the current query.
func (s *Session) MatchCount() (int, error) {
	page, err := s.CurrentPage()
	if err != nil {
		return 0, err
	}
	return page.TotalMatches, nil
}

// FilteredRows returns the FULL filtered and sorted row sequence, ignoring
// pagination. This is the set an export operates on.
func (s *Session) FilteredRows() ([]IndexedRow, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return filterAndSort(s.store, s.state)
}

// Export writes the current filtered, sorted subset to w.
func (s *Session) Export(w io.Writer, opts ExportOptions) error {
	rows, err := s.FilteredRows()
	if err != nil {
		return err
	}
	return exportRows(w, s.store.Header(), rows, s.state.Visibility, opts)
}

// ExportFile writes the current filtered, sorted subset to path. An empty
// path uses the fixed default file name for the options in the current
// directory.
func (s *Session) ExportFile(path string, opts ExportOptions) error {
	rows, err := s.FilteredRows()
	if err != nil {
		return err
	}
	if path == "" {
		path = opts.DefaultFilename()
	}
	return exportFile(path, s.store.Header(), rows, s.state.Visibility, opts)
}

// persistPreferences saves the preference subset of the view state.
// Preference failures are swallowed: a broken preference store must never
// break the session.
func (s *Session) persistPreferences() {
	if s.prefs == nil || s.store == nil {
		return
	}
	_ = s.prefs.Save(snapshotFromState(s.state))
}
