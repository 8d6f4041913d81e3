package tabview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
)

// SessionBuilder configures input sources and options before creating a
// Session. Use NewSessionBuilder to create one, then chain method calls.
//
// The typical usage pattern is:
//
//	builder := tabview.NewSessionBuilder().AddPath("data.csv")
//	validated, err := builder.Build(ctx)
//	if err != nil {
//		return err
//	}
//	session, err := validated.Open(ctx)
type SessionBuilder struct {
	// paths contains regular file paths
	paths []string
	// readers contains named byte streams
	readers []readerInput
	// filesystems contains fs.FS instances to scan for a dataset
	filesystems []fs.FS
	// resolved is the single input selected by Build
	resolved *resolvedInput

	parseOpts ParseOptions
	chunkSize ChunkSize
	sizeLimit int64
	prefs     *PreferenceStore

	built bool
}

// readerInput pairs a byte stream with the name its format is detected
// from.
type readerInput struct {
	name   string
	reader io.Reader
}

// resolvedInput is the one input source a session will load.
type resolvedInput struct {
	path   string
	name   string
	reader io.Reader
}

// NewSessionBuilder creates a builder with default options: comma-delimited
// parsing with header and type inference, default chunk size, and the
// default input size ceiling.
func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{
		parseOpts: NewParseOptions(),
		chunkSize: NewChunkSize(DefaultRowsPerChunk),
		sizeLimit: DefaultMaxInputSize,
	}
}

// AddPath adds a dataset file path. Supported extensions: .csv, .tsv,
// .xlsx, .parquet, optionally compressed with .gz, .bz2, .xz, or .zst.
func (b *SessionBuilder) AddPath(path string) *SessionBuilder {
	b.paths = append(b.paths, path)
	return b
}

// AddReader adds an already opened byte stream. The name should carry the
// original file name or at least its extension so the format can be
// detected. Size pre-filtering of reader input is the caller's
// responsibility.
func (b *SessionBuilder) AddReader(name string, r io.Reader) *SessionBuilder {
	b.readers = append(b.readers, readerInput{name: name, reader: r})
	return b
}

// AddFS adds a filesystem (for example an embed.FS holding a default
// dataset) to scan for a supported dataset file.
func (b *SessionBuilder) AddFS(filesystem fs.FS) *SessionBuilder {
	b.filesystems = append(b.filesystems, filesystem)
	return b
}

// WithParseOptions replaces the parse options.
func (b *SessionBuilder) WithParseOptions(opts ParseOptions) *SessionBuilder {
	b.parseOpts = opts
	return b
}

// WithChunkSize sets the rows-per-chunk for streaming parses.
func (b *SessionBuilder) WithChunkSize(size int) *SessionBuilder {
	b.chunkSize = NewChunkSize(size)
	return b
}

// WithSizeLimit sets the input size ceiling in bytes for file inputs. Zero
// disables the check.
func (b *SessionBuilder) WithSizeLimit(limit int64) *SessionBuilder {
	b.sizeLimit = limit
	return b
}

// WithPreferences attaches a preference store. The session restores its
// snapshot after every successful load and persists view-state changes.
func (b *SessionBuilder) WithPreferences(prefs *PreferenceStore) *SessionBuilder {
	b.prefs = prefs
	return b
}

// Build validates the configured inputs. Exactly one dataset must resolve:
// the engine holds at most one table at a time, so multiple inputs are a
// configuration error, and zero inputs means there is nothing to load.
func (b *SessionBuilder) Build(ctx context.Context) (*SessionBuilder, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContextCancelled, err)
	}

	var inputs []resolvedInput

	for _, path := range b.paths {
		if !isSupportedDataset(path) {
			return nil, newLoadError(path, ErrUnsupportedFormat)
		}
		inputs = append(inputs, resolvedInput{path: path})
	}

	for _, r := range b.readers {
		if !isSupportedDataset(r.name) {
			return nil, newLoadError(r.name, ErrUnsupportedFormat)
		}
		inputs = append(inputs, resolvedInput{name: r.name, reader: r.reader})
	}

	for _, filesystem := range b.filesystems {
		found, err := findDatasetInFS(filesystem)
		if err != nil {
			return nil, err
		}
		for _, name := range found {
			file, err := filesystem.Open(name)
			if err != nil {
				return nil, newLoadError(name, err)
			}
			inputs = append(inputs, resolvedInput{name: name, reader: file})
		}
	}

	switch len(inputs) {
	case 0:
		return nil, errors.New("tabview: no input source configured")
	case 1:
		b.resolved = &inputs[0]
	default:
		return nil, fmt.Errorf("tabview: exactly one dataset is loaded at a time, got %d inputs", len(inputs))
	}

	b.built = true
	return b, nil
}

// Open creates a session and loads the resolved input. Build must have
// been called first.
func (b *SessionBuilder) Open(ctx context.Context) (*Session, error) {
	if !b.built || b.resolved == nil {
		return nil, errors.New("tabview: Build must be called before Open")
	}

	session := &Session{
		parseOpts: b.parseOpts,
		chunkSize: b.chunkSize,
		sizeLimit: b.sizeLimit,
		prefs:     b.prefs,
	}

	var err error
	if b.resolved.path != "" {
		err = session.LoadFile(ctx, b.resolved.path)
	} else {
		err = session.LoadReader(ctx, b.resolved.name, b.resolved.reader)
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// findDatasetInFS scans a filesystem for supported dataset files.
func findDatasetInFS(filesystem fs.FS) ([]string, error) {
	var found []string
	err := fs.WalkDir(filesystem, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, pattern := range supportedDatasetPatterns() {
			ok, matchErr := filepath.Match(pattern, strings.ToLower(filepath.Base(path)))
			if matchErr != nil {
				return matchErr
			}
			if ok {
				found = append(found, path)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan filesystem: %w", err)
	}
	return found, nil
}

// OpenFile is a convenience that builds and opens a session for a single
// dataset file with default options.
func OpenFile(ctx context.Context, path string) (*Session, error) {
	builder, err := NewSessionBuilder().AddPath(path).Build(ctx)
	if err != nil {
		return nil, err
	}
	return builder.Open(ctx)
}
