package tabview

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("no input source", func(t *testing.T) {
		t.Parallel()

		_, err := NewSessionBuilder().Build(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no input source")
	})

	t.Run("multiple inputs are rejected", func(t *testing.T) {
		t.Parallel()

		_, err := NewSessionBuilder().
			AddPath("a.csv").
			AddPath("b.csv").
			Build(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one dataset")
	})

	t.Run("unsupported path extension fails at build time", func(t *testing.T) {
		t.Parallel()

		_, err := NewSessionBuilder().AddPath("data.json").Build(context.Background())
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("unsupported reader name fails at build time", func(t *testing.T) {
		t.Parallel()

		_, err := NewSessionBuilder().
			AddReader("data.json", strings.NewReader("{}")).
			Build(context.Background())
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewSessionBuilder().AddPath("a.csv").Build(ctx)
		assert.ErrorIs(t, err, ErrContextCancelled)
	})

	t.Run("open before build", func(t *testing.T) {
		t.Parallel()

		_, err := NewSessionBuilder().AddPath("a.csv").Open(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Build must be called before Open")
	})
}

func TestSessionBuilder_Open(t *testing.T) {
	t.Parallel()

	t.Run("path input", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "inventory.csv")
		require.NoError(t, os.WriteFile(path, []byte("Name,Qty\nWidget,5\n"), 0o600))

		builder, err := NewSessionBuilder().AddPath(path).Build(context.Background())
		require.NoError(t, err)

		session, err := builder.Open(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "inventory", session.Name())
		assert.Equal(t, 1, session.Store().RowCount())
	})

	t.Run("reader input", func(t *testing.T) {
		t.Parallel()

		builder, err := NewSessionBuilder().
			AddReader("stream.tsv", strings.NewReader("a\tb\n1\t2\n")).
			Build(context.Background())
		require.NoError(t, err)

		session, err := builder.Open(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "stream", session.Name())
	})

	t.Run("filesystem input", func(t *testing.T) {
		t.Parallel()

		mapFS := fstest.MapFS{
			"data/inventory.csv": &fstest.MapFile{Data: []byte("Name,Qty\nWidget,5\n")},
			"README.md":          &fstest.MapFile{Data: []byte("docs")},
		}

		builder, err := NewSessionBuilder().AddFS(mapFS).Build(context.Background())
		require.NoError(t, err)

		session, err := builder.Open(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "inventory", session.Name())
	})

	t.Run("filesystem with two datasets is ambiguous", func(t *testing.T) {
		t.Parallel()

		mapFS := fstest.MapFS{
			"a.csv": &fstest.MapFile{Data: []byte("x\n1\n")},
			"b.tsv": &fstest.MapFile{Data: []byte("y\n2\n")},
		}

		_, err := NewSessionBuilder().AddFS(mapFS).Build(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one dataset")
	})

	t.Run("size limit is enforced on open", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "inventory.csv")
		require.NoError(t, os.WriteFile(path, []byte("Name,Qty\nWidget,5\nGizmo,7\n"), 0o600))

		builder, err := NewSessionBuilder().
			AddPath(path).
			WithSizeLimit(4).
			Build(context.Background())
		require.NoError(t, err)

		_, err = builder.Open(context.Background())
		assert.ErrorIs(t, err, ErrDataTooLarge)
	})

	t.Run("custom parse options flow through", func(t *testing.T) {
		t.Parallel()

		builder, err := NewSessionBuilder().
			AddReader("raw.csv", strings.NewReader("Widget,5\n")).
			WithParseOptions(NewParseOptions().WithHeader(false)).
			Build(context.Background())
		require.NoError(t, err)

		session, err := builder.Open(context.Background())
		require.NoError(t, err)
		assert.True(t, session.Store().Header().equal(newHeader([]string{"c1", "c2"})))
		assert.Equal(t, 1, session.Store().RowCount())
	})

	t.Run("preferences are attached", func(t *testing.T) {
		t.Parallel()

		prefs := NewPreferenceStore(NewMemoryKV(), "default")
		require.NoError(t, prefs.Save(Snapshot{PageSize: 7}))

		builder, err := NewSessionBuilder().
			AddReader("inventory.csv", strings.NewReader("Name,Qty\nWidget,5\n")).
			WithPreferences(prefs).
			Build(context.Background())
		require.NoError(t, err)

		session, err := builder.Open(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 7, session.State().PageSize)
	})
}

func TestOpenFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "inventory.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Qty\nWidget,5\n"), 0o600))

	session, err := OpenFile(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, session.Loaded())
	assert.Equal(t, "inventory", session.Name())
}
