package tabview

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportFixture() (Header, []IndexedRow) {
	header := newHeader([]string{"Name", "Qty", "Active"})
	rows := []IndexedRow{
		{Index: 0, Record: Record{Text("Widget"), Integer(5), Bool(true)}},
		{Index: 2, Record: Record{Text("Gadget, Pro"), Integer(3), Bool(true)}},
	}
	return header, rows
}

func TestExportOptions(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		opts := NewExportOptions()
		assert.Equal(t, ExportFormatCSV, opts.Format)
		assert.Equal(t, CompressionNone, opts.Compression)
		assert.False(t, opts.IncludeHidden)
		assert.Equal(t, "export.csv", opts.DefaultFilename())
	})

	t.Run("extension composes format and compression", func(t *testing.T) {
		t.Parallel()

		opts := NewExportOptions().
			WithFormat(ExportFormatTSV).
			WithCompression(CompressionGZ)
		assert.Equal(t, ".tsv.gz", opts.FileExtension())
		assert.Equal(t, "export.tsv.gz", opts.DefaultFilename())
	})
}

func TestExportRows(t *testing.T) {
	t.Parallel()

	t.Run("plain csv", func(t *testing.T) {
		t.Parallel()

		header, rows := exportFixture()
		var buf bytes.Buffer
		require.NoError(t, exportRows(&buf, header, rows, nil, NewExportOptions()))

		want := "Name,Qty,Active\nWidget,5,true\n\"Gadget, Pro\",3,true\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("gzip export decompresses back to the delimited text", func(t *testing.T) {
		t.Parallel()

		header, rows := exportFixture()
		opts := NewExportOptions().WithCompression(CompressionGZ)

		var buf bytes.Buffer
		require.NoError(t, exportRows(&buf, header, rows, nil, opts))

		gzReader, err := gzip.NewReader(&buf)
		require.NoError(t, err)
		content, err := io.ReadAll(gzReader)
		require.NoError(t, err)
		require.NoError(t, gzReader.Close())

		reparsed, err := ParseString(string(content), NewParseOptions())
		require.NoError(t, err)
		assert.Equal(t, 2, reparsed.RowCount())
		row, _ := reparsed.Row(1)
		assert.True(t, row[0].Equal(Text("Gadget, Pro")))
	})

	t.Run("hidden columns are omitted", func(t *testing.T) {
		t.Parallel()

		header, rows := exportFixture()
		var buf bytes.Buffer
		require.NoError(t, exportRows(&buf, header, rows, []bool{true, false, true}, NewExportOptions()))

		want := "Name,Active\nWidget,true\n\"Gadget, Pro\",true\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("IncludeHidden restores all columns", func(t *testing.T) {
		t.Parallel()

		header, rows := exportFixture()
		opts := NewExportOptions().WithHiddenColumns(true)

		var buf bytes.Buffer
		require.NoError(t, exportRows(&buf, header, rows, []bool{true, false, true}, opts))
		assert.Contains(t, buf.String(), "Name,Qty,Active")
	})

	t.Run("tsv export", func(t *testing.T) {
		t.Parallel()

		header, rows := exportFixture()
		var buf bytes.Buffer
		require.NoError(t, exportRows(&buf, header, rows, nil, NewExportOptions().WithFormat(ExportFormatTSV)))
		assert.Contains(t, buf.String(), "Name\tQty\tActive\n")
	})

	t.Run("xlsx export rejects compression", func(t *testing.T) {
		t.Parallel()

		header, rows := exportFixture()
		opts := NewExportOptions().
			WithFormat(ExportFormatXLSX).
			WithCompression(CompressionGZ)

		var buf bytes.Buffer
		err := exportRows(&buf, header, rows, nil, opts)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("xlsx export round trips through the xlsx parser", func(t *testing.T) {
		t.Parallel()

		header, rows := exportFixture()
		opts := NewExportOptions().WithFormat(ExportFormatXLSX)

		var buf bytes.Buffer
		require.NoError(t, exportRows(&buf, header, rows, []bool{true, true, false}, opts))

		store, err := parseXLSX(bytes.NewReader(buf.Bytes()), NewParseOptions())
		require.NoError(t, err)
		assert.True(t, store.Header().equal(newHeader([]string{"Name", "Qty"})))
		require.Equal(t, 2, store.RowCount())
		row, _ := store.Row(0)
		assert.True(t, row.equal(Record{Text("Widget"), Integer(5)}))
	})
}

func TestExportFile(t *testing.T) {
	t.Parallel()

	header, rows := exportFixture()
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, exportFile(path, header, rows, nil, NewExportOptions()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Widget,5,true\n")
}
