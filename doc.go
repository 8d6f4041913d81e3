// Package tabview provides an in-memory tabular data engine: it parses
// delimited text into typed rows and maintains a searchable, sortable,
// paginated view over them, with export of the filtered subset back to
// delimited text.
//
// tabview holds one table at a time. Loading a new dataset replaces the
// previous store wholesale and atomically: on a parse failure the old data
// stays intact.
//
// # Features
//
//   - Parse CSV, TSV, Excel (XLSX), and Parquet datasets
//   - Automatic handling of compressed inputs (gzip, bzip2, xz, zstandard)
//   - Per-cell type inference (integer, float, boolean, text, null)
//   - Free-text search across all columns, stable per-column sorting,
//     pagination with clamping
//   - Export of the filtered subset as CSV, TSV, or XLSX, optionally
//     compressed
//   - Durable view preferences (page size, column visibility, sort order)
//     restored across sessions
//
// # Basic Usage
//
// The simplest way to get a session is OpenFile:
//
//	session, err := tabview.OpenFile(ctx, "data.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session.SetQuery("widget")
//	page, err := session.CurrentPage()
//
// # Advanced Usage
//
// For more control, use the builder:
//
//	prefs, _ := tabview.NewSQLiteKV(prefsPath)
//	builder := tabview.NewSessionBuilder().
//	    AddPath("data.tsv.gz").
//	    WithPreferences(tabview.NewPreferenceStore(prefs, "default")).
//	    WithSizeLimit(50 << 20)
//
//	validated, err := builder.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	session, err := validated.Open(ctx)
//
// # Exporting
//
// Export always operates on the full filtered, sorted set, not the current
// page:
//
//	options := tabview.NewExportOptions().
//	    WithFormat(tabview.ExportFormatTSV).
//	    WithCompression(tabview.CompressionGZ)
//	err := session.ExportFile("", options) // writes export.tsv.gz
package tabview
