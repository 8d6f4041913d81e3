package tabview

import (
	"fmt"
	"io"
	"os"
)

// DefaultExportBaseName is the fixed base name used when the caller does
// not choose a file name.
const DefaultExportBaseName = "export"

// ExportFormat represents the export file format.
type ExportFormat int

const (
	// ExportFormatCSV represents CSV output
	ExportFormatCSV ExportFormat = iota
	// ExportFormatTSV represents TSV output
	ExportFormatTSV
	// ExportFormatXLSX represents Excel XLSX output
	ExportFormatXLSX
)

// String returns the format name.
func (f ExportFormat) String() string {
	switch f {
	case ExportFormatTSV:
		return "tsv"
	case ExportFormatXLSX:
		return "xlsx"
	default:
		return "csv"
	}
}

// Extension returns the file extension for the format.
func (f ExportFormat) Extension() string {
	switch f {
	case ExportFormatTSV:
		return extTSV
	case ExportFormatXLSX:
		return extXLSX
	default:
		return extCSV
	}
}

// delimiter returns the field delimiter for delimited formats.
func (f ExportFormat) delimiter() rune {
	if f == ExportFormatTSV {
		return tsvDelimiter
	}
	return csvDelimiter
}

// ExportOptions configures how the filtered subset is exported.
//
// Example:
//
//	options := NewExportOptions().
//		WithFormat(ExportFormatTSV).
//		WithCompression(CompressionGZ)
type ExportOptions struct {
	// Format specifies the output file format
	Format ExportFormat
	// Compression specifies the compression type (delimited formats only)
	Compression CompressionType
	// IncludeHidden exports all columns regardless of view visibility
	IncludeHidden bool
}

// NewExportOptions creates default export options (CSV, no compression,
// visibility applied).
func NewExportOptions() ExportOptions {
	return ExportOptions{
		Format:      ExportFormatCSV,
		Compression: CompressionNone,
	}
}

// WithFormat sets the output file format.
func (o ExportOptions) WithFormat(format ExportFormat) ExportOptions {
	o.Format = format
	return o
}

// WithCompression adds compression to the output. Only delimited formats
// can be compressed; XLSX output rejects it.
func (o ExportOptions) WithCompression(compression CompressionType) ExportOptions {
	o.Compression = compression
	return o
}

// WithHiddenColumns includes hidden columns in the export.
func (o ExportOptions) WithHiddenColumns(include bool) ExportOptions {
	o.IncludeHidden = include
	return o
}

// FileExtension returns the complete file extension including compression.
func (o ExportOptions) FileExtension() string {
	return o.Format.Extension() + o.Compression.Extension()
}

// DefaultFilename returns the fixed default export file name for these
// options, e.g. "export.csv" or "export.tsv.gz".
func (o ExportOptions) DefaultFilename() string {
	return DefaultExportBaseName + o.FileExtension()
}

// exportRows writes an already filtered and sorted row set to w.
func exportRows(w io.Writer, header Header, rows []IndexedRow, visibility []bool, opts ExportOptions) error {
	if opts.IncludeHidden {
		visibility = nil
	}

	if opts.Format == ExportFormatXLSX {
		if opts.Compression != CompressionNone {
			return fmt.Errorf("%w: xlsx export cannot be compressed", ErrUnsupportedFormat)
		}
		return writeXLSX(w, header, rows, visibility)
	}

	compressed, closeCompressor, err := opts.Compression.newCompressedWriter(w)
	if err != nil {
		return err
	}
	if err := SerializeIndexed(compressed, header, rows, visibility, opts.Format.delimiter()); err != nil {
		_ = closeCompressor()
		return err
	}
	return closeCompressor()
}

// exportFile writes an export to path, creating the file.
func exportFile(path string, header Header, rows []IndexedRow, visibility []bool, opts ExportOptions) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := exportRows(file, header, rows, visibility, opts); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
