package tabview

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DatasetType represents the base format of a dataset, independent of
// compression.
type DatasetType int

const (
	// DatasetCSV represents comma-separated values
	DatasetCSV DatasetType = iota
	// DatasetTSV represents tab-separated values
	DatasetTSV
	// DatasetXLSX represents Excel XLSX workbooks
	DatasetXLSX
	// DatasetParquet represents Apache Parquet files
	DatasetParquet
	// DatasetUnsupported represents everything else
	DatasetUnsupported
)

// Dataset extensions
const (
	extCSV     = ".csv"
	extTSV     = ".tsv"
	extXLSX    = ".xlsx"
	extParquet = ".parquet"
)

// String returns the format name.
func (t DatasetType) String() string {
	switch t {
	case DatasetCSV:
		return "csv"
	case DatasetTSV:
		return "tsv"
	case DatasetXLSX:
		return "xlsx"
	case DatasetParquet:
		return "parquet"
	default:
		return "unsupported"
	}
}

// extension returns the canonical file extension for the format.
func (t DatasetType) extension() string {
	switch t {
	case DatasetCSV:
		return extCSV
	case DatasetTSV:
		return extTSV
	case DatasetXLSX:
		return extXLSX
	case DatasetParquet:
		return extParquet
	default:
		return ""
	}
}

// delimiter returns the field delimiter for delimited formats, or 0 for
// formats that carry their own structure.
func (t DatasetType) delimiter() rune {
	switch t {
	case DatasetCSV:
		return csvDelimiter
	case DatasetTSV:
		return tsvDelimiter
	default:
		return 0
	}
}

// detectDatasetType detects the base format and compression from a file
// name, considering compressed variants such as "data.csv.gz".
func detectDatasetType(path string) (DatasetType, CompressionType) {
	compression := detectCompressionType(path)
	base := trimCompressionExtension(path)

	switch strings.ToLower(filepath.Ext(base)) {
	case extCSV:
		return DatasetCSV, compression
	case extTSV:
		return DatasetTSV, compression
	case extXLSX:
		return DatasetXLSX, compression
	case extParquet:
		return DatasetParquet, compression
	default:
		return DatasetUnsupported, compression
	}
}

// isSupportedDataset checks whether the file name carries a supported
// extension, with or without a compression suffix.
func isSupportedDataset(fileName string) bool {
	typ, _ := detectDatasetType(fileName)
	return typ != DatasetUnsupported
}

// supportedDatasetPatterns returns glob patterns for all supported dataset
// files, used when scanning an fs.FS input.
func supportedDatasetPatterns() []string {
	baseExts := []string{extCSV, extTSV, extXLSX, extParquet}
	compressionExts := []string{"", extGZ, extBZ2, extXZ, extZSTD}

	var patterns []string
	for _, baseExt := range baseExts {
		for _, compressionExt := range compressionExts {
			patterns = append(patterns, "*"+baseExt+compressionExt)
		}
	}
	return patterns
}

// dataset represents one input file resolved to a format and compression.
type dataset struct {
	path        string
	typ         DatasetType
	compression CompressionType
}

// newDataset creates a dataset for the given path.
func newDataset(path string) *dataset {
	typ, compression := detectDatasetType(path)
	return &dataset{path: path, typ: typ, compression: compression}
}

// datasetName derives a display name from a file path: base name without
// compression and format extensions.
func datasetName(path string) string {
	fileName := filepath.Base(path)
	fileName = trimCompressionExtension(fileName)
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// open opens the dataset file, enforcing the size limit, and returns a
// decompressed reader. The returned close function releases both the
// decompressor and the file.
func (d *dataset) open(sizeLimit int64) (io.Reader, func() error, error) {
	if d.typ == DatasetUnsupported {
		return nil, nil, newLoadError(d.path, ErrUnsupportedFormat)
	}

	info, err := os.Stat(d.path)
	if err != nil {
		return nil, nil, newLoadError(d.path, err)
	}
	if sizeLimit > 0 && info.Size() > sizeLimit {
		return nil, nil, newLoadError(d.path, fmt.Errorf("%w: %d bytes (limit %d)", ErrDataTooLarge, info.Size(), sizeLimit))
	}

	file, err := os.Open(d.path)
	if err != nil {
		return nil, nil, newLoadError(d.path, err)
	}

	decompressed, closeDecompressor, err := d.compression.newDecompressedReader(file)
	if err != nil {
		_ = file.Close()
		return nil, nil, newLoadError(d.path, err)
	}

	return decompressed, func() error {
		cleanupErr := closeDecompressor()
		if closeErr := file.Close(); closeErr != nil && cleanupErr == nil {
			cleanupErr = closeErr
		}
		return cleanupErr
	}, nil
}
