package tabview

import (
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectDatasetType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path            string
		wantType        DatasetType
		wantCompression CompressionType
	}{
		{"data.csv", DatasetCSV, CompressionNone},
		{"data.tsv", DatasetTSV, CompressionNone},
		{"data.xlsx", DatasetXLSX, CompressionNone},
		{"data.parquet", DatasetParquet, CompressionNone},
		{"data.csv.gz", DatasetCSV, CompressionGZ},
		{"data.tsv.bz2", DatasetTSV, CompressionBZ2},
		{"data.csv.xz", DatasetCSV, CompressionXZ},
		{"data.parquet.zst", DatasetParquet, CompressionZSTD},
		{"DATA.CSV", DatasetCSV, CompressionNone},
		{"/some/dir/data.csv.gz", DatasetCSV, CompressionGZ},
		{"data.txt", DatasetUnsupported, CompressionNone},
		{"data.csv.zip", DatasetUnsupported, CompressionNone},
		{"data", DatasetUnsupported, CompressionNone},
		// A bare compressed file with no base extension is unsupported.
		{"data.gz", DatasetUnsupported, CompressionGZ},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			gotType, gotCompression := detectDatasetType(tt.path)
			if gotType != tt.wantType {
				t.Errorf("type = %v, want %v", gotType, tt.wantType)
			}
			if gotCompression != tt.wantCompression {
				t.Errorf("compression = %v, want %v", gotCompression, tt.wantCompression)
			}
		})
	}
}

func TestIsSupportedDataset(t *testing.T) {
	t.Parallel()

	if !isSupportedDataset("data.csv.zst") {
		t.Error("expected compressed csv to be supported")
	}
	if isSupportedDataset("data.json") {
		t.Error("expected json to be unsupported")
	}
}

func TestDatasetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"data.csv", "data"},
		{"/tmp/users.tsv.gz", "users"},
		{"report.parquet.zst", "report"},
		{"sheet.xlsx", "sheet"},
	}

	for _, tt := range tests {
		if got := datasetName(tt.path); got != tt.want {
			t.Errorf("datasetName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDatasetOpen(t *testing.T) {
	t.Parallel()

	t.Run("plain file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data.csv")
		if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		r, closer, err := newDataset(path).open(DefaultMaxInputSize)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer func() {
			if err := closer(); err != nil {
				t.Errorf("close: %v", err)
			}
		}()

		content, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != "a,b\n1,2\n" {
			t.Errorf("unexpected content %q", content)
		}
	})

	t.Run("gzip file is transparently decompressed", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data.csv.gz")
		file, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		gzWriter := gzip.NewWriter(file)
		if _, err := gzWriter.Write([]byte("a,b\n1,2\n")); err != nil {
			t.Fatal(err)
		}
		if err := gzWriter.Close(); err != nil {
			t.Fatal(err)
		}
		if err := file.Close(); err != nil {
			t.Fatal(err)
		}

		r, closer, err := newDataset(path).open(DefaultMaxInputSize)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer func() {
			if err := closer(); err != nil {
				t.Errorf("close: %v", err)
			}
		}()

		content, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != "a,b\n1,2\n" {
			t.Errorf("unexpected content %q", content)
		}
	})

	t.Run("file over the size ceiling is rejected before reading", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data.csv")
		if err := os.WriteFile(path, []byte("a,b\n1,2\n3,4\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		_, _, err := newDataset(path).open(4)
		if !errors.Is(err, ErrDataTooLarge) {
			t.Errorf("expected ErrDataTooLarge, got %v", err)
		}

		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("expected *LoadError, got %T", err)
		}
		if loadErr.Source != path {
			t.Errorf("expected source %q, got %q", path, loadErr.Source)
		}
	})

	t.Run("zero limit disables the ceiling", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data.csv")
		if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		_, closer, err := newDataset(path).open(0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_ = closer()
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		_, _, err := newDataset("data.txt").open(DefaultMaxInputSize)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := newDataset(filepath.Join(t.TempDir(), "absent.csv")).open(DefaultMaxInputSize)
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Errorf("expected *LoadError, got %T", err)
		}
	})
}
