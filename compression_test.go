package tabview

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestCompressionType_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want CompressionType
	}{
		{"data.csv", CompressionNone},
		{"data.csv.gz", CompressionGZ},
		{"data.csv.bz2", CompressionBZ2},
		{"data.csv.xz", CompressionXZ},
		{"data.csv.zst", CompressionZSTD},
		{"DATA.CSV.GZ", CompressionGZ},
	}

	for _, tt := range tests {
		if got := detectCompressionType(tt.path); got != tt.want {
			t.Errorf("detectCompressionType(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCompressionType_Extension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		compression CompressionType
		want        string
	}{
		{CompressionNone, ""},
		{CompressionGZ, ".gz"},
		{CompressionBZ2, ".bz2"},
		{CompressionXZ, ".xz"},
		{CompressionZSTD, ".zst"},
	}

	for _, tt := range tests {
		if got := tt.compression.Extension(); got != tt.want {
			t.Errorf("%v.Extension() = %q, want %q", tt.compression, got, tt.want)
		}
	}
}

func TestCompression_WriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	payload := []byte("Name,Qty\nWidget,5\nGizmo,\n")

	for _, compression := range []CompressionType{CompressionNone, CompressionGZ, CompressionXZ, CompressionZSTD} {
		t.Run(compression.String(), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w, closeWriter, err := compression.newCompressedWriter(&buf)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := w.Write(payload); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := closeWriter(); err != nil {
				t.Fatalf("close writer: %v", err)
			}

			r, closeReader, err := compression.newDecompressedReader(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if err := closeReader(); err != nil {
				t.Fatalf("close reader: %v", err)
			}

			if !bytes.Equal(got, payload) {
				t.Errorf("round trip produced %q, want %q", got, payload)
			}
		})
	}
}

func TestCompression_Bzip2WriteUnsupported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, _, err := CompressionBZ2.newCompressedWriter(&buf)
	if !errors.Is(err, errBzip2WriteUnsupported) {
		t.Errorf("expected bzip2 write to be rejected, got %v", err)
	}
}

func TestTrimCompressionExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"data.csv.gz", "data.csv"},
		{"data.csv", "data.csv"},
		{"data.parquet.zst", "data.parquet"},
	}

	for _, tt := range tests {
		if got := trimCompressionExtension(tt.path); got != tt.want {
			t.Errorf("trimCompressionExtension(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
