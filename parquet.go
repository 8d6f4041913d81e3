package tabview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
)

// parseParquet parses Parquet data into a store. Parquet carries its own
// schema, so cells are converted from their native Arrow types rather than
// re-inferred; the header comes from the schema field names. Parquet needs
// random access, so the stream is buffered in memory first (the input size
// ceiling bounds this).
func parseParquet(ctx context.Context, r io.Reader) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	defer table.Release()

	schema := table.Schema()
	names := make([]string, schema.NumFields())
	for i, field := range schema.Fields() {
		names[i] = field.Name
	}
	header := newHeader(names)

	if table.NumRows() == 0 {
		return NewStore(header, nil), nil
	}

	tableReader := array.NewTableReader(table, int64(DefaultRowsPerChunk))
	defer tableReader.Release()

	records := make([]Record, 0, table.NumRows())
	for tableReader.Next() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContextCancelled, err)
		}

		batch := tableReader.Record()
		numRows := int(batch.NumRows())
		columns := batch.Columns()
		for i := 0; i < numRows; i++ {
			row := make([]Value, len(columns))
			for j, col := range columns {
				row[j] = arrowCell(col, i)
			}
			records = append(records, newRecord(row))
		}
	}
	if err := tableReader.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error reading table records: %w", err)
	}

	return NewStore(header, records), nil
}

// arrowCell converts one Arrow array element into a typed cell value.
// Unrecognized Arrow types fall back to their string form as text.
func arrowCell(col arrow.Array, i int) Value {
	if col.IsNull(i) {
		return Null()
	}

	switch arr := col.(type) {
	case *array.Boolean:
		return Bool(arr.Value(i))
	case *array.Int8:
		return Integer(int64(arr.Value(i)))
	case *array.Int16:
		return Integer(int64(arr.Value(i)))
	case *array.Int32:
		return Integer(int64(arr.Value(i)))
	case *array.Int64:
		return Integer(arr.Value(i))
	case *array.Uint8:
		return Integer(int64(arr.Value(i)))
	case *array.Uint16:
		return Integer(int64(arr.Value(i)))
	case *array.Uint32:
		return Integer(int64(arr.Value(i)))
	case *array.Uint64:
		return Integer(int64(arr.Value(i)))
	case *array.Float32:
		return Float(float64(arr.Value(i)))
	case *array.Float64:
		return Float(arr.Value(i))
	case *array.String:
		return Text(arr.Value(i))
	case *array.LargeString:
		return Text(arr.Value(i))
	default:
		return Text(col.ValueStr(i))
	}
}
