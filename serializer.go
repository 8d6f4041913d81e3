package tabview

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Serialize writes the header line followed by one line per record as
// delimited text. Cell values containing the delimiter, the quote
// character, or a line break are quoted, and embedded quotes are escaped,
// so re-parsing the output with the same configuration reproduces the same
// header and an equivalent record sequence.
func Serialize(w io.Writer, header Header, records []Record, delimiter rune) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, record.strings())
	}
	return writeDelimited(w, []string(header), rows, delimiter)
}

// SerializeIndexed writes an already filtered and sorted row sequence,
// applying column visibility to both the header and the cells. The caller
// passes the FULL filtered set, not the current page.
func SerializeIndexed(w io.Writer, header Header, rows []IndexedRow, visibility []bool, delimiter rune) error {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := VisibleCells(row.Record, visibility)
		fields := make([]string, len(cells))
		for i, cell := range cells {
			fields[i] = cell.String()
		}
		out = append(out, fields)
	}
	return writeDelimited(w, visibleColumns(header, visibility), out, delimiter)
}

// writeDelimited is the shared csv.Writer core.
func writeDelimited(w io.Writer, header []string, rows [][]string, delimiter rune) error {
	csvWriter := csv.NewWriter(w)
	if delimiter != 0 {
		csvWriter.Comma = delimiter
	}

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
