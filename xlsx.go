package tabview

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// parseXLSX parses an XLSX workbook into a store. Only the first sheet is
// read; its first row becomes the header (unless opts disables it). Cell
// text goes through the same per-cell inference as delimited input.
func parseXLSX(r io.Reader, opts ParseOptions) (*Store, error) {
	xlsxFile, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX data: %w", err)
	}
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, errors.New("no sheets found in XLSX data")
	}

	sheetName := sheetNames[0]
	iter, err := xlsxFile.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to open rows iterator for sheet %s: %w", sheetName, err)
	}
	defer iter.Close()

	var (
		header      Header
		headerKnown bool
		records     []Record
		sawRow      bool
	)

	for iter.Next() {
		row, err := iter.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row in sheet %s: %w", sheetName, err)
		}

		// Skip leading empty rows
		if !sawRow && len(row) == 0 {
			continue
		}
		sawRow = true

		if opts.SkipBlankLines && isBlankRow(row) {
			continue
		}

		if !headerKnown {
			if opts.HasHeader {
				header = headerFromRow(row)
				headerKnown = true
				continue
			}
			header = syntheticHeader(len(row))
			headerKnown = true
		}

		records = append(records, alignRow(row, len(header), opts.InferTypes))
	}

	if !headerKnown {
		return nil, fmt.Errorf("%w: sheet %s is empty", ErrEmptyData, sheetName)
	}

	return NewStore(header, records), nil
}

// writeXLSX writes an already filtered and sorted row set as an XLSX
// workbook with a single sheet, applying column visibility.
func writeXLSX(w io.Writer, header Header, rows []IndexedRow, visibility []bool) error {
	xlsxFile := excelize.NewFile()
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	sheetName := xlsxFile.GetSheetName(0)

	headerCells := visibleColumns(header, visibility)
	headerRow := make([]interface{}, len(headerCells))
	for i, name := range headerCells {
		headerRow[i] = name
	}
	cell, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := xlsxFile.SetSheetRow(sheetName, cell, &headerRow); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cells := VisibleCells(row.Record, visibility)
		sheetRow := make([]interface{}, len(cells))
		for j, value := range cells {
			sheetRow[j] = xlsxCell(value)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := xlsxFile.SetSheetRow(sheetName, cell, &sheetRow); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if _, err := xlsxFile.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write XLSX data: %w", err)
	}
	return nil
}

// xlsxCell converts a typed value into the native type excelize expects.
func xlsxCell(v Value) interface{} {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindInteger:
		return v.Int()
	case KindFloat:
		return v.Float64()
	case KindBool:
		return v.IsTrue()
	default:
		return v.String()
	}
}
