package extract

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/docweave/internal/ir"
)

// CSVFrontend handles CSV files, producing a single table block.
type CSVFrontend struct{}

func (f *CSVFrontend) Extract(r io.Reader, filename string) (*Stream, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	s := &Stream{Title: baseName(filename)}
	if len(records) == 0 {
		return s, nil
	}

	tbl := &ir.TableBlock{
		BlockID: ir.NewID(),
		NumRows: len(records),
	}
	for row, record := range records {
		if len(record) > tbl.NumCols {
			tbl.NumCols = len(record)
		}
		for col, cell := range record {
			tbl.Cells = append(tbl.Cells, ir.TableCell{
				Row:  row,
				Col:  col,
				Text: cell,
			})
		}
	}
	s.Elements = append(s.Elements, tbl)

	return s, nil
}
