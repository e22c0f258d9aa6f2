package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter writes each table as a header row followed by its rows, with a
// blank line between tables.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render writes each table as a header row and its rows, separated by a blank line.
func (e *CSVExporter) Render(report Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	for i, table := range report.Tables {
		if len(table.Headers) == 0 {
			return nil, fmt.Errorf("csv table %q requires at least one header", table.Name)
		}
		if i > 0 {
			writer.Flush()
			buf.WriteString("\n")
		}
		if err := writer.Write(table.Headers); err != nil {
			return nil, fmt.Errorf("write csv headers: %w", err)
		}
		for _, row := range table.Rows {
			record := make([]string, len(table.Headers))
			copy(record, row)
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
