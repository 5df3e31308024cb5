package extract

import (
	"encoding/csv"
	"fmt"
	"os"
)

// readCSV returns a single page. Rows may be ragged.
func readCSV(path string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return []Page{{Number: 1, Text: joinRows(rows), Tables: []Table{Table(rows)}}}, nil
}
