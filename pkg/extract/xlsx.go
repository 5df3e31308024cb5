package extract

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readXLSX treats every sheet as a page holding a single table.
func readXLSX(path string) ([]Page, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	pages := make([]Page, 0, len(sheets))
	for i, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		pages = append(pages, Page{
			Number: i + 1,
			Text:   joinRows(rows),
			Tables: []Table{Table(rows)},
		})
	}
	return pages, nil
}

func joinRows(rows [][]string) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, strings.TrimSpace(strings.Join(row, " ")))
	}
	return strings.Join(lines, "\n")
}
