package extract

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	appErrors "github.com/noah-isme/attendance-report/pkg/errors"
)

// Table is a grid of string cells. Empty cells are blank strings.
type Table [][]string

// Page is one extracted page: its raw text and any tables found on it.
type Page struct {
	Number int
	Text   string
	Tables []Table
}

// Document is the extraction result of one attendance document.
type Document struct {
	Source string
	Pages  []Page
}

// FirstPageText returns the raw text of the first page, or "" for an empty document.
func (d *Document) FirstPageText() string {
	if d == nil || len(d.Pages) == 0 {
		return ""
	}
	return d.Pages[0].Text
}

// Options tunes layout reconstruction for PDF sources.
type Options struct {
	RowTolerance float64
	ColumnGap    float64
}

func (o Options) withDefaults() Options {
	if o.RowTolerance <= 0 {
		o.RowTolerance = 2
	}
	if o.ColumnGap <= 0 {
		o.ColumnGap = 12
	}
	return o
}

// Open extracts pages from path, picking a reader by file extension.
func Open(path string, opts Options) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "attendance document not found")
	}

	var (
		pages []Page
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		pages, err = readPDF(path, opts.withDefaults())
	case ".xlsx":
		pages, err = readXLSX(path)
	case ".csv":
		pages, err = readCSV(path)
	default:
		return nil, appErrors.Clone(appErrors.ErrUnsupportedDocument, "unsupported attendance document: "+filepath.Ext(path))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDocumentUnreadable.Code, appErrors.ErrDocumentUnreadable.Status, appErrors.ErrDocumentUnreadable.Message)
	}

	for i := range pages {
		pages[i].Tables = keepTables(pages[i].Tables)
	}
	return &Document{Source: path, Pages: pages}, nil
}

// keepTables drops tables with fewer than two rows, normalises every cell and pads short rows with
// blank cells up to the widest row. Spreadsheet readers omit trailing empty cells, and a blank
// attendance mark must still reach the normalizer as a cell.
func keepTables(tables []Table) []Table {
	kept := make([]Table, 0, len(tables))
	for _, table := range tables {
		if len(table) < 2 {
			continue
		}
		width := 0
		for _, row := range table {
			width = max(width, len(row))
		}
		for ri, row := range table {
			for i, c := range row {
				row[i] = cleanCell(c)
			}
			if len(row) < width {
				table[ri] = append(row, make([]string, width-len(row))...)
			}
		}
		kept = append(kept, table)
	}
	return kept
}

// cleanCell folds compatibility characters (non-breaking spaces, full-width digits) and trims.
func cleanCell(cell string) string {
	return strings.TrimSpace(norm.NFKC.String(cell))
}
