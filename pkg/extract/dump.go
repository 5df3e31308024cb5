package extract

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes every page's raw text and tables in a human-readable layout, for checking how a document
// was reconstructed before trusting the report.
func Dump(w io.Writer, doc *Document) error {
	rule := strings.Repeat("=", 80)
	for _, page := range doc.Pages {
		if _, err := fmt.Fprintf(w, "%s\nPAGE %d\n%s\n%s\n", rule, page.Number, rule, page.Text); err != nil {
			return err
		}
		for ti, table := range page.Tables {
			if _, err := fmt.Fprintf(w, "\n--- table %d (%d rows) ---\n", ti+1, len(table)); err != nil {
				return err
			}
			for ri, row := range table {
				if _, err := fmt.Fprintf(w, "row %d: %q\n", ri, row); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
