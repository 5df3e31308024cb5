package extract

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// textRow is a line of glyphs sharing a baseline within tolerance.
type textRow struct {
	y     float64
	texts []pdf.Text
}

func readPDF(path string, opts Options) ([]Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := make([]Page, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		texts, err := pageTexts(p)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}

		rows := groupTextsIntoRows(texts, opts.RowTolerance)
		segmented := make([][]cell, 0, len(rows))
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			cells := splitCells(row.texts, opts.ColumnGap)
			if len(cells) == 0 {
				continue
			}
			segmented = append(segmented, cells)
			lines = append(lines, strings.Join(cellTexts(cells), " "))
		}
		table := alignColumns(segmented)
		pages = append(pages, Page{
			Number: i,
			Text:   strings.Join(lines, "\n"),
			Tables: []Table{table},
		})
	}
	return pages, nil
}

// pageTexts reads the content stream. The pdf package panics on malformed streams.
func pageTexts(p pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed content stream: %v", rec)
		}
	}()
	return p.Content().Text, nil
}

// groupTextsIntoRows buckets glyphs by baseline and orders rows top to bottom.
func groupTextsIntoRows(texts []pdf.Text, tolerance float64) []textRow {
	var rows []textRow
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		placed := false
		for i := range rows {
			if math.Abs(rows[i].y-t.Y) < tolerance {
				rows[i].texts = append(rows[i].texts, t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, textRow{y: t.Y, texts: []pdf.Text{t}})
		}
	}

	// PDF user space grows upward.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })
	for i := range rows {
		sort.SliceStable(rows[i].texts, func(a, b int) bool { return rows[i].texts[a].X < rows[i].texts[b].X })
	}
	return rows
}

// cell is a run of glyphs separated from its neighbours by more than the column gap. x is the left edge
// of its first glyph.
type cell struct {
	x    float64
	text string
}

// splitCells joins glyphs left to right, starting a new cell whenever the horizontal gap exceeds
// columnGap and inserting a space for smaller word gaps.
func splitCells(texts []pdf.Text, columnGap float64) []cell {
	var (
		cells   []cell
		current strings.Builder
		startX  float64
		prevEnd float64
	)
	flush := func() {
		if text := strings.TrimSpace(current.String()); text != "" {
			cells = append(cells, cell{x: startX, text: text})
		}
		current.Reset()
	}

	for i, t := range texts {
		if i == 0 {
			startX = t.X
		} else {
			gap := t.X - prevEnd
			switch {
			case gap > columnGap:
				flush()
				startX = t.X
			case gap > wordGap(t):
				current.WriteByte(' ')
			}
		}
		current.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	flush()
	return cells
}

func cellTexts(cells []cell) []string {
	texts := make([]string, len(cells))
	for i, c := range cells {
		texts[i] = c.text
	}
	return texts
}

// alignColumns places every cell into a column so blank columns survive as "". The row with the most
// cells (topmost on ties, usually the header) supplies the column anchors, and each cell goes to the
// anchor nearest its left edge. Cells landing in the same column are joined with a space.
func alignColumns(rows [][]cell) Table {
	var anchors []float64
	for _, row := range rows {
		if len(row) > len(anchors) {
			anchors = anchors[:0]
			for _, c := range row {
				anchors = append(anchors, c.x)
			}
		}
	}

	table := make(Table, 0, len(rows))
	for _, row := range rows {
		if len(row) == len(anchors) {
			table = append(table, cellTexts(row))
			continue
		}
		aligned := make([]string, len(anchors))
		for _, c := range row {
			col := nearestAnchor(anchors, c.x)
			if aligned[col] != "" {
				aligned[col] += " "
			}
			aligned[col] += c.text
		}
		table = append(table, aligned)
	}
	return table
}

func nearestAnchor(anchors []float64, x float64) int {
	best := 0
	for i, a := range anchors {
		if math.Abs(a-x) < math.Abs(anchors[best]-x) {
			best = i
		}
	}
	return best
}

func wordGap(t pdf.Text) float64 {
	if t.FontSize <= 0 {
		return 1
	}
	return t.FontSize * 0.2
}
