package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	appErrors "github.com/noah-isme/attendance-report/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOpenCSVPadsRaggedRows(t *testing.T) {
	path := writeFile(t, "attendance.csv", "Sr No,Course\n1,T1-Software Engineering BT01,2024-01-05,09:00,10:00,P\n")

	doc, err := Open(path, Options{})
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Tables, 1)

	table := doc.Pages[0].Tables[0]
	require.Len(t, table, 2)
	assert.Equal(t, []string{"Sr No", "Course", "", "", "", ""}, table[0])
	assert.Equal(t, []string{"1", "T1-Software Engineering BT01", "2024-01-05", "09:00", "10:00", "P"}, table[1])
	assert.Contains(t, doc.FirstPageText(), "Sr No Course")
}

func TestOpenDropsSingleRowTables(t *testing.T) {
	path := writeFile(t, "attendance.csv", "1,Drone,2024-01-05,09:00,10:00,P\n")

	doc, err := Open(path, Options{})
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Empty(t, doc.Pages[0].Tables)
}

func TestOpenNormalisesCells(t *testing.T) {
	// Full-width digit one and a non-breaking space around the mark.
	path := writeFile(t, "attendance.csv", "Sr,Course\n\uff11,Drone,d,s,e,\u00a0P\u00a0\n")

	doc, err := Open(path, Options{})
	require.NoError(t, err)
	row := doc.Pages[0].Tables[0][1]
	assert.Equal(t, "1", row[0])
	assert.Equal(t, "P", row[5])
}

func TestOpenXLSXReadsEverySheet(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name : Jane Doe"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"1", "T1-Software Engineering BT01", "2024-01-05", "09:00", "10:00", "P"}))
	_, err := f.NewSheet("Sheet2")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Sheet2", "A1", &[]interface{}{"Sr", "Course"}))
	require.NoError(t, f.SetSheetRow("Sheet2", "A2", &[]interface{}{"2", "T1-Software Engineering BT01", "2024-01-06", "09:00", "10:00", "A"}))
	path := filepath.Join(t.TempDir(), "attendance.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	doc, err := Open(path, Options{})
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	assert.Contains(t, doc.Pages[0].Text, "Name : Jane Doe")
	assert.Equal(t, "A", doc.Pages[1].Tables[0][1][5])
}

func TestOpenRejectsUnknownExtension(t *testing.T) {
	path := writeFile(t, "attendance.txt", "irrelevant")

	_, err := Open(path, Options{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedDocument.Code, appErrors.FromError(err).Code)
}

func TestOpenReportsMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf"), Options{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestOpenCorruptPDFIsUnreadable(t *testing.T) {
	path := writeFile(t, "attendance.pdf", "not a pdf at all")

	_, err := Open(path, Options{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDocumentUnreadable.Code, appErrors.FromError(err).Code)
}

func glyphs(y float64, x float64, word string) []pdf.Text {
	texts := make([]pdf.Text, 0, len(word))
	for i, r := range word {
		texts = append(texts, pdf.Text{X: x + float64(i)*5, Y: y, W: 5, FontSize: 10, S: string(r)})
	}
	return texts
}

func TestGroupTextsIntoRowsOrdersTopToBottom(t *testing.T) {
	var texts []pdf.Text
	texts = append(texts, glyphs(100, 10, "low")...)
	texts = append(texts, glyphs(700.5, 10, "top")...)
	texts = append(texts, glyphs(700, 40, "right")...)

	rows := groupTextsIntoRows(texts, 2)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"top", "right"}, cellTexts(splitCells(rows[0].texts, 12)))
	assert.Equal(t, []string{"low"}, cellTexts(splitCells(rows[1].texts, 12)))
}

func TestSplitCellsSeparatesWordsAndColumns(t *testing.T) {
	var texts []pdf.Text
	texts = append(texts, glyphs(500, 0, "1")...)
	texts = append(texts, glyphs(500, 30, "Drone")...)
	// Word gap of 3 points stays inside the cell.
	texts = append(texts, glyphs(500, 58, "Tech")...)
	texts = append(texts, glyphs(500, 120, "P")...)

	assert.Equal(t, []string{"1", "Drone Tech", "P"}, cellTexts(splitCells(texts, 12)))
}

func TestDumpWritesPagesAndRows(t *testing.T) {
	doc := &Document{Pages: []Page{{
		Number: 1,
		Text:   "Name : Jane",
		Tables: []Table{{{"Sr", "Course"}, {"1", "Drone"}}},
	}}}

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, doc))
	out := buf.String()
	assert.Contains(t, out, "PAGE 1")
	assert.Contains(t, out, "Name : Jane")
	assert.Contains(t, out, "--- table 1 (2 rows) ---")
	assert.Contains(t, out, `row 1: ["1" "Drone"]`)
}

func TestOpenKeepsBlankCells(t *testing.T) {
	header := []string{"Sr", "Course", "Date", "Start", "End", "Attendance"}
	rows := [][]string{
		header,
		{"1", "T1-Drone Technology", "", "09:00", "10:00", "P"},
		{"2", "T1-Drone Technology", "2024-01-06", "09:00", "10:00", ""},
	}
	want := Table{
		header,
		{"1", "T1-Drone Technology", "", "09:00", "10:00", "P"},
		{"2", "T1-Drone Technology", "2024-01-06", "09:00", "10:00", ""},
	}

	writeXLSX := func(t *testing.T) string {
		f := excelize.NewFile()
		for i, row := range rows {
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			cellRef, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &values))
		}
		path := filepath.Join(t.TempDir(), "attendance.xlsx")
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())
		return path
	}

	cases := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"csv", func(t *testing.T) string {
			return writeFile(t, "attendance.csv", "Sr,Course,Date,Start,End,Attendance\n"+
				"1,T1-Drone Technology,,09:00,10:00,P\n"+
				"2,T1-Drone Technology,2024-01-06,09:00,10:00,\n")
		}},
		{"csv without trailing separator", func(t *testing.T) string {
			return writeFile(t, "attendance.csv", "Sr,Course,Date,Start,End,Attendance\n"+
				"1,T1-Drone Technology,,09:00,10:00,P\n"+
				"2,T1-Drone Technology,2024-01-06,09:00,10:00\n")
		}},
		{"xlsx", writeXLSX},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Open(tc.path(t), Options{})
			require.NoError(t, err)
			require.Len(t, doc.Pages[0].Tables, 1)
			assert.Equal(t, want, doc.Pages[0].Tables[0])
		})
	}
}

func TestAlignColumnsKeepsBlankPDFColumns(t *testing.T) {
	line := func(y float64, words map[float64]string) []pdf.Text {
		var texts []pdf.Text
		for _, x := range []float64{10, 60, 200, 205, 300, 360, 420, 423} {
			if w, ok := words[x]; ok {
				texts = append(texts, glyphs(y, x, w)...)
			}
		}
		return texts
	}

	var texts []pdf.Text
	texts = append(texts, line(700, map[float64]string{10: "Sr", 60: "Course", 200: "Date", 300: "Start", 360: "End", 420: "Att"})...)
	texts = append(texts, line(680, map[float64]string{10: "1", 60: "Drone", 205: "2024-01-05", 300: "09:00", 360: "10:00", 423: "P"})...)
	texts = append(texts, line(660, map[float64]string{10: "2", 60: "Drone", 300: "09:00", 360: "10:00"})...)

	var segmented [][]cell
	for _, row := range groupTextsIntoRows(texts, 2) {
		segmented = append(segmented, splitCells(row.texts, 12))
	}

	assert.Equal(t, Table{
		{"Sr", "Course", "Date", "Start", "End", "Att"},
		{"1", "Drone", "2024-01-05", "09:00", "10:00", "P"},
		{"2", "Drone", "", "09:00", "10:00", ""},
	}, alignColumns(segmented))
}

func TestAlignColumnsEmpty(t *testing.T) {
	assert.Empty(t, alignColumns(nil))
}
