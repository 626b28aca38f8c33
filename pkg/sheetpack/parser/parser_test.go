package parser

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/worksheet"
	"github.com/xuri/excelize/v2"
)

func TestExtractCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	require.NoError(t, f.SetCellValue(sheetName, "A1", "Header1"))
	require.NoError(t, f.SetCellValue(sheetName, "B1", "Header2"))
	require.NoError(t, f.SetCellValue(sheetName, "A2", 100))
	require.NoError(t, f.SetCellValue(sheetName, "B2", 200.5))
	require.NoError(t, f.SetCellValue(sheetName, "C2", true))
	require.NoError(t, f.SetCellValue(sheetName, "A4", "Text"))
	require.NoError(t, f.SetCellHyperLink(sheetName, "A4", "https://example.com", "External"))

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(tmpFile))

	f2, err := excelize.OpenFile(tmpFile)
	require.NoError(t, err)
	defer f2.Close()

	rows, err := ExtractCells(f2, sheetName, true)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].R)
	assert.Equal(t, models.Cell{T: "s", V: "Header1"}, rows[0].C["1"])
	assert.Equal(t, models.Cell{T: "n", V: float64(100)}, rows[1].C["1"])
	assert.Equal(t, models.Cell{T: "n", V: 200.5}, rows[1].C["2"])
	assert.Equal(t, models.Cell{T: "b", V: true}, rows[1].C["3"])
	assert.Nil(t, rows[1].Links)

	assert.Equal(t, 4, rows[2].R, "empty rows are skipped")
	assert.Equal(t, map[string]string{"1": "https://example.com"}, rows[2].Links)

	rows, err = ExtractCells(f2, sheetName, false)
	require.NoError(t, err)
	assert.Nil(t, rows[2].Links)

	_, err = ExtractCells(f2, "Missing", false)
	assert.Error(t, err)
}

func TestTypeCode(t *testing.T) {
	tests := []struct {
		input    excelize.CellType
		expected string
	}{
		{excelize.CellTypeBool, "b"},
		{excelize.CellTypeDate, "d"},
		{excelize.CellTypeError, "e"},
		{excelize.CellTypeNumber, "n"},
		{excelize.CellTypeUnset, "n"},
		{excelize.CellTypeSharedString, "s"},
		{excelize.CellTypeInlineString, "s"},
		{excelize.CellTypeFormula, "s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, typeCode(tt.input), "type %v", tt.input)
	}
}

func TestAreas(t *testing.T) {
	tests := []struct {
		input    string
		expected []models.Area
	}{
		{"Sheet1!$A$1:$D$10", []models.Area{{Sheet: "Sheet1", R1: 1, C1: 1, R2: 10, C2: 4}}},
		{"='My Sheet'!$B$2:$C$3", []models.Area{{Sheet: "My Sheet", R1: 2, C1: 2, R2: 3, C2: 3}}},
		{"A!$A$1,'B, C'!$B$2", []models.Area{
			{Sheet: "A", R1: 1, C1: 1, R2: 1, C2: 1},
			{Sheet: "B, C", R1: 2, C1: 2, R2: 2, C2: 2},
		}},
		{"SUM(1,2)", nil},
		{"", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Areas(tt.input), tt.input)
	}
}

func TestExtractDefinedNames(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Other")
	require.NoError(t, err)

	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{Name: "Total", RefersTo: "Sheet1!$A$1:$A$5"}))
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{Name: "_xlnm.Print_Area", RefersTo: "Other!$A$1:$C$3", Scope: "Other"}))

	names := ExtractDefinedNames(f)
	require.Len(t, names, 2)
	byName := map[string]models.DefinedName{}
	for _, dn := range names {
		byName[dn.Name] = dn
	}

	assert.Equal(t, "", byName["Total"].Scope)
	assert.Equal(t, []models.Area{{Sheet: "Sheet1", R1: 1, C1: 1, R2: 5, C2: 1}}, byName["Total"].Areas)
	assert.Equal(t, "Other", byName["_xlnm.Print_Area"].Scope)

	areas := ExtractPrintAreas(f)
	assert.Equal(t, map[string][]models.Area{
		"Other": {{Sheet: "Other", R1: 1, C1: 1, R2: 3, C2: 3}},
	}, areas)
}

func TestOptionsDefaults(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.ShouldIncludeLinks())
	assert.True(t, opts.ShouldIncludeProperties())

	off := false
	opts.IncludeLinks = &off
	opts.IncludeProperties = &off
	assert.False(t, opts.ShouldIncludeLinks())
	assert.False(t, opts.ShouldIncludeProperties())
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "nope.xlsx"), DefaultOptions())
	assert.Error(t, err)

	_, err = ExtractReader(bytes.NewReader([]byte("not a zip")), "garbage.xlsx", DefaultOptions())
	assert.Error(t, err)
}

// A package written by sheetpack must read back through excelize with the
// same content sheetpack itself reports.
func TestExtractReadsSheetpackOutput(t *testing.T) {
	stamp := time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)
	doc := sheetpack.New(sheetpack.Options{
		Clock:      func() time.Time { return stamp },
		Properties: map[string]string{"title": "Interop", "Company": "Acme"},
	})
	wb := doc.Workbook()
	data, err := wb.AppendSheet("Data", worksheet.KindWorksheet)
	require.NoError(t, err)
	notes, err := wb.AppendSheet("Notes & more", worksheet.KindWorksheet)
	require.NoError(t, err)

	require.NoError(t, data.WriteRow(1, 1, []any{"Hello", 2, true}))
	require.NoError(t, data.WriteRow(3, 2, []any{-0.5, "  spaced  ", stamp}))
	require.NoError(t, data.SetHyperlink(1, 1, "https://example.com/hello"))
	require.NoError(t, notes.Write(2, 2, "Hello"))
	require.NoError(t, wb.DefineName("Greeting", "Data!$A$1", ""))
	require.NoError(t, wb.DefineName("_xlnm.Print_Area", "'Notes & more'!$A$1:$B$2", "Notes & more"))
	require.NoError(t, wb.SetCurrentSheet(1))

	raw, err := doc.Bytes()
	require.NoError(t, err)

	got, err := ExtractReader(bytes.NewReader(raw), "interop.xlsx", DefaultOptions())
	require.NoError(t, err)
	want := doc.Snapshot("interop.xlsx")

	assert.Empty(t, models.Compare(want, got))
	assert.Equal(t, "Notes & more", got.ActiveSheet)
	assert.Equal(t, []string{"Data", "Notes & more"}, []string{got.Sheets[0].Name, got.Sheets[1].Name})
	assert.Equal(t, "A1:D3", got.Sheets[0].Dimension)
	assert.Equal(t, "Interop", got.Properties["title"])
	assert.Equal(t, "Acme", got.Properties["Company"])

	printAreas := map[string][]models.Area{}
	for _, dn := range got.DefinedNames {
		if dn.Name == "_xlnm.Print_Area" {
			printAreas[dn.Scope] = dn.Areas
		}
	}
	assert.Equal(t, []models.Area{{Sheet: "Notes & more", R1: 1, C1: 1, R2: 2, C2: 2}}, printAreas["Notes & more"])
}
