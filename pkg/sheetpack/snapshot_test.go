package sheetpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/worksheet"
)

func TestSnapshot(t *testing.T) {
	d := New(Options{Properties: map[string]string{"creator": "ann"}})
	wb := d.Workbook()
	ws, err := wb.AppendSheet("Data", worksheet.KindWorksheet)
	require.NoError(t, err)
	_, err = wb.AppendSheet("Empty", worksheet.KindWorksheet)
	require.NoError(t, err)

	require.NoError(t, ws.WriteRow(2, 1, []any{"x", 1.5, false}))
	require.NoError(t, ws.Write(4, 2, 7))
	require.NoError(t, ws.SetHyperlink(2, 1, "https://example.com"))
	require.NoError(t, wb.DefineName("Block", "Data!$A$2:$C$4", "Data"))
	require.NoError(t, wb.SetCurrentSheet(0))

	snap := d.Snapshot("book.xlsx")
	assert.Equal(t, "book.xlsx", snap.BookName)
	assert.Equal(t, "Data", snap.ActiveSheet)
	assert.Equal(t, "ann", snap.Properties["creator"])

	require.Len(t, snap.Sheets, 2)
	data := snap.Sheets[0]
	assert.Equal(t, "A2:C4", data.Dimension)
	assert.Equal(t, []models.CellRow{
		{
			R: 2,
			C: map[string]models.Cell{
				"1": {T: "s", V: "x"},
				"2": {T: "n", V: 1.5},
				"3": {T: "b", V: false},
			},
			Links: map[string]string{"1": "https://example.com"},
		},
		{R: 4, C: map[string]models.Cell{"2": {T: "n", V: float64(7)}}},
	}, data.Rows)
	assert.Equal(t, models.SheetData{Name: "Empty", Dimension: "A1"}, snap.Sheets[1])

	assert.Equal(t, []models.DefinedName{{
		Name:     "Block",
		Scope:    "Data",
		RefersTo: "Data!$A$2:$C$4",
		Areas:    []models.Area{{Sheet: "Data", R1: 2, C1: 1, R2: 4, C2: 3}},
	}}, snap.DefinedNames)

	assert.Equal(t, 2, wb.SheetCount(), "snapshot does not create sheets")
}

func TestSnapshotSurvivesRoundTrip(t *testing.T) {
	d := New(Options{Clock: fixedClock})
	ws := d.Workbook().CurrentSheet()
	require.NoError(t, ws.WriteRow(1, 1, []any{"a", 1, true, fixedClock()}))
	require.NoError(t, ws.SetHyperlink(1, 2, "https://example.com/one"))

	loaded := reopen(t, d, Options{})
	assert.Empty(t, models.Compare(d.Snapshot("x"), loaded.Snapshot("x")))
}
