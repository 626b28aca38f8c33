package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
)

func sample() *models.WorkbookData {
	return &models.WorkbookData{
		BookName: "book.xlsx",
		Sheets: []models.SheetData{
			{Name: "Data", Dimension: "A1:B1", Rows: []models.CellRow{
				{R: 1, C: map[string]models.Cell{"2": models.NewCell("n", "2"), "1": models.NewCell("s", "Hello")}},
			}},
			{Name: "a/b", Dimension: "A1"},
		},
		DefinedNames: []models.DefinedName{{
			Name:     "_xlnm.Print_Area",
			Scope:    "Data",
			RefersTo: "Data!$A$1",
			Areas:    []models.Area{{Sheet: "Data", R1: 1, C1: 1, R2: 1, C2: 1}},
		}},
	}
}

func TestToJSON(t *testing.T) {
	data, err := SheetToJSON(&sample().Sheets[0], false)
	require.NoError(t, err)
	assert.Equal(t,
		`{"name":"Data","dimension":"A1:B1","rows":[{"r":1,"c":{"1":{"t":"s","v":"Hello"},"2":{"t":"n","v":2}}}]}`,
		string(data))

	pretty, err := ToJSON(models.Cell{T: "b", V: true}, true)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"t\": \"b\",\n  \"v\": true\n}", string(pretty))
}

func TestWorkbookToJSONIsStable(t *testing.T) {
	first, err := WorkbookToJSON(sample(), true)
	require.NoError(t, err)
	second, err := WorkbookToJSON(sample(), true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWriteSheetFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sheets")
	written, err := WriteSheetFiles(sample(), dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "Data.json"), filepath.Join(dir, "a_b.json")}, written)

	data, err := os.ReadFile(filepath.Join(dir, "a_b.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a/b","dimension":"A1"}`, string(data))
}

func TestWritePrintAreaFiles(t *testing.T) {
	dir := t.TempDir()
	written, err := WritePrintAreaFiles(sample(), dir, false)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "Data_area1.json")}, written)

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Equal(t,
		`{"book_name":"book.xlsx","sheet_name":"Data","area":{"sheet":"Data","r1":1,"c1":1,"r2":1,"c2":1},"rows":[{"r":1,"c":{"1":{"t":"s","v":"Hello"}}}]}`,
		string(data))
}
