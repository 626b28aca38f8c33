package sheetpack

import (
	"strconv"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/worksheet"
)

// Snapshot returns the document's content as a models.WorkbookData: every
// sheet's non-empty cells with their hyperlinks, the defined names and the
// stored properties. The document is not modified.
func (d *Document) Snapshot(bookName string) *models.WorkbookData {
	wb := d.wb
	data := &models.WorkbookData{
		BookName:   bookName,
		Properties: d.Properties(),
	}
	if ws := wb.Sheet(wb.ActiveIndex()); ws != nil {
		data.ActiveSheet = ws.Name()
	}

	for _, ws := range wb.Sheets() {
		data.Sheets = append(data.Sheets, snapshotSheet(ws))
	}

	for _, dn := range wb.DefinedNames() {
		name := models.DefinedName{
			Name:     dn.Name,
			Scope:    wb.LocalSheet(dn),
			RefersTo: dn.RefersTo,
		}
		for _, ref := range dn.References() {
			name.Areas = append(name.Areas, models.Area{
				Sheet: ref.Sheet,
				R1:    ref.Range.Top,
				C1:    ref.Range.Left,
				R2:    ref.Range.Bottom,
				C2:    ref.Range.Right,
			})
		}
		data.DefinedNames = append(data.DefinedNames, name)
	}

	return data
}

func snapshotSheet(ws *worksheet.Worksheet) models.SheetData {
	sheet := models.SheetData{Name: ws.Name(), Dimension: "A1"}
	if dim := ws.Dimension(); dim.Valid() {
		sheet.Dimension = dim.String()
	}

	var current *models.CellRow
	ws.Range(func(row, column int, v worksheet.Value) bool {
		if current == nil || current.R != row {
			sheet.Rows = append(sheet.Rows, models.CellRow{R: row, C: make(map[string]models.Cell)})
			current = &sheet.Rows[len(sheet.Rows)-1]
		}
		col := strconv.Itoa(column)
		current.C[col] = models.NewCell(v.Type().Code(), v.String())
		if target, ok := ws.Hyperlink(row, column); ok {
			if current.Links == nil {
				current.Links = make(map[string]string)
			}
			current.Links[col] = target
		}
		return true
	})

	return sheet
}
