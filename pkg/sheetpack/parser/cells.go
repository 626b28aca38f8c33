package parser

import (
	"strconv"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells extracts cell data from a sheet.
// It returns a slice of CellRow containing non-empty rows. Values are read
// raw, so numbers keep their stored precision and booleans read as 1 or 0.
func ExtractCells(f *excelize.File, sheetName string, includeLinks bool) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1
		cellMap := make(map[string]models.Cell)
		linkMap := make(map[string]string)

		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			colStr := strconv.Itoa(colIdx + 1)
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}

			typ, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cellMap[colStr] = models.NewCell(typeCode(typ), cellValue)

			if includeLinks {
				hasLink, target, err := f.GetCellHyperLink(sheetName, cellName)
				if err == nil && hasLink && target != "" {
					linkMap[colStr] = target
				}
			}
		}

		if len(cellMap) > 0 {
			cellRow := models.CellRow{R: rowNum, C: cellMap}
			if len(linkMap) > 0 {
				cellRow.Links = linkMap
			}
			result = append(result, cellRow)
		}
	}

	return result, nil
}

// typeCode maps an excelize cell type onto the snapshot type codes.
// Inline and formula strings read as text, an absent type as a number.
func typeCode(t excelize.CellType) string {
	switch t {
	case excelize.CellTypeBool:
		return models.TypeBoolean
	case excelize.CellTypeDate:
		return models.TypeDate
	case excelize.CellTypeError:
		return models.TypeError
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.TypeSharedString
	default:
		return models.TypeNumber
	}
}
