package parser

import (
	"strings"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/address"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
	"github.com/xuri/excelize/v2"
)

// ExtractDefinedNames lists the workbook's defined names, print areas
// included. References are split into their sheet areas.
func ExtractDefinedNames(f *excelize.File) []models.DefinedName {
	var result []models.DefinedName

	for _, dn := range f.GetDefinedName() {
		name := models.DefinedName{
			Name:     dn.Name,
			RefersTo: dn.RefersTo,
			Areas:    Areas(dn.RefersTo),
		}
		if dn.Scope != "Workbook" {
			name.Scope = dn.Scope
		}
		result = append(result, name)
	}

	return result
}

// Areas parses a reference list like 'Sheet 1'!$A$1:$D$10,Other!B2 into
// areas. Parts that are not sheet references are skipped.
func Areas(refersTo string) []models.Area {
	var areas []models.Area
	for _, ref := range address.ParseReference(strings.TrimPrefix(refersTo, "=")) {
		areas = append(areas, models.Area{
			Sheet: ref.Sheet,
			R1:    ref.Range.Top,
			C1:    ref.Range.Left,
			R2:    ref.Range.Bottom,
			C2:    ref.Range.Right,
		})
	}
	return areas
}

// ExtractPrintAreas returns the print areas of each sheet, keyed by sheet
// name.
func ExtractPrintAreas(f *excelize.File) map[string][]models.Area {
	result := make(map[string][]models.Area)
	for _, dn := range ExtractDefinedNames(f) {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		for _, area := range dn.Areas {
			result[area.Sheet] = append(result[area.Sheet], area)
		}
	}
	return result
}
