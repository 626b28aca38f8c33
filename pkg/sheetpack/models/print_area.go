package models

import (
	"sort"
	"strconv"
	"strings"
)

// PrintAreaView is the content of one print area of a sheet.
type PrintAreaView struct {
	BookName  string    `json:"book_name"`
	SheetName string    `json:"sheet_name"`
	Area      Area      `json:"area"`
	Rows      []CellRow `json:"rows,omitempty"`
}

// PrintAreas returns the print areas defined for sheet.
func (w *WorkbookData) PrintAreas(sheet string) []Area {
	var areas []Area
	for _, dn := range w.DefinedNames {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		for _, a := range dn.Areas {
			if a.Sheet == sheet {
				areas = append(areas, a)
			}
		}
	}
	return areas
}

// PrintAreaViews cuts every print area out of its sheet, in sheet order.
// Cells outside an area's rows or columns are dropped.
func (w *WorkbookData) PrintAreaViews() []PrintAreaView {
	var views []PrintAreaView
	for _, sheet := range w.Sheets {
		for _, area := range w.PrintAreas(sheet.Name) {
			views = append(views, PrintAreaView{
				BookName:  w.BookName,
				SheetName: sheet.Name,
				Area:      area,
				Rows:      clipRows(sheet.Rows, area),
			})
		}
	}
	return views
}

func clipRows(rows []CellRow, area Area) []CellRow {
	var out []CellRow
	for _, row := range rows {
		if row.R < area.R1 || row.R > area.R2 {
			continue
		}
		clipped := CellRow{R: row.R, C: make(map[string]Cell)}
		for col, c := range row.C {
			n, err := strconv.Atoi(col)
			if err != nil || n < area.C1 || n > area.C2 {
				continue
			}
			clipped.C[col] = c
			if link, ok := row.Links[col]; ok {
				if clipped.Links == nil {
					clipped.Links = make(map[string]string)
				}
				clipped.Links[col] = link
			}
		}
		if len(clipped.C) > 0 {
			out = append(out, clipped)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].R < out[j].R })
	return out
}
