package models

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/address"
)

// Mismatch is one difference between two snapshots of the same workbook.
type Mismatch struct {
	Sheet string `json:"sheet,omitempty"`
	Cell  string `json:"cell,omitempty"`
	Field string `json:"field"`
	Want  string `json:"want"`
	Got   string `json:"got"`
}

func (m Mismatch) String() string {
	where := m.Sheet
	if m.Cell != "" {
		where += "!" + m.Cell
	}
	return fmt.Sprintf("%s %s: want %q, got %q", where, m.Field, m.Want, m.Got)
}

type cellKey struct{ row, column int }

type cellInfo struct {
	cell Cell
	link string
}

// Compare lists the differences between want and got: sheets present in
// only one, cells whose type, value or link differ, and defined names.
// Properties and dimensions are not compared.
func Compare(want, got *WorkbookData) []Mismatch {
	var out []Mismatch

	for _, ws := range want.Sheets {
		gs, ok := got.Sheet(ws.Name)
		if !ok {
			out = append(out, Mismatch{Sheet: ws.Name, Field: "sheet", Want: "present", Got: "missing"})
			continue
		}
		out = append(out, compareSheet(ws, gs)...)
	}
	for _, gs := range got.Sheets {
		if _, ok := want.Sheet(gs.Name); !ok {
			out = append(out, Mismatch{Sheet: gs.Name, Field: "sheet", Want: "missing", Got: "present"})
		}
	}

	return append(out, compareNames(want.DefinedNames, got.DefinedNames)...)
}

func compareSheet(want, got SheetData) []Mismatch {
	w, g := indexCells(want), indexCells(got)
	keys := make([]cellKey, 0, len(w)+len(g))
	for k := range w {
		keys = append(keys, k)
	}
	for k := range g {
		if _, ok := w[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].row != keys[j].row {
			return keys[i].row < keys[j].row
		}
		return keys[i].column < keys[j].column
	})

	var out []Mismatch
	for _, k := range keys {
		wc, wok := w[k]
		gc, gok := g[k]
		ref := address.ComposeCoordinate(k.row, k.column, false, false)
		m := Mismatch{Sheet: want.Name, Cell: ref}
		switch {
		case !gok:
			m.Field, m.Want, m.Got = "value", render(wc.cell), ""
		case !wok:
			m.Field, m.Want, m.Got = "value", "", render(gc.cell)
		case wc.cell.T != gc.cell.T:
			m.Field, m.Want, m.Got = "type", wc.cell.T, gc.cell.T
		case render(wc.cell) != render(gc.cell):
			m.Field, m.Want, m.Got = "value", render(wc.cell), render(gc.cell)
		case wc.link != gc.link:
			m.Field, m.Want, m.Got = "link", wc.link, gc.link
		default:
			continue
		}
		out = append(out, m)
	}
	return out
}

func indexCells(s SheetData) map[cellKey]cellInfo {
	cells := make(map[cellKey]cellInfo)
	for _, row := range s.Rows {
		for col, c := range row.C {
			n, err := strconv.Atoi(col)
			if err != nil {
				continue
			}
			cells[cellKey{row.R, n}] = cellInfo{cell: c, link: row.Links[col]}
		}
	}
	return cells
}

func render(c Cell) string {
	return fmt.Sprint(c.V)
}

func compareNames(want, got []DefinedName) []Mismatch {
	key := func(d DefinedName) string { return d.Scope + "\x00" + d.Name }
	g := make(map[string]DefinedName, len(got))
	for _, d := range got {
		g[key(d)] = d
	}

	var out []Mismatch
	for _, d := range want {
		other, ok := g[key(d)]
		switch {
		case !ok:
			out = append(out, Mismatch{Sheet: d.Scope, Field: "defined name " + d.Name, Want: d.RefersTo})
		case other.RefersTo != d.RefersTo:
			out = append(out, Mismatch{Sheet: d.Scope, Field: "defined name " + d.Name, Want: d.RefersTo, Got: other.RefersTo})
		}
		delete(g, key(d))
	}

	rest := make([]DefinedName, 0, len(g))
	for _, d := range g {
		rest = append(rest, d)
	}
	sort.Slice(rest, func(i, j int) bool { return key(rest[i]) < key(rest[j]) })
	for _, d := range rest {
		out = append(out, Mismatch{Sheet: d.Scope, Field: "defined name " + d.Name, Got: d.RefersTo})
	}
	return out
}
