// Package models defines the JSON snapshot of a workbook's content.
package models

import "strconv"

// Cell type codes, as written in the t attribute of a cell.
const (
	TypeBoolean      = "b"
	TypeDate         = "d"
	TypeNumber       = "n"
	TypeSharedString = "s"
	TypeError        = "e"
)

// Cell is one typed cell value.
type Cell struct {
	// T is the cell type code.
	T string `json:"t"`
	// V is the value: bool for booleans, float64 for numbers, string otherwise.
	V interface{} `json:"v"`
}

// NewCell builds a Cell from a type code and the value text stored in the
// part. Numbers and booleans that do not parse keep their text.
func NewCell(typ, raw string) Cell {
	switch typ {
	case TypeBoolean:
		return Cell{T: typ, V: raw == "1" || raw == "true" || raw == "TRUE"}
	case TypeNumber:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return Cell{T: typ, V: f}
		}
	}
	return Cell{T: typ, V: raw}
}

// CellRow represents a single row of cells with optional hyperlinks.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (string) to cell value.
	C map[string]Cell `json:"c"`
	// Links maps column index to hyperlink URL (optional).
	Links map[string]string `json:"links,omitempty"`
}
