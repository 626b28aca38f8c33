// Package address parses and composes A1-style cell coordinates and ranges.
package address

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxRow is the largest 1-based row index a sheet can address.
	MaxRow = 1048576
	// MaxColumn is the largest 1-based column index a sheet can address (XFD).
	MaxColumn = 16384
	// Invalid marks an unset row or column.
	Invalid = -1
)

var coordinatePattern = regexp.MustCompile(`^\$?([A-Za-z]{1,3})\$?([0-9]+)$`)

// Coordinate is a 1-based (row, column) cell position.
type Coordinate struct {
	Row    int
	Column int
}

// InvalidCoordinate is the sentinel returned for text that does not name a cell.
var InvalidCoordinate = Coordinate{Row: Invalid, Column: Invalid}

// IsValidRowColumn reports whether row and column fall inside the sheet grid.
func IsValidRowColumn(row, column int) bool {
	return row >= 1 && row <= MaxRow && column >= 1 && column <= MaxColumn
}

// Valid reports whether c addresses a cell inside the sheet grid.
func (c Coordinate) Valid() bool {
	return IsValidRowColumn(c.Row, c.Column)
}

// String returns the relative A1 form of c, or "" when c is not a cell.
func (c Coordinate) String() string {
	return ComposeCoordinate(c.Row, c.Column, false, false)
}

// Less orders coordinates row-major then column-major.
func (c Coordinate) Less(o Coordinate) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Column < o.Column
}

// ParseCoordinate parses text such as "B7", "$b$7" or "xfd1048576".
// Text that does not match, or that resolves to a non-positive row or
// column, yields InvalidCoordinate.
func ParseCoordinate(text string) Coordinate {
	m := coordinatePattern.FindStringSubmatch(text)
	if m == nil {
		return InvalidCoordinate
	}

	row, err := strconv.Atoi(m[2])
	if err != nil || row <= 0 {
		return InvalidCoordinate
	}
	column := ParseColumn(m[1])
	if column <= 0 {
		return InvalidCoordinate
	}

	return Coordinate{Row: row, Column: column}
}

// ParseColumn maps column letters to a 1-based index using bijective
// base-26 (A=1, Z=26, AA=27). It returns Invalid for empty or non-letter input.
func ParseColumn(letters string) int {
	if letters == "" {
		return Invalid
	}

	column := 0
	for _, ch := range strings.ToUpper(letters) {
		if ch < 'A' || ch > 'Z' {
			return Invalid
		}
		column = column*26 + int(ch-'A'+1)
	}
	return column
}

// ComposeColumn is the inverse of ParseColumn. Non-positive input yields "".
func ComposeColumn(column int) string {
	var buf [8]byte
	i := len(buf)
	for column > 0 {
		i--
		buf[i] = byte('A' + (column-1)%26)
		column = (column - 1) / 26
	}
	return string(buf[i:])
}

// ComposeCoordinate renders (row, column) in A1 form, prefixing "$" on the
// row and/or column when the matching flag is set. Non-positive input yields "".
func ComposeCoordinate(row, column int, rowAbs, colAbs bool) string {
	if row <= 0 || column <= 0 {
		return ""
	}

	var b strings.Builder
	if colAbs {
		b.WriteByte('$')
	}
	b.WriteString(ComposeColumn(column))
	if rowAbs {
		b.WriteByte('$')
	}
	b.WriteString(strconv.Itoa(row))
	return b.String()
}
