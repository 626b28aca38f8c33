package address

import "strings"

// Dimension is an inclusive rectangular cell range. The zero value is not
// valid; use NewDimension or EmptyDimension.
type Dimension struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// EmptyDimension returns a range with every bound unset. Extend grows it.
func EmptyDimension() Dimension {
	return Dimension{Top: Invalid, Left: Invalid, Bottom: Invalid, Right: Invalid}
}

// NewDimension returns the range spanning start to end.
func NewDimension(start, end Coordinate) Dimension {
	return Dimension{Top: start.Row, Left: start.Column, Bottom: end.Row, Right: end.Column}
}

// Valid reports whether every bound is inside the grid and the range is not inverted.
func (d Dimension) Valid() bool {
	return IsValidRowColumn(d.Top, d.Left) && IsValidRowColumn(d.Bottom, d.Right) &&
		d.Top <= d.Bottom && d.Left <= d.Right
}

// Start returns the top-left corner.
func (d Dimension) Start() Coordinate { return Coordinate{Row: d.Top, Column: d.Left} }

// End returns the bottom-right corner.
func (d Dimension) End() Coordinate { return Coordinate{Row: d.Bottom, Column: d.Right} }

// Contains reports whether (row, column) lies inside a valid d.
func (d Dimension) Contains(row, column int) bool {
	return d.Valid() && row >= d.Top && row <= d.Bottom && column >= d.Left && column <= d.Right
}

// Extend widens d so that it includes (row, column). Unset bounds take the
// new point directly; set bounds only ever move outward. It returns false,
// leaving d untouched, when (row, column) is outside the grid.
func (d *Dimension) Extend(row, column int) bool {
	if !IsValidRowColumn(row, column) {
		return false
	}
	if d.Top == Invalid || row < d.Top {
		d.Top = row
	}
	if d.Bottom == Invalid || row > d.Bottom {
		d.Bottom = row
	}
	if d.Left == Invalid || column < d.Left {
		d.Left = column
	}
	if d.Right == Invalid || column > d.Right {
		d.Right = column
	}
	return true
}

// Reset clears every bound.
func (d *Dimension) Reset() {
	*d = EmptyDimension()
}

// String returns the relative form of d (see ComposeRange).
func (d Dimension) String() string {
	return ComposeRange(d, false, false)
}

// ParseRange parses "A1:C3" or a single coordinate "B2". More than two
// parts, an invalid endpoint or an inverted range yields EmptyDimension.
func ParseRange(text string) Dimension {
	var parts []string
	for _, p := range strings.Split(text, ":") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 || len(parts) > 2 {
		return EmptyDimension()
	}

	start := ParseCoordinate(parts[0])
	end := start
	if len(parts) == 2 {
		end = ParseCoordinate(parts[1])
	}

	d := NewDimension(start, end)
	if !d.Valid() {
		return EmptyDimension()
	}
	return d
}

// ComposeRange renders d as "A1:C3", or as a single coordinate when d covers
// one cell. An invalid d yields "".
func ComposeRange(d Dimension, rowAbs, colAbs bool) string {
	if !d.Valid() {
		return ""
	}

	start := ComposeCoordinate(d.Top, d.Left, rowAbs, colAbs)
	if d.Top == d.Bottom && d.Left == d.Right {
		return start
	}
	return start + ":" + ComposeCoordinate(d.Bottom, d.Right, rowAbs, colAbs)
}
