package worksheet

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrInvalidCoordinate is returned for a row/column outside the sheet grid
	// or reference text that does not name a cell.
	ErrInvalidCoordinate = errors.NewKind("invalid cell coordinate %v")
	// ErrInvalidRange is returned for range text that does not name a
	// rectangle of cells.
	ErrInvalidRange = errors.NewKind("invalid cell range %q")
	// ErrEmptyValue is returned when writing nothing, or an empty sequence.
	ErrEmptyValue = errors.NewKind("cell value is empty")
	// ErrUnsupportedValue is returned for a value that is not a boolean,
	// number, string or timestamp.
	ErrUnsupportedValue = errors.NewKind("unsupported cell value %#v")
)
