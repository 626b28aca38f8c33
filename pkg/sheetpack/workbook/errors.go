package workbook

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrIndexOutOfRange is returned for a sheet index outside the collection.
	ErrIndexOutOfRange = errors.NewKind("sheet index %d out of range [0, %d]")

	// ErrSheetNotFound is returned when no sheet has the requested name, or a
	// defined name is scoped to a sheet that does not exist.
	ErrSheetNotFound = errors.NewKind("sheet not found: %v")

	// ErrLastSheet is returned when deleting the only remaining sheet.
	ErrLastSheet = errors.NewKind("cannot delete %q: a workbook needs at least one sheet")

	// ErrUnsupportedSheetKind is returned when creating a sheet of a kind
	// other than a worksheet.
	ErrUnsupportedSheetKind = errors.NewKind("unsupported sheet kind %s")

	// ErrInvalidDefinedName is returned for a defined name without a name or
	// formula.
	ErrInvalidDefinedName = errors.NewKind("invalid defined name %q: %s")
)
