package sheetpack

import (
	"fmt"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/rels"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/sst"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/workbook"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/worksheet"
	errors "gopkg.in/src-d/go-errors.v1"
)

// Validation errors.
var (
	ErrInvalidCoordinate  = worksheet.ErrInvalidCoordinate
	ErrInvalidRange       = worksheet.ErrInvalidRange
	ErrEmptyValue         = worksheet.ErrEmptyValue
	ErrUnsupportedValue   = worksheet.ErrUnsupportedValue
	ErrInvalidDefinedName = workbook.ErrInvalidDefinedName
)

// Sheet collection errors.
var (
	ErrIndexOutOfRange      = workbook.ErrIndexOutOfRange
	ErrSheetNotFound        = workbook.ErrSheetNotFound
	ErrLastSheet            = workbook.ErrLastSheet
	ErrUnsupportedSheetKind = workbook.ErrUnsupportedSheetKind
)

// Structural load errors.
var (
	ErrStringIndexOutOfRange = sst.ErrIndexOutOfRange
	ErrCountMismatch         = sst.ErrCountMismatch
	ErrMalformedRelationship = rels.ErrMalformedRelationship

	// ErrMissingPart indicates a required part is absent from the package.
	ErrMissingPart = errors.NewKind("required part %s is missing")

	// ErrUnresolvedRelationship indicates a required relationship is absent.
	ErrUnresolvedRelationship = errors.NewKind("no %s relationship in %s")
)

// ErrNoPath is returned by Save on a document that has never had a path.
var ErrNoPath = errors.NewKind("document has no path; use SaveAs")

// PartError represents a failure to load or save one part of the package.
type PartError struct {
	Part string
	Op   string // "read", "parse", "compose", "write"
	Err  error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Part, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}

func newPartError(part, op string, err error) *PartError {
	return &PartError{Part: part, Op: op, Err: err}
}
