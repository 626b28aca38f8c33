// Package worksheet implements one sheet's sparse cell matrix: storage keyed
// row-major, used-range tracking, hyperlinks and the worksheet part codec.
package worksheet

import (
	"sort"
	"strconv"

	"github.com/creasty/defaults"
	"github.com/google/btree"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/address"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/rels"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/sst"
)

// FormatProperties are the sheet-wide row and column defaults.
type FormatProperties struct {
	DefaultColWidth  float64 `default:"8.43" yaml:"default_col_width" json:"default_col_width"`
	DefaultRowHeight float64 `default:"15" yaml:"default_row_height" json:"default_row_height"`
}

// DefaultFormat returns FormatProperties with their tag defaults applied.
func DefaultFormat() FormatProperties {
	var f FormatProperties
	_ = defaults.Set(&f)
	return f
}

// Hyperlink is an external link attached to a cell.
type Hyperlink struct {
	Cell   address.Coordinate
	Target string
}

type cell struct {
	row, column int
	value       Value
}

func cellLess(a, b *cell) bool {
	if a.row != b.row {
		return a.row < b.row
	}
	return a.column < b.column
}

// Worksheet is one sheet of a workbook. Text cells are interned in the
// workbook's shared-string table, which the sheet references but does not own.
type Worksheet struct {
	name string
	id   int
	kind Kind
	path string

	rels    *rels.Graph
	dim     address.Dimension
	cells   *btree.BTreeG[*cell]
	strings *sst.Table
	links   map[address.Coordinate]string
	format  FormatProperties
	logger  logrus.FieldLogger
}

// New returns an empty worksheet bound to table.
func New(name string, id int, table *sst.Table, logger logrus.FieldLogger) *Worksheet {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger = logger.WithField("sheet", name)
	return &Worksheet{
		name:    name,
		id:      id,
		kind:    KindWorksheet,
		rels:    rels.New(logger),
		dim:     address.EmptyDimension(),
		cells:   btree.NewG[*cell](32, cellLess),
		strings: table,
		links:   make(map[address.Coordinate]string),
		format:  DefaultFormat(),
		logger:  logger,
	}
}

// Name returns the sheet name.
func (ws *Worksheet) Name() string { return ws.name }

// SetName changes the sheet name. Uniqueness is the workbook's concern.
func (ws *Worksheet) SetName(name string) {
	ws.name = name
	ws.logger = ws.logger.WithField("sheet", name)
}

// ID returns the sheet id assigned by the workbook.
func (ws *Worksheet) ID() int { return ws.id }

// Kind returns the sheet kind.
func (ws *Worksheet) Kind() Kind { return ws.kind }

// Path returns the part path the sheet was loaded from or last composed to.
func (ws *Worksheet) Path() string { return ws.path }

// SetPath sets the part path.
func (ws *Worksheet) SetPath(p string) { ws.path = p }

// Relationships returns the sheet's own relationship graph.
func (ws *Worksheet) Relationships() *rels.Graph { return ws.rels }

// Dimension returns the used range. It only grows, until the sheet is reloaded.
func (ws *Worksheet) Dimension() address.Dimension { return ws.dim }

// Format returns the sheet format properties.
func (ws *Worksheet) Format() FormatProperties { return ws.format }

// SetFormat replaces the sheet format properties.
func (ws *Worksheet) SetFormat(f FormatProperties) { ws.format = f }

// Write stores v at (row, column). See Classify for the accepted types. On
// error the sheet is unchanged.
func (ws *Worksheet) Write(row, column int, v any) error {
	if !address.IsValidRowColumn(row, column) {
		ws.logger.WithFields(logrus.Fields{"row": row, "column": column}).Debug("rejected write outside grid")
		return ErrInvalidCoordinate.New(address.Coordinate{Row: row, Column: column})
	}
	value, err := Classify(v)
	if err != nil {
		ws.logger.WithError(err).Debug("rejected write")
		return err
	}

	if !ws.Read(row, column).Equal(value) {
		ws.release(row, column)
	}
	ws.dim.Extend(row, column)
	if value.typ == TypeSharedString {
		ws.strings.Intern(value.s, ws.id, row, column)
	}
	ws.cells.ReplaceOrInsert(&cell{row: row, column: column, value: value})
	return nil
}

// WriteAt is Write addressed by reference text such as "B3".
func (ws *Worksheet) WriteAt(ref string, v any) error {
	c := address.ParseCoordinate(ref)
	if !c.Valid() {
		return ErrInvalidCoordinate.New(ref)
	}
	return ws.Write(c.Row, c.Column, v)
}

// Read returns the value at (row, column), or an empty Value.
func (ws *Worksheet) Read(row, column int) Value {
	c, ok := ws.cells.Get(&cell{row: row, column: column})
	if !ok {
		return Value{}
	}
	return c.value
}

// ReadAt is Read addressed by reference text.
func (ws *Worksheet) ReadAt(ref string) Value {
	c := address.ParseCoordinate(ref)
	if !c.Valid() {
		return Value{}
	}
	return ws.Read(c.Row, c.Column)
}

// ReadRange returns the values inside ref ("A1:C3") row by row. Missing
// cells are empty Values.
func (ws *Worksheet) ReadRange(ref string) ([][]Value, error) {
	d := address.ParseRange(ref)
	if !d.Valid() {
		return nil, ErrInvalidRange.New(ref)
	}
	out := make([][]Value, d.Bottom-d.Top+1)
	for i := range out {
		out[i] = make([]Value, d.Right-d.Left+1)
	}
	ws.cells.AscendRange(
		&cell{row: d.Top, column: d.Left},
		&cell{row: d.Bottom + 1, column: 1},
		func(c *cell) bool {
			if c.column >= d.Left && c.column <= d.Right {
				out[c.row-d.Top][c.column-d.Left] = c.value
			}
			return true
		})
	return out, nil
}

// WriteRow writes values left to right starting at (row, startColumn). The
// dimension is first extended over the whole span; elements that cannot be
// written are skipped.
func (ws *Worksheet) WriteRow(row, startColumn int, values []any) error {
	if len(values) == 0 {
		return ErrEmptyValue.New()
	}
	if !address.IsValidRowColumn(row, startColumn) {
		return ErrInvalidCoordinate.New(address.Coordinate{Row: row, Column: startColumn})
	}
	ws.dim.Extend(row, startColumn)
	ws.dim.Extend(row, min(startColumn+len(values)-1, address.MaxColumn))
	for i, v := range values {
		if err := ws.Write(row, startColumn+i, v); err != nil {
			ws.logger.WithError(err).WithField("index", i).Debug("skipping row element")
		}
	}
	return nil
}

// WriteColumn writes values top to bottom starting at (startRow, column),
// with the same semantics as WriteRow.
func (ws *Worksheet) WriteColumn(startRow, column int, values []any) error {
	if len(values) == 0 {
		return ErrEmptyValue.New()
	}
	if !address.IsValidRowColumn(startRow, column) {
		return ErrInvalidCoordinate.New(address.Coordinate{Row: startRow, Column: column})
	}
	ws.dim.Extend(startRow, column)
	ws.dim.Extend(min(startRow+len(values)-1, address.MaxRow), column)
	for i, v := range values {
		if err := ws.Write(startRow+i, column, v); err != nil {
			ws.logger.WithError(err).WithField("index", i).Debug("skipping column element")
		}
	}
	return nil
}

// Erase removes the cell at (row, column) and reports whether one existed.
// The dimension does not shrink.
func (ws *Worksheet) Erase(row, column int) bool {
	ws.release(row, column)
	_, ok := ws.cells.Delete(&cell{row: row, column: column})
	return ok
}

// release drops the shared-string reference held by a text cell at (row, column).
func (ws *Worksheet) release(row, column int) {
	old, ok := ws.cells.Get(&cell{row: row, column: column})
	if !ok || !old.value.present || old.value.typ != TypeSharedString {
		return
	}
	if affected := ws.strings.Remove(old.value.s, ws.id, row, column); len(affected) > 0 {
		// Cells keep their text, so shifted indices need no re-stamping here.
		ws.logger.WithField("affected", len(affected)).Debug("shared string indices shifted")
	}
}

// ReleaseStrings drops every shared-string reference the sheet holds. The
// cells keep their values; call it when the sheet leaves its workbook.
func (ws *Worksheet) ReleaseStrings() {
	ws.Range(func(row, column int, v Value) bool {
		if v.typ == TypeSharedString {
			ws.strings.Remove(v.s, ws.id, row, column)
		}
		return true
	})
}

// writeBlank stores a typed cell with no payload. It does not touch the
// dimension and is never emitted.
func (ws *Worksheet) writeBlank(row, column int) {
	ws.cells.ReplaceOrInsert(&cell{row: row, column: column, value: blank()})
}

// Len is the number of stored cells, blank ones included.
func (ws *Worksheet) Len() int { return ws.cells.Len() }

// Range calls fn for each non-blank cell in row-major order until fn
// returns false.
func (ws *Worksheet) Range(fn func(row, column int, v Value) bool) {
	ws.cells.Ascend(func(c *cell) bool {
		if !c.value.present {
			return true
		}
		return fn(c.row, c.column, c.value)
	})
}

// SetHyperlink attaches an external link to (row, column).
func (ws *Worksheet) SetHyperlink(row, column int, target string) error {
	if !address.IsValidRowColumn(row, column) {
		return ErrInvalidCoordinate.New(address.Coordinate{Row: row, Column: column})
	}
	if target == "" {
		return ErrEmptyValue.New()
	}
	ws.links[address.Coordinate{Row: row, Column: column}] = target
	return nil
}

// RemoveHyperlink drops the link at (row, column).
func (ws *Worksheet) RemoveHyperlink(row, column int) {
	delete(ws.links, address.Coordinate{Row: row, Column: column})
}

// Hyperlink returns the link target at (row, column).
func (ws *Worksheet) Hyperlink(row, column int) (string, bool) {
	target, ok := ws.links[address.Coordinate{Row: row, Column: column}]
	return target, ok
}

// Hyperlinks returns every link sorted by cell.
func (ws *Worksheet) Hyperlinks() []Hyperlink {
	out := make([]Hyperlink, 0, len(ws.links))
	for c, target := range ws.links {
		out = append(out, Hyperlink{Cell: c, Target: target})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cell.Less(out[j].Cell) })
	return out
}

// CalculateSpans returns, per block of 16 rows keyed (row-1)/16, the
// "min:max" columns occupied by non-blank cells inside the dimension.
func (ws *Worksheet) CalculateSpans() map[int]string {
	spans := make(map[int]string)
	if !ws.dim.Valid() {
		return spans
	}

	block, lo, hi := -1, 0, 0
	flush := func() {
		if block >= 0 {
			spans[block] = strconv.Itoa(lo) + ":" + strconv.Itoa(hi)
		}
	}
	ws.cells.AscendRange(
		&cell{row: ws.dim.Top, column: 1},
		&cell{row: ws.dim.Bottom + 1, column: 1},
		func(c *cell) bool {
			if !c.value.present || c.column < ws.dim.Left || c.column > ws.dim.Right {
				return true
			}
			b := (c.row - 1) / 16
			if b != block {
				flush()
				block, lo, hi = b, c.column, c.column
				return true
			}
			lo = min(lo, c.column)
			hi = max(hi, c.column)
			return true
		})
	flush()
	return spans
}
