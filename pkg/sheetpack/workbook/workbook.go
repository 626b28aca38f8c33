// Package workbook manages a workbook's sheet collection: naming, ids, the
// active sheet, defined names and the workbook part codec.
package workbook

import (
	"slices"
	"strings"

	"github.com/creasty/defaults"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/address"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/parts"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/rels"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/sst"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/worksheet"
)

// Path is the part path of the workbook.
const Path = "xl/workbook.xml"

// BookView is the window geometry stored in the workbook part.
type BookView struct {
	XWindow      int `default:"240" yaml:"x_window" json:"x_window"`
	YWindow      int `default:"15" yaml:"y_window" json:"y_window"`
	WindowWidth  int `default:"16095" yaml:"window_width" json:"window_width"`
	WindowHeight int `default:"9660" yaml:"window_height" json:"window_height"`
}

// DefaultView returns a BookView with its tag defaults applied.
func DefaultView() BookView {
	var v BookView
	_ = defaults.Set(&v)
	return v
}

// DefinedName is a named formula, global or scoped to one sheet.
type DefinedName struct {
	Name     string
	Comment  string
	RefersTo string
	// SheetID is the id of the scoping sheet, or 0 for a global name.
	SheetID int
	Hidden  bool
}

// References parses RefersTo into sheet-qualified ranges. Entries that are
// not plain references (constants, functions) yield nothing.
func (d DefinedName) References() []address.Reference {
	return address.ParseReference(strings.TrimPrefix(d.RefersTo, "="))
}

// Workbook is the sheet collection of one document. It owns the shared-string
// table every sheet writes through.
type Workbook struct {
	sheets         []*worksheet.Worksheet
	active         int
	lastSheetID    int
	lastSheetIndex int

	path    string
	strings *sst.Table
	styles  *parts.Styles
	rels    *rels.Graph
	view    BookView
	names   []DefinedName
	format  worksheet.FormatProperties
	logger  logrus.FieldLogger
}

// New returns an empty workbook. Sheets are created on demand.
func New(logger logrus.FieldLogger) *Workbook {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Workbook{
		path:    Path,
		strings: sst.New(logger.WithField("part", sst.Path)),
		styles:  parts.NewStyles(),
		rels:    rels.New(logger.WithField("part", rels.RelsPath(Path))),
		view:    DefaultView(),
		format:  worksheet.DefaultFormat(),
		logger:  logger.WithField("part", Path),
	}
}

// PartPath returns the path the workbook part was loaded from, Path by default.
func (wb *Workbook) PartPath() string { return wb.path }

// SetPartPath sets the path sheet targets are resolved against on Parse.
func (wb *Workbook) SetPartPath(p string) { wb.path = p }

// SharedStrings returns the workbook's shared-string table.
func (wb *Workbook) SharedStrings() *sst.Table { return wb.strings }

// Styles returns the workbook's style table.
func (wb *Workbook) Styles() *parts.Styles { return wb.styles }

// Relationships returns the workbook part's relationship graph.
func (wb *Workbook) Relationships() *rels.Graph { return wb.rels }

// View returns the book-view geometry.
func (wb *Workbook) View() BookView { return wb.view }

// SetView replaces the book-view geometry.
func (wb *Workbook) SetView(v BookView) { wb.view = v }

// SetSheetFormat sets the format applied to sheets created afterwards.
func (wb *Workbook) SetSheetFormat(f worksheet.FormatProperties) { wb.format = f }

// AppendSheet adds a sheet at the end. See InsertSheet.
func (wb *Workbook) AppendSheet(name string, kind worksheet.Kind) (*worksheet.Worksheet, error) {
	return wb.InsertSheet(len(wb.sheets), name, kind)
}

// InsertSheet creates a sheet at index and makes it active. name is
// sanitised and de-duplicated; an empty name gets "Sheet {n}". The sheet
// gets the next id, which is never reused.
func (wb *Workbook) InsertSheet(index int, name string, kind worksheet.Kind) (*worksheet.Worksheet, error) {
	if index < 0 || index > len(wb.sheets) {
		return nil, ErrIndexOutOfRange.New(index, len(wb.sheets))
	}
	if !kind.Supported() {
		return nil, ErrUnsupportedSheetKind.New(kind)
	}

	name = GenerateSheetName(wb.SheetNames(), name, &wb.lastSheetIndex)
	wb.lastSheetID++
	ws := wb.newSheet(name, wb.lastSheetID)
	wb.sheets = slices.Insert(wb.sheets, index, ws)
	wb.active = index

	wb.logger.WithFields(logrus.Fields{"sheet": name, "id": ws.ID(), "index": index}).Debug("sheet inserted")
	return ws, nil
}

// loadSheet registers a sheet read from a package, keeping its stored id.
func (wb *Workbook) loadSheet(name string, id int, partPath string) *worksheet.Worksheet {
	if id <= 0 {
		id = wb.lastSheetID + 1
	}
	wb.lastSheetID = max(wb.lastSheetID, id)
	ws := wb.newSheet(name, id)
	ws.SetPath(partPath)
	wb.sheets = append(wb.sheets, ws)
	return ws
}

func (wb *Workbook) newSheet(name string, id int) *worksheet.Worksheet {
	ws := worksheet.New(name, id, wb.strings, wb.logger)
	ws.SetFormat(wb.format)
	return ws
}

// RenameSheet renames the sheet at index. The new name goes through
// GenerateSheetName against every current name, the sheet's own included.
func (wb *Workbook) RenameSheet(index int, name string) error {
	ws := wb.Sheet(index)
	if ws == nil {
		return ErrIndexOutOfRange.New(index, len(wb.sheets)-1)
	}
	old := ws.Name()
	ws.SetName(GenerateSheetName(wb.SheetNames(), name, &wb.lastSheetIndex))
	wb.logger.WithFields(logrus.Fields{"from": old, "to": ws.Name()}).Debug("sheet renamed")
	return nil
}

// RenameSheetByName renames the sheet called old.
func (wb *Workbook) RenameSheetByName(old, name string) error {
	index := wb.SheetIndex(old)
	if index < 0 {
		return ErrSheetNotFound.New(old)
	}
	return wb.RenameSheet(index, name)
}

// DeleteSheet removes the sheet at index. The last remaining sheet cannot be
// deleted. Names scoped to the sheet and its shared-string references are
// dropped, and the active index moves left when it was at or after index.
func (wb *Workbook) DeleteSheet(index int) error {
	ws := wb.Sheet(index)
	if ws == nil {
		return ErrIndexOutOfRange.New(index, len(wb.sheets)-1)
	}
	if len(wb.sheets) <= 1 {
		return ErrLastSheet.New(ws.Name())
	}

	wb.sheets = slices.Delete(wb.sheets, index, index+1)
	ws.ReleaseStrings()
	wb.names = slices.DeleteFunc(wb.names, func(d DefinedName) bool { return d.SheetID == ws.ID() })
	if wb.active >= index {
		wb.active = max(0, wb.active-1)
	}

	wb.logger.WithFields(logrus.Fields{"sheet": ws.Name(), "index": index}).Debug("sheet deleted")
	return nil
}

// DeleteSheetByName removes the sheet called name.
func (wb *Workbook) DeleteSheetByName(name string) error {
	index := wb.SheetIndex(name)
	if index < 0 {
		return ErrSheetNotFound.New(name)
	}
	return wb.DeleteSheet(index)
}

// Sheet returns the sheet at index, or nil.
func (wb *Workbook) Sheet(index int) *worksheet.Worksheet {
	if index < 0 || index >= len(wb.sheets) {
		return nil
	}
	return wb.sheets[index]
}

// SheetByName returns the sheet called name, or nil.
func (wb *Workbook) SheetByName(name string) *worksheet.Worksheet {
	return wb.Sheet(wb.SheetIndex(name))
}

// SheetIndex returns the position of the sheet called name, or -1.
func (wb *Workbook) SheetIndex(name string) int {
	return slices.IndexFunc(wb.sheets, func(ws *worksheet.Worksheet) bool { return ws.Name() == name })
}

// sheetIndexByID returns the position of the sheet with the given id, or -1.
func (wb *Workbook) sheetIndexByID(id int) int {
	return slices.IndexFunc(wb.sheets, func(ws *worksheet.Worksheet) bool { return ws.ID() == id })
}

// CurrentSheet returns the active sheet. An empty workbook gets a default
// sheet first.
func (wb *Workbook) CurrentSheet() *worksheet.Worksheet {
	if len(wb.sheets) == 0 {
		if _, err := wb.AppendSheet("", worksheet.KindWorksheet); err != nil {
			wb.logger.WithError(err).Error("cannot create default sheet")
			return nil
		}
	}
	return wb.sheets[wb.active]
}

// SetCurrentSheet makes the sheet at index active.
func (wb *Workbook) SetCurrentSheet(index int) error {
	if index < 0 || index >= len(wb.sheets) {
		return ErrIndexOutOfRange.New(index, len(wb.sheets)-1)
	}
	wb.active = index
	return nil
}

// ActiveIndex returns the index of the active sheet.
func (wb *Workbook) ActiveIndex() int { return wb.active }

// Sheets returns the sheets in tab order.
func (wb *Workbook) Sheets() []*worksheet.Worksheet { return slices.Clone(wb.sheets) }

// SheetNames returns the sheet names in tab order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.sheets))
	for i, ws := range wb.sheets {
		names[i] = ws.Name()
	}
	return names
}

// SheetCount returns the number of sheets.
func (wb *Workbook) SheetCount() int { return len(wb.sheets) }

// DefineName adds or replaces a defined name. localSheet scopes it to the
// sheet of that name; an empty localSheet makes it global.
func (wb *Workbook) DefineName(name, refersTo, localSheet string) error {
	if name == "" {
		return ErrInvalidDefinedName.New(name, "empty name")
	}
	if strings.TrimPrefix(refersTo, "=") == "" {
		return ErrInvalidDefinedName.New(name, "empty formula")
	}

	d := DefinedName{Name: name, RefersTo: strings.TrimPrefix(refersTo, "=")}
	if localSheet != "" {
		ws := wb.SheetByName(localSheet)
		if ws == nil {
			return ErrSheetNotFound.New(localSheet)
		}
		d.SheetID = ws.ID()
	}
	wb.putName(d)
	return nil
}

func (wb *Workbook) putName(d DefinedName) {
	for i, cur := range wb.names {
		if strings.EqualFold(cur.Name, d.Name) && cur.SheetID == d.SheetID {
			wb.names[i] = d
			return
		}
	}
	wb.names = append(wb.names, d)
}

// DefinedNames returns the defined names in insertion order.
func (wb *Workbook) DefinedNames() []DefinedName { return slices.Clone(wb.names) }

// LocalSheet returns the name of the sheet d is scoped to, or "" when d is
// global.
func (wb *Workbook) LocalSheet(d DefinedName) string {
	if ws := wb.Sheet(wb.sheetIndexByID(d.SheetID)); ws != nil && d.SheetID != 0 {
		return ws.Name()
	}
	return ""
}

// Reset drops every sheet, name and string, returning the workbook to the
// state New produced. The configured sheet format is kept.
func (wb *Workbook) Reset() {
	wb.path = Path
	wb.sheets = nil
	wb.active = 0
	wb.lastSheetID = 0
	wb.lastSheetIndex = 0
	wb.names = nil
	wb.view = DefaultView()
	wb.strings.Reset()
	wb.styles = parts.NewStyles()
	wb.rels.Clear()
}
