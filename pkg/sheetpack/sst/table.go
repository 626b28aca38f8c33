// Package sst implements the workbook's shared-string table: a dense,
// deduplicated pool of text values plus the set of cells that use each one.
package sst

import (
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/address"
	"gopkg.in/src-d/go-errors.v1"
)

// Path is the conventional part path of the shared-string table.
const Path = "xl/sharedStrings.xml"

// ErrIndexOutOfRange is returned when a string index does not name an entry.
var ErrIndexOutOfRange = errors.NewKind("shared string index %d out of range (table holds %d)")

// ErrCountMismatch is returned by Parse when the declared uniqueCount does not
// match the number of entries read.
var ErrCountMismatch = errors.NewKind("shared strings declare uniqueCount=%d but contain %d entries")

// Ref is a cell that uses a string: a coordinate on the sheet with the
// given id.
type Ref struct {
	Sheet int
	address.Coordinate
}

// NewRef returns the reference to (row, column) on sheet.
func NewRef(sheet, row, column int) Ref {
	return Ref{Sheet: sheet, Coordinate: address.Coordinate{Row: row, Column: column}}
}

func (r Ref) String() string {
	return "sheet " + strconv.Itoa(r.Sheet) + "!" + r.Coordinate.String()
}

// Less orders refs by sheet, then row-major.
func (r Ref) Less(o Ref) bool {
	if r.Sheet != o.Sheet {
		return r.Sheet < o.Sheet
	}
	return r.Coordinate.Less(o.Coordinate)
}

type entry struct {
	text string
	refs map[Ref]struct{}
}

// Table is a shared-string table. Indices are dense (0..N-1) and only the
// table reassigns them. The zero value is not usable; call New.
type Table struct {
	entries []*entry
	index   map[string]int // first entry holding each text
	logger  logrus.FieldLogger
}

// New returns an empty table. A nil logger falls back to the standard logger.
func New(logger logrus.FieldLogger) *Table {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Table{
		index:  make(map[string]int),
		logger: logger,
	}
}

// Intern records that (row, column) on sheet uses text and returns the text's
// index, appending a new entry when text is not yet known.
func (t *Table) Intern(text string, sheet, row, column int) int {
	idx, ok := t.index[text]
	if !ok {
		idx = len(t.entries)
		t.entries = append(t.entries, &entry{text: text, refs: make(map[Ref]struct{})})
		t.index[text] = idx
	}
	t.entries[idx].refs[NewRef(sheet, row, column)] = struct{}{}
	return idx
}

// IncrementReference records that (row, column) on sheet uses the string at
// index.
func (t *Table) IncrementReference(index, sheet, row, column int) error {
	if index < 0 || index >= len(t.entries) {
		return ErrIndexOutOfRange.New(index, len(t.entries))
	}
	t.entries[index].refs[NewRef(sheet, row, column)] = struct{}{}
	return nil
}

// Remove drops (row, column) on sheet from the users of text. When the entry
// holding that reference loses its last user it is evicted and every later
// entry moves down one index; the returned refs are the users of those moved
// entries, sorted. Unknown text or an unrecorded reference returns nil.
//
// A table read from a package may hold text more than once; every copy is
// searched for the reference.
func (t *Table) Remove(text string, sheet, row, column int) []Ref {
	r := NewRef(sheet, row, column)
	idx, ok := t.holder(text, r)
	if !ok {
		return nil
	}
	e := t.entries[idx]
	delete(e.refs, r)
	if len(e.refs) > 0 {
		return nil
	}

	t.entries = append(t.entries[:idx], t.entries[idx+1:]...)
	t.reindex()

	var affected []Ref
	for _, moved := range t.entries[idx:] {
		for ref := range moved.refs {
			affected = append(affected, ref)
		}
	}
	sort.Slice(affected, func(i, j int) bool { return affected[i].Less(affected[j]) })

	t.logger.WithFields(logrus.Fields{
		"index":    idx,
		"shifted":  len(t.entries) - idx,
		"affected": len(affected),
	}).Debug("evicted shared string")
	return affected
}

// holder returns the index of the entry for text that records r.
func (t *Table) holder(text string, r Ref) (int, bool) {
	first, ok := t.index[text]
	if !ok {
		return 0, false
	}
	for i := first; i < len(t.entries); i++ {
		if e := t.entries[i]; e.text == text {
			if _, ok := e.refs[r]; ok {
				return i, true
			}
		}
	}
	return 0, false
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.entries))
	for i, e := range t.entries {
		if _, ok := t.index[e.text]; !ok {
			t.index[e.text] = i
		}
	}
}

// Lookup returns the text at index.
func (t *Table) Lookup(index int) (string, bool) {
	if index < 0 || index >= len(t.entries) {
		return "", false
	}
	return t.entries[index].text, true
}

// LookupIndex returns the index of text.
func (t *Table) LookupIndex(text string) (int, bool) {
	idx, ok := t.index[text]
	return idx, ok
}

// References returns the cells using the first entry for text, sorted.
func (t *Table) References(text string) []Ref {
	idx, ok := t.index[text]
	if !ok {
		return nil
	}
	refs := make([]Ref, 0, len(t.entries[idx].refs))
	for c := range t.entries[idx].refs {
		refs = append(refs, c)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
	return refs
}

// IsEmpty reports whether the table holds no strings.
func (t *Table) IsEmpty() bool { return len(t.entries) == 0 }

// UniqueCount is the number of entries.
func (t *Table) UniqueCount() int { return len(t.entries) }

// Count is the total number of cell references across all entries.
func (t *Table) Count() int {
	n := 0
	for _, e := range t.entries {
		n += len(e.refs)
	}
	return n
}

// Strings returns the entries in index order.
func (t *Table) Strings() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.text
	}
	return out
}

// Reset empties the table.
func (t *Table) Reset() {
	t.entries = nil
	t.index = make(map[string]int)
}
