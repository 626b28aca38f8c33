package worksheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/address"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/sst"
)

func newSheet() (*Worksheet, *sst.Table) {
	table := sst.New(nil)
	return New("Sheet1", 1, table, nil), table
}

func TestWriteRead(t *testing.T) {
	ws, table := newSheet()
	stamp := time.Date(2024, 2, 29, 13, 45, 0, 0, time.UTC)

	require.NoError(t, ws.Write(1, 1, "Hello"))
	require.NoError(t, ws.Write(1, 2, 2))
	require.NoError(t, ws.Write(1, 3, true))
	require.NoError(t, ws.Write(2, 1, stamp))
	require.NoError(t, ws.Write(2, 2, float32(1.5)))
	require.NoError(t, ws.Write(2, 3, Number(7)))

	tests := []struct {
		row, column int
		typ         CellType
		value       any
	}{
		{1, 1, TypeSharedString, "Hello"},
		{1, 2, TypeNumber, float64(2)},
		{1, 3, TypeBoolean, true},
		{2, 1, TypeDate, stamp},
		{2, 2, TypeNumber, 1.5},
		{2, 3, TypeNumber, float64(7)},
	}
	for _, tt := range tests {
		v := ws.Read(tt.row, tt.column)
		assert.Equal(t, tt.typ, v.Type(), "type at (%d,%d)", tt.row, tt.column)
		assert.Equal(t, tt.value, v.Interface(), "value at (%d,%d)", tt.row, tt.column)
	}

	assert.True(t, ws.Read(9, 9).IsEmpty())
	assert.True(t, ws.Read(-1, 0).IsEmpty())
	assert.Equal(t, address.Dimension{Top: 1, Left: 1, Bottom: 2, Right: 3}, ws.Dimension())
	assert.Equal(t, []sst.Ref{sst.NewRef(1, 1, 1)}, table.References("Hello"))
}

func TestWriteRejects(t *testing.T) {
	ws, table := newSheet()

	tests := []struct {
		name        string
		row, column int
		value       any
		check       func(error) bool
	}{
		{"row zero", 0, 1, 1, ErrInvalidCoordinate.Is},
		{"column past grid", 1, address.MaxColumn + 1, 1, ErrInvalidCoordinate.Is},
		{"row past grid", address.MaxRow + 1, 1, 1, ErrInvalidCoordinate.Is},
		{"nil", 1, 1, nil, ErrEmptyValue.Is},
		{"empty value", 1, 1, Value{}, ErrEmptyValue.Is},
		{"struct", 1, 1, struct{}{}, ErrUnsupportedValue.Is},
		{"slice", 1, 1, []int{1}, ErrUnsupportedValue.Is},
		{"complex", 1, 1, complex(1, 2), ErrUnsupportedValue.Is},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ws.Write(tt.row, tt.column, tt.value)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
		})
	}

	assert.False(t, ws.Dimension().Valid())
	assert.Equal(t, 0, ws.Len())
	assert.True(t, table.IsEmpty())
}

func TestWriteAt(t *testing.T) {
	ws, _ := newSheet()
	require.NoError(t, ws.WriteAt("$C$4", "x"))
	assert.Equal(t, "x", ws.ReadAt("c4").AsText())
	assert.Equal(t, "x", ws.Read(4, 3).AsText())

	err := ws.WriteAt("4C", "x")
	assert.True(t, ErrInvalidCoordinate.Is(err))
	assert.True(t, ws.ReadAt("nope").IsEmpty())
}

func TestWriteColumn(t *testing.T) {
	ws, _ := newSheet()
	require.NoError(t, ws.WriteColumn(1, 1, []any{1, 2, 3}))
	assert.Equal(t, float64(2), ws.Read(2, 1).AsNumber())
	assert.Equal(t, address.Dimension{Top: 1, Left: 1, Bottom: 3, Right: 1}, ws.Dimension())

	assert.True(t, ErrEmptyValue.Is(ws.WriteColumn(1, 1, nil)))
	assert.True(t, ErrInvalidCoordinate.Is(ws.WriteColumn(0, 1, []any{1})))
}

func TestReadRange(t *testing.T) {
	ws, _ := newSheet()
	require.NoError(t, ws.WriteRow(1, 1, []any{"a", "b", "c"}))
	require.NoError(t, ws.WriteRow(2, 1, []any{1, 2, 3}))
	require.NoError(t, ws.Write(3, 3, true))

	got, err := ws.ReadRange("B1:C3")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0][0].AsText())
	assert.Equal(t, float64(3), got[1][1].AsNumber())
	assert.True(t, got[2][0].IsEmpty())
	assert.True(t, got[2][1].AsBool())

	_, err = ws.ReadRange("C3:A1")
	assert.True(t, ErrInvalidRange.Is(err))
}

func TestWriteRowSkipsBadElements(t *testing.T) {
	ws, _ := newSheet()
	require.NoError(t, ws.WriteRow(2, 2, []any{"a", struct{}{}, nil, 4}))

	assert.Equal(t, "a", ws.Read(2, 2).AsText())
	assert.True(t, ws.Read(2, 3).IsEmpty())
	assert.True(t, ws.Read(2, 4).IsEmpty())
	assert.Equal(t, float64(4), ws.Read(2, 5).AsNumber())
	assert.Equal(t, address.Dimension{Top: 2, Left: 2, Bottom: 2, Right: 5}, ws.Dimension())

	// Trailing failures still count towards the pre-extended span.
	require.NoError(t, ws.WriteRow(3, 1, []any{1, nil, nil, nil, nil, nil}))
	assert.Equal(t, 6, ws.Dimension().Right)
}

func TestEraseAndOverwriteReleaseStrings(t *testing.T) {
	ws, table := newSheet()
	require.NoError(t, ws.Write(1, 1, "first"))
	require.NoError(t, ws.Write(1, 2, "second"))
	require.NoError(t, ws.Write(2, 1, "third"))

	// Overwriting the only user of "first" evicts it.
	require.NoError(t, ws.Write(1, 1, 10))
	_, ok := table.LookupIndex("first")
	assert.False(t, ok)
	idx, _ := table.LookupIndex("second")
	assert.Equal(t, 0, idx)

	// Rewriting the same text keeps its slot.
	require.NoError(t, ws.Write(1, 2, "second"))
	idx, _ = table.LookupIndex("second")
	assert.Equal(t, 0, idx)

	assert.True(t, ws.Erase(1, 2))
	assert.False(t, ws.Erase(1, 2))
	_, ok = table.LookupIndex("second")
	assert.False(t, ok)
	idx, _ = table.LookupIndex("third")
	assert.Equal(t, 0, idx)

	// Erasing never shrinks the used range.
	assert.Equal(t, address.Dimension{Top: 1, Left: 1, Bottom: 2, Right: 2}, ws.Dimension())
}

func TestCalculateSpans(t *testing.T) {
	ws, _ := newSheet()
	require.NoError(t, ws.Write(1, 3, 1))
	require.NoError(t, ws.Write(16, 7, 1))
	require.NoError(t, ws.Write(17, 2, 1))
	require.NoError(t, ws.Write(40, 5, 1))
	require.NoError(t, ws.Write(41, 9, 1))

	assert.Equal(t, map[int]string{0: "3:7", 1: "2:2", 2: "5:9"}, ws.CalculateSpans())

	empty, _ := newSheet()
	assert.Empty(t, empty.CalculateSpans())
}

func TestCompose(t *testing.T) {
	ws, _ := newSheet()
	require.NoError(t, ws.Write(1, 1, "Hello"))
	require.NoError(t, ws.Write(1, 2, 2))
	require.NoError(t, ws.Write(1, 3, true))
	require.NoError(t, ws.Write(3, 2, 0.1))
	ws.writeBlank(2, 2)

	data, err := ws.Compose()
	require.NoError(t, err)
	xml := string(data)

	assert.Contains(t, xml, `<dimension ref="A1:C3"></dimension>`)
	assert.Contains(t, xml, `<sheetView workbookViewId="0"></sheetView>`)
	assert.Contains(t, xml, `<sheetFormatPr defaultColWidth="8.43" defaultRowHeight="15"></sheetFormatPr>`)
	assert.Contains(t, xml, `<row r="1" spans="1:3"><c r="A1" t="s"><v>0</v></c><c r="B1" t="n"><v>2</v></c><c r="C1" t="b"><v>1</v></c></row>`)
	assert.Contains(t, xml, `<row r="2" spans="1:3"></row>`)
	assert.Contains(t, xml, `<c r="B3" t="n"><v>0.1</v></c>`)
	assert.NotContains(t, xml, "<hyperlinks>")

	again, err := ws.Compose()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestComposeEmptySheet(t *testing.T) {
	ws, _ := newSheet()
	data, err := ws.Compose()
	require.NoError(t, err)
	assert.Contains(t, string(data), `<dimension ref="A1"></dimension>`)
	assert.Contains(t, string(data), `<sheetData></sheetData>`)
}

func TestParseRoundTrip(t *testing.T) {
	ws, table := newSheet()
	stamp := time.Date(2023, 7, 1, 8, 30, 15, 0, time.UTC)
	require.NoError(t, ws.Write(1, 1, "Hello"))
	require.NoError(t, ws.Write(1, 2, 2))
	require.NoError(t, ws.Write(1, 3, false))
	require.NoError(t, ws.Write(2, 1, stamp))
	require.NoError(t, ws.Write(2, 2, " spaced "))
	require.NoError(t, ws.Write(4, 4, 1234567.891))
	ws.SetFormat(FormatProperties{DefaultColWidth: 12, DefaultRowHeight: 20})

	sheetXML, err := ws.Compose()
	require.NoError(t, err)
	sstXML, err := table.Compose()
	require.NoError(t, err)

	loadedTable := sst.New(nil)
	require.NoError(t, loadedTable.Parse(sstXML))
	loaded := New("Sheet1", 1, loadedTable, nil)
	require.NoError(t, loaded.Parse(sheetXML))

	ws.Range(func(row, column int, v Value) bool {
		got := loaded.Read(row, column)
		assert.True(t, v.Equal(got), "cell (%d,%d): expected %v, got %v", row, column, v, got)
		return true
	})
	assert.Equal(t, ws.Dimension(), loaded.Dimension())
	assert.Equal(t, FormatProperties{DefaultColWidth: 12, DefaultRowHeight: 20}, loaded.Format())
	assert.Equal(t, table.Count(), loadedTable.Count())
	assert.Equal(t, []sst.Ref{sst.NewRef(1, 2, 2)}, loadedTable.References(" spaced "))
}

func TestParseSynthesizesPositions(t *testing.T) {
	data := []byte(`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
<sheetData>
<row><c><v>1</v></c><c><v>2</v></c></row>
<row r="5"><c r="C5" t="b"><v>TRUE</v></c><c><v>4</v></c></row>
<row><c t="inlineStr"><is><r><t>in</t></r><r><t>line</t></r></is></c><c t="str"><f>A1&amp;"x"</f><v>1x</v></c></row>
<row r="7"><c r="A7"/><c r="B7" t="n"><v>oops</v></c><c r="C7" t="d"><v>2024-01-02</v></c></row>
</sheetData>
</worksheet>`)

	ws, table := newSheet()
	require.NoError(t, ws.Parse(data))

	assert.Equal(t, float64(1), ws.Read(1, 1).AsNumber())
	assert.Equal(t, float64(2), ws.Read(1, 2).AsNumber())
	assert.True(t, ws.Read(5, 3).AsBool())
	assert.Equal(t, float64(4), ws.Read(5, 4).AsNumber())
	assert.Equal(t, "inline", ws.Read(6, 1).AsText())
	assert.Equal(t, "1x", ws.Read(6, 2).AsText())
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ws.Read(7, 3).AsTime())

	// Missing and bad payloads are stored blank and read back empty.
	assert.True(t, ws.Read(7, 1).IsEmpty())
	assert.True(t, ws.Read(7, 2).IsEmpty())
	assert.Equal(t, 9, ws.Len())

	assert.Equal(t, address.Dimension{Top: 1, Left: 1, Bottom: 7, Right: 4}, ws.Dimension())
	assert.Equal(t, 2, table.UniqueCount())
}

func TestParseBadSharedStringIndex(t *testing.T) {
	data := []byte(`<worksheet><sheetData><row r="1"><c r="A1" t="s"><v>5</v></c></row></sheetData></worksheet>`)
	ws, _ := newSheet()
	require.NoError(t, ws.Parse(data))
	assert.True(t, ws.Read(1, 1).IsEmpty())
}

func TestParseMalformed(t *testing.T) {
	ws, _ := newSheet()
	assert.Error(t, ws.Parse([]byte(`<worksheet><sheetData><row>`)))
}

func TestHyperlinks(t *testing.T) {
	ws, table := newSheet()
	require.NoError(t, ws.Write(1, 1, "docs"))
	require.NoError(t, ws.SetHyperlink(1, 1, "https://example.com/docs"))
	require.NoError(t, ws.SetHyperlink(3, 2, "mailto:someone@example.com"))
	assert.True(t, ErrEmptyValue.Is(ws.SetHyperlink(1, 1, "")))
	assert.True(t, ErrInvalidCoordinate.Is(ws.SetHyperlink(0, 1, "x")))

	data, err := ws.Compose()
	require.NoError(t, err)
	assert.Contains(t, string(data), `<hyperlinks><hyperlink ref="A1" r:id="rId1"></hyperlink><hyperlink ref="B3" r:id="rId2"></hyperlink></hyperlinks>`)
	assert.Equal(t, 2, ws.Relationships().Len())

	relsXML, err := ws.Relationships().Compose()
	require.NoError(t, err)

	loaded := New("Sheet1", 1, table, nil)
	require.NoError(t, loaded.Relationships().Parse(relsXML))
	require.NoError(t, loaded.Parse(data))
	assert.Equal(t, ws.Hyperlinks(), loaded.Hyperlinks())

	target, ok := loaded.Hyperlink(3, 2)
	assert.True(t, ok)
	assert.Equal(t, "mailto:someone@example.com", target)

	loaded.RemoveHyperlink(3, 2)
	assert.Len(t, loaded.Hyperlinks(), 1)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input    any
		typ      CellType
		expected string
	}{
		{int8(-3), TypeNumber, "-3"},
		{uint64(42), TypeNumber, "42"},
		{1.0 / 3.0, TypeNumber, "0.333333333333333"},
		{1e21, TypeNumber, "1e+21"},
		{"", TypeSharedString, ""},
		{false, TypeBoolean, "0"},
	}

	for _, tt := range tests {
		v, err := Classify(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.typ, v.Type())
		assert.Equal(t, tt.expected, v.String())
	}
}
