package rels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/internal/ooxml"
)

func TestGraphAdd(t *testing.T) {
	g := New(nil)
	assert.True(t, g.IsEmpty())

	id1 := g.Add(ooxml.RelWorksheet, "worksheets/sheet1.xml", "")
	id2 := g.Add(ooxml.RelWorksheet, "worksheets/sheet2.xml", "")
	id3 := g.Add(ooxml.RelStyles, "styles.xml", "")

	assert.Equal(t, "rId1", id1)
	assert.Equal(t, "rId2", id2)
	assert.Equal(t, "rId3", id3)
	assert.Equal(t, 3, g.Len())

	r, ok := g.LookupByID("rId3")
	require.True(t, ok)
	assert.Equal(t, "styles.xml", r.Target)

	assert.Len(t, g.LookupByType(ooxml.RelWorksheet), 2)
	assert.Empty(t, g.LookupByType(ooxml.RelTheme))

	_, ok = g.LookupByID("rId9")
	assert.False(t, ok)

	g.Clear()
	assert.Equal(t, "rId1", g.Add(ooxml.RelStyles, "styles.xml", ""))
}

func TestGraphComposeParse(t *testing.T) {
	g := New(nil)
	g.Add(ooxml.RelWorksheet, "worksheets/sheet1.xml", "")
	g.Add(ooxml.RelHyperlink, "https://example.com/?a=1&b=2", ooxml.TargetModeExternal)

	data, err := g.Compose()
	require.NoError(t, err)
	assert.Contains(t, string(data), `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	assert.Contains(t, string(data), `TargetMode="External"`)
	assert.Contains(t, string(data), `a=1&amp;b=2`)

	loaded := New(nil)
	require.NoError(t, loaded.Parse(data))
	assert.Equal(t, g.Relationships(), loaded.Relationships())

	r, ok := loaded.LookupByID("rId2")
	require.True(t, ok)
	assert.True(t, r.External())

	// New ids continue past the parsed ones.
	assert.Equal(t, "rId3", loaded.Add(ooxml.RelStyles, "styles.xml", ""))
}

func TestGraphParseSkipsMalformed(t *testing.T) {
	data := []byte(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="t" Target="a.xml"/>
<Relationship Type="t" Target="b.xml"/>
<Relationship Id="rId7" Target="c.xml"/>
<Relationship Id="rId8" Type="t"/>
<Relationship Id="rId4" Type="t" Target="d.xml"/>
</Relationships>`)

	g := New(nil)
	require.NoError(t, g.Parse(data))
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, "rId5", g.Add("t", "e.xml", ""))
}

func TestParseRecordErrors(t *testing.T) {
	g := New(nil)
	err := g.Parse([]byte(`<Relationships><Relationship`))
	assert.Error(t, err)
}

func TestRelsPath(t *testing.T) {
	tests := []struct {
		part     string
		expected string
	}{
		{"", "_rels/.rels"},
		{"xl/workbook.xml", "xl/_rels/workbook.xml.rels"},
		{"xl/worksheets/sheet1.xml", "xl/worksheets/_rels/sheet1.xml.rels"},
		{"/xl/workbook.xml", "xl/_rels/workbook.xml.rels"},
		{"book.xml", "_rels/book.xml.rels"},
	}

	for _, tt := range tests {
		if got := RelsPath(tt.part); got != tt.expected {
			t.Errorf("RelsPath(%q): expected %q, got %q", tt.part, tt.expected, got)
		}
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		baseDir  string
		target   string
		expected string
	}{
		{"xl", "worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl", "/xl/worksheets/sheet1.xml", "xl/worksheets/sheet1.xml"},
		{"xl/worksheets", "../drawings/drawing1.xml", "xl/drawings/drawing1.xml"},
		{"", "xl/workbook.xml", "xl/workbook.xml"},
		{"xl", "../../../docProps/app.xml", "docProps/app.xml"},
	}

	for _, tt := range tests {
		if got := ResolveTarget(tt.baseDir, tt.target); got != tt.expected {
			t.Errorf("ResolveTarget(%q, %q): expected %q, got %q", tt.baseDir, tt.target, tt.expected, got)
		}
	}
}

func TestRelativeTarget(t *testing.T) {
	assert.Equal(t, "worksheets/sheet1.xml", RelativeTarget("xl", "xl/worksheets/sheet1.xml"))
	assert.Equal(t, "/docProps/app.xml", RelativeTarget("xl", "docProps/app.xml"))
	assert.Equal(t, "xl/workbook.xml", RelativeTarget("", "xl/workbook.xml"))
}
