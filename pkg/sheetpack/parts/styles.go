package parts

import (
	"encoding/xml"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/internal/ooxml"
)

// StylesPath is the conventional part path of the style sheet.
const StylesPath = "xl/styles.xml"

// Styles is the style part. Only a fixed minimal style sheet is written;
// parsing checks well-formedness and records how many cell formats the
// source declared.
type Styles struct {
	cellFormats int
}

// NewStyles returns the default style sheet.
func NewStyles() *Styles {
	return &Styles{cellFormats: 1}
}

// CellFormats is the number of <xf> records under <cellXfs>.
func (s *Styles) CellFormats() int { return s.cellFormats }

type xlsxStyleSheet struct {
	XMLName      xml.Name       `xml:"styleSheet"`
	Xmlns        string         `xml:"xmlns,attr"`
	Fonts        xlsxFonts      `xml:"fonts"`
	Fills        xlsxFills      `xml:"fills"`
	Borders      xlsxBorders    `xml:"borders"`
	CellStyleXfs xlsxCellXfs    `xml:"cellStyleXfs"`
	CellXfs      xlsxCellXfs    `xml:"cellXfs"`
	CellStyles   xlsxCellStyles `xml:"cellStyles"`
}

type xlsxVal struct {
	Val string `xml:"val,attr"`
}

type xlsxFonts struct {
	Count int        `xml:"count,attr"`
	Font  []xlsxFont `xml:"font"`
}

type xlsxFont struct {
	Sz     xlsxVal `xml:"sz"`
	Name   xlsxVal `xml:"name"`
	Family xlsxVal `xml:"family"`
}

type xlsxFills struct {
	Count int        `xml:"count,attr"`
	Fill  []xlsxFill `xml:"fill"`
}

type xlsxFill struct {
	PatternFill struct {
		PatternType string `xml:"patternType,attr"`
	} `xml:"patternFill"`
}

type xlsxBorders struct {
	Count  int          `xml:"count,attr"`
	Border []xlsxBorder `xml:"border"`
}

type xlsxBorder struct {
	Left     struct{} `xml:"left"`
	Right    struct{} `xml:"right"`
	Top      struct{} `xml:"top"`
	Bottom   struct{} `xml:"bottom"`
	Diagonal struct{} `xml:"diagonal"`
}

type xlsxCellXfs struct {
	Count int      `xml:"count,attr"`
	Xf    []xlsxXf `xml:"xf"`
}

type xlsxXf struct {
	NumFmtID int  `xml:"numFmtId,attr"`
	FontID   int  `xml:"fontId,attr"`
	FillID   int  `xml:"fillId,attr"`
	BorderID int  `xml:"borderId,attr"`
	XfID     *int `xml:"xfId,attr"`
}

type xlsxCellStyles struct {
	Count     int             `xml:"count,attr"`
	CellStyle []xlsxCellStyle `xml:"cellStyle"`
}

type xlsxCellStyle struct {
	Name      string `xml:"name,attr"`
	XfID      int    `xml:"xfId,attr"`
	BuiltinID int    `xml:"builtinId,attr"`
}

// Compose renders xl/styles.xml.
func (s *Styles) Compose() ([]byte, error) {
	zero := 0
	doc := xlsxStyleSheet{
		Xmlns: ooxml.NSMain,
		Fonts: xlsxFonts{Count: 1, Font: []xlsxFont{{
			Sz:     xlsxVal{Val: "11"},
			Name:   xlsxVal{Val: "Calibri"},
			Family: xlsxVal{Val: "2"},
		}}},
		Fills:        xlsxFills{Count: 2, Fill: make([]xlsxFill, 2)},
		Borders:      xlsxBorders{Count: 1, Border: make([]xlsxBorder, 1)},
		CellStyleXfs: xlsxCellXfs{Count: 1, Xf: []xlsxXf{{}}},
		CellXfs:      xlsxCellXfs{Count: 1, Xf: []xlsxXf{{XfID: &zero}}},
		CellStyles:   xlsxCellStyles{Count: 1, CellStyle: []xlsxCellStyle{{Name: "Normal"}}},
	}
	doc.Fills.Fill[0].PatternFill.PatternType = "none"
	doc.Fills.Fill[1].PatternFill.PatternType = "gray125"
	return ooxml.Marshal(doc)
}

// Parse checks that data is well-formed and counts its cell formats.
func (s *Styles) Parse(data []byte) error {
	count := 0
	inCellXfs := false
	err := walk(data, func(dec *xml.Decoder, se xml.StartElement) error {
		switch se.Name.Local {
		case "cellXfs":
			inCellXfs = true
		case "cellStyles", "dxfs", "tableStyles", "colors", "extLst":
			inCellXfs = false
		case "xf":
			if inCellXfs {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if count > 0 {
		s.cellFormats = count
	}
	return nil
}
