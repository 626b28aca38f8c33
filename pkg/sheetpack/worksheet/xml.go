package worksheet

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/address"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/internal/ooxml"
)

type xlsxWorksheet struct {
	XMLName       xml.Name          `xml:"worksheet"`
	Xmlns         string            `xml:"xmlns,attr"`
	XmlnsR        string            `xml:"xmlns:r,attr"`
	Dimension     xlsxRef           `xml:"dimension"`
	SheetViews    xlsxSheetViews    `xml:"sheetViews"`
	SheetFormatPr xlsxSheetFormatPr `xml:"sheetFormatPr"`
	SheetData     xlsxSheetData     `xml:"sheetData"`
	Hyperlinks    *xlsxHyperlinks   `xml:"hyperlinks"`
}

type xlsxRef struct {
	Ref string `xml:"ref,attr"`
}

type xlsxSheetViews struct {
	SheetView []xlsxSheetView `xml:"sheetView"`
}

type xlsxSheetView struct {
	WorkbookViewID int `xml:"workbookViewId,attr"`
}

type xlsxSheetFormatPr struct {
	DefaultColWidth  string `xml:"defaultColWidth,attr"`
	DefaultRowHeight string `xml:"defaultRowHeight,attr"`
}

type xlsxSheetData struct {
	Row []xlsxRow `xml:"row"`
}

type xlsxRow struct {
	R     int     `xml:"r,attr"`
	Spans string  `xml:"spans,attr,omitempty"`
	C     []xlsxC `xml:"c"`
}

type xlsxC struct {
	R string `xml:"r,attr"`
	T string `xml:"t,attr"`
	V string `xml:"v"`
}

type xlsxHyperlinks struct {
	Hyperlink []xlsxHyperlink `xml:"hyperlink"`
}

type xlsxHyperlink struct {
	Ref string `xml:"ref,attr"`
	RID string `xml:"r:id,attr"`
}

// Compose renders the worksheet part. The sheet's relationship graph is
// rebuilt first so hyperlink ids are fresh; spans are recomputed on every call.
func (ws *Worksheet) Compose() ([]byte, error) {
	ws.rels.Clear()

	ref := "A1"
	if ws.dim.Valid() {
		ref = ws.dim.String()
	}
	doc := xlsxWorksheet{
		Xmlns:      ooxml.NSMain,
		XmlnsR:     ooxml.NSRelationships,
		Dimension:  xlsxRef{Ref: ref},
		SheetViews: xlsxSheetViews{SheetView: []xlsxSheetView{{WorkbookViewID: 0}}},
		SheetFormatPr: xlsxSheetFormatPr{
			DefaultColWidth:  strconv.FormatFloat(ws.format.DefaultColWidth, 'f', -1, 64),
			DefaultRowHeight: strconv.FormatFloat(ws.format.DefaultRowHeight, 'f', -1, 64),
		},
	}

	if ws.dim.Valid() {
		doc.SheetData.Row = ws.composeRows()
	}

	if links := ws.Hyperlinks(); len(links) > 0 {
		doc.Hyperlinks = &xlsxHyperlinks{}
		for _, link := range links {
			id := ws.rels.Add(ooxml.RelHyperlink, link.Target, ooxml.TargetModeExternal)
			doc.Hyperlinks.Hyperlink = append(doc.Hyperlinks.Hyperlink, xlsxHyperlink{Ref: link.Cell.String(), RID: id})
		}
	}

	return ooxml.Marshal(doc)
}

// composeRows emits one row per index inside the dimension, empty or not.
func (ws *Worksheet) composeRows() []xlsxRow {
	spans := ws.CalculateSpans()
	rows := make([]xlsxRow, ws.dim.Bottom-ws.dim.Top+1)
	for i := range rows {
		r := ws.dim.Top + i
		rows[i] = xlsxRow{R: r, Spans: spans[(r-1)/16]}
	}

	ws.Range(func(row, column int, v Value) bool {
		if row < ws.dim.Top || row > ws.dim.Bottom {
			return true
		}
		c := xlsxC{
			R: address.ComposeCoordinate(row, column, false, false),
			T: v.typ.Code(),
			V: v.String(),
		}
		if v.typ == TypeSharedString {
			idx, ok := ws.strings.LookupIndex(v.s)
			if !ok {
				ws.logger.WithField("cell", c.R).Warn("text cell lost its shared string; re-interning")
				idx = ws.strings.Intern(v.s, ws.id, row, column)
			}
			c.V = strconv.Itoa(idx)
		}
		rows[row-ws.dim.Top].C = append(rows[row-ws.dim.Top].C, c)
		return true
	})
	return rows
}

// Parse loads a worksheet part into the sheet, replacing its cells. The
// sheet's relationship graph must already hold the part's relationships so
// hyperlinks can be resolved. Rows and cells without explicit references get
// positions from running counters.
func (ws *Worksheet) Parse(data []byte) error {
	ws.cells.Clear(false)
	ws.dim.Reset()
	ws.links = make(map[address.Coordinate]string)

	dec := xml.NewDecoder(bytes.NewReader(data))
	row, column := 0, 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "dimension":
			ref, _ := ooxml.Attr(se, "ref")
			if d := address.ParseRange(ref); d.Valid() {
				ws.dim = d
			}
		case "sheetFormatPr":
			ws.parseFormat(se)
		case "row":
			next := row + 1
			if r, ok := ooxml.Attr(se, "r"); ok {
				if n, err := strconv.Atoi(r); err == nil && n > 0 {
					next = n
				} else {
					ws.logger.WithField("r", r).Warn("bad row number; counting instead")
				}
			}
			row, column = next, 0
		case "c":
			if err := ws.parseCell(dec, se, row, &column); err != nil {
				return err
			}
		case "hyperlink":
			ws.parseHyperlink(se)
		}
	}
}

func (ws *Worksheet) parseFormat(se xml.StartElement) {
	if v, ok := ooxml.Attr(se, "defaultColWidth"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			ws.format.DefaultColWidth = f
		}
	}
	if v, ok := ooxml.Attr(se, "defaultRowHeight"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			ws.format.DefaultRowHeight = f
		}
	}
}

func (ws *Worksheet) parseCell(dec *xml.Decoder, se xml.StartElement, row int, column *int) error {
	coord := address.InvalidCoordinate
	if r, ok := ooxml.Attr(se, "r"); ok && r != "" {
		coord = address.ParseCoordinate(r)
	}
	if coord.Valid() {
		*column = coord.Column
	} else {
		*column++
		coord = address.Coordinate{Row: row, Column: *column}
	}
	typ, _ := ooxml.Attr(se, "t")

	raw, found, err := readCellText(dec, typ == "inlineStr")
	if err != nil {
		return err
	}

	log := ws.logger.WithFields(logrus.Fields{"cell": coord.String(), "t": typ})
	if !coord.Valid() {
		log.WithField("row", coord.Row).Warn("cell outside the grid; skipped")
		return nil
	}
	if !found {
		ws.writeBlank(coord.Row, coord.Column)
		return nil
	}

	value, ok := ws.parseValue(typ, raw, coord)
	if !ok {
		log.WithField("value", raw).Warn("unparsable cell value; stored as blank")
		ws.writeBlank(coord.Row, coord.Column)
		return nil
	}
	ws.dim.Extend(coord.Row, coord.Column)
	ws.cells.ReplaceOrInsert(&cell{row: coord.Row, column: coord.Column, value: value})
	return nil
}

func (ws *Worksheet) parseValue(typ, raw string, coord address.Coordinate) (Value, bool) {
	switch typ {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, false
		}
		if err := ws.strings.IncrementReference(idx, ws.id, coord.Row, coord.Column); err != nil {
			return Value{}, false
		}
		text, _ := ws.strings.Lookup(idx)
		return Text(text), true
	case "inlineStr", "str":
		ws.strings.Intern(raw, ws.id, coord.Row, coord.Column)
		return Text(raw), true
	case "b":
		return Bool(parseBool(raw)), true
	case "d":
		t, ok := parseDate(raw)
		if !ok {
			return Value{}, false
		}
		return Date(t), true
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Value{}, false
		}
		return Number(f), true
	}
}

// readCellText consumes the rest of a <c> element and returns the text of its
// <v>, or of its <is> runs when inline is set.
func readCellText(dec *xml.Decoder, inline bool) (string, bool, error) {
	var sb strings.Builder
	found := false
	var stack []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false, err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			stack = append(stack, tt.Name.Local)
			if tt.Name.Local == "rPh" {
				if err := dec.Skip(); err != nil {
					return "", false, err
				}
				stack = stack[:len(stack)-1]
				continue
			}
			if (!inline && tt.Name.Local == "v") || (inline && tt.Name.Local == "t") {
				found = true
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return sb.String(), found, nil
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			if (!inline && top == "v") || (inline && top == "t") {
				sb.Write(tt)
			}
		}
	}
}

func (ws *Worksheet) parseHyperlink(se xml.StartElement) {
	ref, _ := ooxml.Attr(se, "ref")
	var rid string
	for _, a := range se.Attr {
		if a.Name.Local == "id" && a.Name.Space != "" {
			rid = a.Value
		}
	}
	log := ws.logger.WithFields(logrus.Fields{"ref": ref, "r:id": rid})

	d := address.ParseRange(ref)
	if !d.Valid() || rid == "" {
		log.Warn("hyperlink without a cell or relationship; dropped")
		return
	}
	rel, ok := ws.rels.LookupByID(rid)
	if !ok {
		log.Warn("unresolved hyperlink relationship; dropped")
		return
	}
	ws.links[d.Start()] = rel.Target
}
