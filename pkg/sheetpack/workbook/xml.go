package workbook

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/internal/ooxml"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/parts"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/rels"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/sst"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/worksheet"
)

type xlsxWorkbook struct {
	XMLName      xml.Name          `xml:"workbook"`
	Xmlns        string            `xml:"xmlns,attr"`
	XmlnsR       string            `xml:"xmlns:r,attr"`
	FileVersion  xlsxFileVersion   `xml:"fileVersion"`
	WorkbookPr   xlsxWorkbookPr    `xml:"workbookPr"`
	BookViews    xlsxBookViews     `xml:"bookViews"`
	Sheets       xlsxSheets        `xml:"sheets"`
	DefinedNames *xlsxDefinedNames `xml:"definedNames"`
	CalcPr       xlsxCalcPr        `xml:"calcPr"`
}

type xlsxFileVersion struct {
	AppName      string `xml:"appName,attr"`
	LastEdited   string `xml:"lastEdited,attr"`
	LowestEdited string `xml:"lowestEdited,attr"`
	RupBuild     string `xml:"rupBuild,attr"`
}

type xlsxWorkbookPr struct {
	DefaultThemeVersion string `xml:"defaultThemeVersion,attr"`
}

type xlsxBookViews struct {
	WorkbookView []xlsxWorkbookView `xml:"workbookView"`
}

type xlsxWorkbookView struct {
	XWindow      int `xml:"xWindow,attr"`
	YWindow      int `xml:"yWindow,attr"`
	WindowWidth  int `xml:"windowWidth,attr"`
	WindowHeight int `xml:"windowHeight,attr"`
	ActiveTab    int `xml:"activeTab,attr,omitempty"`
}

type xlsxSheets struct {
	Sheet []xlsxSheet `xml:"sheet"`
}

type xlsxSheet struct {
	Name    string `xml:"name,attr"`
	SheetID int    `xml:"sheetId,attr"`
	RID     string `xml:"r:id,attr"`
}

type xlsxDefinedNames struct {
	DefinedName []xlsxDefinedName `xml:"definedName"`
}

type xlsxDefinedName struct {
	Name         string `xml:"name,attr"`
	Comment      string `xml:"comment,attr,omitempty"`
	LocalSheetID *int   `xml:"localSheetId,attr"`
	Hidden       bool   `xml:"hidden,attr,omitempty"`
	Value        string `xml:",chardata"`
}

type xlsxCalcPr struct {
	CalcID string `xml:"calcId,attr"`
}

// SheetPath returns the part path of the sheet at index when composed.
func SheetPath(index int) string {
	return "xl/worksheets/sheet" + strconv.Itoa(index+1) + ".xml"
}

// Compose renders the workbook part. The relationship graph is rebuilt from
// scratch: one link per sheet, then styles, then shared strings when the
// table is non-empty. Each sheet's path is set to its emission slot, so
// sheets must be composed against the paths this assigns.
func (wb *Workbook) Compose() ([]byte, error) {
	wb.path = Path
	wb.CurrentSheet()
	wb.AssignPaths()
	wb.rels.Clear()

	doc := xlsxWorkbook{
		Xmlns:       ooxml.NSMain,
		XmlnsR:      ooxml.NSRelationships,
		FileVersion: xlsxFileVersion{AppName: "xl", LastEdited: "4", LowestEdited: "4", RupBuild: "4505"},
		WorkbookPr:  xlsxWorkbookPr{DefaultThemeVersion: "124226"},
		BookViews: xlsxBookViews{WorkbookView: []xlsxWorkbookView{{
			XWindow:      wb.view.XWindow,
			YWindow:      wb.view.YWindow,
			WindowWidth:  wb.view.WindowWidth,
			WindowHeight: wb.view.WindowHeight,
			ActiveTab:    wb.active,
		}}},
		CalcPr: xlsxCalcPr{CalcID: "124519"},
	}

	dir, _ := rels.SplitPath(Path)
	for _, ws := range wb.sheets {
		id := wb.rels.Add(ooxml.RelWorksheet, rels.RelativeTarget(dir, ws.Path()), "")
		doc.Sheets.Sheet = append(doc.Sheets.Sheet, xlsxSheet{Name: ws.Name(), SheetID: ws.ID(), RID: id})
	}

	if len(wb.names) > 0 {
		doc.DefinedNames = &xlsxDefinedNames{}
		for _, d := range wb.names {
			x := xlsxDefinedName{Name: d.Name, Comment: d.Comment, Hidden: d.Hidden, Value: d.RefersTo}
			if d.SheetID != 0 {
				local := wb.sheetIndexByID(d.SheetID)
				if local < 0 {
					wb.logger.WithField("name", d.Name).Warn("defined name scoped to a missing sheet; skipped")
					continue
				}
				x.LocalSheetID = &local
			}
			doc.DefinedNames.DefinedName = append(doc.DefinedNames.DefinedName, x)
		}
	}

	wb.rels.Add(ooxml.RelStyles, rels.RelativeTarget(dir, parts.StylesPath), "")
	if !wb.strings.IsEmpty() {
		wb.rels.Add(ooxml.RelSharedStrings, rels.RelativeTarget(dir, sst.Path), "")
	}

	return ooxml.Marshal(doc)
}

// AssignPaths sets every sheet's part path to its emission slot.
func (wb *Workbook) AssignPaths() {
	for i, ws := range wb.sheets {
		ws.SetPath(SheetPath(i))
	}
}

// Parse loads the workbook part. The workbook's relationship graph must
// already hold the part's relationships. Sheets are registered with their
// resolved part paths; their content is loaded separately.
func (wb *Workbook) Parse(data []byte) error {
	wb.sheets = nil
	wb.names = nil
	wb.active = 0
	wb.lastSheetID = 0
	wb.view = DefaultView()

	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "workbookView":
			wb.parseView(se)
		case "sheet":
			wb.parseSheet(se)
		case "definedName":
			if err := wb.parseDefinedName(dec, se); err != nil {
				return err
			}
		}
	}

	if wb.active >= len(wb.sheets) {
		wb.logger.WithField("activeTab", wb.active).Warn("active tab out of range; using the first sheet")
		wb.active = 0
	}
	return nil
}

func (wb *Workbook) parseView(se xml.StartElement) {
	fields := map[string]*int{
		"xWindow":      &wb.view.XWindow,
		"yWindow":      &wb.view.YWindow,
		"windowWidth":  &wb.view.WindowWidth,
		"windowHeight": &wb.view.WindowHeight,
		"activeTab":    &wb.active,
	}
	for name, dst := range fields {
		v, ok := ooxml.Attr(se, name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			wb.logger.WithFields(logrus.Fields{"attr": name, "value": v}).Warn("bad book view attribute; using default")
			continue
		}
		*dst = n
	}
}

func (wb *Workbook) parseSheet(se xml.StartElement) {
	name, _ := ooxml.Attr(se, "name")
	var rid string
	for _, a := range se.Attr {
		if a.Name.Local == "id" && a.Name.Space != "" {
			rid = a.Value
		}
	}
	id := 0
	if v, ok := ooxml.Attr(se, "sheetId"); ok {
		id, _ = strconv.Atoi(v)
	}
	log := wb.logger.WithFields(logrus.Fields{"sheet": name, "r:id": rid})
	// Skipped sheets still consume their ids.
	wb.lastSheetID = max(wb.lastSheetID, id)

	rel, ok := wb.rels.LookupByID(rid)
	if !ok {
		log.Warn("unresolved sheet relationship; skipped")
		return
	}
	kind := worksheet.KindOf(rel.Type)
	if !kind.Supported() {
		log.WithField("kind", kind).Warn("unsupported sheet kind; skipped")
		return
	}

	dir, _ := rels.SplitPath(wb.path)
	wb.loadSheet(name, id, rels.ResolveTarget(dir, rel.Target))
}

func (wb *Workbook) parseDefinedName(dec *xml.Decoder, se xml.StartElement) error {
	d := DefinedName{}
	d.Name, _ = ooxml.Attr(se, "name")
	d.Comment, _ = ooxml.Attr(se, "comment")
	if v, ok := ooxml.Attr(se, "hidden"); ok {
		d.Hidden = v == "1" || strings.EqualFold(v, "true")
	}
	if v, ok := ooxml.Attr(se, "localSheetId"); ok {
		local, err := strconv.Atoi(v)
		if err != nil || local < 0 || local >= len(wb.sheets) {
			return ErrSheetNotFound.New("localSheetId=" + v)
		}
		d.SheetID = wb.sheets[local].ID()
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if cd, ok := tok.(xml.CharData); ok {
			text.Write(cd)
		}
		if _, ok := tok.(xml.EndElement); ok {
			break
		}
	}
	d.RefersTo = text.String()

	if d.Name == "" {
		wb.logger.Warn("defined name without a name; skipped")
		return nil
	}
	wb.names = append(wb.names, d)
	return nil
}
