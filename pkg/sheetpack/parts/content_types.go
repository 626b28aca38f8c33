// Package parts implements the package-level parts that sit around the
// workbook: the content-type registry, the document property parts and the
// fixed style sheet.
package parts

import (
	"bytes"
	"encoding/xml"
	"io"
	"sort"
	"strings"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/internal/ooxml"
)

// ContentTypesPath is the fixed location of the registry.
const ContentTypesPath = "[Content_Types].xml"

// ContentTypes is the package's content-type registry: defaults keyed by file
// extension and overrides keyed by absolute part name.
type ContentTypes struct {
	defaults  map[string]string
	overrides map[string]string
}

// NewContentTypes returns a registry carrying the "rels" and "xml" defaults.
func NewContentTypes() *ContentTypes {
	ct := &ContentTypes{
		defaults:  make(map[string]string),
		overrides: make(map[string]string),
	}
	ct.AddDefault("rels", ooxml.ContentTypeRelationships)
	ct.AddDefault("xml", ooxml.ContentTypeXML)
	return ct
}

// AddDefault maps a file extension to a content type.
func (c *ContentTypes) AddDefault(ext, contentType string) {
	c.defaults[strings.TrimPrefix(ext, ".")] = contentType
}

// AddOverride maps one part to a content type. partPath may be given with or
// without its leading "/".
func (c *ContentTypes) AddOverride(partPath, contentType string) {
	c.overrides[partName(partPath)] = contentType
}

// AddWorkbook registers xl/workbook.xml.
func (c *ContentTypes) AddWorkbook(partPath string) {
	c.AddOverride(partPath, ooxml.ContentTypeWorkbook)
}

// AddWorksheet registers one worksheet part.
func (c *ContentTypes) AddWorksheet(partPath string) {
	c.AddOverride(partPath, ooxml.ContentTypeWorksheet)
}

// AddSharedStrings registers the shared-string part.
func (c *ContentTypes) AddSharedStrings(partPath string) {
	c.AddOverride(partPath, ooxml.ContentTypeSharedStrings)
}

// AddStyles registers the style part.
func (c *ContentTypes) AddStyles(partPath string) {
	c.AddOverride(partPath, ooxml.ContentTypeStyles)
}

// AddAppProperties registers docProps/app.xml.
func (c *ContentTypes) AddAppProperties(partPath string) {
	c.AddOverride(partPath, ooxml.ContentTypeExtended)
}

// AddCoreProperties registers docProps/core.xml.
func (c *ContentTypes) AddCoreProperties(partPath string) {
	c.AddOverride(partPath, ooxml.ContentTypeCore)
}

// ClearOverrides drops every override; defaults are kept.
func (c *ContentTypes) ClearOverrides() {
	c.overrides = make(map[string]string)
}

// Lookup returns the content type of a part, falling back to the default for
// its extension.
func (c *ContentTypes) Lookup(partPath string) (string, bool) {
	if v, ok := c.overrides[partName(partPath)]; ok {
		return v, true
	}
	if idx := strings.LastIndex(partPath, "."); idx >= 0 {
		v, ok := c.defaults[strings.ToLower(partPath[idx+1:])]
		return v, ok
	}
	return "", false
}

// Overrides returns the registered part names (with leading "/"), sorted.
func (c *ContentTypes) Overrides() []string {
	return sortedKeys(c.overrides)
}

type xlsxTypes struct {
	XMLName   xml.Name       `xml:"Types"`
	Xmlns     string         `xml:"xmlns,attr"`
	Defaults  []xlsxDefault  `xml:"Default"`
	Overrides []xlsxOverride `xml:"Override"`
}

type xlsxDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xlsxOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// Compose renders [Content_Types].xml with entries in sorted key order.
func (c *ContentTypes) Compose() ([]byte, error) {
	doc := xlsxTypes{Xmlns: ooxml.NSContentTypes}
	for _, ext := range sortedKeys(c.defaults) {
		doc.Defaults = append(doc.Defaults, xlsxDefault{Extension: ext, ContentType: c.defaults[ext]})
	}
	for _, part := range sortedKeys(c.overrides) {
		doc.Overrides = append(doc.Overrides, xlsxOverride{PartName: part, ContentType: c.overrides[part]})
	}
	return ooxml.Marshal(doc)
}

// Parse replaces the registry with the contents of [Content_Types].xml.
// Entries missing either attribute are ignored.
func (c *ContentTypes) Parse(data []byte) error {
	c.defaults = make(map[string]string)
	c.overrides = make(map[string]string)

	dec := xml.NewDecoder(bytes.NewReader(data))
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
		contentType, _ := ooxml.Attr(se, "ContentType")
		switch se.Name.Local {
		case "Default":
			if ext, _ := ooxml.Attr(se, "Extension"); ext != "" && contentType != "" {
				c.AddDefault(ext, contentType)
			}
		case "Override":
			if part, _ := ooxml.Attr(se, "PartName"); part != "" && contentType != "" {
				c.AddOverride(part, contentType)
			}
		}
	}
}

func partName(partPath string) string {
	return "/" + strings.TrimPrefix(partPath, "/")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
