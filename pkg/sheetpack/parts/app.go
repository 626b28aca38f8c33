package parts

import (
	"encoding/xml"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/internal/ooxml"
)

// AppProperties is the extended-properties part (docProps/app.xml).
type AppProperties struct {
	bag
	logger logrus.FieldLogger
}

var appKeys = map[string]bool{
	"Application":       false,
	"DocSecurity":       false,
	"ScaleCrop":         true,
	"Manager":           false,
	"Company":           false,
	"LinksUpToDate":     true,
	"SharedDoc":         true,
	"HyperlinksChanged": true,
	"AppVersion":        false,
}

// NewAppProperties returns an empty extended-properties part.
func NewAppProperties(logger logrus.FieldLogger) *AppProperties {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AppProperties{bag: newBag(appKeys), logger: logger}
}

// Has reports whether name is an extended property.
func (a *AppProperties) Has(name string) bool { return a.has(name) }

// Set stores a property. Boolean-valued keys accept only "true" or "false".
func (a *AppProperties) Set(name, value string) error { return a.set(name, value) }

// Clear removes a stored property so Compose falls back to its default.
func (a *AppProperties) Clear(name string) { a.clear(name) }

// Get returns a stored property.
func (a *AppProperties) Get(name string) (string, bool) { return a.get(name) }

// Names lists the stored property names, sorted.
func (a *AppProperties) Names() []string { return sortedKeys(a.values) }

type xlsxAppProperties struct {
	XMLName           xml.Name   `xml:"Properties"`
	Xmlns             string     `xml:"xmlns,attr"`
	XmlnsVT           string     `xml:"xmlns:vt,attr"`
	Application       string     `xml:"Application"`
	DocSecurity       string     `xml:"DocSecurity"`
	ScaleCrop         string     `xml:"ScaleCrop"`
	HeadingPairs      xlsxVector `xml:"HeadingPairs>vt:vector"`
	TitlesOfParts     xlsxVector `xml:"TitlesOfParts>vt:vector"`
	Manager           string     `xml:"Manager,omitempty"`
	Company           string     `xml:"Company"`
	LinksUpToDate     string     `xml:"LinksUpToDate"`
	SharedDoc         string     `xml:"SharedDoc"`
	HyperlinksChanged string     `xml:"HyperlinksChanged"`
	AppVersion        string     `xml:"AppVersion"`
}

type xlsxVector struct {
	Size     int           `xml:"size,attr"`
	BaseType string        `xml:"baseType,attr"`
	Variants []xlsxVariant `xml:"vt:variant"`
	Lpstr    []string      `xml:"vt:lpstr"`
}

type xlsxVariant struct {
	Lpstr string `xml:"vt:lpstr,omitempty"`
	I4    *int   `xml:"vt:i4,omitempty"`
}

// Compose renders docProps/app.xml. sheetNames fill TitlesOfParts and the
// "Worksheets" heading pair.
func (a *AppProperties) Compose(sheetNames []string) ([]byte, error) {
	count := len(sheetNames)
	doc := xlsxAppProperties{
		Xmlns:             ooxml.NSExtended,
		XmlnsVT:           ooxml.NSVTypes,
		Application:       a.getOr("Application", "Microsoft Excel"),
		DocSecurity:       a.getOr("DocSecurity", "0"),
		ScaleCrop:         a.getOr("ScaleCrop", "false"),
		Manager:           a.getOr("Manager", ""),
		Company:           a.getOr("Company", ""),
		LinksUpToDate:     a.getOr("LinksUpToDate", "false"),
		SharedDoc:         a.getOr("SharedDoc", "false"),
		HyperlinksChanged: a.getOr("HyperlinksChanged", "false"),
		AppVersion:        a.getOr("AppVersion", "12.0000"),
		HeadingPairs: xlsxVector{
			Size:     2,
			BaseType: "variant",
			Variants: []xlsxVariant{{Lpstr: "Worksheets"}, {I4: &count}},
		},
		TitlesOfParts: xlsxVector{
			Size:     count,
			BaseType: "lpstr",
			Lpstr:    sheetNames,
		},
	}
	return ooxml.Marshal(doc)
}

// Parse loads the known extended properties from docProps/app.xml. Values
// that fail validation are skipped with a warning.
func (a *AppProperties) Parse(data []byte) error {
	a.values = make(map[string]string)
	return walk(data, func(dec *xml.Decoder, se xml.StartElement) error {
		if !a.has(se.Name.Local) {
			return nil
		}
		text, err := readText(dec)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		if err := a.set(se.Name.Local, text); err != nil {
			a.logger.WithError(err).Warn("ignoring extended property")
		}
		return nil
	})
}

// Properties returns a copy of the stored values.
func (a *AppProperties) Properties() map[string]string {
	out := make(map[string]string, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}
