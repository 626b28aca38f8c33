package parts

import (
	"encoding/xml"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/internal/ooxml"
)

// DefaultCreator is written as creator and lastModifiedBy when unset.
const DefaultCreator = "sheetpack-go"

// W3CDTF is the timestamp layout of the created and modified properties.
const W3CDTF = "2006-01-02T15:04:05Z"

// CoreProperties is the core-properties part (docProps/core.xml).
type CoreProperties struct {
	bag
	logger logrus.FieldLogger
}

var coreKeys = map[string]bool{
	"title":          false,
	"subject":        false,
	"creator":        false,
	"keywords":       false,
	"description":    false,
	"lastModifiedBy": false,
	"category":       false,
	"created":        false,
	"modified":       false,
}

// coreNamespaces maps each property to the namespace it is read from.
var coreNamespaces = map[string]string{
	"title":          ooxml.NSDC,
	"subject":        ooxml.NSDC,
	"creator":        ooxml.NSDC,
	"description":    ooxml.NSDC,
	"keywords":       ooxml.NSCore,
	"lastModifiedBy": ooxml.NSCore,
	"category":       ooxml.NSCore,
	"created":        ooxml.NSDCTerms,
	"modified":       ooxml.NSDCTerms,
}

// NewCoreProperties returns an empty core-properties part.
func NewCoreProperties(logger logrus.FieldLogger) *CoreProperties {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CoreProperties{bag: newBag(coreKeys), logger: logger}
}

// Has reports whether name is a core property.
func (c *CoreProperties) Has(name string) bool { return c.has(name) }

// Set stores a property.
func (c *CoreProperties) Set(name, value string) error { return c.set(name, value) }

// Clear removes a stored property.
func (c *CoreProperties) Clear(name string) { c.clear(name) }

// Get returns a stored property.
func (c *CoreProperties) Get(name string) (string, bool) { return c.get(name) }

// Names lists the stored property names, sorted.
func (c *CoreProperties) Names() []string { return sortedKeys(c.values) }

// Properties returns a copy of the stored values.
func (c *CoreProperties) Properties() map[string]string {
	out := make(map[string]string, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

type xlsxCoreProperties struct {
	XMLName        xml.Name      `xml:"cp:coreProperties"`
	XmlnsCP        string        `xml:"xmlns:cp,attr"`
	XmlnsDC        string        `xml:"xmlns:dc,attr"`
	XmlnsDCTerms   string        `xml:"xmlns:dcterms,attr"`
	XmlnsDCMIType  string        `xml:"xmlns:dcmitype,attr"`
	XmlnsXSI       string        `xml:"xmlns:xsi,attr"`
	Title          string        `xml:"dc:title,omitempty"`
	Subject        string        `xml:"dc:subject,omitempty"`
	Creator        string        `xml:"dc:creator"`
	Keywords       string        `xml:"cp:keywords,omitempty"`
	Description    string        `xml:"dc:description,omitempty"`
	LastModifiedBy string        `xml:"cp:lastModifiedBy"`
	Created        xlsxTimestamp `xml:"dcterms:created"`
	Modified       xlsxTimestamp `xml:"dcterms:modified"`
	Category       string        `xml:"cp:category,omitempty"`
}

type xlsxTimestamp struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// Compose renders docProps/core.xml. modified is always now; created
// defaults to now when unset.
func (c *CoreProperties) Compose(now time.Time) ([]byte, error) {
	stamp := now.UTC().Format(W3CDTF)
	doc := xlsxCoreProperties{
		XmlnsCP:        ooxml.NSCore,
		XmlnsDC:        ooxml.NSDC,
		XmlnsDCTerms:   ooxml.NSDCTerms,
		XmlnsDCMIType:  ooxml.NSDCMIType,
		XmlnsXSI:       ooxml.NSXSI,
		Title:          c.getOr("title", ""),
		Subject:        c.getOr("subject", ""),
		Creator:        c.getOr("creator", DefaultCreator),
		Keywords:       c.getOr("keywords", ""),
		Description:    c.getOr("description", ""),
		LastModifiedBy: c.getOr("lastModifiedBy", DefaultCreator),
		Created:        xlsxTimestamp{Type: "dcterms:W3CDTF", Value: c.getOr("created", stamp)},
		Modified:       xlsxTimestamp{Type: "dcterms:W3CDTF", Value: stamp},
		Category:       c.getOr("category", ""),
	}
	return ooxml.Marshal(doc)
}

// Parse loads the core properties. An element is accepted only in the
// namespace its property belongs to.
func (c *CoreProperties) Parse(data []byte) error {
	c.values = make(map[string]string)
	return walk(data, func(dec *xml.Decoder, se xml.StartElement) error {
		ns, ok := coreNamespaces[se.Name.Local]
		if !ok || ns != se.Name.Space {
			return nil
		}
		text, err := readText(dec)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		if err := c.set(se.Name.Local, text); err != nil {
			c.logger.WithError(err).Warn("ignoring core property")
		}
		return nil
	})
}
