package sst

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/internal/ooxml"
)

type xlsxSST struct {
	XMLName     xml.Name `xml:"sst"`
	Xmlns       string   `xml:"xmlns,attr"`
	Count       int      `xml:"count,attr"`
	UniqueCount int      `xml:"uniqueCount,attr"`
	SI          []xlsxSI `xml:"si"`
}

type xlsxSI struct {
	T xlsxT `xml:"t"`
}

type xlsxT struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Val   string `xml:",chardata"`
}

// Compose renders the table as an xl/sharedStrings.xml part, one <si> per
// entry in index order.
func (t *Table) Compose() ([]byte, error) {
	doc := xlsxSST{
		Xmlns:       ooxml.NSMain,
		Count:       t.Count(),
		UniqueCount: t.UniqueCount(),
		SI:          make([]xlsxSI, len(t.entries)),
	}
	if len(t.entries) != len(t.index) {
		t.logger.Warn("shared string table holds duplicate entries")
	}
	for i, e := range t.entries {
		doc.SI[i].T.Val = e.text
		if ooxml.NeedsPreserve(e.text) {
			doc.SI[i].T.Space = "preserve"
		}
	}

	return ooxml.Marshal(doc)
}

// Parse replaces the table contents with the entries of an
// xl/sharedStrings.xml part. Rich-text runs are flattened into plain text.
// The entries are kept even when the declared uniqueCount disagrees with
// them; that case is reported with ErrCountMismatch.
func (t *Table) Parse(data []byte) error {
	t.Reset()

	dec := xml.NewDecoder(bytes.NewReader(data))
	declared := -1
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
		case "sst":
			if v, ok := ooxml.Attr(se, "uniqueCount"); ok {
				n, err := strconv.Atoi(v)
				if err != nil {
					return err
				}
				declared = n
			}
		case "si":
			text, err := readItem(dec)
			if err != nil {
				return err
			}
			t.appendParsed(text)
		}
	}

	if declared >= 0 && declared != len(t.entries) {
		return ErrCountMismatch.New(declared, len(t.entries))
	}
	if len(t.entries) != len(t.index) {
		t.logger.WithField("entries", len(t.entries)).Warn("shared strings contain duplicate entries")
	}
	return nil
}

// appendParsed adds an entry with no users. Duplicates keep their own slot so
// that stored indices still resolve; lookups by text find the first one.
func (t *Table) appendParsed(text string) {
	if _, ok := t.index[text]; !ok {
		t.index[text] = len(t.entries)
	}
	t.entries = append(t.entries, &entry{text: text, refs: make(map[Ref]struct{})})
}

// readItem collects the text of every <t> under the current <si>.
func readItem(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1
	inText := false
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			depth++
			// Phonetic runs repeat the reading, not the value.
			if tt.Name.Local == "rPh" {
				if err := dec.Skip(); err != nil {
					return "", err
				}
				depth--
				continue
			}
			inText = tt.Name.Local == "t"
		case xml.EndElement:
			depth--
			inText = false
		case xml.CharData:
			if inText {
				sb.Write(tt)
			}
		}
	}
	return sb.String(), nil
}
