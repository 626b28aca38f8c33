// Package ooxml holds the namespace, relationship-type and content-type URIs
// shared by the SpreadsheetML part codecs, plus the common marshal helper.
package ooxml

import (
	"bytes"
	"encoding/xml"
	"unicode"
	"unicode/utf8"
)

// Header is the XML declaration written at the top of every part.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Namespaces.
const (
	NSMain          = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	NSRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NSPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	NSExtended      = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	NSVTypes        = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	NSCore          = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	NSDC            = "http://purl.org/dc/elements/1.1/"
	NSDCTerms       = "http://purl.org/dc/terms/"
	NSDCMIType      = "http://purl.org/dc/dcmitype/"
	NSXSI           = "http://www.w3.org/2001/XMLSchema-instance"
)

// Relationship types.
const (
	RelOfficeDocument = NSRelationships + "/officeDocument"
	RelWorksheet      = NSRelationships + "/worksheet"
	RelStyles         = NSRelationships + "/styles"
	RelSharedStrings  = NSRelationships + "/sharedStrings"
	RelTheme          = NSRelationships + "/theme"
	RelHyperlink      = NSRelationships + "/hyperlink"
	RelExtended       = NSRelationships + "/extended-properties"
	RelCore           = NSPackageRels + "/metadata/core-properties"
)

// Content types.
const (
	typeOfficePrefix = "application/vnd.openxmlformats-officedocument."

	ContentTypeWorkbook      = typeOfficePrefix + "spreadsheetml.sheet.main+xml"
	ContentTypeWorksheet     = typeOfficePrefix + "spreadsheetml.worksheet+xml"
	ContentTypeSharedStrings = typeOfficePrefix + "spreadsheetml.sharedStrings+xml"
	ContentTypeStyles        = typeOfficePrefix + "spreadsheetml.styles+xml"
	ContentTypeTheme         = typeOfficePrefix + "theme+xml"
	ContentTypeExtended      = typeOfficePrefix + "extended-properties+xml"
	ContentTypeCore          = "application/vnd.openxmlformats-package.core-properties+xml"
	ContentTypeRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeXML           = "application/xml"
)

// TargetModeExternal marks a relationship whose target lies outside the package.
const TargetModeExternal = "External"

// Marshal encodes v after the standalone XML declaration.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header)
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NeedsPreserve reports whether s starts or ends with whitespace and so needs
// xml:space="preserve" to survive a round trip.
func NeedsPreserve(s string) bool {
	if s == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(first) || unicode.IsSpace(last)
}

// Attr returns the value of the attribute with the given local name.
func Attr(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}
