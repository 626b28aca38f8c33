// Package rels implements the per-part relationship graph of an OOXML package
// and the ".rels" sibling path convention.
package rels

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/internal/ooxml"
	"gopkg.in/src-d/go-errors.v1"
)

// ErrMalformedRelationship is reported for a record missing Id, Type or Target.
var ErrMalformedRelationship = errors.NewKind("relationship record is missing %s")

const idPrefix = "rId"

// Relationship is one typed link from the owning part to a target.
type Relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

// External reports whether the target lies outside the package.
func (r Relationship) External() bool {
	return r.TargetMode == ooxml.TargetModeExternal
}

// Graph holds the relationships of one part. Ids are "rId1", "rId2", ... and
// are never reused until Clear starts a new composition pass.
type Graph struct {
	byID   map[string]Relationship
	order  []string
	next   int
	logger logrus.FieldLogger
}

// New returns an empty graph.
func New(logger logrus.FieldLogger) *Graph {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Graph{byID: make(map[string]Relationship), logger: logger}
}

// Add registers a relationship and returns its generated id. targetMode is
// empty for package-internal targets.
func (g *Graph) Add(relType, target, targetMode string) string {
	g.next++
	id := idPrefix + strconv.Itoa(g.next)
	for {
		if _, taken := g.byID[id]; !taken {
			break
		}
		g.next++
		id = idPrefix + strconv.Itoa(g.next)
	}
	g.insert(Relationship{ID: id, Type: relType, Target: target, TargetMode: targetMode})
	return id
}

func (g *Graph) insert(r Relationship) {
	if _, ok := g.byID[r.ID]; !ok {
		g.order = append(g.order, r.ID)
	}
	g.byID[r.ID] = r
}

// LookupByID returns the relationship with the given id.
func (g *Graph) LookupByID(id string) (Relationship, bool) {
	r, ok := g.byID[id]
	return r, ok
}

// LookupByType returns every relationship of relType. Callers must not rely
// on the order of the result.
func (g *Graph) LookupByType(relType string) []Relationship {
	var out []Relationship
	for _, id := range g.order {
		if r := g.byID[id]; r.Type == relType {
			out = append(out, r)
		}
	}
	return out
}

// Relationships returns every relationship in insertion order.
func (g *Graph) Relationships() []Relationship {
	out := make([]Relationship, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.byID[id])
	}
	return out
}

// Len is the number of relationships.
func (g *Graph) Len() int { return len(g.order) }

// IsEmpty reports whether the graph has no relationships.
func (g *Graph) IsEmpty() bool { return len(g.order) == 0 }

// Clear drops every relationship and restarts id generation at rId1.
func (g *Graph) Clear() {
	g.byID = make(map[string]Relationship)
	g.order = nil
	g.next = 0
}

type xlsxRelationships struct {
	XMLName       xml.Name           `xml:"Relationships"`
	Xmlns         string             `xml:"xmlns,attr"`
	Relationships []xlsxRelationship `xml:"Relationship"`
}

type xlsxRelationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Compose renders the graph as a .rels part.
func (g *Graph) Compose() ([]byte, error) {
	doc := xlsxRelationships{Xmlns: ooxml.NSPackageRels}
	for _, r := range g.Relationships() {
		doc.Relationships = append(doc.Relationships, xlsxRelationship(r))
	}
	return ooxml.Marshal(doc)
}

// Parse replaces the graph with the records of a .rels part. Malformed
// records are skipped with a warning; id generation resumes past the largest
// numeric id parsed.
func (g *Graph) Parse(data []byte) error {
	g.Clear()

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
		if !ok || se.Name.Local != "Relationship" {
			continue
		}

		r, err := parseRecord(se)
		if err != nil {
			g.logger.WithError(err).Warn("skipping relationship")
			continue
		}
		g.insert(r)
		if n, err := strconv.Atoi(strings.TrimPrefix(r.ID, idPrefix)); err == nil && strings.HasPrefix(r.ID, idPrefix) && n > g.next {
			g.next = n
		}
	}
}

func parseRecord(se xml.StartElement) (Relationship, error) {
	var r Relationship
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "Id":
			r.ID = attr.Value
		case "Type":
			r.Type = attr.Value
		case "Target":
			r.Target = attr.Value
		case "TargetMode":
			r.TargetMode = attr.Value
		}
	}

	switch {
	case r.ID == "":
		return r, ErrMalformedRelationship.New("Id")
	case r.Type == "":
		return r, ErrMalformedRelationship.New("Type")
	case r.Target == "":
		return r, ErrMalformedRelationship.New("Target")
	}
	return r, nil
}
