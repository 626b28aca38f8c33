package parts

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrUnknownProperty is returned when a property name belongs to neither
// docProps part.
var ErrUnknownProperty = errors.NewKind("unknown document property %q")

// ErrInvalidProperty is returned when a value is not acceptable for a property.
var ErrInvalidProperty = errors.NewKind("invalid value %q for document property %q")

// Property paths.
const (
	AppPropertiesPath  = "docProps/app.xml"
	CorePropertiesPath = "docProps/core.xml"
)

// bag is a validated string-keyed property store shared by the two docProps parts.
type bag struct {
	keys   map[string]bool // key -> boolean-valued
	values map[string]string
}

func newBag(keys map[string]bool) bag {
	return bag{keys: keys, values: make(map[string]string)}
}

func (b bag) has(name string) bool {
	_, ok := b.keys[name]
	return ok
}

func (b bag) set(name, value string) error {
	boolean, ok := b.keys[name]
	if !ok {
		return ErrUnknownProperty.New(name)
	}
	if value == "" {
		return ErrInvalidProperty.New(value, name)
	}
	if boolean && value != "true" && value != "false" {
		return ErrInvalidProperty.New(value, name)
	}
	b.values[name] = value
	return nil
}

func (b bag) clear(name string) {
	delete(b.values, name)
}

func (b bag) get(name string) (string, bool) {
	v, ok := b.values[name]
	return v, ok
}

func (b bag) getOr(name, fallback string) string {
	if v, ok := b.values[name]; ok {
		return v
	}
	return fallback
}

// readText returns the character data of the element just opened, skipping
// any nested markup.
func readText(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 1 {
				sb.Write(tt)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// walk calls fn for every start element until EOF.
func walk(data []byte, fn func(dec *xml.Decoder, se xml.StartElement) error) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if se, ok := tok.(xml.StartElement); ok {
			if err := fn(dec, se); err != nil {
				return err
			}
		}
	}
}
