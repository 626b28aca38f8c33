package worksheet

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CellType discriminates the payload of a Value.
type CellType int

const (
	// TypeUnknown marks an absent value. It is never written to a part.
	TypeUnknown CellType = iota
	TypeBoolean
	TypeDate
	TypeNumber
	TypeSharedString
)

// Code returns the one-letter discriminant used in the t attribute.
func (t CellType) Code() string {
	switch t {
	case TypeBoolean:
		return "b"
	case TypeDate:
		return "d"
	case TypeSharedString:
		return "s"
	default:
		return "n"
	}
}

func (t CellType) String() string {
	switch t {
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	case TypeNumber:
		return "number"
	case TypeSharedString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a cell payload: a boolean, number, text or timestamp, or nothing.
// The zero Value is empty.
type Value struct {
	typ     CellType
	present bool
	b       bool
	n       float64
	s       string
	t       time.Time
}

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{typ: TypeBoolean, present: true, b: b} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{typ: TypeNumber, present: true, n: n} }

// Text returns a text value, stored through the shared-string table.
func Text(s string) Value { return Value{typ: TypeSharedString, present: true, s: s} }

// Date returns a timestamp value.
func Date(t time.Time) Value { return Value{typ: TypeDate, present: true, t: t} }

// blank is a number-typed cell without a payload.
func blank() Value { return Value{typ: TypeNumber} }

// Type returns the discriminant. Blank cells report TypeNumber.
func (v Value) Type() CellType { return v.typ }

// IsEmpty reports whether v carries no payload.
func (v Value) IsEmpty() bool { return !v.present }

// AsBool returns the boolean payload.
func (v Value) AsBool() bool { return v.present && v.typ == TypeBoolean && v.b }

// AsNumber returns the numeric payload, or 0 for other kinds.
func (v Value) AsNumber() float64 {
	if v.present && v.typ == TypeNumber {
		return v.n
	}
	return 0
}

// AsText returns the text payload, or "" for other kinds.
func (v Value) AsText() string {
	if v.present && v.typ == TypeSharedString {
		return v.s
	}
	return ""
}

// AsTime returns the timestamp payload, or the zero time for other kinds.
func (v Value) AsTime() time.Time {
	if v.present && v.typ == TypeDate {
		return v.t
	}
	return time.Time{}
}

// Interface returns the payload as bool, float64, string or time.Time, or
// nil when v is empty.
func (v Value) Interface() any {
	if !v.present {
		return nil
	}
	switch v.typ {
	case TypeBoolean:
		return v.b
	case TypeDate:
		return v.t
	case TypeNumber:
		return v.n
	case TypeSharedString:
		return v.s
	}
	return nil
}

// Equal reports whether two values have the same type and payload.
// Timestamps compare by instant.
func (v Value) Equal(o Value) bool {
	if v.present != o.present || v.typ != o.typ {
		return false
	}
	if !v.present {
		return true
	}
	switch v.typ {
	case TypeBoolean:
		return v.b == o.b
	case TypeDate:
		return v.t.Equal(o.t)
	case TypeNumber:
		return v.n == o.n
	default:
		return v.s == o.s
	}
}

// String renders the payload the way it is stored in a part; shared strings
// render as their text.
func (v Value) String() string {
	if !v.present {
		return ""
	}
	switch v.typ {
	case TypeBoolean:
		if v.b {
			return "1"
		}
		return "0"
	case TypeDate:
		return v.t.Format(time.RFC3339Nano)
	case TypeNumber:
		return FormatNumber(v.n)
	default:
		return v.s
	}
}

// FormatNumber renders n with 15 significant digits.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', 15, 64)
}

// Classify converts a Go scalar into a Value. Integers and floats become
// numbers, strings become text, time.Time becomes a date; a Value passes
// through. nil and empty Values fail with ErrEmptyValue, anything else with
// ErrUnsupportedValue.
func Classify(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Value{}, ErrEmptyValue.New()
	case Value:
		if x.IsEmpty() {
			return Value{}, ErrEmptyValue.New()
		}
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return Text(x), nil
	case time.Time:
		return Date(x), nil
	case int:
		return Number(float64(x)), nil
	case int8:
		return Number(float64(x)), nil
	case int16:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint8:
		return Number(float64(x)), nil
	case uint16:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case float32:
		return classifyFloat(float64(x))
	case float64:
		return classifyFloat(x)
	}
	return Value{}, ErrUnsupportedValue.New(v)
}

func classifyFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, ErrUnsupportedValue.New(f)
	}
	return Number(f), nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate accepts ISO-8601 timestamps with or without an offset, and plain dates.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseBool accepts "1" and, case-insensitively, "true".
func parseBool(s string) bool {
	s = strings.TrimSpace(s)
	return s == "1" || strings.EqualFold(s, "true")
}
