package worksheet

import "github.com/ukaji3/sheetpack-go/pkg/sheetpack/internal/ooxml"

// Kind is the kind of a sheet. Only KindWorksheet is implemented; the others
// are recognised on load so they can be skipped.
type Kind int

const (
	KindWorksheet Kind = iota
	KindChartsheet
	KindDialogsheet
	KindMacrosheet
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindWorksheet:
		return "worksheet"
	case KindChartsheet:
		return "chartsheet"
	case KindDialogsheet:
		return "dialogsheet"
	case KindMacrosheet:
		return "macrosheet"
	default:
		return "unknown"
	}
}

// Supported reports whether sheets of kind k can be created and loaded.
func (k Kind) Supported() bool { return k == KindWorksheet }

// KindOf maps a workbook relationship type to a sheet kind.
func KindOf(relType string) Kind {
	switch relType {
	case ooxml.RelWorksheet:
		return KindWorksheet
	case ooxml.NSRelationships + "/chartsheet":
		return KindChartsheet
	case ooxml.NSRelationships + "/dialogsheet":
		return KindDialogsheet
	case "http://schemas.microsoft.com/office/2006/relationships/xlMacrosheet",
		"http://schemas.microsoft.com/office/2006/relationships/xlIntlMacrosheet":
		return KindMacrosheet
	}
	return KindUnknown
}
