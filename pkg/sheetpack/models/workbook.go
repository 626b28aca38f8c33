package models

// WorkbookData represents workbook-level container with per-sheet data.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// ActiveSheet is the name of the sheet shown on open.
	ActiveSheet string `json:"active_sheet,omitempty"`
	// Sheets lists the sheets in tab order.
	Sheets []SheetData `json:"sheets"`
	// DefinedNames lists the workbook's defined names.
	DefinedNames []DefinedName `json:"defined_names,omitempty"`
	// Properties holds the document properties that are set.
	Properties map[string]string `json:"properties,omitempty"`
}

// Sheet returns the sheet called name.
func (w *WorkbookData) Sheet(name string) (SheetData, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return SheetData{}, false
}
