package models

// SheetData represents the content of a single sheet.
type SheetData struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Dimension is the used range, e.g. "A1:C3" (empty for a blank sheet).
	Dimension string `json:"dimension,omitempty"`
	// Rows contains non-empty rows in ascending order.
	Rows []CellRow `json:"rows,omitempty"`
}
