package models

// Area represents cell coordinate bounds on one sheet.
type Area struct {
	// Sheet is the sheet the area lies on.
	Sheet string `json:"sheet"`
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// DefinedName represents a named formula of the workbook.
type DefinedName struct {
	// Name is the defined name, e.g. "_xlnm.Print_Area".
	Name string `json:"name"`
	// Scope is the sheet the name is local to, or empty for the workbook.
	Scope string `json:"scope,omitempty"`
	// RefersTo is the formula text.
	RefersTo string `json:"refers_to"`
	// Areas are the sheet ranges RefersTo names, when it is a reference.
	Areas []Area `json:"areas,omitempty"`
}
