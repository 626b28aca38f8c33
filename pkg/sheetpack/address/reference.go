package address

import "strings"

// Reference is one sheet-qualified range, e.g. 'Sheet 1'!$A$1:$D$10.
type Reference struct {
	Sheet string
	Range Dimension
}

// ParseReference parses a defined-name style reference list.
// Format: 'Sheet Name'!$A$1:$D$10,Other!B2
// Parts that carry no sheet qualifier or no valid range are skipped.
func ParseReference(text string) []Reference {
	var refs []Reference

	for _, part := range splitTopLevel(text) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}

		sheet := part[:idx]
		if len(sheet) >= 2 && strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}

		rng := ParseRange(part[idx+1:])
		if sheet == "" || !rng.Valid() {
			continue
		}
		refs = append(refs, Reference{Sheet: sheet, Range: rng})
	}

	return refs
}

// QuoteSheetName wraps name in apostrophes when it contains anything other
// than letters, digits, underscores or dots, doubling embedded apostrophes.
func QuoteSheetName(name string) string {
	plain := name != ""
	for _, r := range name {
		if !(r == '_' || r == '.' || r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z') {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// String renders r with absolute row and column markers.
func (r Reference) String() string {
	return QuoteSheetName(r.Sheet) + "!" + ComposeRange(r.Range, true, true)
}

// splitTopLevel splits on commas that are not inside a quoted sheet name.
func splitTopLevel(text string) []string {
	var parts []string
	quoted := false
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\'':
			quoted = !quoted
		case ',':
			if !quoted {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, text[start:])
}
