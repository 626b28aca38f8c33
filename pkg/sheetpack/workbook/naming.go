package workbook

import (
	"strconv"
	"strings"
)

// MaxSheetNameLength is the longest sheet name, in characters.
const MaxSheetNameLength = 31

const invalidSheetNameChars = `/\?*][:`

// GenerateSheetName turns proposal into a valid sheet name that does not
// collide with any of existing.
//
// Names are compared case-insensitively, as Excel does, so "sheet 1" next to
// "Sheet 1" becomes "sheet 1 (1)" rather than being accepted as is.
//
// An empty proposal becomes "Sheet {n}", advancing *counter until the name
// is free. Otherwise a name wrapped in apostrophes is unescaped, each of
// / \ ? * ] [ : becomes a space, a leading or trailing apostrophe becomes a
// space, the result is cut to 31 characters, and on collision " (n)" is
// appended with the base shortened so the whole still fits.
func GenerateSheetName(existing []string, proposal string, counter *int) string {
	taken := func(name string) bool {
		for _, e := range existing {
			if strings.EqualFold(e, name) {
				return true
			}
		}
		return false
	}

	if proposal == "" {
		for {
			*counter++
			name := "Sheet " + strconv.Itoa(*counter)
			if !taken(name) {
				return name
			}
		}
	}

	name := proposal
	if len(name) >= 3 && strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") {
		name = strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}

	runes := []rune(name)
	for i, r := range runes {
		if strings.ContainsRune(invalidSheetNameChars, r) {
			runes[i] = ' '
		}
	}
	runes = trimApostrophes(runes)
	if len(runes) > MaxSheetNameLength {
		runes = trimApostrophes(runes[:MaxSheetNameLength])
	}
	if len(runes) == 0 {
		runes = []rune{' '}
	}

	base := string(runes)
	unique := base
	for n := 1; taken(unique); n++ {
		suffix := " (" + strconv.Itoa(n) + ")"
		keep := min(len(runes), MaxSheetNameLength-len([]rune(suffix)))
		unique = string(trimApostrophes(runes[:keep])) + suffix
	}
	return unique
}

// trimApostrophes replaces a leading and a trailing apostrophe with a space.
func trimApostrophes(runes []rune) []rune {
	if len(runes) == 0 {
		return runes
	}
	if runes[0] == '\'' {
		runes[0] = ' '
	}
	if runes[len(runes)-1] == '\'' {
		runes[len(runes)-1] = ' '
	}
	return runes
}
