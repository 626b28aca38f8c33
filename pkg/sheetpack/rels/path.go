package rels

import (
	"path"
	"strings"
)

// SplitPath splits a part path into its directory and base name. A part at
// the package root has an empty directory.
func SplitPath(partPath string) (dir, base string) {
	partPath = strings.TrimPrefix(partPath, "/")
	idx := strings.LastIndex(partPath, "/")
	if idx < 0 {
		return "", partPath
	}
	return partPath[:idx], partPath[idx+1:]
}

// RelsPath returns the relationship part for partPath:
// "xl/workbook.xml" -> "xl/_rels/workbook.xml.rels", "" -> "_rels/.rels".
func RelsPath(partPath string) string {
	dir, base := SplitPath(partPath)
	if dir == "" {
		return "_rels/" + base + ".rels"
	}
	return dir + "/_rels/" + base + ".rels"
}

// ResolveTarget resolves a relationship target against the directory of the
// part that owns the relationship. Absolute targets ("/xl/styles.xml") are
// package-rooted; relative ones may climb with "../".
func ResolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	resolved := path.Clean(path.Join(baseDir, target))
	// Climbing above the package root stays at the root.
	for strings.HasPrefix(resolved, "../") {
		resolved = strings.TrimPrefix(resolved, "../")
	}
	return resolved
}

// RelativeTarget is the inverse of ResolveTarget for targets that sit under
// baseDir: "xl", "xl/worksheets/sheet1.xml" -> "worksheets/sheet1.xml".
// Other targets are returned package-rooted with a leading "/".
func RelativeTarget(baseDir, partPath string) string {
	if baseDir == "" {
		return partPath
	}
	if strings.HasPrefix(partPath, baseDir+"/") {
		return strings.TrimPrefix(partPath, baseDir+"/")
	}
	return "/" + partPath
}
