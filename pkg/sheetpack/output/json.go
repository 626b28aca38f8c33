// Package output serializes workbook snapshots to JSON.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
)

// ToJSON serializes v. Map keys are sorted, so equal snapshots give equal
// bytes.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WorkbookToJSON serializes a workbook snapshot.
func WorkbookToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return ToJSON(wb, pretty)
}

// SheetToJSON serializes one sheet.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return ToJSON(sheet, pretty)
}

// PrintAreaViewToJSON serializes one print area view.
func PrintAreaViewToJSON(view *models.PrintAreaView, pretty bool) ([]byte, error) {
	return ToJSON(view, pretty)
}

// WriteSheetFiles writes one <sheet>.json file per sheet into dir.
func WriteSheetFiles(wb *models.WorkbookData, dir string, pretty bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create %s", dir)
	}

	var written []string
	for i := range wb.Sheets {
		data, err := SheetToJSON(&wb.Sheets[i], pretty)
		if err != nil {
			return written, err
		}
		filename := filepath.Join(dir, FileName(wb.Sheets[i].Name)+".json")
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return written, errors.Wrapf(err, "write %s", filename)
		}
		written = append(written, filename)
	}
	return written, nil
}

// WritePrintAreaFiles writes one <sheet>_area<n>.json file per print area
// into dir.
func WritePrintAreaFiles(wb *models.WorkbookData, dir string, pretty bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create %s", dir)
	}

	var written []string
	counts := make(map[string]int)
	for _, view := range wb.PrintAreaViews() {
		counts[view.SheetName]++
		data, err := PrintAreaViewToJSON(&view, pretty)
		if err != nil {
			return written, err
		}
		filename := filepath.Join(dir, fmt.Sprintf("%s_area%d.json", FileName(view.SheetName), counts[view.SheetName]))
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return written, errors.Wrapf(err, "write %s", filename)
		}
		written = append(written, filename)
	}
	return written, nil
}

// FileName makes a sheet name safe to use as a file name.
func FileName(sheet string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, sheet)
}
