package parser

import (
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/models"
	"github.com/xuri/excelize/v2"
)

// Extract extracts structured data from a spreadsheet file.
func Extract(path string, opts Options) (*models.WorkbookData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	return ExtractFile(f, filepath.Base(path), opts)
}

// ExtractReader extracts structured data from a package read from r.
func ExtractReader(r io.Reader, bookName string, opts Options) (*models.WorkbookData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", bookName)
	}
	defer f.Close()

	return ExtractFile(f, bookName, opts)
}

// ExtractFile snapshots an open workbook. A sheet whose cells cannot be read
// is logged and left empty.
func ExtractFile(f *excelize.File, bookName string, opts Options) (*models.WorkbookData, error) {
	log := opts.logger().WithField("book", bookName)
	data := &models.WorkbookData{BookName: bookName}

	sheetList := f.GetSheetList()
	if active := f.GetActiveSheetIndex(); active >= 0 && active < len(sheetList) {
		data.ActiveSheet = sheetList[active]
	}

	for _, sheetName := range sheetList {
		sheet := models.SheetData{Name: sheetName}
		if dim, err := f.GetSheetDimension(sheetName); err == nil {
			sheet.Dimension = dim
		}

		rows, err := ExtractCells(f, sheetName, opts.ShouldIncludeLinks())
		if err != nil {
			log.WithFields(logrus.Fields{"sheet": sheetName}).WithError(err).Warn("cannot extract cells")
			rows = nil
		}
		sheet.Rows = rows
		data.Sheets = append(data.Sheets, sheet)
	}

	data.DefinedNames = ExtractDefinedNames(f)

	if opts.ShouldIncludeProperties() {
		props, err := ExtractProperties(f)
		if err != nil {
			return nil, errors.Wrap(err, "document properties")
		}
		data.Properties = props
	}

	return data, nil
}
