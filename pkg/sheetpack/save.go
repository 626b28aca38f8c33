package sheetpack

import (
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/archive"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/internal/ooxml"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/parts"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/rels"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/sst"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/workbook"
)

// saveParts composes every part into w. Sheets go first so their paths and
// relationships are settled before the workbook links them; the registry
// goes last so it sees every override.
func (d *Document) saveParts(w *archive.Writer) error {
	d.types.ClearOverrides()

	wb := d.wb
	wb.CurrentSheet()
	wb.AssignPaths()
	for _, ws := range wb.Sheets() {
		data, err := ws.Compose()
		if err != nil {
			return newPartError(ws.Path(), "compose", err)
		}
		if err := d.put(w, ws.Path(), data); err != nil {
			return err
		}
		d.types.AddWorksheet(ws.Path())
		if err := d.putRels(w, ws.Path(), ws.Relationships()); err != nil {
			return err
		}
	}

	data, err := wb.Compose()
	if err != nil {
		return newPartError(workbook.Path, "compose", err)
	}
	if err := d.put(w, workbook.Path, data); err != nil {
		return err
	}
	d.types.AddWorkbook(workbook.Path)
	if err := d.putRels(w, workbook.Path, wb.Relationships()); err != nil {
		return err
	}

	if data, err = d.app.Compose(wb.SheetNames()); err != nil {
		return newPartError(parts.AppPropertiesPath, "compose", err)
	}
	if err := d.put(w, parts.AppPropertiesPath, data); err != nil {
		return err
	}
	d.types.AddAppProperties(parts.AppPropertiesPath)

	if data, err = d.core.Compose(d.opts.Clock()); err != nil {
		return newPartError(parts.CorePropertiesPath, "compose", err)
	}
	if err := d.put(w, parts.CorePropertiesPath, data); err != nil {
		return err
	}
	d.types.AddCoreProperties(parts.CorePropertiesPath)

	if table := wb.SharedStrings(); !table.IsEmpty() {
		if data, err = table.Compose(); err != nil {
			return newPartError(sst.Path, "compose", err)
		}
		if err := d.put(w, sst.Path, data); err != nil {
			return err
		}
		d.types.AddSharedStrings(sst.Path)
	}

	if data, err = wb.Styles().Compose(); err != nil {
		return newPartError(parts.StylesPath, "compose", err)
	}
	if err := d.put(w, parts.StylesPath, data); err != nil {
		return err
	}
	d.types.AddStyles(parts.StylesPath)

	d.rootRels.Clear()
	d.rootRels.Add(ooxml.RelOfficeDocument, workbook.Path, "")
	d.rootRels.Add(ooxml.RelCore, parts.CorePropertiesPath, "")
	d.rootRels.Add(ooxml.RelExtended, parts.AppPropertiesPath, "")
	if err := d.putRels(w, "", d.rootRels); err != nil {
		return err
	}

	if data, err = d.types.Compose(); err != nil {
		return newPartError(parts.ContentTypesPath, "compose", err)
	}
	if err := d.put(w, parts.ContentTypesPath, data); err != nil {
		return err
	}

	d.logger.WithFields(logrus.Fields{
		"sheets":  wb.SheetCount(),
		"strings": wb.SharedStrings().UniqueCount(),
	}).Debug("package composed")
	return nil
}

func (d *Document) put(w *archive.Writer, partPath string, data []byte) error {
	if err := w.WriteFile(partPath, data); err != nil {
		return newPartError(partPath, "write", err)
	}
	return nil
}

// putRels writes the relationship part of owner, skipping empty graphs
// except for the package root.
func (d *Document) putRels(w *archive.Writer, owner string, g *rels.Graph) error {
	if g.IsEmpty() && owner != "" {
		return nil
	}
	relsPath := rels.RelsPath(owner)
	data, err := g.Compose()
	if err != nil {
		return newPartError(relsPath, "compose", err)
	}
	return d.put(w, relsPath, data)
}
