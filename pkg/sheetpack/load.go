package sheetpack

import (
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/archive"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/internal/ooxml"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/parts"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/rels"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/sst"
)

// loadParts reads the package into st: registry, root relationships,
// document properties, workbook, styles, shared strings, then every sheet.
// Only the registry, the root relationships, the workbook and sheet markup
// are required; other parts degrade to their empty state with a warning.
func (d *Document) loadParts(r *archive.Reader, st *state) error {
	data, err := readRequired(r, parts.ContentTypesPath)
	if err != nil {
		return err
	}
	if err := st.types.Parse(data); err != nil {
		return newPartError(parts.ContentTypesPath, "parse", err)
	}

	rootRelsPath := rels.RelsPath("")
	if data, err = readRequired(r, rootRelsPath); err != nil {
		return err
	}
	if err := st.rootRels.Parse(data); err != nil {
		return newPartError(rootRelsPath, "parse", err)
	}

	d.loadOptional(r, st.rootRels, "", ooxml.RelCore, st.core.Parse)
	d.loadOptional(r, st.rootRels, "", ooxml.RelExtended, st.app.Parse)

	if err := d.loadWorkbook(r, st); err != nil {
		return err
	}
	return d.loadSheets(r, st)
}

func (d *Document) loadWorkbook(r *archive.Reader, st *state) error {
	docs := st.rootRels.LookupByType(ooxml.RelOfficeDocument)
	if len(docs) == 0 {
		return newPartError(rels.RelsPath(""), "read", ErrUnresolvedRelationship.New("officeDocument", rels.RelsPath("")))
	}
	wbPath := rels.ResolveTarget("", docs[0].Target)
	if ct, ok := st.types.Lookup(wbPath); !ok || ct != ooxml.ContentTypeWorkbook {
		d.logger.WithFields(logrus.Fields{"part": wbPath, "content_type": ct}).Warn("workbook part has an unexpected content type")
	}

	wb := st.wb
	wb.SetPartPath(wbPath)
	wbRelsPath := rels.RelsPath(wbPath)
	data, found, err := r.ReadFile(wbRelsPath)
	if err != nil {
		return newPartError(wbRelsPath, "read", err)
	}
	if found {
		if err := wb.Relationships().Parse(data); err != nil {
			return newPartError(wbRelsPath, "parse", err)
		}
	}

	if data, err = readRequired(r, wbPath); err != nil {
		return err
	}
	if err := wb.Parse(data); err != nil {
		return newPartError(wbPath, "parse", err)
	}

	wbDir, _ := rels.SplitPath(wbPath)
	d.loadOptional(r, wb.Relationships(), wbDir, ooxml.RelStyles, wb.Styles().Parse)

	table := wb.SharedStrings()
	sstRel := wb.Relationships().LookupByType(ooxml.RelSharedStrings)
	if len(sstRel) == 0 {
		return nil
	}
	sstPath := rels.ResolveTarget(wbDir, sstRel[0].Target)
	data, found, err = r.ReadFile(sstPath)
	if err != nil {
		return newPartError(sstPath, "read", err)
	}
	if !found {
		d.logger.WithField("part", sstPath).Warn("shared strings part is missing")
		return nil
	}
	if err := table.Parse(data); err != nil {
		if sst.ErrCountMismatch.Is(err) && !d.opts.ShouldStrictSharedStrings() {
			d.logger.WithError(err).WithField("part", sstPath).Warn("keeping shared strings despite count mismatch")
			return nil
		}
		return newPartError(sstPath, "parse", err)
	}
	return nil
}

func (d *Document) loadSheets(r *archive.Reader, st *state) error {
	for _, ws := range st.wb.Sheets() {
		log := d.logger.WithFields(logrus.Fields{"part": ws.Path(), "sheet": ws.Name()})

		relsPath := rels.RelsPath(ws.Path())
		data, found, err := r.ReadFile(relsPath)
		if err != nil {
			return newPartError(relsPath, "read", err)
		}
		if found {
			if err := ws.Relationships().Parse(data); err != nil {
				log.WithError(err).Warn("ignoring unreadable sheet relationships")
				ws.Relationships().Clear()
			}
		}

		data, found, err = r.ReadFile(ws.Path())
		if err != nil {
			return newPartError(ws.Path(), "read", err)
		}
		if !found {
			log.Warn("sheet part is missing; sheet left empty")
			continue
		}
		if err := ws.Parse(data); err != nil {
			return newPartError(ws.Path(), "parse", err)
		}
		log.WithField("cells", ws.Len()).Debug("sheet loaded")
	}
	return nil
}

// loadOptional resolves the first relationship of relType in g against
// baseDir and feeds the part to parse. Absent or unreadable parts are logged
// and skipped.
func (d *Document) loadOptional(r *archive.Reader, g *rels.Graph, baseDir, relType string, parse func([]byte) error) {
	targets := g.LookupByType(relType)
	if len(targets) == 0 {
		return
	}
	partPath := rels.ResolveTarget(baseDir, targets[0].Target)
	log := d.logger.WithField("part", partPath)

	data, found, err := r.ReadFile(partPath)
	switch {
	case err != nil:
		log.WithError(err).Warn("cannot read optional part")
	case !found:
		log.Warn("optional part is missing")
	default:
		if err := parse(data); err != nil {
			log.WithError(err).Warn("ignoring unreadable optional part")
		}
	}
}

func readRequired(r *archive.Reader, partPath string) ([]byte, error) {
	data, found, err := r.ReadFile(partPath)
	if err != nil {
		return nil, newPartError(partPath, "read", err)
	}
	if !found {
		return nil, newPartError(partPath, "read", ErrMissingPart.New(partPath))
	}
	return data, nil
}
