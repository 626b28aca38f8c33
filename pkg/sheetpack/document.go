package sheetpack

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/archive"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/parts"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/rels"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/workbook"
)

// Document is one spreadsheet package held in memory. A Document is not safe
// for concurrent use.
type Document struct {
	path   string
	loaded bool
	opts   Options
	logger logrus.FieldLogger

	types    *parts.ContentTypes
	rootRels *rels.Graph
	app      *parts.AppProperties
	core     *parts.CoreProperties
	wb       *workbook.Workbook

	// props holds every property by name. Only the names docProps knows
	// reach app.xml or core.xml.
	props map[string]string
}

// New returns an empty document with no path. Options.Properties are applied
// to it.
func New(opts Options) *Document {
	opts = opts.resolved()
	d := &Document{opts: opts, logger: opts.Logger}
	d.reset()

	names := make([]string, 0, len(opts.Properties))
	for name := range opts.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d.SetProperty(name, opts.Properties[name])
	}
	return d
}

// reset replaces the in-memory model with an empty one.
func (d *Document) reset() {
	st := d.newState()
	d.apply(st)
	d.loaded = false
}

// state is the part model a load builds before it replaces the document's.
type state struct {
	types    *parts.ContentTypes
	rootRels *rels.Graph
	app      *parts.AppProperties
	core     *parts.CoreProperties
	wb       *workbook.Workbook
}

func (d *Document) newState() *state {
	wb := workbook.New(d.logger)
	wb.SetSheetFormat(d.opts.Format)
	wb.SetView(d.opts.Window)
	return &state{
		types:    parts.NewContentTypes(),
		rootRels: rels.New(d.logger.WithField("part", rels.RelsPath(""))),
		app:      parts.NewAppProperties(d.logger.WithField("part", parts.AppPropertiesPath)),
		core:     parts.NewCoreProperties(d.logger.WithField("part", parts.CorePropertiesPath)),
		wb:       wb,
	}
}

func (d *Document) apply(st *state) {
	d.types = st.types
	d.rootRels = st.rootRels
	d.app = st.app
	d.core = st.core
	d.wb = st.wb

	d.props = st.app.Properties()
	for k, v := range st.core.Properties() {
		d.props[k] = v
	}
}

// Open loads the package at path. A path that does not exist yields an empty
// document bound to it, so Save creates the file.
//
// Open always returns a usable document. When the package cannot be loaded
// the error says why and the document is empty, with Loaded false.
func Open(path string, opts Options) (*Document, error) {
	d := New(opts)
	d.path = path

	r, err := archive.Open(path)
	if err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			d.logger.WithField("path", path).Debug("no package at path; starting empty")
			return d, nil
		}
		return d, err
	}
	defer r.Close()

	return d, d.load(r)
}

// OpenReader loads a package from r, which holds size bytes. See Open for
// the failure contract.
func OpenReader(r io.ReaderAt, size int64, opts Options) (*Document, error) {
	d := New(opts)
	ar, err := archive.NewReader(r, size)
	if err != nil {
		return d, err
	}
	return d, d.load(ar)
}

// load replaces the model with the package in r, or leaves a fresh empty
// model when any required step fails.
func (d *Document) load(r *archive.Reader) error {
	st := d.newState()
	if err := d.loadParts(r, st); err != nil {
		d.logger.WithError(err).Error("load failed")
		d.reset()
		return err
	}
	d.apply(st)
	d.loaded = true
	return nil
}

// Loaded reports whether the document was read from an existing package.
func (d *Document) Loaded() bool { return d.loaded }

// Path returns the path the document saves to, if any.
func (d *Document) Path() string { return d.path }

// Workbook returns the document's workbook.
func (d *Document) Workbook() *workbook.Workbook { return d.wb }

// Property returns a document property.
func (d *Document) Property(name string) (string, bool) {
	v, ok := d.props[name]
	return v, ok
}

// SetProperty stores a property under any name. An empty value removes it.
//
// Core properties (title, creator, created...) and extended ones (Company,
// Manager, ScaleCrop...) are also written to the package on save; other
// names live only in memory. A boolean extended property whose value is not
// "true" or "false" is kept here but saved as its default.
func (d *Document) SetProperty(name, value string) {
	if value == "" {
		delete(d.props, name)
		d.core.Clear(name)
		d.app.Clear(name)
		return
	}
	d.props[name] = value

	var err error
	switch {
	case d.core.Has(name):
		err = d.core.Set(name, value)
	case d.app.Has(name):
		if err = d.app.Set(name, value); err != nil {
			d.app.Clear(name)
		}
	default:
		return
	}
	if err != nil {
		d.logger.WithError(err).Warn("property will be saved with its default value")
	}
}

// Properties returns a copy of every stored property.
func (d *Document) Properties() map[string]string {
	out := make(map[string]string, len(d.props))
	for k, v := range d.props {
		out[k] = v
	}
	return out
}

// Save writes the document back to its path.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath.New()
	}
	return d.SaveAs(d.path)
}

// SaveAs writes the document to path and makes path its own. A failed save
// may leave path partially written.
func (d *Document) SaveAs(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", path)
	}
	d.path = path
	return nil
}

// Write writes the package to w.
func (d *Document) Write(w io.Writer) error {
	aw := archive.NewWriter(w)
	if err := d.saveParts(aw); err != nil {
		aw.Close()
		return err
	}
	if err := aw.Close(); err != nil {
		return errors.Wrap(err, "writing package")
	}
	return nil
}

// Bytes returns the package as a byte slice.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
