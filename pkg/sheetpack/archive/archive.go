// Package archive reads and writes the zip container that holds a
// workbook's parts.
package archive

import (
	"archive/zip"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	kinds "gopkg.in/src-d/go-errors.v1"
)

// ErrDuplicateEntry is returned when a part is written twice.
var ErrDuplicateEntry = kinds.NewKind("duplicate archive entry %q")

// Reader gives access to the parts of an opened package.
type Reader struct {
	files  map[string]*zip.File
	closer io.Closer
}

// Open opens the package at path. The caller must Close it.
func Open(path string) (*Reader, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening archive %s", path)
	}
	r := newReader(&rc.Reader)
	r.closer = rc
	return r, nil
}

// NewReader reads a package from r, which holds size bytes.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(err, "reading archive")
	}
	return newReader(zr), nil
}

func newReader(zr *zip.Reader) *Reader {
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[strings.TrimPrefix(f.Name, "/")] = f
	}
	return &Reader{files: files}
}

// lookup finds a part by name, falling back to a case-insensitive match
// since part names are not case sensitive.
func (r *Reader) lookup(name string) (*zip.File, bool) {
	name = strings.TrimPrefix(name, "/")
	if f, ok := r.files[name]; ok {
		return f, true
	}
	for n, f := range r.files {
		if strings.EqualFold(n, name) {
			return f, true
		}
	}
	return nil, false
}

// Has reports whether the package contains name.
func (r *Reader) Has(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// ReadFile returns the content of name. A missing part is not an error:
// found is false and data nil.
func (r *Reader) ReadFile(name string) (data []byte, found bool, err error) {
	f, ok := r.lookup(name)
	if !ok {
		return nil, false, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, true, errors.Wrapf(err, "opening %s", name)
	}
	defer rc.Close()

	data, err = io.ReadAll(rc)
	if err != nil {
		return nil, true, errors.Wrapf(err, "reading %s", name)
	}
	return data, true, nil
}

// Names returns every part name, sorted.
func (r *Reader) Names() []string {
	names := make([]string, 0, len(r.files))
	for n := range r.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Writer writes parts into a new package. Entries carry no timestamps so the
// same parts always produce the same bytes.
type Writer struct {
	zw      *zip.Writer
	written map[string]bool
	err     error
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{zw: zip.NewWriter(w), written: make(map[string]bool)}
}

// WriteFile adds a part. After the first failure every call returns that
// error.
func (w *Writer) WriteFile(name string, data []byte) error {
	if w.err != nil {
		return w.err
	}
	name = strings.TrimPrefix(name, "/")
	if w.written[name] {
		return ErrDuplicateEntry.New(name)
	}

	f, err := w.zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		w.err = errors.Wrapf(err, "creating %s", name)
		return w.err
	}
	if _, err := f.Write(data); err != nil {
		w.err = errors.Wrapf(err, "writing %s", name)
		return w.err
	}
	w.written[name] = true
	return nil
}

// Close finishes the package. It reports the first write error, if any,
// otherwise the error from finalising the zip directory.
func (w *Writer) Close() error {
	if err := w.zw.Close(); err != nil && w.err == nil {
		w.err = errors.Wrap(err, "finishing archive")
	}
	return w.err
}
