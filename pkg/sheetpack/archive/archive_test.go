package archive

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteFile("[Content_Types].xml", []byte("<Types/>")))
	require.NoError(t, w.WriteFile("/xl/workbook.xml", []byte("<workbook/>")))
	assert.True(t, ErrDuplicateEntry.Is(w.WriteFile("xl/workbook.xml", nil)))
	require.NoError(t, w.Close())

	r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"[Content_Types].xml", "xl/workbook.xml"}, r.Names())
	assert.True(t, r.Has("/xl/workbook.xml"))
	assert.True(t, r.Has("XL/Workbook.xml"))

	data, found, err := r.ReadFile("xl/workbook.xml")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "<workbook/>", string(data))

	data, found, err = r.ReadFile("xl/missing.xml")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data)
}

func TestWriterDeterministic(t *testing.T) {
	write := func() []byte {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		require.NoError(t, w.WriteFile("a.xml", []byte("<a/>")))
		require.NoError(t, w.WriteFile("b.xml", []byte("<b/>")))
		require.NoError(t, w.Close())
		return buf.Bytes()
	}
	assert.Equal(t, write(), write())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterReportsFailure(t *testing.T) {
	w := NewWriter(failingWriter{})
	_ = w.WriteFile("a.xml", bytes.Repeat([]byte("x"), 1<<16))
	assert.Error(t, w.Close())
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := NewWriter(f)
	require.NoError(t, w.WriteFile("xl/workbook.xml", []byte("<workbook/>")))
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	r, err := Open(path)
	require.NoError(t, err)
	assert.True(t, r.Has("xl/workbook.xml"))
	require.NoError(t, r.Close())

	_, err = Open(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)

	_, err = NewReader(bytes.NewReader([]byte("not a zip")), 9)
	assert.Error(t, err)
}
