// Package sheetpack reads and writes spreadsheet packages (.xlsx): a
// workbook of sheets holding booleans, numbers, text and timestamps.
package sheetpack

import (
	"time"

	"github.com/creasty/defaults"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/workbook"
	"github.com/ukaji3/sheetpack-go/pkg/sheetpack/worksheet"
)

// Options configures a Document. The zero value is ready to use. A zero
// Format field takes the default from its struct tag, and a zero Window is
// replaced by workbook.DefaultView. A Window with any field set is used as
// given, so its offsets may be 0.
type Options struct {
	// Logger receives soft anomalies (Warn) and rejected writes (Debug).
	// If nil, the standard logrus logger is used.
	Logger logrus.FieldLogger `yaml:"-" json:"-"`
	// Clock stamps the modified property on save. If nil, time.Now is used.
	Clock func() time.Time `yaml:"-" json:"-"`
	// Properties are set on new documents; see Document.SetProperty.
	Properties map[string]string `yaml:"properties" json:"properties,omitempty"`
	// Format applies to sheets created by the document.
	Format worksheet.FormatProperties `yaml:"format" json:"format"`
	// Window is the book-view geometry of new documents.
	Window workbook.BookView `yaml:"window" json:"window"`
	// StrictSharedStrings makes a shared-string count mismatch fail the load.
	// If nil, defaults to true.
	StrictSharedStrings *bool `yaml:"strict_shared_strings" json:"strict_shared_strings,omitempty"`
}

// DefaultOptions returns Options with every default applied.
func DefaultOptions() Options {
	var o Options
	_ = defaults.Set(&o)
	return o
}

// ShouldStrictSharedStrings returns whether a shared-string count mismatch
// fails the load.
func (o Options) ShouldStrictSharedStrings() bool {
	if o.StrictSharedStrings != nil {
		return *o.StrictSharedStrings
	}
	return true
}

// resolved fills in the defaults of o.
func (o Options) resolved() Options {
	_ = defaults.Set(&o.Format)
	if o.Window == (workbook.BookView{}) {
		o.Window = workbook.DefaultView()
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}
