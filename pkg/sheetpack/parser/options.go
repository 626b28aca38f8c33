// Package parser reads a spreadsheet package with excelize, independently
// of the sheetpack codecs, into the models snapshot.
package parser

import "github.com/sirupsen/logrus"

// Options configures extraction behavior.
type Options struct {
	// IncludeLinks specifies whether to include cell hyperlinks.
	// If nil, defaults to true.
	IncludeLinks *bool
	// IncludeProperties specifies whether to include document properties.
	// If nil, defaults to true.
	IncludeProperties *bool
	// Logger receives per-sheet extraction failures. If nil, the standard
	// logrus logger is used.
	Logger logrus.FieldLogger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldIncludeLinks returns whether to include cell hyperlinks.
func (o Options) ShouldIncludeLinks() bool {
	if o.IncludeLinks != nil {
		return *o.IncludeLinks
	}
	return true
}

// ShouldIncludeProperties returns whether to include document properties.
func (o Options) ShouldIncludeProperties() bool {
	if o.IncludeProperties != nil {
		return *o.IncludeProperties
	}
	return true
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}
