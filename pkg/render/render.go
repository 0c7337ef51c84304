// Package render draws the aggregated line counts as a radar chart and
// prints them as tables or structured documents.
package render

import (
	"errors"
	"io"
)

// ErrNothingToRender is returned when there are no entries with lines.
var ErrNothingToRender = errors.New("nothing to render")

// Chart size defaults.
const (
	DefaultWidth  = 640
	DefaultHeight = 640

	// ringCount is the number of concentric scale rings.
	ringCount = 4
)

// ChartOptions configures the radar renderers.
type ChartOptions struct {
	Title    string
	Subtitle string
	Width    int
	Height   int
	Theme    Theme
}

func (o ChartOptions) withDefaults() ChartOptions {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}

	if o.Height <= 0 {
		o.Height = DefaultHeight
	}

	if o.Title == "" {
		o.Title = "Lines by language"
	}

	if o.Theme == "" {
		o.Theme = ThemeLight
	}

	return o
}

// errWriter remembers the first write error so drawing code can stay linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}

	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}

	return n, err
}
