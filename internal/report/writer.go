package report

import (
	"fmt"
	"io"
	"strings"
)

// sectionWriter accumulates the first write error so section renderers can
// stay free of per-line error plumbing.
type sectionWriter struct {
	out io.Writer
	err error
}

func (w *sectionWriter) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}

// rule writes a full-width horizontal rule of the given character.
func (w *sectionWriter) rule(ch rune) {
	w.printf("%s\n", strings.Repeat(string(ch), bannerWidth))
}

// section writes a section title followed by a dashed rule.
func (w *sectionWriter) section(title string) {
	w.printf("%s\n", title)
	w.rule('-')
}

// sectionf is section with a formatted title.
func (w *sectionWriter) sectionf(format string, args ...interface{}) {
	w.section(fmt.Sprintf(format, args...))
}
