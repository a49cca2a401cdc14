package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/nethoundsh/fd/pkg/fileinfo"
)

const timeFormat = "2006-01-02 15:04"

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...any) {
	if ew.err == nil {
		_, ew.err = fmt.Fprintf(ew.w, format, a...)
	}
}

func (ew *errWriter) println(a ...any) {
	if ew.err == nil {
		_, ew.err = fmt.Fprintln(ew.w, a...)
	}
}

// Printer writes one matched path per line.
type Printer struct {
	w       io.Writer
	colored bool
	long    bool
	styles  map[fileinfo.Kind]*color.Color
}

// NewPrinter returns a Printer. When colored is set, styles are forced
// on regardless of color.NoColor.
func NewPrinter(w io.Writer, colored, long bool) *Printer {
	p := &Printer{w: w, colored: colored, long: long}
	if colored {
		p.styles = map[fileinfo.Kind]*color.Color{
			fileinfo.KindSymlink: color.New(color.FgMagenta),
			fileinfo.KindDir:     color.New(color.FgCyan),
			fileinfo.KindFile:    color.New(color.FgWhite),
		}
		for _, c := range p.styles {
			c.EnableColor()
		}
	}
	return p
}

// Print writes path. meta is only used in long mode and may be nil.
func (p *Printer) Print(path string, kind fileinfo.Kind, meta *fileinfo.Meta) error {
	ew := &errWriter{w: p.w}
	if p.long && meta != nil {
		ew.printf("%s %8s %s ", meta.Permissions, meta.SizeHuman, meta.Modified.Local().Format(timeFormat))
	}
	if p.colored {
		ew.println(p.style(kind).Sprint(path))
	} else {
		ew.println(path)
	}
	return ew.err
}

func (p *Printer) style(kind fileinfo.Kind) *color.Color {
	if c, ok := p.styles[kind]; ok {
		return c
	}
	return p.styles[fileinfo.KindFile]
}
