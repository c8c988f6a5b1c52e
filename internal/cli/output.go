package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// colorEnabled resolves the --color flag for w.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid --color %q, must be one of: auto, always, never", mode)
	}
}

// printer writes match listings.
type printer struct {
	w    io.Writer
	span *color.Color
	text *color.Color
	dim  *color.Color
}

func newPrinter(w io.Writer, enabled bool) *printer {
	p := &printer{
		w:    w,
		span: color.New(color.FgCyan),
		text: color.New(color.FgGreen, color.Bold),
		dim:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.span, p.text, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// match prints one match line: span, then the quoted text.
func (p *printer) match(start, end int, text []byte) {
	span := p.span.Sprintf("[%d,%d)", start, end)
	quoted := p.text.Sprintf("%q", text)
	_, _ = fmt.Fprintf(p.w, "%s\t%s\n", span, quoted)
}

// summary prints the match count.
func (p *printer) summary(n int) {
	noun := "matches"
	if n == 1 {
		noun = "match"
	}
	_, _ = fmt.Fprintln(p.w, p.dim.Sprintf("%d %s", n, noun))
}
