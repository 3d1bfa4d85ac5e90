// Package lipgloss prints severity-coded messages to the terminal.
package lipgloss

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/docset"
	"github.com/mattn/go-isatty"
)

// Ensure Printer implements docset.Reporter at compile time.
var _ docset.Reporter = (*Printer)(nil)

const (
	colorGreen  = "2"
	colorYellow = "3"
	colorRed    = "1"
)

// Printer writes one line per message. Output is colored only when w is a
// terminal and NO_COLOR is unset.
type Printer struct {
	w       io.Writer
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{w: w}
	if !IsTTY(w) || noColor() {
		return p
	}
	r := lipgloss.NewRenderer(w)
	p.success = r.NewStyle().Foreground(lipgloss.Color(colorGreen))
	p.warning = r.NewStyle().Foreground(lipgloss.Color(colorYellow))
	p.failure = r.NewStyle().Foreground(lipgloss.Color(colorRed)).Bold(true)
	return p
}

// Success prints a completed step.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, p.success.Render(msg))
}

// Warning prints a problem that does not stop the build.
func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.w, p.warning.Render("**Warning**: "+msg))
}

// Error prints a problem that stopped the build.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, p.failure.Render("**Error**: "+msg))
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}
