// Package output provides environment-aware rendering for CLI commands.
// Terminals get styled text, pipes get markdown, and --format json gets
// machine-readable output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in the effective mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer for the given writers and mode.
// ModeAuto resolves to text when out is a terminal, markdown otherwise.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	r := &Renderer{out: out, errOut: errOut, mode: mode}
	switch r.EffectiveMode() {
	case ModeText:
		r.styles = DefaultStyles()
	default:
		r.styles = plainStyles()
	}
	return r
}

// EffectiveMode resolves ModeAuto via TTY detection.
func (r *Renderer) EffectiveMode() Mode {
	switch r.mode {
	case ModeText, ModeMarkdown, ModeJSON:
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ModeText
	}
	return ModeMarkdown
}

// Styles returns the active style set.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the error writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Println writes a line to the output writer.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to the output writer.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Success writes a success message.
func (r *Renderer) Success(s string) {
	r.Println(r.styles.Success.Render("✓ " + s))
}

// Warn writes a warning message to the error writer.
func (r *Renderer) Warn(s string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render(s))
}

// JSON encodes v to the output writer with indentation.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
