// Package output renders user-facing messages, as opposed to the
// diagnostic log handled by pkg/logging.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles for the different message kinds
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Writer emits styled messages to a pair of streams
type Writer struct {
	out io.Writer
	err io.Writer
}

// New creates a Writer over stdout/stderr with color support detected
// from the environment (NO_COLOR, TERM, ...)
func New() *Writer {
	if termenv.EnvColorProfile() == termenv.Ascii {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return &Writer{out: os.Stdout, err: os.Stderr}
}

// NewTo creates a Writer over explicit streams, for tests
func NewTo(out, err io.Writer) *Writer {
	return &Writer{out: out, err: err}
}

// Title prints a section heading
func (w *Writer) Title(format string, args ...interface{}) {
	fmt.Fprintln(w.out, titleStyle.Render(fmt.Sprintf(format, args...)))
}

// Info prints an informational message
func (w *Writer) Info(format string, args ...interface{}) {
	fmt.Fprintln(w.out, infoStyle.Render(fmt.Sprintf(format, args...)))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	fmt.Fprintln(w.out, successStyle.Render(fmt.Sprintf(format, args...)))
}

// Warning prints a warning to stderr
func (w *Writer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(w.err, warningStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error to stderr
func (w *Writer) Error(format string, args ...interface{}) {
	fmt.Fprintln(w.err, errorStyle.Render(fmt.Sprintf(format, args...)))
}

// Muted prints low-emphasis detail text
func (w *Writer) Muted(format string, args ...interface{}) {
	fmt.Fprintln(w.out, mutedStyle.Render(fmt.Sprintf(format, args...)))
}
