package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	colorSuccess = lipgloss.Color("34")  // Green
	colorWarning = lipgloss.Color("214") // Orange
	colorError   = lipgloss.Color("196") // Red
	colorMuted   = lipgloss.Color("240") // Dark gray

	okStyle      = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	skipStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	changedStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// Status labels, padded to a common width.
const (
	labelOK      = "OK  "
	labelSkip    = "SKIP"
	labelChanged = "FMT "
	labelError   = "ERR "
)

// colorEnabled reports whether w is a terminal that accepts colour.
// NO_COLOR disables colour regardless of the terminal.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// painter renders styled text, or plain text when colour is disabled.
type painter struct {
	color bool
}

func newPainter(w io.Writer) painter {
	return painter{color: colorEnabled(w)}
}

func (p painter) paint(style lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return style.Render(text)
}
