package log

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Console prints the human-facing status lines of the CLI
type Console struct {
	out io.Writer
}

// Stdout is the console used by the commands
var Stdout = NewConsole(os.Stdout)

// NewConsole returns a console writing to w
func NewConsole(w io.Writer) *Console {
	return &Console{out: w}
}

func (c *Console) Success(format string, args ...any) {
	c.print(successStyle, "✓ ", format, args...)
}

func (c *Console) Warn(format string, args ...any) {
	c.print(warnStyle, "! ", format, args...)
}

func (c *Console) Fail(format string, args ...any) {
	c.print(failStyle, "✗ ", format, args...)
}

func (c *Console) Muted(format string, args ...any) {
	c.print(mutedStyle, "  ", format, args...)
}

func (c *Console) print(style lipgloss.Style, prefix, format string, args ...any) {
	fmt.Fprintln(c.out, style.Render(prefix+fmt.Sprintf(format, args...)))
}
