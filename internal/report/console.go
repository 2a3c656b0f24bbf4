package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Console writes operator-facing lines: "i" for progress, "WARNING:" for
// things needing attention, "ERROR:" for failures and "?" for questions.
type Console struct {
	w        io.Writer
	info     lipgloss.Style
	warning  lipgloss.Style
	failure  lipgloss.Style
	question lipgloss.Style
}

// NewConsole creates a Console writing to w. Colour is only emitted when
// useColour is set and w is a terminal that supports it.
func NewConsole(w io.Writer, useColour bool) *Console {
	r := lipgloss.NewRenderer(w)
	c := &Console{
		w:        w,
		info:     r.NewStyle(),
		warning:  r.NewStyle(),
		failure:  r.NewStyle(),
		question: r.NewStyle(),
	}
	if useColour {
		c.info = c.info.Foreground(lipgloss.Color("2"))
		c.warning = c.warning.Foreground(lipgloss.Color("3"))
		c.failure = c.failure.Foreground(lipgloss.Color("1"))
		c.question = c.question.Foreground(lipgloss.Color("3"))
	}
	return c
}

// Writer returns the underlying writer.
func (c *Console) Writer() io.Writer { return c.w }

func (c *Console) Info(a ...any) {
	c.line(c.info.Render("i"), a)
}

func (c *Console) Warn(a ...any) {
	c.line(c.warning.Render("WARNING:"), a)
}

func (c *Console) Error(a ...any) {
	c.line(c.failure.Render("ERROR:"), a)
}

// Ask prints a question without a trailing newline so the answer is typed on the same line.
func (c *Console) Ask(question string) {
	fmt.Fprint(c.w, c.question.Render("?")+" "+question+" ")
}

// Println writes a line verbatim, for command output such as diff summaries.
func (c *Console) Println(s string) {
	fmt.Fprintln(c.w, s)
}

func (c *Console) line(marker string, a []any) {
	fmt.Fprintln(c.w, append([]any{marker}, a...)...)
}
