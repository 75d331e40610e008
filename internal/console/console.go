// Package console does the line-oriented terminal I/O of the client:
// prompts, yes/no confirmation, and styled status lines.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aanand-mishra/mahasiswa/internal/validate"
)

// Console reads answers from in and writes prompts and output to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	header  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// New creates a Console. Styles are resolved against out, so they degrade
// to plain text when out is not a terminal.
func New(in io.Reader, out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)

	return &Console{
		in:      bufio.NewReader(in),
		out:     out,
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		success: r.NewStyle().Foreground(lipgloss.Color("10")),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")),
		muted:   r.NewStyle().Faint(true),
	}
}

// Prompt writes label and reads one line. Only the line terminator is
// removed: "" (Enter) and "   " stay distinguishable. At end of input
// Prompt returns io.EOF.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			// Last line without a trailing newline.
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

// Confirm asks a yes/no question. Only an affirmative answer returns true.
func (c *Console) Confirm(question string) (bool, error) {
	answer, err := c.Prompt(question + " (y/n): ")
	if err != nil {
		return false, err
	}
	return validate.IsAffirmative(answer), nil
}

// Wait writes label and blocks until a line (or end of input) is read.
func (c *Console) Wait(label string) error {
	_, err := c.Prompt(c.muted.Render(label))
	return err
}

// Println writes a plain line.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes formatted plain text.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Header writes a section title.
func (c *Console) Header(title string) {
	fmt.Fprintln(c.out, c.header.Render(title))
}

// Success writes a line in the success style.
func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, c.success.Render(msg))
}

// Failure writes a line in the failure style.
func (c *Console) Failure(msg string) {
	fmt.Fprintln(c.out, c.failure.Render(msg))
}

// Muted writes a line in the muted style.
func (c *Console) Muted(msg string) {
	fmt.Fprintln(c.out, c.muted.Render(msg))
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
