// Package console implements the interactive terminal surface of the client.
package console

import (
	"bufio"
	"fmt"
	"io"
)

// Console reads line-oriented input and writes styled status output. It
// blocks on reads; the session is single-threaded by design.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Banner prints the session welcome message
func (c *Console) Banner(modelID string, responseFile string) {
	fmt.Fprintf(c.out, "\n%s\n", bannerStyle.Render(fmt.Sprintf("Welcome to [%s] Chat Client!", modelID)))
	fmt.Fprintf(c.out, "%s\n", hintStyle.Render(fmt.Sprintf("    1. Check [%s] for [%s]'s response.", responseFile, modelID)))
	fmt.Fprintf(c.out, "%s\n\n", hintStyle.Render("    2. Type 'exit' to end the chat."))
}

// Ask prints a question and reads one line of input
func (c *Console) Ask(question string) (string, error) {
	fmt.Fprint(c.out, questionStyle.Render(question))
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

// Say prints a status line
func (c *Console) Say(format string, args ...any) {
	fmt.Fprintf(c.out, "%s\n", statusStyle.Render(fmt.Sprintf(format, args...)))
}
