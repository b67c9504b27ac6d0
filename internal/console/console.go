// Package console drives line-oriented prompts over a reader and writer.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// New returns a Prompter reading lines from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Ask writes prompt and returns the next input line with surrounding space
// removed. It returns io.EOF once input is exhausted.
func (p *Prompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		fmt.Fprintln(p.out)
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Say writes a line.
func (p *Prompter) Say(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Sayf writes formatted text.
func (p *Prompter) Sayf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}
