package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter owns all terminal input. Secrets are read without echo when
// the input really is a terminal; scripted input falls back to plain
// line reads so the app stays drivable from tests and pipes.
type prompter struct {
	raw     io.Reader
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		raw:     in,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (p *prompter) readLine(label string) string {
	if label != "" {
		fmt.Fprint(p.out, label)
	}
	if !p.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(p.scanner.Text())
}

func (p *prompter) readSecret(label string) string {
	if f, ok := p.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(p.out, label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err == nil {
			return strings.TrimSpace(string(b))
		}
	}
	return p.readLine(label)
}

// confirm is the synchronous yes/no prompt gating destructive
// operations. Only an explicit "y" or "yes" confirms.
func (p *prompter) confirm(message string) bool {
	answer := strings.ToLower(p.readLine(message + " [y/N]: "))
	return answer == "y" || answer == "yes"
}
