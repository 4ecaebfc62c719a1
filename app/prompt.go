package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrPasswordMismatch is returned when the repeated password differs.
var ErrPasswordMismatch = errors.New("passwords do not match")

// prompter reads answers from the command input. Secrets are read without
// echo when the input is a terminal.
type prompter struct {
	cmd    *cobra.Command
	reader *bufio.Reader
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{cmd: cmd, reader: bufio.NewReader(cmd.InOrStdin())}
}

func (p *prompter) line(label string) (string, error) {
	_, _ = fmt.Fprint(p.cmd.ErrOrStderr(), label+": ")

	s, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrap(err, "failed to read input")
	}

	return strings.TrimRight(s, "\r\n"), nil
}

func (p *prompter) secret(label string) (string, error) {
	f, ok := p.cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd fits int
		return p.line(label)
	}

	_, _ = fmt.Fprint(p.cmd.ErrOrStderr(), label+": ")

	b, err := term.ReadPassword(int(f.Fd())) //nolint:gosec // fd fits int
	_, _ = fmt.Fprintln(p.cmd.ErrOrStderr())

	if err != nil {
		return "", errors.Wrap(err, "failed to read password")
	}

	return string(b), nil
}

// newSecret asks twice for a new secret.
func (p *prompter) newSecret(label string) (string, error) {
	first, err := p.secret(label)
	if err != nil {
		return "", err
	}

	second, err := p.secret("Repeat " + strings.ToLower(label))
	if err != nil {
		return "", err
	}

	if first != second {
		return "", ErrPasswordMismatch
	}

	return first, nil
}
