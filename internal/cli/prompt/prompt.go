// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aetos-lang/aetosup/internal/errors"
)

// ErrCancelled indicates the prompt was cancelled (e.g. Ctrl+D).
var ErrCancelled = errors.New("prompt cancelled")

// Prompter asks yes/no questions on the terminal.
type Prompter struct {
	reader io.Reader
	writer io.Writer
}

// New creates a Prompter using stdin and stdout.
func New() *Prompter {
	return &Prompter{reader: os.Stdin, writer: os.Stdout}
}

// NewWithIO creates a Prompter with custom reader and writer for testing.
func NewWithIO(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{reader: r, writer: w}
}

// Confirm asks a yes/no question, defaulting to no.
//
// Returns:
//   - true for "y"/"yes" (case-insensitive)
//   - false for anything else, including an empty answer
//   - ErrCancelled if input is EOF
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.writer, "%s [y/N]: ", question)

	reader := bufio.NewReader(p.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, ErrCancelled
		}
		return false, errors.Wrap(err, "reading answer")
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
