package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Affirmative is the only answer Confirm accepts as yes, compared after
// trimming and case folding.
const Affirmative = "y"

// Prompter writes questions to out and reads answers line by line from in.
//
// Lines are read by a single goroutine started on the first question, so an
// abandoned AskContext never leaves two readers on in. The line it was
// waiting for goes to the next question.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	once  sync.Once
	lines chan string
	err   error // set before lines is closed
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// readLines sends every line of in to p.lines until reading fails.
func (p *Prompter) readLines() {
	defer close(p.lines)
	for {
		line, err := p.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && line != "" {
				p.lines <- line
			}
			p.err = err
			return
		}
		p.lines <- line
	}
}

// Ask prints question and returns the next line with surrounding whitespace
// removed. A final line without newline is returned normally; io.EOF is
// returned only when nothing was left to read.
func (p *Prompter) Ask(question string) (string, error) {
	return p.AskContext(context.Background(), question)
}

// AskContext is like Ask but gives up with ctx.Err() when ctx is done before
// a line arrives.
func (p *Prompter) AskContext(ctx context.Context, question string) (string, error) {
	if _, err := fmt.Fprint(p.out, question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	p.once.Do(func() {
		p.lines = make(chan string)
		go p.readLines()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", p.err
		}
		return strings.TrimSpace(line), nil
	}
}

// Confirm asks a yes/no question. Only "y" (any case) means yes; everything
// else, including end of input, means no.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.Ask(question)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return IsYes(answer), nil
}

// IsYes reports whether answer is the affirmative token.
func IsYes(answer string) bool {
	return cases.Fold().String(strings.TrimSpace(answer)) == Affirmative
}
