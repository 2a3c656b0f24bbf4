package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/andyballingall/deploy-preflight/internal/report"
)

// ErrAborted is returned when the operator declines to continue.
var ErrAborted = errors.New("aborted by user")

// IsDefaultYes reports whether answer accepts a [Y/n] question.
func IsDefaultYes(answer string) bool {
	return answer == "" || answer == "y" || answer == "Y"
}

// IsDefaultNo reports whether answer declines a [y/N] question.
func IsDefaultNo(answer string) bool {
	return answer != "y" && answer != "Y"
}

// Prompter asks yes/no questions on a Console and reads answers from a LineReader.
type Prompter struct {
	in  LineReader
	out *report.Console
}

func NewPrompter(in LineReader, out *report.Console) *Prompter {
	return &Prompter{in: in, out: out}
}

// ConfirmDefaultYes asks "question [Y/n]". An empty answer accepts.
func (p *Prompter) ConfirmDefaultYes(ctx context.Context, question string) error {
	answer, err := p.ask(ctx, question + " [Y/n]")
	if err != nil {
		return err
	}
	if !IsDefaultYes(answer) {
		return ErrAborted
	}
	return nil
}

// ConfirmDefaultNo asks "question [y/N]". Only "y" or "Y" continues.
func (p *Prompter) ConfirmDefaultNo(ctx context.Context, question string) error {
	answer, err := p.ask(ctx, question + " [y/N]")
	if err != nil {
		return err
	}
	if IsDefaultNo(answer) {
		return ErrAborted
	}
	return nil
}

type readResult struct {
	line string
	err  error
}

// ask returns ErrAborted when input ends before an answer is given, so a
// closed stdin never counts as consent. Cancelling ctx (Ctrl+C) aborts too,
// even while ReadLine is still blocked; the pending read is abandoned.
func (p *Prompter) ask(ctx context.Context, question string) (string, error) {
	if ctx.Err() != nil {
		return "", ErrAborted
	}
	p.out.Ask(question)

	ch := make(chan readResult, 1)
	go func() {
		line, err := p.in.ReadLine()
		ch <- readResult{line: line, err: err}
	}()

	var res readResult
	select {
	case <-ctx.Done():
		p.out.Println("")
		return "", ErrAborted
	case res = <-ch:
	}

	if errors.Is(res.err, io.EOF) {
		p.out.Println("")
		return "", ErrAborted
	}
	if res.err != nil {
		return "", fmt.Errorf("failed to read answer: %w", res.err)
	}
	return res.line, nil
}
