// ABOUTME: Line-oriented notifier for the command line
// ABOUTME: Prints alerts and reads y/n answers from an input stream
package notify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Stdio writes alerts to out and reads confirmations from in.
// AssumeYes skips the prompt and confirms.
type Stdio struct {
	In        io.Reader
	Out       io.Writer
	AssumeYes bool

	reader *bufio.Reader
}

var iconMarks = map[Icon]string{
	IconSuccess: "✓",
	IconError:   "✗",
	IconWarning: "!",
	IconInfo:    "i",
}

func (s *Stdio) Fire(a Alert) {
	fmt.Fprintf(s.Out, "%s %s: %s\n", iconMarks[a.Icon], a.Title, a.Text)
}

func (s *Stdio) Confirm(ctx context.Context, c Confirmation) (bool, error) {
	if s.AssumeYes {
		return true, nil
	}
	if s.reader == nil {
		s.reader = bufio.NewReader(s.In)
	}

	fmt.Fprintf(s.Out, "%s %s\n", c.Title, c.Text)
	fmt.Fprintf(s.Out, "[y] %s  [n] %s: ", c.ConfirmText, c.CancelText)

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := s.reader.ReadString('\n')
		done <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case r := <-done:
		if r.err != nil && r.err != io.EOF {
			return false, fmt.Errorf("failed to read confirmation: %w", r.err)
		}
		answer := strings.ToLower(strings.TrimSpace(r.line))
		return answer == "y" || answer == "yes", nil
	}
}
