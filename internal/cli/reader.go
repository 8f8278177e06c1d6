package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when the context ends before a line arrives.
var ErrInputCancelled = errors.New("input canceled")

type line struct {
	err  error
	text string
}

// LineReader reads trimmed lines from an input that may block forever, such
// as a terminal. One goroutine owns the underlying reader; a canceled
// ReadLine leaves the pending line for the next call.
type LineReader struct {
	src   *bufio.Reader
	lines chan line
	start sync.Once
}

// NewLineReader wraps r. Nothing is read until the first ReadLine.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{src: bufio.NewReader(r), lines: make(chan line)}
}

func (r *LineReader) pump() {
	for {
		text, err := r.src.ReadString('\n')
		if errors.Is(err, io.EOF) && text != "" {
			err = nil
		}
		r.lines <- line{text: strings.TrimSpace(text), err: err}
		if err != nil {
			close(r.lines)
			return
		}
	}
}

// ReadLine returns the next line without surrounding whitespace. A final line
// with no newline is still returned; after it comes io.EOF.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.start.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case l, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

// Confirm asks a yes/no question on w. Only "y" and "yes" in any case count
// as yes; end of input counts as no.
func Confirm(ctx context.Context, r *LineReader, w io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprint(w, PromptStyle.Render(question+" [y/N]: ")); err != nil {
		return false, err
	}

	answer, err := r.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
