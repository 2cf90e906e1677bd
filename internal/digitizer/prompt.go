package digitizer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"go-bar-digitizer/internal/logger"
)

// Prompt reads numbers typed on the console. Lines are read on a
// background goroutine so that a cancelled context unblocks a waiting
// prompt.
type Prompt struct {
	in  io.Reader
	out io.Writer

	once  sync.Once
	lines chan string
	err   error
}

// NewPrompt creates a prompt reading from in and echoing to out
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: in, out: out}
}

func (p *Prompt) start() {
	p.lines = make(chan string)
	go func() {
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			p.lines <- scanner.Text()
		}
		p.err = scanner.Err()
		close(p.lines)
	}()
}

// Float writes label and reads a finite number, asking again until one is
// entered. It returns io.EOF if input ends first.
func (p *Prompt) Float(ctx context.Context, label string) (float64, error) {
	p.once.Do(p.start)

	for {
		fmt.Fprint(p.out, label)

		select {
		case line, ok := <-p.lines:
			if !ok {
				fmt.Fprintln(p.out)
				if p.err != nil {
					return 0, p.err
				}
				return 0, io.EOF
			}

			v, err := ParseValue(line)
			if err != nil {
				logger.WithError(err).WithField("input", line).Debug("Rejected console value")
				fmt.Fprintf(p.out, "  %v, try again.\n", err)
				continue
			}
			return v, nil

		case <-ctx.Done():
			fmt.Fprintln(p.out)
			return 0, ctx.Err()
		}
	}
}

// ParseValue parses a real-world axis value typed by the user
func ParseValue(s string) (float64, error) {
	text := strings.TrimSpace(s)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", text)
	}
	return v, nil
}
