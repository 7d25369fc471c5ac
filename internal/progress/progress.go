// Package progress draws progress on stderr while long imports and vacuums
// run. Nothing is drawn unless stderr is a terminal, so piped output and
// scripts stay clean.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the smallest batch that gets a counter.
const minItems = 5

const clearWidth = 48

// Counter reports "label... n/total (pct%)".
type Counter struct {
	w       io.Writer
	label   string
	total   int
	current int
	live    bool
}

// New returns a Counter on stderr.
func New(label string, total int) *Counter {
	return NewTo(os.Stderr, label, total, term.IsTerminal(int(os.Stderr.Fd())))
}

// NewTo returns a Counter on w. live controls whether anything is drawn.
func NewTo(w io.Writer, label string, total int, live bool) *Counter {
	return &Counter{w: w, label: label, total: total, live: live && total >= minItems}
}

// Step advances the counter and redraws it.
func (c *Counter) Step() {
	c.current++
	if !c.live {
		return
	}
	pct := c.current * 100 / c.total
	fmt.Fprintf(c.w, "\r%s... %d/%d (%d%%)", c.label, c.current, c.total, pct)
}

// Done clears the line.
func (c *Counter) Done() {
	if c.live {
		clearLine(c.w)
	}
}

// Count returns the number of steps taken.
func (c *Counter) Count() int {
	return c.current
}

func clearLine(w io.Writer) {
	fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", clearWidth))
}

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows activity when the amount of work is unknown.
type Spinner struct {
	w       io.Writer
	label   string
	frame   int
	live    bool
	running bool
}

// NewSpinner returns a Spinner on stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{w: os.Stderr, label: label, live: term.IsTerminal(int(os.Stderr.Fd()))}
}

// Start draws the first frame.
func (s *Spinner) Start() {
	if !s.live {
		return
	}
	s.running = true
	fmt.Fprintf(s.w, "%s %s...", frames[0], s.label)
}

// Tick draws the next frame.
func (s *Spinner) Tick() {
	if !s.running {
		return
	}
	s.frame = (s.frame + 1) % len(frames)
	fmt.Fprintf(s.w, "\r%s %s...", frames[s.frame], s.label)
}

// Stop clears the line.
func (s *Spinner) Stop() {
	if !s.running {
		return
	}
	s.running = false
	clearLine(s.w)
}
