package ui

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner is an in-flight indicator for a single network call. It writes to
// stderr so command output on stdout stays clean for piping.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner that shows msg while running.
func NewSpinner(msg string) *Spinner {
	return NewSpinnerTo(os.Stderr, msg)
}

// NewSpinnerTo is NewSpinner with an explicit writer.
func NewSpinnerTo(w io.Writer, msg string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = "  " + msg
	return &Spinner{s: s}
}

// Start begins the animation.
func (s *Spinner) Start() { s.s.Start() }

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() { s.s.Stop() }
