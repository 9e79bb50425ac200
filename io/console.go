// Package io provides the console the SAL Access operation talks to.
// A Console reads whole lines of input and writes text output; Tape is the
// implementation over a plain io.Reader and io.Writer.
package io

// Console defines the interface for the interactive stream of a SAL run.
type Console interface {
	// ReadLine blocks for the next line of input, without its line
	// terminator.
	ReadLine() (line string, err error)
	// WriteString writes text to the output.
	WriteString(text string) (err error)
}
