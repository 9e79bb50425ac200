package io

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Tape provides line-oriented console I/O over an io.Reader for input and
// an io.Writer for output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
	source io.Reader
}

var _ Console = (*Tape)(nil)

// ReadLine reads the next line from Input. A final line without a
// terminator is returned without error; io.EOF is returned once the input
// is exhausted.
func (tc *Tape) ReadLine() (line string, err error) {
	if tc.Input == nil {
		err = io.EOF
		return
	}

	if tc.reader == nil || tc.source != tc.Input {
		tc.reader = bufio.NewReader(tc.Input)
		tc.source = tc.Input
	}

	line, err = tc.reader.ReadString('\n')
	if errors.Is(err, io.EOF) && len(line) > 0 {
		err = nil
	}
	if err != nil {
		return
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	return
}

// WriteString writes text to Output.
func (tc *Tape) WriteString(text string) (err error) {
	if tc.Output == nil {
		err = ErrNoOutput
		return
	}

	_, err = io.WriteString(tc.Output, text)
	return
}
