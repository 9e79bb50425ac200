package cpu

import (
	"errors"
	"io"
	"iter"
)

// Program is an immutable sequence of decoded instructions.
type Program struct {
	Opcodes []Opcode // Source listing, when assembled.

	codes []Code
}

// Load reads a program image: one instruction per byte, no header.
func Load(input io.Reader) (prog *Program, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		err = errors.Join(ErrProgramRead, err)
		return
	}

	prog = NewProgram(data)
	return
}

// NewProgram decodes a raw program image.
func NewProgram(data []byte) (prog *Program) {
	prog = &Program{
		codes: make([]Code, len(data)),
	}
	for n, word := range data {
		prog.codes[n] = Code(word)
	}

	return
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.codes)
}

// Fetch returns the instruction at pc.
func (prog *Program) Fetch(pc int) (code Code, ok bool) {
	if pc < 0 || pc >= len(prog.codes) {
		return
	}

	return prog.codes[pc], true
}

// Binary returns the program image.
func (prog *Program) Binary() (bins []byte) {
	bins = make([]byte, 0, len(prog.codes))
	for _, code := range prog.codes {
		bins = append(bins, byte(code))
	}

	return
}

// Codes iterates over the program counter and instruction pairs.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(pc int, code Code) bool) {
		for pc, code := range prog.codes {
			if !yield(pc, code) {
				return
			}
		}
	}
}

// LineNo returns the source line that generated the instruction at pc,
// or 0 if the program was not assembled from source.
func (prog *Program) LineNo(pc int) int {
	for _, op := range prog.Opcodes {
		if pc >= op.Pc && pc < op.Pc+len(op.Codes) {
			return op.LineNo
		}
	}

	return 0
}

// Opcode represents a line of assembled code with its source location and generated instructions.
type Opcode struct {
	LineNo int
	Pc     int
	Words  []string
	Codes  []Code
}
