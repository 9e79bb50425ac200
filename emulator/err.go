package emulator

import (
	"github.com/ezrec/sal/cpu"
	"github.com/ezrec/sal/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     int
	LineNo int // Source line, if the program was assembled.
	Code   cpu.Code
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("line %d, pc %d (%v): %v", err.LineNo, err.Pc, err.Code, err.Err)
	}
	return f("pc %d (%v): %v", err.Pc, err.Code, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
