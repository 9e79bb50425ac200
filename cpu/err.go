package cpu

import (
	"errors"

	"github.com/ezrec/sal/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrProgramRead    = errors.New(f("program unreadable"))
	ErrConsoleMissing = errors.New(f("no console attached"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrByteRange          = errors.New(f(".byte out of range"))
	ErrOpcodeMissing      = errors.New(f("operation missing"))
	ErrOpcodeInvalid      = errors.New(f("operation invalid"))
	ErrToneInvalid        = errors.New(f("tone invalid"))
	ErrFlagInvalid        = errors.New(f("specifier invalid"))
	ErrFlagDuplicate      = errors.New(f("specifier duplicated"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrOpcode reports the instruction that failed.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad instruction 0x%02x %v", uint8(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrControlTransfer is a branch, jump or loop that would leave the program.
type ErrControlTransfer struct {
	From int
	To   int
}

func (err *ErrControlTransfer) Error() string {
	return f("control transfer from %d to %d leaves the program", err.From, err.To)
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
