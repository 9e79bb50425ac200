// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass macro assembler for SAL.
//
// Each line is either a directive or an instruction:
//
//	TONE OP [FLAG...]   ; e.g. "demanding inc b", "polite! jump +4 +1"
//	.byte VALUE...      ; raw instruction words
//	.equ NAME VALUE
//	.macro NAME ARG... / .endm
//
// A FLAG is either the name of a specifier flag of the operation, or a
// number whose low three bits are or-ed into the word.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// toneMap maps tone names.
var toneMap = map[string]Tone{
	TONE_POLITE_STRONG.String():    TONE_POLITE_STRONG,
	TONE_POLITE.String():           TONE_POLITE,
	TONE_DEMANDING.String():        TONE_DEMANDING,
	TONE_DEMANDING_STRONG.String(): TONE_DEMANDING_STRONG,
	"please":                       TONE_POLITE_STRONG,
	"now":                          TONE_DEMANDING_STRONG,
}

// opMap maps operation names.
var opMap = map[string]Operation{
	OP_INCREMENT.String():         OP_INCREMENT,
	OP_TO.String():                OP_TO,
	OP_ACCESS.String():            OP_ACCESS,
	OP_LOOP.String():              OP_LOOP,
	OP_BRANCH_IF_GREATER.String(): OP_BRANCH_IF_GREATER,
	OP_BRANCH_IF_ZERO.String():    OP_BRANCH_IF_ZERO,
	OP_BRANCH_IF_EQUAL.String():   OP_BRANCH_IF_EQUAL,
	OP_JUMP.String():              OP_JUMP,
	"increment":                   OP_INCREMENT,
}

// flagDefaults are the names of cleared specifier flags, accepted for
// readability.
var flagDefaults = [8][]string{
	OP_INCREMENT:         {"a", "add", "one"},
	OP_TO:                {"a"},
	OP_ACCESS:            {"a", "read", "int"},
	OP_LOOP:              {"a", "arm", "slot0"},
	OP_BRANCH_IF_GREATER: {"a"},
	OP_BRANCH_IF_ZERO:    {"a"},
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value64 int64
		value64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be flag names
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single line into words, handling equates and macros.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentPc gets the program counter of the next generated instruction.
func (asm *Assembler) currentPc() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Pc + len(last.Codes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}
	for _, op := range prog.Opcodes {
		prog.codes = append(prog.codes, op.Codes...)
	}

	return
}

// parseFlags evaluates the specifier words of an instruction.
func (asm *Assembler) parseFlags(op Operation, words []string) (flags CodeFlags, err error) {
	var seen CodeFlags
	set := func(n int) error {
		if seen[n] {
			return ErrFlagDuplicate
		}
		seen[n] = true
		flags[n] = true
		return nil
	}

	for _, word := range words {
		if slices.Contains(flagDefaults[op], word) {
			continue
		}

		if op == OP_TO {
			var found bool
			for hi, modes := range toModes {
				for lo, mode := range modes {
					if mode != word {
						continue
					}
					if seen[1] || seen[2] {
						return flags, ErrFlagDuplicate
					}
					seen[1], seen[2] = true, true
					flags[1], flags[2] = hi == 1, lo == 1
					found = true
				}
			}
			if found {
				continue
			}
		}

		n := slices.Index(flagNames[op][:], word)
		if n >= 0 && len(word) > 0 {
			err = set(n)
			if err != nil {
				return
			}
			continue
		}

		var value int64
		value, err = asm.valueOf(word)
		if err != nil {
			err = ErrFlagInvalid
			return
		}
		if value < 0 || value > 7 {
			err = ErrFlagInvalid
			return
		}
		for n, flag := range MakeCodeFlags(uint8(value)) {
			if flag {
				flags[n] = true
			}
		}
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []Code

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if len(codes) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Pc: asm.currentPc(), Words: initial_words, Codes: codes}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	// .byte VALUE...
	if words[0] == ".byte" {
		if len(words) < 2 {
			err = ErrOpcodeMissing
			return
		}
		for _, word := range words[1:] {
			var value int64
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			if value < 0 || value > 0xff {
				err = ErrByteRange
				return
			}
			codes = append(codes, Code(value))
		}
		return
	}

	tone, ok := toneMap[words[0]]
	if !ok {
		err = ErrToneInvalid
		return
	}

	if len(words) < 2 {
		err = ErrOpcodeMissing
		return
	}

	op, ok := opMap[words[1]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	flags, err := asm.parseFlags(op, words[2:])
	if err != nil {
		return
	}

	codes = append(codes, MakeCode(tone, op, flags))

	return
}
