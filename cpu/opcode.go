package cpu

import (
	"strings"
)

// Tone is the social prefix of an instruction.
type Tone int

//go:generate go tool stringer -linecomment -type=Tone
const (
	TONE_DEMANDING_STRONG = Tone(0) // demanding!
	TONE_DEMANDING        = Tone(1) // demanding
	TONE_POLITE           = Tone(2) // polite
	TONE_POLITE_STRONG    = Tone(3) // polite!
)

// Polite returns true if the tone belongs to the polite family.
func (tone Tone) Polite() bool {
	return tone == TONE_POLITE || tone == TONE_POLITE_STRONG
}

// Operation is the operation kind of an instruction.
type Operation int

//go:generate go tool stringer -linecomment -type=Operation
const (
	OP_INCREMENT         = Operation(0) // inc
	OP_TO                = Operation(1) // to
	OP_ACCESS            = Operation(2) // access
	OP_LOOP              = Operation(3) // loop
	OP_BRANCH_IF_GREATER = Operation(4) // bgt
	OP_BRANCH_IF_ZERO    = Operation(5) // bz
	OP_BRANCH_IF_EQUAL   = Operation(6) // beq
	OP_JUMP              = Operation(7) // jump
)

// CodeFlags are the three specifier flags of an instruction. Flag 0 is
// bit 2 of the instruction word, flag 2 is bit 0.
type CodeFlags [3]bool

// Bits returns the flags as the low three bits of an instruction word.
func (flags CodeFlags) Bits() (bits uint8) {
	for n, flag := range flags {
		if flag {
			bits |= 1 << (2 - n)
		}
	}
	return
}

// MakeCodeFlags converts the low three bits of a word to flags.
func MakeCodeFlags(bits uint8) (flags CodeFlags) {
	for n := range flags {
		flags[n] = (bits>>(2-n))&1 != 0
	}
	return
}

// Code is a single SAL instruction word.
//
//	bit 7..6  tone
//	bit 5..3  operation
//	bit 2..0  specifier flags 0, 1, 2
type Code uint8

// MakeCode encodes an instruction word.
func MakeCode(tone Tone, op Operation, flags CodeFlags) Code {
	return Code((uint8(tone)&0x3)<<6 | (uint8(op)&0x7)<<3 | flags.Bits())
}

// Tone returns the tone of the instruction word.
func (code Code) Tone() Tone {
	return Tone((code >> 6) & 0x3)
}

// Op returns the operation of the instruction word.
func (code Code) Op() Operation {
	return Operation((code >> 3) & 0x7)
}

// Flags returns the specifier flags of the instruction word.
func (code Code) Flags() CodeFlags {
	return MakeCodeFlags(uint8(code) & 0x7)
}

// Decode returns the tone, operation and specifier flags.
func (code Code) Decode() (tone Tone, op Operation, flags CodeFlags) {
	return code.Tone(), code.Op(), code.Flags()
}

// flagNames is the assembler name of each specifier flag, per operation.
// OP_TO uses toModes for flags 1 and 2.
var flagNames = [8][3]string{
	OP_INCREMENT:         {"b", "sub", "other"},
	OP_TO:                {"b", "", ""},
	OP_ACCESS:            {"b", "write", "char"},
	OP_LOOP:              {"b", "iter", "slot1"},
	OP_BRANCH_IF_GREATER: {"b", "+2", "+1"},
	OP_BRANCH_IF_ZERO:    {"b", "+2", "+1"},
	OP_BRANCH_IF_EQUAL:   {"+4", "+2", "+1"},
	OP_JUMP:              {"+4", "+2", "+1"},
}

// toModes names the four OP_TO moves, indexed by flag 1 and flag 2.
var toModes = [2][2]string{
	{"double", "push"},
	{"halve", "pop"},
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	tone, op, flags := code.Decode()

	words := []string{tone.String(), op.String()}
	names := flagNames[op]
	for n, flag := range flags {
		if flag && len(names[n]) > 0 {
			words = append(words, names[n])
		}
	}

	if op == OP_TO {
		words = append(words, toModes[b2i(flags[1])][b2i(flags[2])])
	}

	return strings.Join(words, " ")
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
