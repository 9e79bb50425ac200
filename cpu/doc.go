// Package cpu implements the SAL machine and its assembler.
//
// A SAL instruction is a single byte: a two bit tone, a three bit operation
// and three specifier flags. The machine has two register pairs (one per
// tone family), two stacks and two loop contexts, the latter two selected by
// specifier flags rather than by tone.
//
// The assembler provides a line oriented text form of the instruction set
// (the same text Code.String renders), supporting macros, equates and
// compile-time expression evaluation.
package cpu
