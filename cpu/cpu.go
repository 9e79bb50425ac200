package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/sal/io"
)

// Console is the interactive stream used by OP_ACCESS.
type Console io.Console

// Register pair indexes.
const (
	REG_A = 0
	REG_B = 1
)

var _cpu_defines = map[string]string{
	"TONE_POLITE_STRONG":    fmt.Sprintf("%d", TONE_POLITE_STRONG),
	"TONE_POLITE":           fmt.Sprintf("%d", TONE_POLITE),
	"TONE_DEMANDING":        fmt.Sprintf("%d", TONE_DEMANDING),
	"TONE_DEMANDING_STRONG": fmt.Sprintf("%d", TONE_DEMANDING_STRONG),
	"OP_INCREMENT":          fmt.Sprintf("%d", OP_INCREMENT),
	"OP_TO":                 fmt.Sprintf("%d", OP_TO),
	"OP_ACCESS":             fmt.Sprintf("%d", OP_ACCESS),
	"OP_LOOP":               fmt.Sprintf("%d", OP_LOOP),
	"OP_BGT":                fmt.Sprintf("%d", OP_BRANCH_IF_GREATER),
	"OP_BZ":                 fmt.Sprintf("%d", OP_BRANCH_IF_ZERO),
	"OP_BEQ":                fmt.Sprintf("%d", OP_BRANCH_IF_EQUAL),
	"OP_JUMP":               fmt.Sprintf("%d", OP_JUMP),
}

// Loop is the bookkeeping of one loop context.
type Loop struct {
	Return  int   // Program counter of the arming instruction.
	Bound   int32 // Iteration count recorded when armed.
	Counter int32 // Iterations taken so far.
}

// Cpu is the register file, stacks and loop contexts of a SAL machine,
// and the executor of its operations.
type Cpu struct {
	Verbose bool    // Set to enable verbose logging.
	Console Console // Stream for OP_ACCESS.

	Pc        int      // Program counter.
	Limit     int      // Program length. Control transfers must stay in [0, Limit).
	Polite    [2]int32 // Register pair of the polite tones.
	Demanding [2]int32 // Register pair of the demanding tones.
	Stack     [2]Stack // Stacks, selected by specifier flag 0.
	Loop      [2]Loop  // Loop contexts, selected by specifier flag 2.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a new CPU for a program of the given length.
func NewCpu(limit int) (cpu *Cpu) {
	cpu = &Cpu{
		Limit: limit,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	stack := func(s *Stack) string {
		val, ok := s.Peek()
		if !ok {
			return "-"
		}
		return fmt.Sprintf("%d (%d deep)", val, len(s.Data))
	}

	text += fmt.Sprintf("% 10s: %d\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 10s: a=%d b=%d\n", "polite", cpu.Polite[REG_A], cpu.Polite[REG_B])
	text += fmt.Sprintf("% 10s: a=%d b=%d\n", "demanding", cpu.Demanding[REG_A], cpu.Demanding[REG_B])
	for n := range cpu.Stack {
		text += fmt.Sprintf("% 10s: %v\n", fmt.Sprintf("stack%d", n), stack(&cpu.Stack[n]))
	}
	for n, loop := range cpu.Loop {
		text += fmt.Sprintf("% 10s: return=%d bound=%d counter=%d\n", fmt.Sprintf("loop%d", n), loop.Return, loop.Bound, loop.Counter)
	}

	return
}

// Reset the CPU state.
// - Clears the registers, stacks and loop contexts.
// - Sets the program counter to 0.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Pc = 0
	cpu.Ticks = 0
	clear(cpu.Polite[:])
	clear(cpu.Demanding[:])
	clear(cpu.Loop[:])
	for n := range cpu.Stack {
		cpu.Stack[n].Reset()
	}
}

// Registers returns the register pair selected by a tone.
func (cpu *Cpu) Registers(tone Tone) *[2]int32 {
	if tone.Polite() {
		return &cpu.Polite
	}

	return &cpu.Demanding
}

// Execute executes a single decoded instruction, and advances the program
// counter. If doubled is set, increments and control transfer offsets are
// doubled. Returns true if the instruction redirected the program counter.
func (cpu *Cpu) Execute(code Code, doubled bool) (redirected bool, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Pc, code)
	}

	tone, op, flags := code.Decode()

	next_pc := cpu.Pc + 1

	regs := cpu.Registers(tone)
	selected := b2i(flags[0])
	other := 1 - selected

	scale := int32(1)
	if doubled {
		scale = 2
	}

	// Control transfer relative to the current instruction.
	transfer := func(offset int) {
		offset *= int(scale)
		if tone.Polite() {
			next_pc = cpu.Pc + offset
		} else {
			next_pc = cpu.Pc - offset
		}
		redirected = true
	}

	switch op {
	case OP_INCREMENT:
		value := int32(1)
		if flags[2] {
			value = regs[other]
		}
		value *= scale
		if flags[1] {
			regs[selected] -= value
		} else {
			regs[selected] += value
		}
	case OP_TO:
		stack := &cpu.Stack[selected]
		switch {
		case !flags[1] && !flags[2]:
			regs[selected] *= 2
		case !flags[1] && flags[2]:
			stack.Push(regs[selected])
		case flags[1] && !flags[2]:
			regs[selected] /= 2
		default:
			regs[selected], _ = stack.Pop()
		}
	case OP_ACCESS:
		err = cpu.access(&regs[selected], flags[1], flags[2])
		if err != nil {
			return
		}
	case OP_LOOP:
		loop := &cpu.Loop[b2i(flags[2])]
		if !flags[1] {
			loop.Return = cpu.Pc
			loop.Bound = regs[selected]
			loop.Counter = 0
		} else if int64(loop.Counter) < int64(loop.Bound)-1 {
			// Resume at the first instruction of the loop body.
			loop.Counter++
			next_pc = loop.Return + 1
			redirected = true
		}
	case OP_BRANCH_IF_GREATER:
		if regs[selected] > regs[other] {
			transfer(2 + 2*b2i(flags[1]) + b2i(flags[2]))
		}
	case OP_BRANCH_IF_ZERO:
		if regs[selected] == 0 {
			transfer(2 + 2*b2i(flags[1]) + b2i(flags[2]))
		}
	case OP_BRANCH_IF_EQUAL:
		if regs[REG_A] == regs[REG_B] {
			transfer(2 + 4*b2i(flags[0]) + 2*b2i(flags[1]) + b2i(flags[2]))
		}
	case OP_JUMP:
		transfer(2 + 4*b2i(flags[0]) + 2*b2i(flags[1]) + b2i(flags[2]))
	}

	if redirected && (next_pc < 0 || next_pc >= cpu.Limit) {
		err = &ErrControlTransfer{From: cpu.Pc, To: next_pc}
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks++

	return
}
