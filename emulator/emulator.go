// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives a SAL program: each instruction is fetched, put
// before the affect gate, and executed if the gate allows it.
package emulator

import (
	"iter"
	"log"

	"github.com/ezrec/sal/affect"
	"github.com/ezrec/sal/cpu"
	"github.com/ezrec/sal/internal"
	"github.com/ezrec/sal/io"
	"github.com/ezrec/sal/mood"
	"github.com/ezrec/sal/trace"
)

// Tracer receives a record of every judged instruction.
type Tracer interface {
	Record(step trace.Step) error
}

// Emulator state. CPU + affect gate + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program.
	Gate     *affect.Gate // Affect gate judging each instruction.
	Tape     io.Tape      // Console of the access operation.
	Tracer   Tracer       // Optional execution trace.
}

// NewEmulator creates a new emulator with the given temperament.
func NewEmulator(profile mood.Profile) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(0),
		Program: &cpu.Program{},
		Gate:    affect.NewGate(profile),
	}

	emu.Cpu.Console = &emu.Tape

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(emu.Cpu.Defines(),
		mood.Defines(),
	)
}

// Reset the machine and the affect state to the start of the program.
func (emu *Emulator) Reset() {
	if emu.Verbose {
		log.Printf("emulator: reset, %d instructions", emu.Program.Len())
	}

	emu.Cpu.Limit = emu.Program.Len()
	emu.Cpu.Reset()
	emu.Gate.Reset()
}

// Code returns the current instruction code.
func (emu *Emulator) Code() (code cpu.Code) {
	code, _ = emu.Program.Fetch(emu.Cpu.Pc)
	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.Pc)
}

// Tick judges and, if allowed, executes a single instruction. done is set
// once the program counter has advanced past the last instruction.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Gate.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	code, ok := emu.Program.Fetch(pc)
	if !ok {
		done = true
		return
	}

	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: emu.Program.LineNo(pc), Code: code, Err: err}
		}
	}()

	tone := code.Tone()

	verdict, err := emu.Gate.Check(tone)
	switch verdict {
	case affect.PROCEED:
		_, err = emu.Cpu.Execute(code, emu.Gate.Doubled(tone))
	case affect.SKIP:
		if emu.Verbose {
			log.Printf("%03d: %v (ignored)", pc, code)
		}
		emu.Cpu.Pc++
	}

	if emu.Tracer != nil {
		step := trace.Step{
			Pc:         pc,
			Word:       uint8(code),
			Verdict:    verdict.String(),
			Credit:     emu.Gate.Credit,
			Irritation: emu.Gate.Irritation,
			Next:       emu.Cpu.Pc,
		}
		trace_err := emu.Tracer.Record(step)
		if err == nil {
			err = trace_err
		}
	}

	return
}

// Run ticks the program until completion or the first fault.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
