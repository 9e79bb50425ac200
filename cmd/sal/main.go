// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command sal runs SAL programs.
//
// Usage:
//
//	sal run [-mood NAME] [-profile FILE] [-trace FILE] [-s] [-v] PROGRAM
//	sal mood [-dump]
//	sal asm [-o OUTPUT] [-v] SOURCE
//	sal disasm PROGRAM
//	sal trace TRACE
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/sal/cpu"
	"github.com/ezrec/sal/emulator"
	"github.com/ezrec/sal/mood"
	"github.com/ezrec/sal/trace"
	"github.com/ezrec/sal/translate"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %v run|mood|asm|disasm|trace [options] [file]\n", os.Args[0])
	os.Exit(2)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("sal: ")

	if len(os.Args) < 2 {
		usage()
	}

	var err error

	args := os.Args[2:]
	switch os.Args[1] {
	case "run":
		err = runCommand(args)
	case "mood":
		err = moodCommand(args)
	case "asm":
		err = asmCommand(args)
	case "disasm":
		err = disasmCommand(args)
	case "trace":
		err = traceCommand(args)
	case "help", "-h", "--help":
		usage()
	default:
		log.Fatalf("unknown command: %v", os.Args[1])
	}

	if err != nil {
		log.Fatal(err)
	}
}

// assemble parses a SAL source file, with the emulator defines available.
func assemble(path string, verbose bool) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range emulator.NewEmulator(mood.DefaultProfile).Defines() {
		asm.Predefine(key, value)
	}

	prog, err = asm.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}
	return
}

// load reads a program image.
func load(path string) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err = cpu.Load(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}
	return
}

// profileOf selects the temperament of a run: a profile file, a named mood,
// or the mood of the moment.
func profileOf(path string, name string, verbose bool) (profile mood.Profile, err error) {
	if len(path) != 0 {
		return mood.LoadFile(path)
	}

	choice := mood.Random(time.Now())
	if len(name) != 0 {
		choice, err = mood.Parse(name)
		if err != nil {
			return
		}
	}

	if verbose {
		log.Printf("mood: %v", choice)
	}

	profile = choice.Profile()
	return
}

func runCommand(args []string) (err error) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	moodName := fs.String("mood", "", "force a mood instead of the mood of the hour")
	profilePath := fs.String("profile", "", "mood profile file (.toml, .yaml)")
	tracePath := fs.String("trace", "", "write a CBOR execution trace")
	source := fs.Bool("s", false, "program is assembly source")
	input := fs.String("i", "-", "console input")
	output := fs.String("o", "-", "console output")
	verbose := fs.Bool("v", false, "verbose mode")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("run: expected one program, got %v", fs.Args())
	}

	if *verbose {
		log.Printf("locale: %v", translate.Language())
	}

	var prog *cpu.Program
	if *source {
		prog, err = assemble(fs.Arg(0), *verbose)
	} else {
		prog, err = load(fs.Arg(0))
	}
	if err != nil {
		return
	}

	profile, err := profileOf(*profilePath, *moodName, *verbose)
	if err != nil {
		return
	}

	emu := emulator.NewEmulator(profile)
	emu.Verbose = *verbose
	emu.Program = prog
	emu.Gate.Messages = os.Stderr

	if *input == "-" {
		emu.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(*input)
		if err != nil {
			return err
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if *output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	if len(*tracePath) != 0 {
		trf, err := os.Create(*tracePath)
		if err != nil {
			return err
		}
		defer trf.Close()
		emu.Tracer = trace.NewEncoder(trf)
	}

	emu.Reset()
	err = emu.Run()
	if err != nil && *verbose {
		log.Print(emu.Cpu.String())
	}

	return
}

func moodCommand(args []string) (err error) {
	fs := flag.NewFlagSet("mood", flag.ExitOnError)
	dump := fs.Bool("dump", false, "print the mood profile as TOML")
	fs.Parse(args)

	choice := mood.Random(time.Now())
	fmt.Println(strings.ToLower(choice.String()))

	if *dump {
		err = toml.NewEncoder(os.Stdout).Encode(choice.Profile())
	}

	return
}

func asmCommand(args []string) (err error) {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)
	output := fs.String("o", "-", "program image output")
	verbose := fs.Bool("v", false, "verbose mode")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("asm: expected one source, got %v", fs.Args())
	}

	prog, err := assemble(fs.Arg(0), *verbose)
	if err != nil {
		return
	}

	var ouf io.Writer = os.Stdout
	if *output != "-" {
		file, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer file.Close()
		ouf = file
	}

	_, err = ouf.Write(prog.Binary())
	return
}

func disasmCommand(args []string) (err error) {
	fs := flag.NewFlagSet("disasm", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("disasm: expected one program, got %v", fs.Args())
	}

	prog, err := load(fs.Arg(0))
	if err != nil {
		return
	}

	for pc, code := range prog.Codes() {
		fmt.Printf("%-24v ; %03d: %02x\n", code, pc, uint8(code))
	}

	return
}

func traceCommand(args []string) (err error) {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("trace: expected one trace, got %v", fs.Args())
	}

	inf, err := os.Open(fs.Arg(0))
	if err != nil {
		return
	}
	defer inf.Close()

	steps, err := trace.ReadAll(inf)
	for _, step := range steps {
		fmt.Println(step)
	}

	return
}
