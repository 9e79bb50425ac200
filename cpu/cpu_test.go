package cpu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sal/io"
)

// runCodes executes codes from pc 0 until the program counter leaves the
// program, an error occurs, or too many instructions have run.
func runCodes(cpu *Cpu, codes ...Code) (err error) {
	for steps := 0; cpu.Pc < len(codes) && steps < 10000; steps++ {
		_, err = cpu.Execute(codes[cpu.Pc], false)
		if err != nil {
			return
		}
	}
	return
}

func TestCpu_Increment(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code      Code
		doubled   bool
		polite    [2]int32
		demanding [2]int32
		expPolite [2]int32
		expDemand [2]int32
	}){
		{0x80, false, [2]int32{0, 0}, [2]int32{}, [2]int32{1, 0}, [2]int32{}},
		{0xc0, false, [2]int32{0, 0}, [2]int32{}, [2]int32{1, 0}, [2]int32{}},
		{0x84, false, [2]int32{0, 0}, [2]int32{}, [2]int32{0, 1}, [2]int32{}},
		{0x82, false, [2]int32{0, 0}, [2]int32{}, [2]int32{-1, 0}, [2]int32{}},
		{0x81, false, [2]int32{3, 4}, [2]int32{}, [2]int32{7, 4}, [2]int32{}},
		{0x87, false, [2]int32{3, 4}, [2]int32{}, [2]int32{3, 1}, [2]int32{}},
		{0x44, false, [2]int32{}, [2]int32{0, 5}, [2]int32{}, [2]int32{0, 6}},
		{0x00, true, [2]int32{}, [2]int32{0, 0}, [2]int32{}, [2]int32{2, 0}},
		{0x01, true, [2]int32{}, [2]int32{1, 3}, [2]int32{}, [2]int32{7, 3}},
		{0x03, true, [2]int32{}, [2]int32{1, 3}, [2]int32{}, [2]int32{-5, 3}},
		{0x80, false, [2]int32{2147483647, 0}, [2]int32{}, [2]int32{-2147483648, 0}, [2]int32{}},
	}

	for _, entry := range table {
		cpu := NewCpu(4)
		cpu.Polite = entry.polite
		cpu.Demanding = entry.demanding

		redirected, err := cpu.Execute(entry.code, entry.doubled)
		assert.NoError(err, entry.code.String())
		assert.False(redirected)
		assert.Equal(entry.expPolite, cpu.Polite, entry.code.String())
		assert.Equal(entry.expDemand, cpu.Demanding, entry.code.String())
		assert.Equal(1, cpu.Pc)
		assert.Equal(1, cpu.Ticks)
	}
}

func TestCpu_To(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(8)

	cpu.Polite = [2]int32{3, 7}
	_, err := cpu.Execute(0x88, false) // polite to double
	assert.NoError(err)
	assert.Equal([2]int32{6, 7}, cpu.Polite)

	_, err = cpu.Execute(0x8e, false) // polite to b halve
	assert.NoError(err)
	assert.Equal([2]int32{6, 3}, cpu.Polite)

	cpu.Polite[REG_A] = -7
	_, err = cpu.Execute(0x8a, false) // polite to halve
	assert.NoError(err)
	assert.Equal(int32(-3), cpu.Polite[REG_A])

	// Push from polite A, pop into demanding A through the same stack.
	_, err = cpu.Execute(0x89, false) // polite to push
	assert.NoError(err)
	assert.Equal([]int32{-3}, cpu.Stack[0].Data)

	_, err = cpu.Execute(0x4b, false) // demanding to pop
	assert.NoError(err)
	assert.Equal(int32(-3), cpu.Demanding[REG_A])
	assert.True(cpu.Stack[0].Empty())

	// An empty stack pops 0.
	cpu.Demanding[REG_B] = 9
	_, err = cpu.Execute(0x4f, false) // demanding to b pop
	assert.NoError(err)
	assert.Equal(int32(0), cpu.Demanding[REG_B])

	assert.Equal(6, cpu.Pc)
}

func TestCpu_Stacks(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(16)
	cpu.Polite = [2]int32{1, 2}

	codes := []Code{
		0x89, // polite to push
		0x8d, // polite to b push
		0x80, // polite inc
		0x89, // polite to push
		0x8b, // polite to pop
		0x8f, // polite to b pop
	}
	assert.NoError(runCodes(cpu, codes...))

	assert.Equal(int32(2), cpu.Polite[REG_A])
	assert.Equal(int32(2), cpu.Polite[REG_B])
	assert.Equal([]int32{1}, cpu.Stack[0].Data)
	assert.True(cpu.Stack[1].Empty())
}

func TestCpu_Loop(t *testing.T) {
	assert := assert.New(t)

	// Body runs max(1, bound) times.
	table := [](struct {
		bound int32
		runs  int32
	}){
		{-3, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{10, 10},
	}

	for _, entry := range table {
		cpu := NewCpu(3)
		cpu.Polite[REG_A] = entry.bound

		codes := []Code{
			0x98, // polite loop
			0x84, // polite inc b
			0x9a, // polite loop iter
		}
		assert.NoError(runCodes(cpu, codes...))
		assert.Equal(entry.runs, cpu.Polite[REG_B], "bound %d", entry.bound)
		assert.Equal(3, cpu.Pc)
		assert.Equal(entry.bound, cpu.Polite[REG_A])
	}
}

func TestCpu_LoopSlots(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(6)
	cpu.Polite = [2]int32{2, 3}

	codes := []Code{
		0x98, // polite loop         ; slot0, bound 2
		0x9d, // polite loop b slot1 ; slot1, bound 3
		0x40, // demanding inc
		0x9b, // polite loop iter slot1
		0x9a, // polite loop iter
	}
	assert.NoError(runCodes(cpu, codes...))

	// Outer body re-arms the inner loop on each pass.
	assert.Equal(int32(6), cpu.Demanding[REG_A])
	assert.Equal(Loop{Return: 0, Bound: 2, Counter: 1}, cpu.Loop[0])
	assert.Equal(Loop{Return: 1, Bound: 3, Counter: 2}, cpu.Loop[1])
}

func TestCpu_Branch(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code      Code
		pc        int
		polite    [2]int32
		demanding [2]int32
		expPc     int
	}){
		// bgt
		{0xa0, 0, [2]int32{2, 1}, [2]int32{}, 2},
		{0xa0, 0, [2]int32{1, 2}, [2]int32{}, 1},
		{0xa4, 0, [2]int32{1, 2}, [2]int32{}, 2},
		{0xa3, 0, [2]int32{2, 1}, [2]int32{}, 5},
		{0x60, 8, [2]int32{}, [2]int32{2, 1}, 6},
		{0x63, 8, [2]int32{}, [2]int32{2, 1}, 3},
		// bz
		{0xa8, 0, [2]int32{0, 1}, [2]int32{}, 2},
		{0xa8, 0, [2]int32{1, 0}, [2]int32{}, 1},
		{0xac, 0, [2]int32{1, 0}, [2]int32{}, 2},
		{0x6a, 9, [2]int32{}, [2]int32{0, 0}, 5},
		// beq
		{0xb0, 0, [2]int32{4, 4}, [2]int32{}, 2},
		{0xb0, 0, [2]int32{4, 5}, [2]int32{}, 1},
		{0xb4, 0, [2]int32{0, 0}, [2]int32{}, 6},
		{0x77, 9, [2]int32{}, [2]int32{0, 0}, 0},
		// jump
		{0xb8, 0, [2]int32{}, [2]int32{}, 2},
		{0xbf, 0, [2]int32{}, [2]int32{}, 9},
		{0xfd, 1, [2]int32{}, [2]int32{}, 8},
		{0x78, 5, [2]int32{}, [2]int32{}, 3},
		{0x39, 9, [2]int32{}, [2]int32{}, 6},
	}

	for _, entry := range table {
		cpu := NewCpu(10)
		cpu.Pc = entry.pc
		cpu.Polite = entry.polite
		cpu.Demanding = entry.demanding

		redirected, err := cpu.Execute(entry.code, false)
		assert.NoError(err, entry.code.String())
		assert.Equal(entry.expPc, cpu.Pc, entry.code.String())
		assert.Equal(entry.expPc != entry.pc+1, redirected, entry.code.String())
	}
}

func TestCpu_BranchDoubled(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(10)
	cpu.Pc = 8

	redirected, err := cpu.Execute(0x38, true) // demanding! jump
	assert.NoError(err)
	assert.True(redirected)
	assert.Equal(4, cpu.Pc)

	cpu.Pc = 9
	_, err = cpu.Execute(0x39, true) // demanding! jump +1
	assert.NoError(err)
	assert.Equal(3, cpu.Pc)
}

func TestCpu_ControlTransfer(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code  Code
		pc    int
		limit int
		to    int
	}){
		{0xb8, 0, 2, 2},   // polite jump, lands on the end
		{0xbf, 3, 10, 12}, // polite jump +4 +2 +1
		{0x78, 0, 4, -2},  // demanding jump
		{0x78, 1, 4, -1},
	}

	for _, entry := range table {
		cpu := NewCpu(entry.limit)
		cpu.Pc = entry.pc

		_, err := cpu.Execute(entry.code, false)
		assert.Error(err)

		var ect *ErrControlTransfer
		if assert.True(errors.As(err, &ect)) {
			assert.Equal(entry.pc, ect.From)
			assert.Equal(entry.to, ect.To)
		}
		assert.ErrorIs(err, ErrOpcode(entry.code))
		assert.Equal(entry.pc, cpu.Pc)
		assert.Equal(0, cpu.Ticks)
	}
}

func TestCpu_Completion(t *testing.T) {
	assert := assert.New(t)

	// Falling off the end of the program is not a control transfer.
	cpu := NewCpu(1)
	redirected, err := cpu.Execute(0x80, false)
	assert.NoError(err)
	assert.False(redirected)
	assert.Equal(1, cpu.Pc)

	// Nor is an untaken branch on the last instruction.
	cpu = NewCpu(1)
	cpu.Polite[REG_B] = 1
	redirected, err = cpu.Execute(0xb0, false) // polite beq
	assert.NoError(err)
	assert.False(redirected)
	assert.Equal(1, cpu.Pc)
}

func TestCpu_Access(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code   Code
		input  string
		reg    int32
		expReg int32
		output string
	}){
		{0x92, "", 42, 42, "42\n"}, // polite access write
		{0x92, "", -17, -17, "-17\n"},
		{0x93, "", 65, 65, "A"}, // polite access write char
		{0x93, "", 10, 10, "\n"},
		{0x93, "", 256, 256, ""},
		{0x93, "", -191, -191, "A"},
		{0x90, "123\n", 0, 123, ""}, // polite access
		{0x90, "-5", 7, -5, ""},
		{0x90, "abc\n", 7, 7, ""},
		{0x90, "99999999999\n", 7, 7, ""},
		{0x90, "", 7, 7, ""},
		{0x91, "hi\n", 0, 104, ""}, // polite access char
		{0x91, "\n", 3, 3, ""},
		{0x91, "é\n", 3, 3, ""},
	}

	for _, entry := range table {
		output := &bytes.Buffer{}
		cpu := NewCpu(2)
		cpu.Console = &io.Tape{
			Input:  strings.NewReader(entry.input),
			Output: output,
		}
		cpu.Polite[REG_A] = entry.reg

		_, err := cpu.Execute(entry.code, false)
		assert.NoError(err, entry.code.String())
		assert.Equal(entry.expReg, cpu.Polite[REG_A], entry.code.String())
		assert.Equal(entry.output, output.String(), entry.code.String())
	}
}

func TestCpu_AccessSequence(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	cpu := NewCpu(8)
	cpu.Console = &io.Tape{
		Input:  strings.NewReader("3\n4\n"),
		Output: output,
	}

	codes := []Code{
		0x50, // demanding access
		0x54, // demanding access b
		0x41, // demanding inc other
		0x52, // demanding access write
	}
	assert.NoError(runCodes(cpu, codes...))
	assert.Equal("7\n", output.String())
}

func TestCpu_AccessErrors(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(2)
	_, err := cpu.Execute(0x90, false)
	assert.ErrorIs(err, ErrConsoleMissing)
	assert.ErrorIs(err, ErrOpcode(0))
	assert.Equal(0, cpu.Pc)

	cpu.Console = &io.Tape{}
	_, err = cpu.Execute(0x92, false)
	assert.ErrorIs(err, io.ErrNoOutput)
}

func TestCpu_Registers(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(1)
	assert.Same(&cpu.Polite, cpu.Registers(TONE_POLITE))
	assert.Same(&cpu.Polite, cpu.Registers(TONE_POLITE_STRONG))
	assert.Same(&cpu.Demanding, cpu.Registers(TONE_DEMANDING))
	assert.Same(&cpu.Demanding, cpu.Registers(TONE_DEMANDING_STRONG))
}

func TestCpu_Reset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(4)
	cpu.Pc = 3
	cpu.Ticks = 7
	cpu.Polite = [2]int32{1, 2}
	cpu.Demanding = [2]int32{3, 4}
	cpu.Stack[1].Push(5)
	cpu.Loop[0] = Loop{Return: 1, Bound: 2, Counter: 1}

	cpu.Reset()

	assert.Equal(0, cpu.Pc)
	assert.Equal(0, cpu.Ticks)
	assert.Equal(4, cpu.Limit)
	assert.Equal([2]int32{}, cpu.Polite)
	assert.Equal([2]int32{}, cpu.Demanding)
	assert.True(cpu.Stack[1].Empty())
	assert.Equal(Loop{}, cpu.Loop[0])
}

func TestCpu_String(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(4)
	cpu.Polite = [2]int32{1, 2}
	cpu.Stack[0].Push(9)

	text := cpu.String()
	assert.Contains(text, "polite: a=1 b=2")
	assert.Contains(text, "stack0: 9 (1 deep)")
	assert.Contains(text, "stack1: -")
}

func TestCpu_Defines(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(0)
	defines := map[string]string{}
	for key, value := range cpu.Defines() {
		defines[key] = value
	}

	assert.Equal("3", defines["TONE_POLITE_STRONG"])
	assert.Equal("0", defines["TONE_DEMANDING_STRONG"])
	assert.Equal("7", defines["OP_JUMP"])
	assert.Equal("4", defines["OP_BGT"])
}
