package cpu

import (
	"errors"
	"io"
	"log"
	"strconv"
	"unicode/utf8"
)

// access performs an OP_ACCESS transfer between a register and the console.
//
// Input that is not representable as requested leaves the register as is.
func (cpu *Cpu) access(reg *int32, write bool, char bool) (err error) {
	if cpu.Console == nil {
		err = ErrConsoleMissing
		return
	}

	if write {
		switch {
		case char && *reg < 256:
			err = cpu.Console.WriteString(string([]byte{byte(*reg)}))
		case char:
			// Not a single byte; nothing to print.
		default:
			err = cpu.Console.WriteString(strconv.FormatInt(int64(*reg), 10) + "\n")
		}
		return
	}

	line, err := cpu.Console.ReadLine()
	if errors.Is(err, io.EOF) {
		err = nil
		return
	}
	if err != nil {
		return
	}

	if char {
		if len(line) > 0 && line[0] < utf8.RuneSelf {
			*reg = int32(line[0])
		} else if cpu.Verbose {
			log.Printf("cpu: %q is not an ASCII character", line)
		}
		return
	}

	value, perr := strconv.ParseInt(line, 10, 32)
	if perr != nil {
		if cpu.Verbose {
			log.Printf("cpu: %v", perr)
		}
		return
	}
	*reg = int32(value)

	return
}
