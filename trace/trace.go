// Package trace records the execution of a SAL run as a sequence of CBOR
// encoded steps, one per instruction the affect gate judged.
package trace

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/ezrec/sal/cpu"
)

// cborEncMode is canonical, so identical runs produce identical traces.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("trace: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Step is the record of one judged instruction.
type Step struct {
	Pc         int    `cbor:"1,keyasint"`           // Program counter of the instruction.
	Word       uint8  `cbor:"2,keyasint"`           // Instruction word.
	Verdict    string `cbor:"3,keyasint"`           // Affect gate verdict.
	Credit     int32  `cbor:"4,keyasint"`           // Social credit after the gate.
	Irritation int32  `cbor:"5,keyasint"`           // Irritation after the gate.
	Next       int    `cbor:"6,keyasint,omitempty"` // Program counter after the instruction.
}

// String returns a one-line listing of the step.
func (step Step) String() string {
	return fmt.Sprintf("%03d: %02x %-22v %-7v credit=%d irritation=%d next=%d",
		step.Pc, step.Word, cpu.Code(step.Word), step.Verdict, step.Credit, step.Irritation, step.Next)
}

// Encoder writes steps to a stream.
type Encoder struct {
	enc *cbor.Encoder
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: cborEncMode.NewEncoder(w)}
}

// Record writes a step.
func (e *Encoder) Record(step Step) error {
	if err := e.enc.Encode(step); err != nil {
		return fmt.Errorf("trace: encode step: %w", err)
	}
	return nil
}

// ReadAll decodes every step of a trace stream.
func ReadAll(r io.Reader) (steps []Step, err error) {
	dec := cbor.NewDecoder(r)
	for {
		var step Step
		err = dec.Decode(&step)
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			err = fmt.Errorf("trace: decode step %d: %w", len(steps), err)
			return
		}
		steps = append(steps, step)
	}
}
