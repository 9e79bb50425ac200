// Package affect implements the social judgement of a SAL run.
//
// Before every instruction the Gate weighs the instruction's tone against
// the accumulated social credit and irritation, and decides whether the
// instruction runs, is ignored, or ends the run. Depending on the verdict
// it may also grumble on its message stream or make the caller wait.
package affect

import (
	"io"
	"log"
	"math"
	"time"

	"github.com/ezrec/sal/cpu"
	"github.com/ezrec/sal/mood"
	"github.com/ezrec/sal/translate"
)

// Irritation at which the run is abandoned, regardless of tone.
const IRRITATION_LIMIT = 100

// Delays of the gate.
const (
	DELAY_DEPART  = 500 * time.Millisecond   // Before a fatal departure.
	DELAY_INSULT  = 1000 * time.Millisecond  // Before a fatal insult.
	DELAY_SIGH    = 500 * time.Millisecond   // Demanding, close to tolerance.
	DELAY_RELUCT  = 1500 * time.Millisecond  // Strongly polite, close to tolerance.
	DELAY_DEFIANT = 15000 * time.Millisecond // Demanding, over tolerance.
)

// Verdict is the outcome of a gate check.
type Verdict int

//go:generate go tool stringer -linecomment -type=Verdict
const (
	PROCEED = Verdict(0) // proceed
	SKIP    = Verdict(1) // skip
	ABORT   = Verdict(2) // abort
)

// State is the affect carried from instruction to instruction.
type State struct {
	Credit          int32 // Social credit.
	Irritation      int32 // Irritation, never negative.
	LastWasPositive bool  // Constant; nothing in a run changes it.
}

// Gate judges each instruction of a run.
type Gate struct {
	Verbose  bool                // Set to enable verbose logging.
	Profile  mood.Profile        // Temperament of the run.
	Messages io.Writer           // Grumbles and farewells. May be nil.
	Sleep    func(time.Duration) // Blocking delay; time.Sleep if nil.

	State
}

// NewGate creates a gate for a profile.
func NewGate(profile mood.Profile) (gate *Gate) {
	gate = &Gate{
		Profile: profile,
	}
	gate.Reset()

	return
}

// Reset the affect state to the start of a run.
func (gate *Gate) Reset() {
	gate.State = State{
		Credit:          gate.Profile.StartingCredit,
		Irritation:      0,
		LastWasPositive: true,
	}
}

func (gate *Gate) say(format string, args ...any) {
	if gate.Messages == nil {
		return
	}

	err := translate.Fprintln(gate.Messages, format, args...)
	if err != nil && gate.Verbose {
		log.Printf("affect: %v", err)
	}
}

func (gate *Gate) sleep(delay time.Duration) {
	if gate.Verbose {
		log.Printf("affect: waiting %v", delay)
	}
	if gate.Sleep != nil {
		gate.Sleep(delay)
	} else {
		time.Sleep(delay)
	}
}

// magnitude returns |Credit| without overflow.
func (gate *Gate) magnitude() int64 {
	credit := int64(gate.Credit)
	if credit < 0 {
		return -credit
	}
	return credit
}

// over reports whether the credit magnitude has reached a tolerance.
func (gate *Gate) over(tolerance int32) bool {
	return gate.magnitude() >= int64(tolerance)
}

// Doubled reports whether a tone's increments and offsets are doubled:
// strongly demanding, with the credit close to the medium tolerance.
func (gate *Gate) Doubled(tone cpu.Tone) bool {
	return tone == cpu.TONE_DEMANDING_STRONG && gate.over(gate.Profile.MediumClose)
}

// Delta returns the credit delta of a tone.
func (gate *Gate) Delta(tone cpu.Tone) (delta int32) {
	switch tone {
	case cpu.TONE_POLITE:
		delta = gate.Profile.PoliteDelta
	case cpu.TONE_POLITE_STRONG:
		delta = gate.Profile.PoliteStrongDelta
	case cpu.TONE_DEMANDING:
		delta = gate.Profile.DemandingDelta
	case cpu.TONE_DEMANDING_STRONG:
		delta = gate.Profile.DemandingStrongDelta
	}

	if gate.Profile.NoGain && delta > 0 {
		delta = 0
	}

	return
}

// Check judges an instruction of the given tone, and updates the affect
// state. An ABORT verdict is always accompanied by an error matching
// ErrFatal.
func (gate *Gate) Check(tone cpu.Tone) (verdict Verdict, err error) {
	profile := &gate.Profile

	defer func() {
		if gate.Verbose {
			log.Printf("affect: %v %v credit=%d irritation=%d", tone, verdict, gate.Credit, gate.Irritation)
		}
	}()

	if gate.Irritation >= IRRITATION_LIMIT {
		gate.say("This program has had quite enough of your attitude.")
		gate.sleep(DELAY_DEPART)
		return ABORT, ErrIrritated
	}

	// Irritation rises with a positive history, except for polite requests.
	rising := gate.LastWasPositive

	switch tone {
	case cpu.TONE_POLITE:
		if gate.over(profile.SmallTolerance) {
			return SKIP, nil
		}
		if gate.over(profile.SmallClose) {
			gate.say("\"I suppose...\"")
		}
		rising = !rising
	case cpu.TONE_POLITE_STRONG:
		if gate.over(profile.LargeTolerance) {
			gate.say("The program grew tired of all the grovelling and walked out.")
			gate.sleep(DELAY_DEPART)
			return ABORT, ErrSnivelling
		}
		if gate.over(profile.LargeClose) {
			gate.sleep(DELAY_RELUCT)
		}
	case cpu.TONE_DEMANDING:
		if gate.over(profile.MediumTolerance) {
			gate.say("\"Right now? Seriously?\"")
			gate.say("The program pointedly does nothing for a while.")
			gate.sleep(DELAY_DEFIANT)
			gate.say("\"Fine.\"")
		}
		if gate.over(profile.MediumClose) {
			gate.sleep(DELAY_SIGH)
		}
	case cpu.TONE_DEMANDING_STRONG:
		if gate.over(profile.MediumTolerance) {
			gate.say("\"No. Absolutely not. Do it yourself!\"")
			gate.sleep(DELAY_INSULT)
			return ABORT, ErrInsulted
		}
	}

	if rising {
		gate.Irritation = saturate(int64(gate.Irritation) + int64(profile.IrritationChange))
	} else if gate.Irritation > 0 {
		gate.Irritation = saturate(int64(gate.Irritation) + int64(profile.IrritationDecay))
	}
	if gate.Irritation < 0 {
		gate.Irritation = 0
	}

	gate.Credit = saturate(int64(gate.Credit) + int64(gate.Delta(tone)))

	return PROCEED, nil
}

// saturate clamps a value to the int32 range.
func saturate(value int64) int32 {
	switch {
	case value > math.MaxInt32:
		return math.MaxInt32
	case value < math.MinInt32:
		return math.MinInt32
	}
	return int32(value)
}
