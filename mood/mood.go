// Package mood provides the temperament a SAL run starts with.
//
// A Mood names one of eight Profiles: the numeric tolerances and deltas the
// affect gate judges every instruction against. The mood is normally chosen
// from the wall clock, so the same program behaves differently over the
// course of a day, but it may also be forced by name or loaded from a
// profile file.
package mood

import (
	"errors"
	"iter"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/ezrec/sal/internal"
	"github.com/ezrec/sal/translate"
)

var f = translate.From

var (
	ErrMoodUnknown = errors.New(f("unknown mood"))
)

// Mood is a named profile.
type Mood int

//go:generate go tool stringer -type=Mood
const (
	Bored = Mood(iota)
	Happy
	Sick
	Maniacal
	Angry
	Annoyed
	Lovestruck
	Confused

	MOOD_COUNT = 8
)

// Moods returns all of the moods, in selection order.
func Moods() []Mood {
	return []Mood{Bored, Happy, Sick, Maniacal, Angry, Annoyed, Lovestruck, Confused}
}

// Defines returns an assembler equate for each mood.
func Defines() iter.Seq2[string, string] {
	return internal.EnumDefines("MOOD", Moods()...)
}

// Profile is the numeric temperament of a run.
//
// Tolerances are compared against the magnitude of the social credit.
// Deltas are added to the social credit after each instruction of the
// matching tone.
type Profile struct {
	SmallTolerance  int32 `toml:"small" yaml:"small"`
	SmallClose      int32 `toml:"small-close" yaml:"small-close"`
	MediumTolerance int32 `toml:"medium" yaml:"medium"`
	MediumClose     int32 `toml:"medium-close" yaml:"medium-close"`
	LargeTolerance  int32 `toml:"large" yaml:"large"`
	LargeClose      int32 `toml:"large-close" yaml:"large-close"`

	PoliteDelta          int32 `toml:"polite" yaml:"polite"`
	PoliteStrongDelta    int32 `toml:"polite-strong" yaml:"polite-strong"`
	DemandingDelta       int32 `toml:"demanding" yaml:"demanding"`
	DemandingStrongDelta int32 `toml:"demanding-strong" yaml:"demanding-strong"`

	IrritationChange int32 `toml:"irritation-change" yaml:"irritation-change"`
	IrritationDecay  int32 `toml:"irritation-decay" yaml:"irritation-decay"`

	StartingCredit int32 `toml:"credit" yaml:"credit"`

	NoGain bool `toml:"no-gain" yaml:"no-gain"` // Social credit may never increase.
}

// DefaultProfile is the profile of a Bored run.
var DefaultProfile = Profile{
	SmallTolerance:  50,
	SmallClose:      25,
	MediumTolerance: 75,
	MediumClose:     50,
	LargeTolerance:  100,
	LargeClose:      75,

	PoliteDelta:          2,
	PoliteStrongDelta:    -5,
	DemandingDelta:       -2,
	DemandingStrongDelta: -5,

	IrritationChange: 5,
	IrritationDecay:  -1,
}

// Profile returns the profile of a mood.
func (mood Mood) Profile() (profile Profile) {
	profile = DefaultProfile

	switch mood {
	case Bored:
		// As is.
	case Happy:
		profile.StartingCredit = 50
		profile.SmallTolerance, profile.SmallClose = 75, 50
		profile.MediumTolerance, profile.MediumClose = 100, 75
		profile.LargeTolerance, profile.LargeClose = 125, 100
	case Sick:
		profile.StartingCredit = -25
		profile.PoliteStrongDelta = -7
		profile.DemandingDelta = -4
	case Maniacal:
		profile.IrritationDecay = 0
		profile.MediumClose = 0
		profile.NoGain = true
	case Angry:
		profile.DemandingDelta = -4
		profile.DemandingStrongDelta = -8
		profile.PoliteStrongDelta = -4
		profile.LargeTolerance, profile.LargeClose = 75, 50
	case Annoyed:
		profile.IrritationChange = 8
	case Lovestruck:
		profile.PoliteDelta = 5
		profile.PoliteStrongDelta = -2
		profile.StartingCredit = 25
		profile.SmallTolerance, profile.SmallClose = 100, 50
		profile.MediumTolerance, profile.MediumClose = 125, 75
		profile.LargeTolerance, profile.LargeClose = 150, 100
		profile.IrritationDecay = -2
	case Confused:
		profile.PoliteDelta = -2
		profile.PoliteStrongDelta = -4
		profile.DemandingDelta = 2
		profile.DemandingStrongDelta = 5
	}

	return
}

// Parse returns the mood with the given name, ignoring case.
func Parse(name string) (mood Mood, err error) {
	for _, mood = range Moods() {
		if strings.EqualFold(mood.String(), name) {
			return
		}
	}

	mood = Bored
	err = errors.Join(ErrMoodUnknown, errors.New(name))
	return
}

// Seed returns the selection seed for a moment: the UTC hour of the day
// times the UTC day of the year.
func Seed(now time.Time) uint64 {
	now = now.UTC()
	return uint64(now.Hour()) * uint64(now.YearDay())
}

// Random picks the mood for a moment. The choice is stable within an hour.
func Random(now time.Time) Mood {
	rng := rand.New(rand.NewPCG(Seed(now), 0))
	return Mood(rng.Uint64() % MOOD_COUNT)
}
