package affect

import (
	"errors"

	"github.com/ezrec/sal/translate"
)

var f = translate.From

// ErrFatal is matched by every fatal affect breach.
var ErrFatal = errors.New(f("fatal affect breach"))

// ErrBreach is a fatal affect breach with its own reason.
type ErrBreach string

func (eb ErrBreach) Error() string {
	return f("%v: %v", ErrFatal, string(eb))
}

func (eb ErrBreach) Is(err error) bool {
	return err == ErrFatal
}

var (
	ErrIrritated  = ErrBreach(f("done with your attitude"))
	ErrSnivelling = ErrBreach(f("left over strongly polite requests"))
	ErrInsulted   = ErrBreach(f("refused a strongly demanding request"))
)
