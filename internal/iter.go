package internal

import (
	"fmt"
	"iter"
	"strings"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}

// EnumDefines yields an assembler equate for each enumerated value, named
// PREFIX_NAME with the value's String() upper-cased and sanitized.
func EnumDefines[T interface {
	~int
	fmt.Stringer
}](prefix string, values ...T) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, value := range values {
			name := strings.Map(func(r rune) rune {
				switch {
				case r >= 'a' && r <= 'z':
					return r - 'a' + 'A'
				case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
					return r
				default:
					return '_'
				}
			}, value.String())
			if !yield(prefix+"_"+name, fmt.Sprintf("%d", int(value))) {
				return
			}
		}
	}
}
