package internal

import (
	"maps"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

type color int

func (c color) String() string {
	return [...]string{"red", "dark-blue"}[c]
}

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := maps.All(map[string]int{"a": 1})
	b := maps.All(map[string]int{"b": 2, "c": 3})

	all := maps.Collect(IterSeq2Concat(a, b))
	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, all)

	count := 0
	for range IterSeq2Concat(a, b) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestEnumDefines(t *testing.T) {
	assert := assert.New(t)

	defs := maps.Collect(EnumDefines("COLOR", color(0), color(1)))
	assert.Equal(map[string]string{
		"COLOR_RED":       "0",
		"COLOR_DARK_BLUE": strconv.Itoa(1),
	}, defs)
}
