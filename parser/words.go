package parser

import (
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/heathj/govox/automation"
)

// wordStops segments text on Unicode word boundaries (UAX #29) and returns
// the UTF-16 start and end offsets of every segment holding a letter or a
// digit.
func wordStops(text string) (starts, ends []int) {
	state := -1
	offset := 0
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		n := automation.UTF16Length(word)
		if isWord(word) {
			starts = append(starts, offset)
			ends = append(ends, offset+n)
		}
		offset += n
	}
	return starts, ends
}

func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
