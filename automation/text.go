package automation

import (
	"unicode"
	"unicode/utf16"
)

// Offsets into accessible text are UTF-16 code units, the unit the browser
// reports word stops and selections in.

func codeUnits(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// UTF16Length returns the length of s in UTF-16 code units.
func UTF16Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// SliceUTF16 returns the text between the code unit offsets start and end,
// clamped to the bounds of s.
func SliceUTF16(s string, start, end int) string {
	units := codeUnits(s)
	if start < 0 {
		start = 0
	}
	if end > len(units) {
		end = len(units)
	}
	if start >= end {
		return ""
	}
	return string(utf16.Decode(units[start:end]))
}

// NextCodePointOffset returns the offset of the code point after the one at
// offset. Offsets before the text step to 0; offsets at or past the end
// return the length.
func NextCodePointOffset(s string, offset int) int {
	units := codeUnits(s)
	if offset >= len(units) {
		return len(units)
	}
	if offset >= 0 && offset+1 < len(units) && isPair(units[offset], units[offset+1]) {
		return offset + 2
	}
	return offset + 1
}

// PreviousCodePointOffset returns the offset of the code point before
// offset, or -1 when offset is at or before the start.
func PreviousCodePointOffset(s string, offset int) int {
	if offset <= 0 {
		return -1
	}
	units := codeUnits(s)
	if offset > len(units) {
		offset = len(units)
	}
	if offset > 1 && isPair(units[offset-2], units[offset-1]) {
		return offset - 2
	}
	return offset - 1
}

// isPair reports whether hi and lo form one surrogate pair.
func isPair(hi, lo uint16) bool {
	return utf16.DecodeRune(rune(hi), rune(lo)) != unicode.ReplacementChar
}

// Text returns the text a cursor indexes into: the value of a text field,
// the name of everything else.
func Text(n *Node) string {
	if n == nil {
		return ""
	}
	if n.Role == TextField {
		return n.Value
	}
	return n.Name
}
