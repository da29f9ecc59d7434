package modem

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const BitsPerChar = 8

var ErrEncodingOverflow = errors.New("code point does not fit in 8 bits")

// WidthPolicy decides what happens to code points above 255.
type WidthPolicy int

const (
	WidthReject WidthPolicy = iota
	WidthTruncate
)

func (p WidthPolicy) String() string {
	switch p {
	case WidthReject:
		return "reject"
	case WidthTruncate:
		return "truncate"
	}
	return fmt.Sprintf("WidthPolicy(%d)", int(p))
}

func ParseWidthPolicy(s string) (WidthPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return WidthReject, nil
	case "truncate":
		return WidthTruncate, nil
	}
	return WidthReject, fmt.Errorf("unknown width policy %q", s)
}

// Encoder converts text to 8 bits per character. Invalid UTF-8 decodes to
// U+FFFD and is subject to the width policy like any other wide rune.
type Encoder struct {
	Policy WidthPolicy
}

func (e Encoder) Encode(text string) (Bits, error) {
	bits := make(Bits, 0, BitsPerChar*utf8.RuneCountInString(text))
	i := 0
	for _, r := range text {
		if r > 0xFF {
			if e.Policy != WidthTruncate {
				return nil, fmt.Errorf("character %d %q (U+%04X): %w", i, r, r, ErrEncodingOverflow)
			}
			r &= 0xFF
		}
		bits = appendByte(bits, byte(r))
		i++
	}
	return bits, nil
}

// TextToBits encodes with the default reject policy.
func TextToBits(text string) (Bits, error) {
	return Encoder{}.Encode(text)
}
