package modem

import (
	"fmt"
	"strings"
)

// Bits is an ordered bit sequence, most significant bit first within each
// character.
type Bits []bool

// ParseBits reads a string of '0' and '1'. Spaces are ignored so that
// grouped forms like "01101011 01100101" are accepted.
func ParseBits(s string) (Bits, error) {
	bits := make(Bits, 0, len(s))
	for i, c := range s {
		switch c {
		case '0':
			bits = append(bits, false)
		case '1':
			bits = append(bits, true)
		case ' ':
		default:
			return nil, fmt.Errorf("invalid bit %q at %d", c, i)
		}
	}
	return bits, nil
}

func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Bytes packs every complete group of 8 bits back into a byte. A trailing
// partial group is dropped.
func (b Bits) Bytes() []byte {
	out := make([]byte, 0, len(b)/8)
	for i := 0; i+8 <= len(b); i += 8 {
		var v byte
		for j := 0; j < 8; j++ {
			if b[i+j] {
				v |= 1 << (7 - j)
			}
		}
		out = append(out, v)
	}
	return out
}

// Count returns the number of zero and one bits.
func (b Bits) Count() (zeros, ones int) {
	for _, bit := range b {
		if bit {
			ones++
		} else {
			zeros++
		}
	}
	return
}

func appendByte(bits Bits, v byte) Bits {
	for i := 7; i >= 0; i-- {
		bits = append(bits, (v>>i)&1 == 1)
	}
	return bits
}
