package modem

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestEncodeKek(t *testing.T) {
	bits, err := TextToBits("kek")
	require.NoError(t, err)
	assert.Equal(t, "011010110110010101101011", bits.String())
	assert.Len(t, bits, 24)
}

func TestEncodeLength(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for range 100 {
		n := rng.Intn(64)
		var sb strings.Builder
		for range n {
			sb.WriteByte(byte(rng.Intn(128)))
		}
		text := sb.String()

		bits, err := TextToBits(text)
		require.NoError(t, err)
		assert.Len(t, bits, 8*len(text))
		assert.Equal(t, []byte(text), bits.Bytes())
	}
}

func TestEncodeEveryByte(t *testing.T) {
	for c := 0; c <= 0xFF; c++ {
		bits, err := TextToBits(string(rune(c)))
		require.NoError(t, err)
		require.Len(t, bits, BitsPerChar)

		v := 0
		for _, bit := range bits {
			v <<= 1
			if bit {
				v |= 1
			}
		}
		if v != c {
			t.Errorf("code point %d encoded as %s", c, bits)
		}
	}
}

func TestEncodeEmpty(t *testing.T) {
	bits, err := TextToBits("")
	require.NoError(t, err)
	assert.Empty(t, bits)
}

func TestEncodeWidthPolicy(t *testing.T) {
	tests := []struct {
		name     string
		policy   WidthPolicy
		text     string
		expected string
		overflow bool
	}{
		{"Reject wide rune", WidthReject, "aЖ", "", true},
		{"Truncate wide rune", WidthTruncate, "Ж", "00010110", false}, // U+0416
		{"Latin-1 accepted", WidthReject, "é", "11101001", false},
		{"Invalid UTF-8 rejected", WidthReject, "\xff", "", true},
		{"Invalid UTF-8 truncated", WidthTruncate, "\xff", "11111101", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits, err := Encoder{Policy: tt.policy}.Encode(tt.text)
			if tt.overflow {
				assert.True(t, errors.Is(err, ErrEncodingOverflow), "expected overflow, got %v", err)
				assert.Nil(t, bits)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, bits.String())
		})
	}
}

func TestParseWidthPolicy(t *testing.T) {
	for _, s := range []string{"", "reject", "Reject"} {
		p, err := ParseWidthPolicy(s)
		assert.NoError(t, err)
		assert.Equal(t, WidthReject, p)
	}
	p, err := ParseWidthPolicy("truncate")
	assert.NoError(t, err)
	assert.Equal(t, WidthTruncate, p)
	assert.Equal(t, "truncate", p.String())

	_, err = ParseWidthPolicy("widen")
	assert.Error(t, err)
}
