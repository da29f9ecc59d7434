package modem

import (
	"reflect"
	"testing"
)

func TestPCM16LE(t *testing.T) {
	samples := []int16{0, 1, -1, 258, -2, Amplitude, -Amplitude}
	expected := []byte{
		0x00, 0x00,
		0x01, 0x00,
		0xFF, 0xFF,
		0x02, 0x01,
		0xFE, 0xFF,
		0xFF, 0x7F,
		0x01, 0x80,
	}

	got := PCM16LE(samples)
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected % x, got % x", expected, got)
	}
	if back := FromPCM16LE(got); !reflect.DeepEqual(back, samples) {
		t.Errorf("expected %v, got %v", samples, back)
	}
}

func TestPCM16LEMatchesByteFormula(t *testing.T) {
	tone := ToneConfig{Freq: 440, Duration: 0.01, SampleRate: 44100}.New()
	data := PCM16LE(tone)
	for i, v := range tone {
		if data[2*i] != byte(v&0xFF) || data[2*i+1] != byte((v>>8)&0xFF) {
			t.Fatalf("sample %d (%d) encoded as % x", i, v, data[2*i:2*i+2])
		}
	}
}
