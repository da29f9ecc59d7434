package modem

import "math"

// Amplitude is the peak value of a tone sample.
const Amplitude = math.MaxInt16

type ToneConfig struct {
	Freq       float64
	Duration   float64 // seconds
	SampleRate float64
}

func (p ToneConfig) New() []int16 {
	n := SampleCount(p.Duration, p.SampleRate)
	signal := make([]int16, n)
	for i := range n {
		angle := 2 * math.Pi * float64(i) * p.Freq / p.SampleRate
		signal[i] = int16(math.Round(math.Sin(angle) * Amplitude))
	}
	return signal
}

func Silence(duration, sampleRate float64) []int16 {
	return make([]int16, SampleCount(duration, sampleRate))
}

// MaxSegmentSamples bounds a single tone or silence buffer, about 25 minutes
// at 44100 Hz.
const MaxSegmentSamples = 1 << 26

// SampleCount is floor(duration * sampleRate), clamped to
// [0, MaxSegmentSamples].
func SampleCount(duration, sampleRate float64) int {
	n := math.Floor(duration * sampleRate)
	switch {
	case !(n > 0):
		return 0
	case n >= MaxSegmentSamples:
		return MaxSegmentSamples
	}
	return int(n)
}
