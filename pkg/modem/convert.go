package modem

import "encoding/binary"

// PCM16LE serializes samples as signed 16-bit little-endian PCM.
func PCM16LE(samples []int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

// FromPCM16LE is the inverse of PCM16LE. An odd trailing byte is ignored.
func FromPCM16LE(data []byte) []int16 {
	out := make([]int16, len(data)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}
	return out
}
