package device

import "encoding/binary"

// s16ToI32 widens little-endian s16 PCM into the int32 full-scale samples
// ASIO drivers expect.
func s16ToI32(out []int32, in []byte) {
	for i := range out {
		if 2*i+1 >= len(in) {
			out[i] = 0
			continue
		}
		out[i] = int32(int16(binary.LittleEndian.Uint16(in[2*i:]))) << 16
	}
}

func allocBytes(frames int, format Format) []byte {
	return make([]byte, frames*format.FrameSize())
}
