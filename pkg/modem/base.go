package modem

// BitEncoder turns a text message into the bit sequence that is keyed
// onto the carrier.
type BitEncoder interface {
	Encode(text string) (Bits, error)
}
