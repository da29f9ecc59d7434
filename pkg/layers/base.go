package layers

// Transmitter sends one text message as audio.
type Transmitter interface {
	Transmit(message string) error
}
