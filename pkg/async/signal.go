package async

// Signal is a wakeup channel holding at most one pending notification.
// Notify never blocks, so it is safe to call from an audio callback.
type Signal chan struct{}

func NewSignal() Signal {
	return make(Signal, 1)
}

func (s Signal) Notify() bool {
	select {
	case s <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s Signal) Wait() <-chan struct{} {
	return s
}
