package async

// Promise runs f in its own goroutine and delivers its result once. The
// channel is buffered so the goroutine never leaks when nobody reads it.
func Promise[R any](f func() R) <-chan R {
	out := make(chan R, 1)
	go func() {
		out <- f()
	}()
	return out
}
