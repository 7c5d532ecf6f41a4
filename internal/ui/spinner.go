package ui

import (
	"fmt"
	"io"
	"time"
)

// spinnerFrames is the classic rotating stick.
const spinnerFrames = `-\|/`

// Spinner cycles through a fixed frame sequence. It is a plain value with
// no internal locking: the loop that displays it owns the state.
type Spinner struct {
	pos int
}

// Next returns the next frame in the cycle.
func (s *Spinner) Next() byte {
	s.pos = (s.pos + 1) % len(spinnerFrames)
	return spinnerFrames[s.pos]
}

// Spin writes the animation to w every interval until stop is closed,
// then erases it. Run it in its own goroutine while a stage is waiting on
// network work.
func Spin(w io.Writer, interval time.Duration, stop <-chan struct{}) {
	var s Spinner
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			fmt.Fprint(w, "\r \r")
			return
		case <-ticker.C:
			fmt.Fprintf(w, "\r%c ", s.Next())
		}
	}
}
