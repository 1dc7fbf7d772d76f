// Package input turns raw terminal bytes into the discrete control events
// the animation runner reacts to.
package input

import (
	"bufio"
)

// Key is a control key relevant to the animation runner.
type Key int

const (
	KeyQuit    Key = iota // q / Q / Ctrl-C
	KeyPause              // Space: toggle visibility (suspend/resume)
	KeyMotion             // m / M: toggle the reduced-motion preference
	KeyNext               // Tab / n: cycle to the next animation variant
	KeyVariant            // 1..9: select a variant directly
)

// Event is one decoded key press.
type Event struct {
	Key     Key
	Variant int // 1-based, set for KeyVariant
}

// Stream delivers input bytes via a channel so the runner can poll
// without blocking between frames.
type Stream struct {
	ch chan byte
}

// StartStream spawns a goroutine that reads from r and feeds the stream.
// The channel closes when the reader is exhausted (e.g. session closed).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Poll drains all available bytes (non-blocking) and decodes them into
// events. A closed stream yields a final KeyQuit.
func (s *Stream) Poll() []Event {
	var events []Event
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				return append(events, Event{Key: KeyQuit})
			}
			if ev, ok := decode(b); ok {
				events = append(events, ev)
			}
		default:
			return events
		}
	}
}

// decode maps a byte to a control event.
func decode(b byte) (Event, bool) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl-C
		return Event{Key: KeyQuit}, true
	case ' ':
		return Event{Key: KeyPause}, true
	case 'm', 'M':
		return Event{Key: KeyMotion}, true
	case '\t', 'n', 'N':
		return Event{Key: KeyNext}, true
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return Event{Key: KeyVariant, Variant: int(b - '0')}, true
	}
	return Event{}, false
}
