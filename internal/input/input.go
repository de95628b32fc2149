package input

import (
	"context"
	"io"
	"time"
)

// DefaultHoldDuration is how long a key is considered "held" after its last press.
const DefaultHoldDuration = 200 * time.Millisecond

// trackedKeys are the keys whose held state is synthesised from key repeat.
var trackedKeys = [...]Key{KeyLeft, KeyRight, KeyThrust, KeyFire}

// Stream decodes terminal bytes into key events. Terminals only send bytes
// while a key repeats, so a key counts as held until hold has passed since
// its last byte, and the release event is synthesised then.
type Stream struct {
	ch   chan byte
	done chan struct{}
	hold time.Duration

	lastSeen [len(trackedKeys)]time.Time
	held     [len(trackedKeys)]bool
	pending  []byte // Partial escape sequence carried to the next poll
	closed   bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream. The goroutine stops at the first read error or, once ctx is done,
// at the next byte it cannot hand over.
func StartStream(ctx context.Context, r io.ByteReader, hold time.Duration) *Stream {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	s := &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
		hold: hold,
	}
	go func() {
		defer close(s.done)
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-ctx.Done():
				return
			}
		}
	}()
	return s
}

// Done is closed once the reader goroutine has exited.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Closed returns true once the reader has failed or hit EOF.
func (s *Stream) Closed() bool {
	return s.closed
}

// Poll drains all available bytes (non-blocking) and returns the press and
// release transitions they cause at time now. A quit key yields a KeyQuit press.
func (s *Stream) Poll(now time.Time) []Event {
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var events []Event
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' {
			if i+1 >= len(buf) || (buf[i+1] == '[' && i+2 >= len(buf)) {
				if !s.closed {
					s.pending = append(s.pending, buf[i:]...)
				}
				break
			}
			if buf[i+1] == '[' {
				switch buf[i+2] {
				case 'A': // Up arrow
					s.touch(KeyThrust, now)
				case 'C': // Right arrow
					s.touch(KeyRight, now)
				case 'D': // Left arrow
					s.touch(KeyLeft, now)
				}
				i += 2
				continue
			}
		}

		switch b {
		case 'q', 'Q', 0x03: // q or Ctrl-C
			events = append(events, Event{Key: KeyQuit, Pressed: true})
		case 'a', 'A', 'h', 'H':
			s.touch(KeyLeft, now)
		case 'd', 'D', 'l', 'L':
			s.touch(KeyRight, now)
		case 'w', 'W', 'k', 'K':
			s.touch(KeyThrust, now)
		case ' ':
			s.touch(KeyFire, now)
		}
	}

	for i, key := range trackedKeys {
		held := now.Sub(s.lastSeen[i]) < s.hold
		if held != s.held[i] {
			s.held[i] = held
			events = append(events, Event{Key: key, Pressed: held})
		}
	}
	return events
}

func (s *Stream) touch(key Key, now time.Time) {
	for i, k := range trackedKeys {
		if k == key {
			s.lastSeen[i] = now
			return
		}
	}
}

// Pump polls the stream until ctx is done or the reader closes, applying key
// events to c. quit is called once on a quit key or a closed reader.
func (s *Stream) Pump(ctx context.Context, c *Controls, quit func()) {
	ticker := time.NewTicker(s.hold / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, ev := range s.Poll(now) {
				if ev.Key == KeyQuit {
					quit()
					return
				}
				c.Apply(ev)
			}
			if s.closed {
				quit()
				return
			}
		}
	}
}
