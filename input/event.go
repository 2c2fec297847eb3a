package input

import "sync"

// EventKind classifies an input event
type EventKind uint8

const (
	EventKey EventKind = iota
	EventClose
	EventResize
)

// Key identifies a non-printable key; printable keys use KeyRune with Rune set
type Key uint16

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyOther
)

// Event is a windowing-independent input event
type Event struct {
	Kind EventKind
	Key  Key
	Rune rune

	// Width and Height are set for EventResize
	Width, Height int
}

// Source supplies the events gathered since the previous poll without blocking
type Source interface {
	Poll() []Event
}

// QuitKey is the designated key that ends the run loop
const QuitKey = KeyEscape

// Toggle keys
const (
	PauseRune = 'p' // simulation clock
	MuteRune  = 'm' // impact sounds
)

// PauseToggles counts presses of PauseRune among events
func PauseToggles(events []Event) int {
	return runePresses(events, PauseRune)
}

// MuteToggles counts presses of MuteRune among events
func MuteToggles(events []Event) int {
	return runePresses(events, MuteRune)
}

func runePresses(events []Event, r rune) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == EventKey && ev.Key == KeyRune && ev.Rune == r {
			n++
		}
	}
	return n
}

// QuitRequested reports whether the events ask the loop to stop:
// a close event or a press of QuitKey
func QuitRequested(events []Event) bool {
	for _, ev := range events {
		switch ev.Kind {
		case EventClose:
			return true
		case EventKey:
			if ev.Key == QuitKey {
				return true
			}
		}
	}
	return false
}

// Queue is a Source fed programmatically, used by headless runs and tests
type Queue struct {
	mu      sync.Mutex
	pending []Event
}

// Push appends events for the next poll
func (q *Queue) Push(events ...Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, events...)
}

// Poll returns and clears the pending events
func (q *Queue) Poll() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}
