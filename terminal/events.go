package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ballfall/core"
	"github.com/lixenwraith/ballfall/input"
)

// EventSource pumps screen events on a background goroutine and hands them to the loop on Poll
type EventSource struct {
	screen tcell.Screen

	mu      sync.Mutex
	pending []input.Event
	done    chan struct{}
}

// NewEventSource starts polling screen; the pump ends when the screen is finalized
func NewEventSource(screen tcell.Screen) *EventSource {
	es := &EventSource{
		screen:  screen,
		pending: make([]input.Event, 0, 16),
		done:    make(chan struct{}),
	}
	core.Go(es.pump)
	return es
}

func (es *EventSource) pump() {
	defer close(es.done)
	for {
		ev := es.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		translated, ok := Translate(ev)
		if !ok {
			continue
		}
		es.mu.Lock()
		es.pending = append(es.pending, translated)
		es.mu.Unlock()
	}
}

// Poll returns the events gathered since the previous call without blocking
func (es *EventSource) Poll() []input.Event {
	es.mu.Lock()
	defer es.mu.Unlock()
	if len(es.pending) == 0 {
		return nil
	}
	out := make([]input.Event, len(es.pending))
	copy(out, es.pending)
	es.pending = es.pending[:0]
	return out
}

// Done is closed once the pump goroutine exits
func (es *EventSource) Done() <-chan struct{} {
	return es.done
}

// Translate maps a tcell event to an input event; events the loop ignores report false
// Ctrl-C is treated as a close request
func Translate(ev tcell.Event) (input.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return input.Event{Kind: input.EventClose}, true
		case tcell.KeyEscape:
			return input.Event{Kind: input.EventKey, Key: input.KeyEscape}, true
		case tcell.KeyEnter:
			return input.Event{Kind: input.EventKey, Key: input.KeyEnter}, true
		case tcell.KeyRune:
			return input.Event{Kind: input.EventKey, Key: input.KeyRune, Rune: ev.Rune()}, true
		default:
			return input.Event{Kind: input.EventKey, Key: input.KeyOther}, true
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		return input.Event{Kind: input.EventResize, Width: w, Height: h}, true
	}
	return input.Event{}, false
}
