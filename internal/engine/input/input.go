// Package input drains the SDL event queue once per frame and hands
// the loop a flat slice of typed events.
package input

import "github.com/veandco/go-sdl2/sdl"

// EventType tags an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseDown
	EventMouseUp
	EventMouseMove
)

// Event is one processed SDL event. Only the fields for its type are
// set.
type Event struct {
	Type EventType

	// EventKeyDown.
	Key sdl.Scancode

	// EventWindowResize, in screen coordinates.
	Width  int
	Height int

	// Mouse events. RelX and RelY carry the motion delta.
	MouseX, MouseY int
	RelX, RelY     int
	Button         uint8
}

// Input accumulates the events drained by Update. The backing slice is
// reused across frames.
type Input struct {
	events []Event
}

func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update drains the SDL queue. It reports true when the OS asked the
// application to quit.
func (in *Input) Update() bool {
	in.events = in.events[:0]

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			in.events = append(in.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			// SIZE_CHANGED fires for user and programmatic resizes,
			// RESIZED only for the former.
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				in.events = append(in.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			// Key-up and held-key repeats are dropped; every bound
			// key is a toggle.
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			in.events = append(in.events, Event{
				Type: EventKeyDown,
				Key:  e.Keysym.Scancode,
			})

		case *sdl.MouseMotionEvent:
			in.events = append(in.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				RelX:   int(e.XRel),
				RelY:   int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			t := EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				t = EventMouseUp
			}
			in.events = append(in.events, Event{
				Type:   t,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			})
		}
	}
	return false
}

// Events returns the events drained by the last Update, valid until
// the next Update.
func (in *Input) Events() []Event {
	return in.events
}
