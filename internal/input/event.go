package input

import "fmt"

// RawKey is a key identifier as reported by the host library.
type RawKey int32

// HostEvent is one decoded host event. The set of implementations is closed:
// KeyDown, KeyUp, Quit and Other.
type HostEvent interface {
	hostEvent()
}

// KeyDown is a host key press.
type KeyDown struct{ Raw RawKey }

// KeyUp is a host key release.
type KeyUp struct{ Raw RawKey }

// Quit is the host's request to end the session (window closed, interrupt).
type Quit struct{}

// Other is any host event this layer does not forward.
type Other struct{}

func (KeyDown) hostEvent() {}
func (KeyUp) hostEvent()   {}
func (Quit) hostEvent()    {}
func (Other) hostEvent()   {}

// Kind tells whether an Event is a press or a release.
type Kind uint8

const (
	KeyDownEvent Kind = iota
	KeyUpEvent
)

func (k Kind) String() string {
	switch k {
	case KeyDownEvent:
		return "keydown"
	case KeyUpEvent:
		return "keyup"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Event is a normalized input event handed to the engine.
type Event struct {
	Kind Kind
	Code Key
}

func (e Event) String() string {
	return e.Kind.String() + " " + e.Code.String()
}

// Normalize converts a key press or release into an Event using km.
// Quit and Other yield ok false.
func Normalize(ev HostEvent, km Keymap) (Event, bool) {
	switch e := ev.(type) {
	case KeyDown:
		return Event{Kind: KeyDownEvent, Code: km.Translate(e.Raw)}, true
	case KeyUp:
		return Event{Kind: KeyUpEvent, Code: km.Translate(e.Raw)}, true
	}
	return Event{}, false
}
