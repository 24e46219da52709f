package input

// Source is a host event queue. Poll never blocks: it returns ok false as soon
// as nothing is pending.
type Source interface {
	Poll() (HostEvent, bool)
}

// Sink receives normalized events, e.g. the engine's event queue.
type Sink interface {
	Post(Event)
}

// Drain polls src until it is empty, posting every key press and release to
// sink. It stops at the first Quit and reports it; events queued behind the
// quit are left unread. Other events are dropped.
func Drain(src Source, km Keymap, sink Sink) (posted int, quit bool) {
	for {
		ev, ok := src.Poll()
		if !ok {
			return posted, false
		}
		if _, isQuit := ev.(Quit); isQuit {
			return posted, true
		}
		if e, ok := Normalize(ev, km); ok {
			sink.Post(e)
			posted++
		}
	}
}
