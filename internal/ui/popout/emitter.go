package popout

// Event names emitted by a Popout.
type Event string

const (
	EventInitialised Event = "initialised"
	EventClosed      Event = "closed"
)

type subscriber struct {
	id int
	fn func()
}

// emitter is a minimal synchronous publish/subscribe list. Main-loop only.
type emitter struct {
	next     int
	handlers map[Event][]subscriber
}

func newEmitter() *emitter {
	return &emitter{handlers: make(map[Event][]subscriber)}
}

func (e *emitter) on(event Event, fn func()) func() {
	if fn == nil {
		return func() {}
	}
	e.next++
	id := e.next
	e.handlers[event] = append(e.handlers[event], subscriber{id: id, fn: fn})
	return func() { e.off(event, id) }
}

func (e *emitter) off(event Event, id int) {
	subs := e.handlers[event]
	for i, s := range subs {
		if s.id == id {
			e.handlers[event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// emit calls handlers in subscription order. Handlers added while emitting
// wait for the next emit.
func (e *emitter) emit(event Event) {
	subs := append([]subscriber(nil), e.handlers[event]...)
	for _, s := range subs {
		s.fn()
	}
}
