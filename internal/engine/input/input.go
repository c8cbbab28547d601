// Package input defines window-independent input events and a listener registry.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventWheel
	EventTouchStart
	EventTouchMove
	EventTouchEnd
	// EventPointerLeave fires when the pointer leaves the window or the window loses focus.
	EventPointerLeave
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventWindowResize:
		return "resize"
	case EventKeyDown:
		return "keydown"
	case EventKeyUp:
		return "keyup"
	case EventMouseMove:
		return "mousemove"
	case EventMouseDown:
		return "mousedown"
	case EventMouseUp:
		return "mouseup"
	case EventWheel:
		return "wheel"
	case EventTouchStart:
		return "touchstart"
	case EventTouchMove:
		return "touchmove"
	case EventTouchEnd:
		return "touchend"
	case EventPointerLeave:
		return "pointerleave"
	default:
		return "none"
	}
}

// Key is a layout-independent key identifier.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyBackspace
	KeyEnter
	KeyN
	KeyH
	KeyF11
	KeyF12
)

// Cursor is the pointer shape shown over the surface.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
)

func (c Cursor) String() string {
	if c == CursorPointer {
		return "pointer"
	}
	return "default"
}

// Mouse buttons.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event represents a processed input event. Pointer and touch coordinates are window
// pixels with the origin at the top left.
type Event struct {
	Type    EventType
	Key     Key
	Width   int
	Height  int
	MouseX  float32
	MouseY  float32
	Button  uint8
	WheelY  float32
	TouchID int64
}

// Handler receives dispatched events.
type Handler func(Event)

// ListenerID identifies a registered handler.
type ListenerID uint64

type listener struct {
	id      ListenerID
	typ     EventType
	handler Handler
}

// Dispatcher routes events to the handlers registered for their type. It is used from the
// main thread only.
type Dispatcher struct {
	next      ListenerID
	listeners []listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Add registers h for events of type t.
func (d *Dispatcher) Add(t EventType, h Handler) ListenerID {
	d.next++
	d.listeners = append(d.listeners, listener{id: d.next, typ: t, handler: h})
	return d.next
}

// Remove unregisters a handler. It reports whether the handler was registered.
func (d *Dispatcher) Remove(id ListenerID) bool {
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Count returns the number of registered handlers.
func (d *Dispatcher) Count() int {
	return len(d.listeners)
}

// Dispatch calls every handler registered for e.Type in registration order. Handlers
// added or removed during dispatch take effect for the next event.
func (d *Dispatcher) Dispatch(e Event) {
	snapshot := append([]listener(nil), d.listeners...)
	for _, l := range snapshot {
		if l.typ == e.Type && d.registered(l.id) {
			l.handler(e)
		}
	}
}

func (d *Dispatcher) registered(id ListenerID) bool {
	for _, l := range d.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

// Listeners groups registrations so an owner can drop all of them at once.
type Listeners struct {
	d   *Dispatcher
	ids []ListenerID
}

// NewListeners creates a registration group on d.
func NewListeners(d *Dispatcher) *Listeners {
	return &Listeners{d: d}
}

// On registers h for events of type t.
func (l *Listeners) On(t EventType, h Handler) {
	l.ids = append(l.ids, l.d.Add(t, h))
}

// RemoveAll unregisters every handler in the group.
func (l *Listeners) RemoveAll() {
	for _, id := range l.ids {
		l.d.Remove(id)
	}
	l.ids = nil
}

// Len returns the number of handlers still registered by the group.
func (l *Listeners) Len() int {
	return len(l.ids)
}
