package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/portfolio-room/internal/engine/input"
)

var keymap = map[sdl.Keycode]input.Key{
	sdl.K_ESCAPE:    input.KeyEscape,
	sdl.K_BACKSPACE: input.KeyBackspace,
	sdl.K_RETURN:    input.KeyEnter,
	sdl.K_n:         input.KeyN,
	sdl.K_h:         input.KeyH,
	sdl.K_F11:       input.KeyF11,
	sdl.K_F12:       input.KeyF12,
}

// translate converts an SDL event to an input event. Touch coordinates arrive
// normalised and are scaled to the window size. Mouse events synthesised from touches
// are dropped so a tap is not seen twice.
func translate(ev sdl.Event, width, height int) (input.Event, bool) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			return input.Event{Type: input.EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_LEAVE, sdl.WINDOWEVENT_FOCUS_LOST:
			return input.Event{Type: input.EventPointerLeave}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return input.Event{}, false
		}
		key, ok := keymap[e.Keysym.Sym]
		if !ok {
			key = input.KeyUnknown
		}
		t := input.EventKeyDown
		if e.Type == sdl.KEYUP {
			t = input.EventKeyUp
		}
		return input.Event{Type: t, Key: key}, true

	case *sdl.MouseMotionEvent:
		if e.Which == sdl.TOUCH_MOUSEID {
			return input.Event{}, false
		}
		return input.Event{Type: input.EventMouseMove, MouseX: float32(e.X), MouseY: float32(e.Y)}, true

	case *sdl.MouseButtonEvent:
		if e.Which == sdl.TOUCH_MOUSEID {
			return input.Event{}, false
		}
		t := input.EventMouseDown
		if e.Type == sdl.MOUSEBUTTONUP {
			t = input.EventMouseUp
		}
		return input.Event{Type: t, Button: e.Button, MouseX: float32(e.X), MouseY: float32(e.Y)}, true

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		return input.Event{Type: input.EventWheel, WheelY: y}, true

	case *sdl.TouchFingerEvent:
		var t input.EventType
		switch e.Type {
		case sdl.FINGERDOWN:
			t = input.EventTouchStart
		case sdl.FINGERMOTION:
			t = input.EventTouchMove
		case sdl.FINGERUP:
			t = input.EventTouchEnd
		default:
			return input.Event{}, false
		}
		return input.Event{
			Type:    t,
			TouchID: int64(e.FingerID),
			MouseX:  e.X * float32(width),
			MouseY:  e.Y * float32(height),
		}, true
	}
	return input.Event{}, false
}
