// package common contains common types that are used throughout this toolkit. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// MouseEventType identifies the kind of pointer event being delivered.
type MouseEventType int

const (
	// MouseButtonDown is delivered when a mouse button is pressed.
	MouseButtonDown MouseEventType = iota

	// MouseButtonUp is delivered when a mouse button is released.
	MouseButtonUp

	// MouseMove is delivered for pointer movement with no button held.
	MouseMove

	// MouseDrag is delivered for pointer movement while a button is held.
	MouseDrag

	// MouseWheel is delivered for scroll wheel and trackpad scroll gestures.
	MouseWheel
)

// MouseButton identifies a mouse button as a bitmask value so that a set of
// held buttons can be tracked in a single int.
type MouseButton int

const (
	// MouseButtonNone means no button is associated with the event.
	MouseButtonNone MouseButton = 0

	// MouseButtonLeft is the primary button.
	MouseButtonLeft MouseButton = 1 << 0

	// MouseButtonMiddle is the wheel/middle button.
	MouseButtonMiddle MouseButton = 1 << 1

	// MouseButtonRight is the secondary button.
	MouseButtonRight MouseButton = 1 << 2
)

// Keyboard modifier bitmask values carried on mouse and key events.
const (
	ModShift = 1 << 0
	ModCtrl  = 1 << 1
	ModAlt   = 1 << 2
	ModMeta  = 1 << 3
)

// MouseEvent carries a single pointer event: button transitions, movement,
// drags, and wheel/trackpad scrolling. X and Y are pixel coordinates in the
// viewport's frame.
type MouseEvent struct {
	// Type is the kind of pointer event.
	Type MouseEventType

	// X is the pointer's horizontal pixel position.
	X int

	// Y is the pointer's vertical pixel position.
	Y int

	// Button is the button that changed for ButtonDown/ButtonUp events.
	Button MouseButton

	// Modifiers is the bitmask of held modifier keys (ModShift, ModCtrl, ModAlt, ModMeta).
	Modifiers int

	// WheelDX is the horizontal scroll delta for MouseWheel events.
	WheelDX float32

	// WheelDY is the vertical scroll delta for MouseWheel events.
	WheelDY float32

	// IsTrackpad distinguishes two-finger trackpad scrolling from discrete
	// wheel ticks; the two have different magnitude-to-distance mappings.
	IsTrackpad bool
}

// KeyEventType identifies a key transition.
type KeyEventType int

const (
	// KeyPress is delivered when a key is pressed.
	KeyPress KeyEventType = iota

	// KeyRelease is delivered when a key is released.
	KeyRelease
)

// KeyEvent carries a single keyboard event.
type KeyEvent struct {
	// Type is the key transition (down or up).
	Type KeyEventType

	// Key is the virtual key code (see key_codes.go).
	Key uint32
}

// TickEvent is delivered at the host's fixed tick rate. It carries no payload
// beyond the fact that a tick occurred; continuous fly-style motion integrates
// per tick rather than per wall-clock frame.
type TickEvent struct{}
