package cellterm

// EventKind tags the active field of an Event.
type EventKind uint8

const (
	EventKeyPress EventKind = iota
	EventKeyRelease
	EventMouse
	EventMouseEnter
	EventMouseLeave
	EventFocusIn
	EventFocusOut
	EventPasteStart
	EventPasteEnd
	EventWinsize
	EventTick
	EventInit
	EventUser
)

// Event is a tagged union of everything the input parser, the loop, or an
// application can push onto the EventQueue. Only the field matching Kind
// is meaningful.
type Event struct {
	Kind EventKind

	Key   Key
	Mouse Mouse

	// There is no dedicated paste field: pasted text arriving between
	// EventPasteStart and EventPasteEnd is delivered as EventKeyPress
	// events in Key, with Key.Text set.
	Winsize WinsizeEvent
	Tick    TickEvent
	User    any
}

// WinsizeEvent carries a terminal resize notification.
type WinsizeEvent struct {
	Cols, Rows     int
	PixelW, PixelH int
}

// TickEvent carries a fired timer's identity back to its target widget.
type TickEvent struct {
	DeadlineMS int64
	Widget     WidgetID
}

// Modifier is a bitset of keyboard/mouse modifier keys.
type Modifier uint16

const (
	ModShift Modifier = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
	ModHyper
	ModMeta
	ModCapsLock
	ModNumLock
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// Key is a single recognized key event.
type Key struct {
	Codepoint        rune
	BaseCodepoint    rune
	ShiftedCodepoint rune
	Modifiers        Modifier
	Text             []byte // interned UTF-8 grapheme, optional
	IsRelease        bool   // Kitty keyboard protocol release event
	Func             FuncKey
}

// FuncKey enumerates non-codepoint keys (arrows, function keys, etc); zero
// means "Codepoint is the key".
type FuncKey uint8

const (
	FuncKeyNone FuncKey = iota
	FuncKeyUp
	FuncKeyDown
	FuncKeyLeft
	FuncKeyRight
	FuncKeyHome
	FuncKeyEnd
	FuncKeyPageUp
	FuncKeyPageDown
	FuncKeyInsert
	FuncKeyDelete
	FuncKeyBackspace
	FuncKeyTab
	FuncKeyEnter
	FuncKeyEsc
	FuncKeyF1
	FuncKeyF2
	FuncKeyF3
	FuncKeyF4
	FuncKeyF5
	FuncKeyF6
	FuncKeyF7
	FuncKeyF8
	FuncKeyF9
	FuncKeyF10
	FuncKeyF11
	FuncKeyF12
)

// MouseButton enumerates the buttons and wheel directions the parser can
// report.
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
	MouseButton8
	MouseButton9
	MouseButton10
	MouseButton11
)

// MouseEventType distinguishes press/release/motion/drag.
type MouseEventType uint8

const (
	MousePress MouseEventType = iota
	MouseRelease
	MouseMotion
	MouseDrag
)

// Mouse is a single recognized mouse event.
type Mouse struct {
	Col, Row       int
	PixelX, PixelY int
	Button         MouseButton
	Modifiers      Modifier
	Type           MouseEventType
}
