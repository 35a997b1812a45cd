package live

import "strings"

// EventName identifies one of the event types the engine delegates.
type EventName uint8

// Recognized event names. The set is closed.
const (
	PointerOver EventName = iota
	PointerEnter
	PointerDown
	PointerMove
	PointerUp
	PointerCancel
	PointerOut
	PointerLeave
	GotPointerCapture
	LostPointerCapture

	MouseMove
	MouseOver
	MouseOut
	MouseDown
	MouseUp

	Click
	DblClick

	KeyDown
	KeyUp
	KeyPress

	numEvents
)

var eventNames = [numEvents]string{
	PointerOver:        "pointerover",
	PointerEnter:       "pointerenter",
	PointerDown:        "pointerdown",
	PointerMove:        "pointermove",
	PointerUp:          "pointerup",
	PointerCancel:      "pointercancel",
	PointerOut:         "pointerout",
	PointerLeave:       "pointerleave",
	GotPointerCapture:  "gotpointercapture",
	LostPointerCapture: "lostpointercapture",
	MouseMove:          "mousemove",
	MouseOver:          "mouseover",
	MouseOut:           "mouseout",
	MouseDown:          "mousedown",
	MouseUp:            "mouseup",
	Click:              "click",
	DblClick:           "dblclick",
	KeyDown:            "keydown",
	KeyUp:              "keyup",
	KeyPress:           "keypress",
}

var eventsByName = func() map[string]EventName {
	m := make(map[string]EventName, numEvents)
	for i, s := range eventNames {
		m[s] = EventName(i)
	}
	return m
}()

// String returns the native event type, e.g. "pointermove".
func (e EventName) String() string {
	if e < numEvents {
		return eventNames[e]
	}
	return "unknown"
}

// Valid reports whether e is a recognized event name.
func (e EventName) Valid() bool { return e < numEvents }

// ParseEventName looks up a single event name, ignoring case and
// surrounding space.
func ParseEventName(s string) (EventName, bool) {
	e, ok := eventsByName[strings.ToLower(strings.TrimSpace(s))]
	return e, ok
}

// ParseEventNames splits a whitespace-separated list. Names outside the
// recognized set are returned in unknown, case-folded.
func ParseEventNames(list string) (names []EventName, unknown []string) {
	for _, f := range strings.Fields(strings.ToLower(list)) {
		if e, ok := eventsByName[f]; ok {
			names = append(names, e)
		} else {
			unknown = append(unknown, f)
		}
	}
	return names, unknown
}

// AllEvents returns every recognized event name in declaration order.
func AllEvents() []EventName {
	out := make([]EventName, numEvents)
	for i := range out {
		out[i] = EventName(i)
	}
	return out
}

// Family is the input device prefix of a hover-like event.
type Family uint8

const (
	FamilyNone Family = iota
	FamilyPointer
	FamilyMouse
)

// String returns the event prefix of the family.
func (f Family) String() string {
	switch f {
	case FamilyPointer:
		return "pointer"
	case FamilyMouse:
		return "mouse"
	default:
		return ""
	}
}

// Move, Over and Out return the family's motion events.
func (f Family) Move() EventName { return f.pick(PointerMove, MouseMove) }
func (f Family) Over() EventName { return f.pick(PointerOver, MouseOver) }
func (f Family) Out() EventName  { return f.pick(PointerOut, MouseOut) }

func (f Family) pick(pointer, mouse EventName) EventName {
	if f == FamilyPointer {
		return pointer
	}
	return mouse
}

// Motion returns the family of e when e is a move, over or out event of
// the pointer or mouse family, and FamilyNone otherwise.
func (e EventName) Motion() Family {
	switch e {
	case PointerMove, PointerOver, PointerOut:
		return FamilyPointer
	case MouseMove, MouseOver, MouseOut:
		return FamilyMouse
	default:
		return FamilyNone
	}
}
