package dom

import "context"

// Phase is the stage of event dispatch.
type Phase uint8

const (
	PhaseNone      Phase = iota
	PhaseCapturing       // root towards the target's parent
	PhaseAtTarget        // listeners on the target itself
	PhaseBubbling        // target's parent back to the root
)

// String returns the string representation of the Phase.
func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "None"
	case PhaseCapturing:
		return "Capturing"
	case PhaseAtTarget:
		return "AtTarget"
	case PhaseBubbling:
		return "Bubbling"
	default:
		return "Unknown"
	}
}

// Modifiers represents keyboard/mouse modifier keys.
type Modifiers uint8

const (
	ModCtrl  Modifiers = 0x01
	ModShift Modifiers = 0x02
	ModAlt   Modifiers = 0x04
	ModMeta  Modifiers = 0x08
)

// Has returns true if the specified modifier is set.
func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod != 0
}

// nonBubbling lists the event types that skip the bubble phase.
var nonBubbling = map[string]bool{
	"pointerenter": true,
	"pointerleave": true,
	"mouseenter":   true,
	"mouseleave":   true,
}

// Event is a native event travelling through a Document.
type Event struct {
	Type          string
	Target        *Node
	CurrentTarget *Node
	Phase         Phase
	Bubbles       bool
	Cancelable    bool

	// Pointer position relative to the viewport.
	ClientX float64
	ClientY float64
	Button  int

	Key       string
	Modifiers Modifiers

	defaultPrevented bool
	stopped          bool

	ctx context.Context
}

// NewEvent returns a cancelable event of the given type. Bubbles follows
// the type's native behaviour.
func NewEvent(typ string) *Event {
	return &Event{
		Type:       typ,
		Bubbles:    !nonBubbling[typ],
		Cancelable: true,
	}
}

// NewPointerEvent returns an event of the given type at a viewport position.
func NewPointerEvent(typ string, clientX, clientY float64) *Event {
	e := NewEvent(typ)
	e.ClientX = clientX
	e.ClientY = clientY
	return e
}

// PreventDefault cancels the default action if the event is cancelable.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault took effect.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops dispatch after the current node's listeners.
func (e *Event) StopPropagation() { e.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopped }

// WithContext returns e carrying ctx.
func (e *Event) WithContext(ctx context.Context) *Event {
	e.ctx = ctx
	return e
}

// Context returns the event's context, defaulting to context.Background.
func (e *Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}
