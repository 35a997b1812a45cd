package dom

// ListenerOption configures AddEventListener.
type ListenerOption func(*Listener)

// Capture registers the listener for the capture phase.
func Capture() ListenerOption {
	return func(l *Listener) { l.capture = true }
}

// Once removes the listener after its first invocation.
func Once() ListenerOption {
	return func(l *Listener) { l.once = true }
}

// Listener is a registered event listener.
type Listener struct {
	node    *Node
	typ     string
	fn      func(*Event)
	capture bool
	once    bool
	removed bool
}

// Remove unregisters the listener. Removing twice is a no-op.
func (l *Listener) Remove() {
	if l.removed {
		return
	}
	l.removed = true
	list := l.node.listeners[l.typ]
	for i, other := range list {
		if other == l {
			l.node.listeners[l.typ] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// AddEventListener registers fn for events of type typ on n.
func (n *Node) AddEventListener(typ string, fn func(*Event), opts ...ListenerOption) *Listener {
	l := &Listener{node: n, typ: typ, fn: fn}
	for _, opt := range opts {
		opt(l)
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]*Listener)
	}
	n.listeners[typ] = append(n.listeners[typ], l)
	return l
}

// HasListeners reports whether n has any listener for typ.
func (n *Node) HasListeners(typ string) bool {
	return len(n.listeners[typ]) > 0
}

// DispatchEvent sends e to n through the capture, target and bubble phases.
// It returns false if a listener prevented the default action.
func (n *Node) DispatchEvent(e *Event) bool {
	e.Target = n
	e.defaultPrevented = false
	e.stopped = false

	// path[0] is the target, path[len-1] the outermost ancestor.
	var path []*Node
	for cur := n; cur != nil; cur = cur.Parent() {
		path = append(path, cur)
	}

	e.Phase = PhaseCapturing
	for i := len(path) - 1; i > 0 && !e.stopped; i-- {
		path[i].invoke(e, func(l *Listener) bool { return l.capture })
	}

	if !e.stopped {
		e.Phase = PhaseAtTarget
		n.invoke(e, func(*Listener) bool { return true })
	}

	if e.Bubbles {
		e.Phase = PhaseBubbling
		for i := 1; i < len(path) && !e.stopped; i++ {
			path[i].invoke(e, func(l *Listener) bool { return !l.capture })
		}
	}

	e.Phase = PhaseNone
	e.CurrentTarget = nil
	return !e.defaultPrevented
}

func (n *Node) invoke(e *Event, want func(*Listener) bool) {
	list := n.listeners[e.Type]
	if len(list) == 0 {
		return
	}
	// Listeners added during dispatch wait for the next event.
	snapshot := append([]*Listener(nil), list...)
	e.CurrentTarget = n
	for _, l := range snapshot {
		if l.removed || !want(l) {
			continue
		}
		if l.once {
			l.Remove()
		}
		l.fn(e)
	}
}

// compatMouse maps pointer kinds to the mouse events browsers send after them.
var compatMouse = map[string]string{
	"move": "mousemove",
	"over": "mouseover",
	"out":  "mouseout",
	"down": "mousedown",
	"up":   "mouseup",
}

// PointerSequence dispatches pointer<kind> at a viewport position followed by
// its compatibility mouse event, unless the pointer event was canceled
// (down only). It returns the dispatched events.
func (n *Node) PointerSequence(kind string, clientX, clientY float64) []*Event {
	pe := NewPointerEvent("pointer"+kind, clientX, clientY)
	notCanceled := n.DispatchEvent(pe)
	out := []*Event{pe}

	mouse, ok := compatMouse[kind]
	if !ok || (kind == "down" && !notCanceled) {
		return out
	}
	me := NewPointerEvent(mouse, clientX, clientY)
	n.DispatchEvent(me)
	return append(out, me)
}
