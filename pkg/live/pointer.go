package live

import "github.com/vango-dev/live/pkg/dom"

// Point is a position in document coordinates.
type Point struct {
	X float64
	Y float64
}

// PointerTracker records the current and previous pointer positions of a
// document.
type PointerTracker struct {
	doc  *dom.Document
	prev Point
	cur  Point
}

// newPointerTracker listens on the document node in the capture phase, so
// positions are current before any context listener sees the event.
func newPointerTracker(doc *dom.Document) *PointerTracker {
	t := &PointerTracker{doc: doc}
	root := doc.Root()
	update := func(e *dom.Event) { t.Move(e.ClientX, e.ClientY) }
	root.AddEventListener(PointerMove.String(), update, dom.Capture())
	root.AddEventListener(PointerOver.String(), update, dom.Capture())
	root.AddEventListener(PointerOut.String(), func(*dom.Event) { t.Leave() }, dom.Capture())
	return t
}

// Move shifts the current position into previous and records a new one.
// clientX and clientY are viewport coordinates; the scroll offset is added.
func (t *PointerTracker) Move(clientX, clientY float64) {
	sx, sy := t.doc.Scroll()
	t.prev = t.cur
	t.cur = Point{X: clientX + sx, Y: clientY + sy}
}

// Leave collapses the current position onto the previous one.
func (t *PointerTracker) Leave() {
	t.cur = t.prev
}

// Positions returns the previous and current positions.
func (t *PointerTracker) Positions() (prev, cur Point) {
	return t.prev, t.cur
}
