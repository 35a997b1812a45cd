package live

import "github.com/vango-dev/live/pkg/dom"

// Classify turns a move, over or out event into the transition node
// actually went through between prev and cur:
//
//	was inside, is inside   -> <family>move
//	was outside, is inside  -> <family>over
//	was inside, is outside  -> <family>out
//	was outside, is outside -> suppressed (ok is false)
//
// Other events are returned unchanged.
func Classify(node *dom.Node, name EventName, prev, cur Point) (effective EventName, ok bool) {
	family := name.Motion()
	if family == FamilyNone {
		return name, true
	}
	wasInside := containsPoint(node, prev)
	isInside := containsPoint(node, cur)
	switch {
	case wasInside && isInside:
		return family.Move(), true
	case !wasInside && isInside:
		return family.Over(), true
	case wasInside && !isInside:
		return family.Out(), true
	default:
		return name, false
	}
}

// containsPoint tests p against node's bounding box in document coordinates.
func containsPoint(node *dom.Node, p Point) bool {
	sx, sy := node.Document().Scroll()
	return node.BoundingClientRect().Translate(sx, sy).Contains(p.X, p.Y)
}
