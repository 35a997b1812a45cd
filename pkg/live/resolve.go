package live

import "github.com/vango-dev/live/pkg/dom"

// Resolve evaluates sel under context and returns the match that is target
// itself, or nil. A matched ancestor of target does not count.
func Resolve(sel dom.Selector, target, context *dom.Node) *dom.Node {
	if target == nil || context == nil {
		return nil
	}
	for _, m := range sel.Select(context) {
		if m == target {
			return m
		}
	}
	return nil
}
