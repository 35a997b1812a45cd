package live

import (
	"context"

	"github.com/vango-dev/live/pkg/dom"
)

// Callback handles a delegated event. Returning false prevents the native
// event's default action and stops its propagation.
type Callback func(*Event) bool

// Func adapts a callback that never cancels the native event.
func Func(fn func(*Event)) Callback {
	return func(e *Event) bool {
		fn(e)
		return true
	}
}

// Event is what a Callback receives: the native event plus the result of
// delegation.
type Event struct {
	*dom.Event

	// Name is the effective event after hover classification.
	Name EventName

	// Raw is the native event name that triggered dispatch.
	Raw EventName

	// Matched is the selector-matched node the event was delegated to.
	Matched *dom.Node

	// Binding is the binding whose callback is running.
	Binding *Binding

	// Namespace is the namespace the callback was registered under, or ""
	// for the default map.
	Namespace string

	ctx context.Context
}

// Context returns the dispatch context, which carries the fire span.
func (e *Event) Context() context.Context {
	if e.ctx != nil {
		return e.ctx
	}
	return e.Event.Context()
}
