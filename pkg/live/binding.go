package live

import (
	"weak"

	"github.com/vango-dev/live/pkg/dom"
)

// Bindable is the registration surface shared by Binding and FutureBinding.
type Bindable interface {
	// Selector returns the delegated selector.
	Selector() string

	// On appends cb under each whitespace-separated, case-insensitive event
	// name. Unrecognized names are ignored.
	On(events string, cb Callback) Bindable

	// OnNamespace is On within namespace ns, creating ns on first use.
	OnNamespace(ns, events string, cb Callback) Bindable

	// Off is the overloaded removal call:
	//   Off()                 clears every callback and namespace
	//   Off("click keyup")    same as OffEvents when every name is recognized
	//   Off("click", "ns")    same as OffNamespaceEvents
	//   Off("ns")             same as OffNamespace otherwise
	Off(args ...string) Bindable

	// Reset clears the default map and drops every namespace.
	Reset() Bindable

	// OffEvents clears the names in the default map and in every namespace.
	OffEvents(events string) Bindable

	// OffNamespaceEvents clears the names within ns only. It is a no-op
	// when ns does not exist.
	OffNamespaceEvents(ns, events string) Bindable

	// OffNamespace replaces ns with an empty map.
	OffNamespace(ns string) Bindable

	// Events returns the default map.
	Events() *EventMap

	// Namespace returns the map of ns, if it exists.
	Namespace(ns string) (*EventMap, bool)

	// Namespaces returns namespace names in insertion order.
	Namespaces() []string
}

var (
	_ Bindable = (*Binding)(nil)
	_ Bindable = (*FutureBinding)(nil)
)

// Binding delegates events under a context node to callbacks registered
// against a selector. There is one Binding per (context, selector) pair.
type Binding struct {
	handlers

	selector string
	sel      dom.Selector
	context  weak.Pointer[dom.Node]
}

// Selector returns the delegated selector.
func (b *Binding) Selector() string { return b.selector }

// Context returns the context node, or nil once it has been collected.
func (b *Binding) Context() *dom.Node { return b.context.Value() }

func (b *Binding) On(events string, cb Callback) Bindable {
	b.on("", events, cb)
	return b
}

func (b *Binding) OnNamespace(ns, events string, cb Callback) Bindable {
	b.on(ns, events, cb)
	return b
}

func (b *Binding) Off(args ...string) Bindable {
	b.off(args...)
	return b
}

func (b *Binding) Reset() Bindable {
	b.reset()
	return b
}

func (b *Binding) OffEvents(events string) Bindable {
	b.offEvents(events)
	return b
}

func (b *Binding) OffNamespaceEvents(ns, events string) Bindable {
	b.offNamespaceEvents(ns, events)
	return b
}

func (b *Binding) OffNamespace(ns string) Bindable {
	b.offNamespace(ns)
	return b
}
