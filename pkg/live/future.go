package live

import "github.com/vango-dev/live/pkg/dom"

// FutureBinding collects callbacks for a selector whose context does not
// exist yet. When the first element matching its future context is
// inserted, the callbacks are merged into the real Binding for
// (selector, that element), after any callbacks it already had. From then
// on every call is forwarded to that Binding.
type FutureBinding struct {
	handlers

	selector string
	sel      dom.Selector
	future   string
	engine   *Engine
	sub      *Subscription
	bound    *Binding
}

// Selector returns the delegated selector.
func (f *FutureBinding) Selector() string { return f.selector }

// FutureContext returns the selector the context is awaited by.
func (f *FutureBinding) FutureContext() string { return f.future }

// State returns Pending until materialized, then Fired.
func (f *FutureBinding) State() SubscriptionState { return f.sub.State() }

// Binding returns the materialized Binding, or nil while pending.
func (f *FutureBinding) Binding() *Binding { return f.bound }

// Cancel abandons a pending future binding.
func (f *FutureBinding) Cancel() {
	f.sub.Cancel()
}

func (f *FutureBinding) materialize(context *dom.Node) {
	b := f.engine.bind(f.selector, f.sel, context)
	b.join(&f.handlers)
	f.bound = b
	f.handlers = newHandlers(f.engine.logger)
	f.engine.metrics.recordMaterialized()
	f.engine.logger.Debug("future binding materialized",
		"selector", f.selector, "future", f.future, "context", context.String())
}

func (f *FutureBinding) On(events string, cb Callback) Bindable {
	f.target().on("", events, cb)
	return f
}

func (f *FutureBinding) OnNamespace(ns, events string, cb Callback) Bindable {
	f.target().on(ns, events, cb)
	return f
}

func (f *FutureBinding) Off(args ...string) Bindable {
	f.target().off(args...)
	return f
}

func (f *FutureBinding) Reset() Bindable {
	f.target().reset()
	return f
}

func (f *FutureBinding) OffEvents(events string) Bindable {
	f.target().offEvents(events)
	return f
}

func (f *FutureBinding) OffNamespaceEvents(ns, events string) Bindable {
	f.target().offNamespaceEvents(ns, events)
	return f
}

func (f *FutureBinding) OffNamespace(ns string) Bindable {
	f.target().offNamespace(ns)
	return f
}

func (f *FutureBinding) Events() *EventMap { return f.target().Events() }

func (f *FutureBinding) Namespace(ns string) (*EventMap, bool) {
	return f.target().Namespace(ns)
}

func (f *FutureBinding) Namespaces() []string { return f.target().Namespaces() }

// target is the handler set calls apply to.
func (f *FutureBinding) target() *handlers {
	if f.bound != nil {
		return &f.bound.handlers
	}
	return &f.handlers
}
