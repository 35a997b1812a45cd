// Package live provides delegated event binding over a dom.Document.
//
// Instead of attaching a listener to every matching element, the engine
// installs one native listener per event type on each context node and
// dispatches to callbacks registered against a selector. The selector is
// re-evaluated at event time, so elements added later are covered without
// extra work.
//
// # Bindings
//
// A Binding is the pair (selector, context). Binding the same pair twice
// returns the same *Binding:
//
//	eng := live.New(doc)
//	items, err := eng.Bind(".item")
//	if err != nil {
//	    return err
//	}
//	items.On("click", live.Func(func(e *live.Event) {
//	    fmt.Println("clicked", e.Matched)
//	}))
//
// A callback returning false prevents the native default action and stops
// propagation. Callbacks can be grouped under a namespace and removed
// together:
//
//	items.OnNamespace("drag", "pointerdown pointerup", onDrag)
//	items.OffNamespace("drag")
//
// # Matching
//
// An event is delegated to a binding only when its target is itself one
// of the nodes the selector matches under the context. A matched ancestor
// of the target does not qualify.
//
// # Hover synthesis
//
// Move, over and out events of the pointer and mouse families are
// reclassified per matched node from the previous and current pointer
// positions: entering the node's box yields over, leaving it yields out,
// staying inside yields move, and staying outside suppresses dispatch. One
// native mousemove stream therefore drives per-element hover semantics.
//
// # Future bindings
//
// BindFuture registers callbacks for a context that does not exist yet.
// The first inserted element matching the future context selector
// materializes a real Binding that receives the collected callbacks.
// Insertions are noticed when the document delivers its mutation batches
// (dom.Document.Flush).
package live
