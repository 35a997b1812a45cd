package live

import "github.com/vango-dev/live/pkg/dom"

// SubscriptionState is the lifecycle of an insertion subscription.
type SubscriptionState uint8

const (
	Pending   SubscriptionState = iota // waiting for a matching insertion
	Fired                              // callback ran; terminal
	Cancelled                          // cancelled before firing; terminal
)

// String returns the string representation of the SubscriptionState.
func (s SubscriptionState) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Fired:
		return "Fired"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Subscription is a one-shot interest in the insertion of an element
// matching a selector.
type Subscription struct {
	selector string
	sel      dom.Selector
	fn       func(*dom.Node)
	state    SubscriptionState
	watch    *watchEntry
}

// Selector returns the watched selector.
func (s *Subscription) Selector() string { return s.selector }

// State returns the subscription state.
func (s *Subscription) State() SubscriptionState { return s.state }

// Cancel stops a pending subscription. It is a no-op once fired.
func (s *Subscription) Cancel() {
	if s.state != Pending {
		return
	}
	s.state = Cancelled
	s.watch.remove(s)
}

// watchEntry is the insertion watcher of one root: a single subtree
// observer and the pending subscriptions in registration order.
type watchEntry struct {
	engine   *Engine
	root     *dom.Node
	observer *dom.Observer
	subs     []*Subscription
}

// OnInsert calls fn once with the first inserted element that matches
// futureContext under root. A nil root means the document node. Multiple
// subscriptions may watch the same selector; each fires once.
func (e *Engine) OnInsert(futureContext string, root *dom.Node, fn func(*dom.Node)) (*Subscription, error) {
	if root == nil {
		root = e.doc.Root()
	}
	if root.Document() != e.doc {
		return nil, ErrForeignContext
	}
	sel, err := dom.Compile(futureContext)
	if err != nil {
		return nil, err
	}
	w, ok := e.watchers[root]
	if !ok {
		w = &watchEntry{engine: e, root: root}
		w.observer = e.doc.Observe(root, w.deliver)
		e.watchers[root] = w
	}
	sub := &Subscription{selector: futureContext, sel: sel, fn: fn, watch: w}
	w.subs = append(w.subs, sub)
	return sub, nil
}

// deliver checks every inserted element of a batch against every pending
// subscription.
func (w *watchEntry) deliver(records []dom.MutationRecord) {
	for _, rec := range records {
		for _, node := range rec.AddedNodes {
			if len(w.subs) == 0 {
				return
			}
			for _, sub := range append([]*Subscription(nil), w.subs...) {
				if sub.state != Pending {
					continue
				}
				if !contains(sub.sel.Select(w.root), node) {
					continue
				}
				sub.state = Fired
				w.remove(sub)
				sub.fn(node)
			}
		}
	}
}

// remove drops sub and releases the observer once nothing is pending.
func (w *watchEntry) remove(sub *Subscription) {
	for i, other := range w.subs {
		if other == sub {
			w.subs = append(w.subs[:i:i], w.subs[i+1:]...)
			break
		}
	}
	if len(w.subs) > 0 {
		return
	}
	w.observer.Disconnect()
	if w.engine.watchers[w.root] == w {
		delete(w.engine.watchers, w.root)
	}
}

func contains(nodes []*dom.Node, n *dom.Node) bool {
	for _, m := range nodes {
		if m == n {
			return true
		}
	}
	return false
}
