package dom

// MutationRecord describes one child-list change.
type MutationRecord struct {
	Target       *Node
	AddedNodes   []*Node
	RemovedNodes []*Node
}

// Observer watches child-list changes in a subtree. Records accumulate until
// Document.Flush delivers them as one batch per observer.
type Observer struct {
	doc          *Document
	root         *Node
	fn           func([]MutationRecord)
	pending      []MutationRecord
	disconnected bool
}

// Observe starts watching child-list changes anywhere under root, root
// included.
func (d *Document) Observe(root *Node, fn func([]MutationRecord)) *Observer {
	o := &Observer{doc: d, root: root, fn: fn}
	d.observers = append(d.observers, o)
	return o
}

// Root returns the observed subtree root.
func (o *Observer) Root() *Node { return o.root }

// TakeRecords returns and clears the pending records without delivering them.
func (o *Observer) TakeRecords() []MutationRecord {
	recs := o.pending
	o.pending = nil
	return recs
}

// Disconnect stops the observer and drops pending records.
func (o *Observer) Disconnect() {
	if o.disconnected {
		return
	}
	o.disconnected = true
	o.pending = nil
	for i, other := range o.doc.observers {
		if other == o {
			o.doc.observers = append(o.doc.observers[:i:i], o.doc.observers[i+1:]...)
			break
		}
	}
}

func (d *Document) queue(rec MutationRecord) {
	for _, o := range d.observers {
		if o.root.Contains(rec.Target) {
			o.pending = append(o.pending, rec)
		}
	}
}

// Pending reports whether any observer has undelivered records.
func (d *Document) Pending() bool {
	for _, o := range d.observers {
		if len(o.pending) > 0 {
			return true
		}
	}
	return false
}

// Flush delivers pending records, one batch per observer in registration
// order. Mutations made by callbacks are delivered in a further round
// before Flush returns.
func (d *Document) Flush() {
	for d.Pending() {
		observers := append([]*Observer(nil), d.observers...)
		for _, o := range observers {
			recs := o.TakeRecords()
			if len(recs) == 0 || o.disconnected {
				continue
			}
			o.fn(recs)
		}
	}
}
