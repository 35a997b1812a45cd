package live

// EventMap holds an ordered callback sequence for every recognized event
// name. Its key set is fixed; a zero EventMap is ready to use.
type EventMap struct {
	callbacks [numEvents][]Callback
}

// NewEventMap returns an empty EventMap.
func NewEventMap() *EventMap {
	return &EventMap{}
}

// Append adds cb after the callbacks already registered under name.
func (m *EventMap) Append(name EventName, cb Callback) {
	if !name.Valid() {
		return
	}
	m.callbacks[name] = append(m.callbacks[name], cb)
}

// Clear empties the sequences of the given names, or of every name when
// called without arguments.
func (m *EventMap) Clear(names ...EventName) {
	if len(names) == 0 {
		m.callbacks = [numEvents][]Callback{}
		return
	}
	for _, name := range names {
		if name.Valid() {
			m.callbacks[name] = nil
		}
	}
}

// Callbacks returns the sequence registered under name. The slice must not
// be modified.
func (m *EventMap) Callbacks(name EventName) []Callback {
	if !name.Valid() {
		return nil
	}
	return m.callbacks[name]
}

// Len returns the number of callbacks under name.
func (m *EventMap) Len(name EventName) int {
	return len(m.Callbacks(name))
}

// Total returns the number of callbacks across all names.
func (m *EventMap) Total() int {
	n := 0
	for _, cbs := range m.callbacks {
		n += len(cbs)
	}
	return n
}

// Keys returns the key set, which is always every recognized name.
func (m *EventMap) Keys() []EventName {
	return AllEvents()
}

// Join appends other's sequences after m's, name by name, and returns m.
func (m *EventMap) Join(other *EventMap) *EventMap {
	if other == nil {
		return m
	}
	for i, cbs := range other.callbacks {
		if len(cbs) == 0 {
			continue
		}
		joined := make([]Callback, 0, len(m.callbacks[i])+len(cbs))
		joined = append(joined, m.callbacks[i]...)
		m.callbacks[i] = append(joined, cbs...)
	}
	return m
}
