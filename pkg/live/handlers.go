package live

import (
	"log/slog"
	"strings"
)

// handlers is the callback storage shared by Binding and FutureBinding: a
// default EventMap plus namespaces kept in insertion order.
type handlers struct {
	events     *EventMap
	namespaces map[string]*EventMap
	order      []string

	logger *slog.Logger
}

func newHandlers(logger *slog.Logger) handlers {
	return handlers{
		events:     NewEventMap(),
		namespaces: make(map[string]*EventMap),
		logger:     logger,
	}
}

// namespace returns the map for ns, creating it when create is set.
func (h *handlers) namespace(ns string, create bool) *EventMap {
	if m, ok := h.namespaces[ns]; ok {
		return m
	}
	if !create {
		return nil
	}
	m := NewEventMap()
	h.namespaces[ns] = m
	h.order = append(h.order, ns)
	return m
}

func (h *handlers) parse(list string) []EventName {
	names, unknown := ParseEventNames(list)
	if len(unknown) > 0 && h.logger != nil {
		h.logger.Debug("ignoring unrecognized event names", "names", unknown)
	}
	return names
}

func (h *handlers) on(ns, list string, cb Callback) {
	names := h.parse(list)
	if len(names) == 0 {
		return
	}
	target := h.events
	if ns != "" {
		target = h.namespace(ns, true)
	}
	for _, name := range names {
		target.Append(name, cb)
	}
}

func (h *handlers) reset() {
	h.events = NewEventMap()
	h.namespaces = make(map[string]*EventMap)
	h.order = nil
}

// offEvents clears names in the default map and in every namespace.
func (h *handlers) offEvents(list string) {
	names := h.parse(list)
	if len(names) == 0 {
		return
	}
	h.events.Clear(names...)
	for _, ns := range h.order {
		h.namespaces[ns].Clear(names...)
	}
}

// offNamespaceEvents clears names within ns only. A namespace that was
// never created is left absent.
func (h *handlers) offNamespaceEvents(ns, list string) {
	if ns == "" {
		h.offEvents(list)
		return
	}
	m := h.namespace(ns, false)
	if m == nil {
		return
	}
	if names := h.parse(list); len(names) > 0 {
		m.Clear(names...)
	}
}

// offNamespace replaces ns with an empty map.
func (h *handlers) offNamespace(ns string) {
	h.namespace(ns, true).Clear()
}

// off is the single-call overload: no arguments reset everything; a list
// made only of recognized names clears those names (within args[1] when
// given); anything else names a namespace to empty.
func (h *handlers) off(args ...string) {
	if len(args) == 0 || (len(args) == 1 && strings.TrimSpace(args[0]) == "") {
		h.reset()
		return
	}
	list := args[0]
	names, unknown := ParseEventNames(list)
	if len(names) > 0 && len(unknown) == 0 {
		if len(args) > 1 {
			h.offNamespaceEvents(args[1], list)
		} else {
			h.offEvents(list)
		}
		return
	}
	ns := strings.TrimSpace(list)
	if ns == "" && len(args) > 1 {
		ns = args[1]
	}
	h.offNamespace(ns)
}

// join merges other into h, appending other's callbacks after h's.
func (h *handlers) join(other *handlers) {
	h.events.Join(other.events)
	for _, ns := range other.order {
		h.namespace(ns, true).Join(other.namespaces[ns])
	}
}

// entry is one callback scheduled for dispatch.
type entry struct {
	namespace string
	callback  Callback
}

// collect returns the callbacks for name in dispatch order: the default
// map first, then each namespace in insertion order.
func (h *handlers) collect(name EventName) []entry {
	var out []entry
	for _, cb := range h.events.Callbacks(name) {
		out = append(out, entry{callback: cb})
	}
	for _, ns := range h.order {
		for _, cb := range h.namespaces[ns].Callbacks(name) {
			out = append(out, entry{namespace: ns, callback: cb})
		}
	}
	return out
}

// Events returns the default EventMap.
func (h *handlers) Events() *EventMap { return h.events }

// Namespace returns the EventMap of ns, if it exists.
func (h *handlers) Namespace(ns string) (*EventMap, bool) {
	m, ok := h.namespaces[ns]
	return m, ok
}

// Namespaces returns namespace names in insertion order.
func (h *handlers) Namespaces() []string {
	return append([]string(nil), h.order...)
}
