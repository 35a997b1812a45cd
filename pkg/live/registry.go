package live

import (
	"time"
	"weak"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/live/pkg/dom"
)

// contextEntry is the registry of one context node. It must not hold the
// node strongly; the node's own listeners point back at the entry.
type contextEntry struct {
	bindings  []*Binding
	installed [numEvents]bool
}

// contextFor returns the entry of context, installing one native listener
// per recognized event name the first time context is used.
func (e *Engine) contextFor(context *dom.Node) *contextEntry {
	key := weak.Make(context)
	if entry, ok := e.contexts[key]; ok {
		return entry
	}
	e.sweep()

	entry := &contextEntry{}
	e.contexts[key] = entry
	for _, name := range AllEvents() {
		context.AddEventListener(name.String(), func(evt *dom.Event) {
			if ctx := key.Value(); ctx != nil {
				e.fire(name, evt, ctx, entry)
			}
		})
		entry.installed[name] = true
	}
	e.metrics.recordContext()
	e.logger.Debug("context initialised", "context", context.String())
	return entry
}

// sweep drops entries whose context node has been collected.
func (e *Engine) sweep() {
	for key := range e.contexts {
		if key.Value() == nil {
			delete(e.contexts, key)
		}
	}
}

// fire fans one native event out to every binding of context in
// registration order.
func (e *Engine) fire(name EventName, evt *dom.Event, context *dom.Node, entry *contextEntry) {
	start := time.Now()
	ctx, span := e.tracer.Start(evt.Context(), "live.fire",
		trace.WithAttributes(
			attribute.String("live.event", name.String()),
			attribute.String("live.context", context.String()),
			attribute.Int("live.bindings", len(entry.bindings)),
		))
	defer span.End()

	prev, cur := e.pointer.Positions()

	// Bindings created by callbacks take effect from the next event.
	bindings := append([]*Binding(nil), entry.bindings...)
	invoked := 0
	for _, b := range bindings {
		matched := Resolve(b.sel, evt.Target, context)
		if matched == nil {
			continue
		}
		effective, ok := Classify(matched, name, prev, cur)
		if !ok {
			e.metrics.recordSuppressed(name)
			continue
		}
		for _, en := range b.collect(effective) {
			le := &Event{
				Event:     evt,
				Name:      effective,
				Raw:       name,
				Matched:   matched,
				Binding:   b,
				Namespace: en.namespace,
				ctx:       ctx,
			}
			canceled := !en.callback(le)
			if canceled {
				evt.PreventDefault()
				evt.StopPropagation()
			}
			invoked++
			e.metrics.recordCallback(effective, canceled)
		}
	}

	span.SetAttributes(attribute.Int("live.invoked", invoked))
	e.metrics.recordDispatch(name, time.Since(start))
}
