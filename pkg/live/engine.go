package live

import (
	"errors"
	"log/slog"
	"weak"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/live/pkg/dom"
)

// Default tracer name for engine spans.
const defaultTracerName = "github.com/vango-dev/live"

// Binding errors.
var (
	ErrNoBody          = errors.New("live: document has no body")
	ErrForeignContext  = errors.New("live: context belongs to another document")
	ErrDetachedContext = errors.New("live: context is not attached to the document")
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records engine activity on m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithTracer sets the tracer used for fire spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// Engine owns the delegation state of one document: the per-context
// registries, the insertion watchers and the pointer tracker.
//
// An Engine is not safe for concurrent use. All calls, and the dispatch of
// the document's events, must happen on one goroutine.
type Engine struct {
	doc *dom.Document

	// contexts is keyed weakly so an unreachable context releases its entry.
	contexts map[weak.Pointer[dom.Node]]*contextEntry
	watchers map[*dom.Node]*watchEntry

	pointer *PointerTracker

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// New creates an engine for doc and starts tracking the pointer.
func New(doc *dom.Document, opts ...Option) *Engine {
	e := &Engine{
		doc:      doc,
		contexts: make(map[weak.Pointer[dom.Node]]*contextEntry),
		watchers: make(map[*dom.Node]*watchEntry),
		logger:   slog.Default().With("component", "live"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(defaultTracerName)
	}
	e.pointer = newPointerTracker(doc)
	return e
}

// Document returns the engine's document.
func (e *Engine) Document() *dom.Document { return e.doc }

// Pointer returns the document's pointer tracker.
func (e *Engine) Pointer() *PointerTracker { return e.pointer }

// Bind returns the Binding for selector under the document body.
func (e *Engine) Bind(selector string) (*Binding, error) {
	return e.BindIn(selector, nil)
}

// BindIn returns the Binding for selector under context, creating it on
// first use. A nil context means the document body. Selector parse errors
// are returned unchanged.
func (e *Engine) BindIn(selector string, context *dom.Node) (*Binding, error) {
	if context == nil {
		if context = e.doc.Body(); context == nil {
			return nil, ErrNoBody
		}
	}
	if context.Document() != e.doc {
		return nil, ErrForeignContext
	}
	if !context.Attached() {
		return nil, ErrDetachedContext
	}
	sel, err := dom.Compile(selector)
	if err != nil {
		return nil, err
	}
	return e.bind(selector, sel, context), nil
}

func (e *Engine) bind(selector string, sel dom.Selector, context *dom.Node) *Binding {
	entry := e.contextFor(context)
	for _, b := range entry.bindings {
		if b.selector == selector {
			return b
		}
	}
	b := &Binding{
		handlers: newHandlers(e.logger),
		selector: selector,
		sel:      sel,
		context:  weak.Make(context),
	}
	entry.bindings = append(entry.bindings, b)
	e.metrics.recordBinding()
	e.logger.Debug("binding created", "selector", selector, "context", context.String())
	return b
}

// Bindings returns the bindings of context in registration order.
func (e *Engine) Bindings(context *dom.Node) []*Binding {
	entry, ok := e.contexts[weak.Make(context)]
	if !ok {
		return nil
	}
	return append([]*Binding(nil), entry.bindings...)
}

// BindFuture returns a FutureBinding for selector whose context is the
// first element matching futureContext inserted anywhere in the document.
func (e *Engine) BindFuture(selector, futureContext string) (*FutureBinding, error) {
	return e.BindFutureIn(selector, futureContext, nil)
}

// BindFutureIn is BindFuture with insertions watched under root. A nil root
// means the document node.
func (e *Engine) BindFutureIn(selector, futureContext string, root *dom.Node) (*FutureBinding, error) {
	sel, err := dom.Compile(selector)
	if err != nil {
		return nil, err
	}
	fb := &FutureBinding{
		handlers: newHandlers(e.logger),
		selector: selector,
		sel:      sel,
		future:   futureContext,
		engine:   e,
	}
	sub, err := e.OnInsert(futureContext, root, fb.materialize)
	if err != nil {
		return nil, err
	}
	fb.sub = sub
	return fb, nil
}
