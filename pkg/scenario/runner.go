package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vango-dev/live/internal/errors"
	"github.com/vango-dev/live/pkg/dom"
	"github.com/vango-dev/live/pkg/live"
)

// Result is the outcome of a replay.
type Result struct {
	Invocations []Invocation
	Document    *dom.Document
	Engine      *live.Engine
}

// Strings renders the invocations as expect lines.
func (r *Result) Strings() []string {
	out := make([]string, len(r.Invocations))
	for i, inv := range r.Invocations {
		out[i] = inv.String()
	}
	return out
}

// Verify compares the invocations with expect line by line.
func (r *Result) Verify(expect []string) error {
	got := r.Strings()
	n := max(len(got), len(expect))
	for i := 0; i < n; i++ {
		var g, w string
		if i < len(got) {
			g = got[i]
		}
		if i < len(expect) {
			w = expect[i]
		}
		if g != w {
			return errors.New("L005").WithDetailf(
				"invocation %d: got %q, want %q (%d recorded, %d expected)",
				i+1, g, w, len(got), len(expect))
		}
	}
	return nil
}

// Bind installs the scenario bindings on eng, recording into rec.
func (s *Scenario) Bind(eng *live.Engine, rec *Recorder) error {
	doc := eng.Document()
	for _, spec := range s.Bindings {
		var b live.Bindable
		switch {
		case spec.Future != "":
			fb, err := eng.BindFuture(spec.Selector, spec.Future)
			if err != nil {
				return s.fail("L001", spec.Pos, "binding %q", spec.Selector).Wrap(err)
			}
			b = fb
		default:
			var scope *dom.Node
			if spec.Context != "" {
				var err error
				if scope, err = doc.QuerySelector(spec.Context); err != nil {
					return s.fail("L001", spec.Pos, "context %q", spec.Context).Wrap(err)
				}
				if scope == nil {
					return s.fail("L002", spec.Pos, "no element matches context %q", spec.Context)
				}
			}
			bound, err := eng.BindIn(spec.Selector, scope)
			if err != nil {
				return s.fail("L001", spec.Pos, "binding %q", spec.Selector).Wrap(err)
			}
			b = bound
		}
		if spec.Namespace != "" {
			b.OnNamespace(spec.Namespace, spec.Events, rec.Callback(spec))
		} else {
			b.On(spec.Events, rec.Callback(spec))
		}
	}
	return nil
}

// Run replays s on a fresh document and engine. opts configure the engine.
func Run(ctx context.Context, s *Scenario, opts ...live.Option) (*Result, error) {
	doc, err := s.NewDocument()
	if err != nil {
		return nil, err
	}
	eng := live.New(doc, opts...)
	rec := NewRecorder()
	if err := s.Bind(eng, rec); err != nil {
		return nil, err
	}

	r := &runner{s: s, ctx: ctx, doc: doc, eng: eng}
	for i := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec.step = i + 1
		st := &s.Steps[i]
		if err := r.step(st); err != nil {
			return nil, s.fail("L004", st.Pos, "step %d (%s)", i+1, st.Kind()).Wrap(err)
		}
		if !s.Batch {
			doc.Flush()
		}
	}
	slog.Default().With("component", "scenario").Debug("replay finished",
		"steps", len(s.Steps), "invocations", len(rec.invocations))

	return &Result{Invocations: rec.Take(), Document: doc, Engine: eng}, nil
}

type runner struct {
	s   *Scenario
	ctx context.Context
	doc *dom.Document
	eng *live.Engine
}

func (r *runner) step(st *Step) error {
	switch st.Kind() {
	case KindPointer:
		target, err := r.one(st.Target)
		if err != nil {
			return err
		}
		target.PointerSequence(st.Pointer, st.At[0], st.At[1])
	case KindDispatch:
		target, err := r.one(st.Target)
		if err != nil {
			return err
		}
		evt := dom.NewEvent(strings.ToLower(st.Dispatch))
		if len(st.At) == 2 {
			evt.ClientX, evt.ClientY = st.At[0], st.At[1]
		}
		evt.Button = st.Button
		evt.Key = st.Key
		target.DispatchEvent(evt.WithContext(r.ctx))
	case KindInsert:
		parent := r.doc.Body()
		if st.Parent != "" {
			var err error
			if parent, err = r.one(st.Parent); err != nil {
				return err
			}
		}
		nodes, err := r.doc.ParseFragment(parent, st.Insert)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			if err := r.doc.AppendChild(parent, n); err != nil {
				return err
			}
		}
	case KindRemove:
		nodes, err := r.doc.QuerySelectorAll(st.Remove)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			// An earlier match may already have taken n with it.
			if !n.Attached() {
				continue
			}
			if err := r.doc.RemoveChild(n.Parent(), n); err != nil {
				return err
			}
		}
	case KindScroll:
		r.doc.ScrollTo(st.Scroll[0], st.Scroll[1])
	case KindLayout:
		return st.Layout.Apply(r.doc)
	case KindOff:
		b, err := r.binding(st.Off)
		if err != nil {
			return err
		}
		b.Off(st.Off.Args...)
	case KindFlush:
		r.doc.Flush()
	}
	return nil
}

// one returns the first element matching sel.
func (r *runner) one(sel string) (*dom.Node, error) {
	n, err := r.doc.QuerySelector(sel)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("no element matches %q", sel)
	}
	return n, nil
}

// binding finds an existing binding without creating one.
func (r *runner) binding(off *OffStep) (*live.Binding, error) {
	scope := r.doc.Body()
	if off.Context != "" {
		var err error
		if scope, err = r.one(off.Context); err != nil {
			return nil, err
		}
	}
	for _, b := range r.eng.Bindings(scope) {
		if b.Selector() == off.Selector {
			return b, nil
		}
	}
	return nil, fmt.Errorf("no binding for %q in %s", off.Selector, scope)
}
