package live

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/live/pkg/dom"
)

func TestEveryRecognizedEventFiresOnce(t *testing.T) {
	for _, name := range AllEvents() {
		// Non-bubbling types never reach a delegating context.
		if name.Motion() != FamilyNone || !dom.NewEvent(name.String()).Bubbles {
			continue
		}
		t.Run(name.String(), func(t *testing.T) {
			f := newFixture(t, page)
			b, err := f.eng.Bind(".item")
			require.NoError(t, err)

			var n int
			b.On(name.String(), Func(func(e *Event) {
				n++
				assert.Equal(t, name, e.Name)
				assert.Equal(t, name, e.Raw)
			}))
			f.node(t, "#b").DispatchEvent(dom.NewEvent(name.String()))
			assert.Equal(t, 1, n)
		})
	}
}

func TestIdentityOnlyContainment(t *testing.T) {
	f := newFixture(t, page)
	b, _ := f.eng.Bind(".item")
	rec := &recorder{}
	b.On("click", Func(func(e *Event) { rec.calls = append(rec.calls, e.Matched.ID()) }))

	f.node(t, "#a").DispatchEvent(dom.NewEvent("click"))
	f.node(t, "#inner").DispatchEvent(dom.NewEvent("click"))
	f.node(t, "#c").DispatchEvent(dom.NewEvent("click"))
	f.node(t, "#b").DispatchEvent(dom.NewEvent("click"))

	assert.Equal(t, []string{"a", "b"}, rec.calls)
}

func TestResolve(t *testing.T) {
	f := newFixture(t, page)
	sel := dom.MustCompile(".item")
	a := f.node(t, "#a")
	list := f.node(t, "#list")

	assert.Same(t, a, Resolve(sel, a, list))
	assert.Nil(t, Resolve(sel, f.node(t, "#inner"), list))
	assert.Nil(t, Resolve(sel, a, a))
	assert.Nil(t, Resolve(sel, nil, list))
}

func TestSelectorReevaluatedAtEventTime(t *testing.T) {
	f := newFixture(t, page)
	b, _ := f.eng.Bind(".item")
	rec := &recorder{}
	b.On("click", rec.cb("hit"))

	c := f.node(t, "#c")
	c.DispatchEvent(dom.NewEvent("click"))
	c.SetAttr("class", "item")
	c.DispatchEvent(dom.NewEvent("click"))

	li := f.doc.CreateElement("li")
	li.SetAttr("class", "item")
	require.NoError(t, f.doc.AppendChild(f.node(t, "#list"), li))
	li.DispatchEvent(dom.NewEvent("click"))

	assert.Equal(t, []string{"hit", "hit"}, rec.calls)
}

func TestDispatchOrder(t *testing.T) {
	f := newFixture(t, page)
	rec := &recorder{}

	items, _ := f.eng.Bind(".item")
	lis, _ := f.eng.Bind("li")
	items.OnNamespace("ns2", "click", rec.cb("items/ns2"))
	items.On("click", rec.cb("items/1"))
	lis.On("click", rec.cb("li/1"))
	items.OnNamespace("ns1", "click", rec.cb("items/ns1"))
	items.On("click", rec.cb("items/2"))
	items.OnNamespace("ns2", "click", rec.cb("items/ns2b"))

	f.node(t, "#a").DispatchEvent(dom.NewEvent("click"))
	assert.Equal(t, []string{
		"items/1", "items/2", "items/ns2", "items/ns2b", "items/ns1",
		"li/1",
	}, rec.calls)
}

func TestUnmatchedBindingDoesNotStopOthers(t *testing.T) {
	f := newFixture(t, page)
	rec := &recorder{}

	missing, _ := f.eng.Bind(".nothing")
	missing.On("click", rec.cb("missing"))
	items, _ := f.eng.Bind(".item")
	items.On("click", rec.cb("items"))

	f.node(t, "#a").DispatchEvent(dom.NewEvent("click"))
	assert.Equal(t, []string{"items"}, rec.calls)
}

func TestFalseCancelsNativeEvent(t *testing.T) {
	f := newFixture(t, page)
	items, _ := f.eng.Bind(".item")

	var after, docSaw bool
	items.On("click", func(*Event) bool { return false })
	items.On("click", func(*Event) bool { return false })
	items.On("click", Func(func(*Event) { after = true }))
	f.doc.Root().AddEventListener("click", func(*dom.Event) { docSaw = true })

	evt := dom.NewEvent("click")
	assert.False(t, f.node(t, "#a").DispatchEvent(evt))
	assert.True(t, evt.DefaultPrevented())
	assert.True(t, evt.PropagationStopped())
	assert.True(t, after, "later callbacks still run")
	assert.False(t, docSaw)

	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.cancellations.WithLabelValues("click")))
	assert.Equal(t, 3.0, testutil.ToFloat64(f.metrics.callbacks.WithLabelValues("click")))
}

func TestContextsHaveIndependentListeners(t *testing.T) {
	f := newFixture(t, page)
	rec := &recorder{}

	inBody, _ := f.eng.Bind(".item")
	inList, _ := f.eng.BindIn(".item", f.node(t, "#list"))
	inBody.On("click", rec.cb("body"))
	inList.On("click", rec.cb("list"))

	f.node(t, "#a").DispatchEvent(dom.NewEvent("click"))
	assert.Equal(t, []string{"list", "body"}, rec.calls)

	for _, name := range AllEvents() {
		assert.True(t, f.doc.Body().HasListeners(name.String()), name.String())
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.contexts))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.bindings))
}

func TestEventCarriesDelegationDetails(t *testing.T) {
	f := newFixture(t, page)
	items, _ := f.eng.Bind(".item")

	type key struct{}
	var got *Event
	items.OnNamespace("ns", "keydown", Func(func(e *Event) { got = e }))

	evt := dom.NewEvent("keydown")
	evt.Key = "Enter"
	evt.WithContext(context.WithValue(context.Background(), key{}, "v"))
	f.node(t, "#b").DispatchEvent(evt)

	require.NotNil(t, got)
	assert.Same(t, items, got.Binding)
	assert.Same(t, f.node(t, "#b"), got.Matched)
	assert.Equal(t, "ns", got.Namespace)
	assert.Equal(t, "Enter", got.Key)
	assert.Equal(t, "v", got.Context().Value(key{}))
}

func TestOffDuringDispatchAppliesToNextEvent(t *testing.T) {
	f := newFixture(t, page)
	items, _ := f.eng.Bind(".item")
	rec := &recorder{}

	items.On("click", Func(func(e *Event) {
		rec.calls = append(rec.calls, "first")
		e.Binding.Off()
	}))
	items.On("click", rec.cb("second"))

	a := f.node(t, "#a")
	a.DispatchEvent(dom.NewEvent("click"))
	a.DispatchEvent(dom.NewEvent("click"))
	assert.Equal(t, []string{"first", "second"}, rec.calls)
}

func TestOffClearedBindingFiresNothing(t *testing.T) {
	f := newFixture(t, page)
	items, _ := f.eng.Bind(".item")
	rec := &recorder{}
	items.On("click keydown", rec.cb("default")).OnNamespace("ns", "click", rec.cb("ns"))

	items.Off()
	a := f.node(t, "#a")
	a.DispatchEvent(dom.NewEvent("click"))
	a.DispatchEvent(dom.NewEvent("keydown"))
	assert.Empty(t, rec.calls)
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.dispatches.WithLabelValues("click"))+
		testutil.ToFloat64(f.metrics.dispatches.WithLabelValues("keydown")))
}
