package live

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/live/pkg/dom"
)

const panel = `<div class="panel"><button class="item" id="btn">go</button></div>`

func TestFutureBindingMaterializes(t *testing.T) {
	f := newFixture(t, page)
	fb, err := f.eng.BindFuture(".item", ".panel")
	require.NoError(t, err)
	rec := &recorder{}
	fb.On("click", rec.cb("default")).OnNamespace("ns", "click", rec.cb("ns"))

	assert.Equal(t, ".item", fb.Selector())
	assert.Equal(t, ".panel", fb.FutureContext())
	assert.Equal(t, Pending, fb.State())
	assert.Nil(t, fb.Binding())

	nodes := f.insert(t, f.doc.Body(), panel)
	f.doc.Flush()

	require.Equal(t, Fired, fb.State())
	b, err := f.eng.BindIn(".item", nodes[0])
	require.NoError(t, err)
	assert.Same(t, b, fb.Binding())
	assert.Equal(t, []string{"ns"}, b.Namespaces())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.materialized))

	btn := f.node(t, "#btn")
	btn.DispatchEvent(dom.NewEvent("click"))
	assert.Equal(t, []string{"default", "ns"}, rec.calls)
}

func TestFutureBindingAppendsAfterExisting(t *testing.T) {
	f := newFixture(t, page)
	rec := &recorder{}

	first, _ := f.eng.BindFuture(".item", ".panel")
	second, _ := f.eng.BindFuture(".item", ".panel")
	first.On("click", rec.cb("first"))
	second.On("click", rec.cb("second"))

	f.insert(t, f.doc.Body(), panel)
	f.doc.Flush()

	assert.Same(t, first.Binding(), second.Binding())
	f.node(t, "#btn").DispatchEvent(dom.NewEvent("click"))
	assert.Equal(t, []string{"first", "second"}, rec.calls)
}

func TestFutureBindingOneShot(t *testing.T) {
	f := newFixture(t, page)
	fb, _ := f.eng.BindFuture(".item", ".panel")
	fb.On("click", Func(func(*Event) {}))

	nodes := f.insert(t, f.doc.Body(), `<div class="panel" id="p1"></div><div class="panel" id="p2"></div>`)
	f.doc.Flush()
	f.insert(t, f.doc.Body(), `<div class="panel" id="p3"></div>`)
	f.doc.Flush()

	require.Len(t, nodes, 2)
	assert.Len(t, f.eng.Bindings(nodes[0]), 1)
	assert.Empty(t, f.eng.Bindings(nodes[1]))
	assert.Empty(t, f.eng.Bindings(f.node(t, "#p3")))
}

func TestFutureBindingForwardsAfterMaterialize(t *testing.T) {
	f := newFixture(t, page)
	fb, _ := f.eng.BindFuture(".item", ".panel")
	fb.On("click", Func(func(*Event) {}))

	f.insert(t, f.doc.Body(), panel)
	f.doc.Flush()
	b := fb.Binding()
	require.NotNil(t, b)

	fb.On("keyup", Func(func(*Event) {}))
	assert.Equal(t, 1, b.Events().Len(KeyUp))
	assert.Same(t, b.Events(), fb.Events())

	fb.Off("click")
	assert.Zero(t, b.Events().Len(Click))

	fb.OnNamespace("ns", "click", Func(func(*Event) {}))
	m, ok := b.Namespace("ns")
	require.True(t, ok)
	assert.Equal(t, 1, m.Len(Click))
	assert.Equal(t, []string{"ns"}, fb.Namespaces())

	fb.Reset()
	assert.Zero(t, b.Events().Total())
	assert.Empty(t, b.Namespaces())
}

func TestFutureBindingBeforeMaterialize(t *testing.T) {
	f := newFixture(t, page)
	fb, _ := f.eng.BindFuture(".item", ".panel")

	fb.On("click keyup", Func(func(*Event) {})).OnNamespace("ns", "click", Func(func(*Event) {}))
	fb.OffNamespaceEvents("ns", "click")
	m, ok := fb.Namespace("ns")
	require.True(t, ok)
	assert.Zero(t, m.Total())

	fb.OffEvents("keyup")
	assert.Equal(t, 1, fb.Events().Total())
	fb.OffNamespace("ns")
	fb.Off()
	assert.Zero(t, fb.Events().Total())
	assert.Empty(t, fb.Namespaces())
}

func TestFutureBindingCancel(t *testing.T) {
	f := newFixture(t, page)
	fb, _ := f.eng.BindFuture(".item", ".panel")
	fb.On("click", Func(func(*Event) {}))
	fb.Cancel()

	nodes := f.insert(t, f.doc.Body(), panel)
	f.doc.Flush()

	assert.Equal(t, Cancelled, fb.State())
	assert.Nil(t, fb.Binding())
	assert.Empty(t, f.eng.Bindings(nodes[0]))
}

func TestFutureBindingErrors(t *testing.T) {
	f := newFixture(t, page)
	_, err := f.eng.BindFuture("[", ".panel")
	assert.Error(t, err)
	_, err = f.eng.BindFuture(".item", "[")
	assert.Error(t, err)
}
