package live

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/live/pkg/dom"
)

func TestBindReturnsSameInstance(t *testing.T) {
	f := newFixture(t, page)

	b1, err := f.eng.Bind(".item")
	require.NoError(t, err)
	b2, err := f.eng.BindIn(".item", f.doc.Body())
	require.NoError(t, err)
	assert.Same(t, b1, b2)
	assert.Same(t, f.doc.Body(), b1.Context())
	assert.Equal(t, ".item", b1.Selector())

	list := f.node(t, "#list")
	b3, err := f.eng.BindIn(".item", list)
	require.NoError(t, err)
	assert.NotSame(t, b1, b3)

	b4, err := f.eng.Bind("li")
	require.NoError(t, err)
	assert.Equal(t, []*Binding{b1, b4}, f.eng.Bindings(f.doc.Body()))
}

func TestBindErrors(t *testing.T) {
	f := newFixture(t, page)

	_, err := f.eng.Bind("li[")
	assert.Error(t, err)

	_, err = f.eng.BindIn(".item", f.doc.CreateElement("div"))
	assert.ErrorIs(t, err, ErrDetachedContext)

	_, err = f.eng.BindIn(".item", dom.New().Body())
	assert.ErrorIs(t, err, ErrForeignContext)

	frames, err := dom.ParseString("<frameset></frameset>")
	require.NoError(t, err)
	require.Nil(t, frames.Body())
	_, err = New(frames).Bind(".x")
	assert.ErrorIs(t, err, ErrNoBody)
}

func TestOnSplitsAndFoldsNames(t *testing.T) {
	f := newFixture(t, page)
	b, _ := f.eng.Bind(".item")
	noop := Func(func(*Event) {})

	b.On("  CLICK  mouseover\tkeyup ", noop).On("click", noop)
	assert.Equal(t, 2, b.Events().Len(Click))
	assert.Equal(t, 1, b.Events().Len(MouseOver))
	assert.Equal(t, 1, b.Events().Len(KeyUp))

	b.On("clik hover", noop)
	assert.Equal(t, 4, b.Events().Total())
	assert.Equal(t, AllEvents(), b.Events().Keys())
}

func TestOnNamespaceCreatesLazily(t *testing.T) {
	f := newFixture(t, page)
	b, _ := f.eng.Bind(".item")
	noop := Func(func(*Event) {})

	_, ok := b.Namespace("ns1")
	assert.False(t, ok)

	b.OnNamespace("ns2", "click", noop).OnNamespace("ns1", "click keydown", noop)
	b.OnNamespace("", "click", noop)

	assert.Equal(t, []string{"ns2", "ns1"}, b.Namespaces())
	ns1, ok := b.Namespace("ns1")
	require.True(t, ok)
	assert.Equal(t, 1, ns1.Len(KeyDown))
	assert.Equal(t, 1, b.Events().Len(Click))
}

func populated(t *testing.T) *Binding {
	t.Helper()
	f := newFixture(t, page)
	b, err := f.eng.Bind(".item")
	require.NoError(t, err)
	noop := Func(func(*Event) {})
	b.On("click keyup", noop)
	b.OnNamespace("ns1", "click keyup", noop)
	b.OnNamespace("ns2", "click keyup", noop)
	return b
}

func nsLen(t *testing.T, b Bindable, ns string, name EventName) int {
	t.Helper()
	m, ok := b.Namespace(ns)
	require.True(t, ok, ns)
	return m.Len(name)
}

func TestResetClearsEverything(t *testing.T) {
	b := populated(t)

	b.Off()
	assert.Zero(t, b.Events().Total())
	assert.Empty(t, b.Namespaces())

	b.Off().Reset()
	assert.Equal(t, AllEvents(), b.Events().Keys())
	assert.Zero(t, b.Events().Total())
}

func TestOffEventsClearsEveryNamespace(t *testing.T) {
	b := populated(t)

	b.Off("CLICK")
	assert.Zero(t, b.Events().Len(Click))
	assert.Zero(t, nsLen(t, b, "ns1", Click))
	assert.Zero(t, nsLen(t, b, "ns2", Click))
	assert.Equal(t, 1, b.Events().Len(KeyUp))
	assert.Equal(t, 1, nsLen(t, b, "ns1", KeyUp))
}

func TestOffEventsWithinNamespace(t *testing.T) {
	b := populated(t)

	b.Off("click", "ns1")
	assert.Zero(t, nsLen(t, b, "ns1", Click))
	assert.Equal(t, 1, nsLen(t, b, "ns2", Click))
	assert.Equal(t, 1, b.Events().Len(Click))
	assert.Equal(t, 1, nsLen(t, b, "ns1", KeyUp))
}

func TestOffUnknownNamespaceIsNoop(t *testing.T) {
	b := populated(t)

	b.OffNamespaceEvents("missing", "click")
	_, ok := b.Namespace("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"ns1", "ns2"}, b.Namespaces())
}

func TestOffNamespaceByName(t *testing.T) {
	b := populated(t)

	b.Off("ns1")
	assert.Zero(t, nsLen(t, b, "ns1", Click))
	assert.Zero(t, nsLen(t, b, "ns1", KeyUp))
	assert.Equal(t, 1, nsLen(t, b, "ns2", Click))
	assert.Equal(t, 2, b.Events().Total())
	assert.Equal(t, []string{"ns1", "ns2"}, b.Namespaces())

	// A list mixing known and unknown names names a namespace.
	b.Off("click ns2")
	_, ok := b.Namespace("click ns2")
	assert.True(t, ok)
	assert.Equal(t, 1, b.Events().Len(Click))
}

func TestDistinctOffOperations(t *testing.T) {
	b := populated(t)

	b.OffEvents("keyup")
	assert.Zero(t, b.Events().Len(KeyUp))
	assert.Zero(t, nsLen(t, b, "ns2", KeyUp))

	b.OffNamespaceEvents("ns2", "click")
	assert.Zero(t, nsLen(t, b, "ns2", Click))
	assert.Equal(t, 1, nsLen(t, b, "ns1", Click))

	b.OffNamespace("ns1")
	assert.Zero(t, nsLen(t, b, "ns1", Click))
}
