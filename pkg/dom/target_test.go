package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchPhases(t *testing.T) {
	doc := mustParse(t, page)
	list, _ := doc.QuerySelector("#list")
	a, _ := doc.QuerySelector("#a")

	var trace []string
	record := func(name string) func(*Event) {
		return func(e *Event) { trace = append(trace, name+":"+e.Phase.String()) }
	}
	doc.Root().AddEventListener("click", record("doc-capture"), Capture())
	list.AddEventListener("click", record("list"))
	list.AddEventListener("click", record("list-capture"), Capture())
	a.AddEventListener("click", record("a"))
	doc.Body().AddEventListener("click", record("body"))

	assert.True(t, a.DispatchEvent(NewEvent("click")))
	assert.Equal(t, []string{
		"doc-capture:Capturing",
		"list-capture:Capturing",
		"a:AtTarget",
		"list:Bubbling",
		"body:Bubbling",
	}, trace)
}

func TestStopPropagationAndPreventDefault(t *testing.T) {
	doc := mustParse(t, page)
	list, _ := doc.QuerySelector("#list")
	a, _ := doc.QuerySelector("#a")

	var bodySaw, listSecond bool
	list.AddEventListener("click", func(e *Event) {
		assert.Same(t, a, e.Target)
		assert.Same(t, list, e.CurrentTarget)
		e.PreventDefault()
		e.StopPropagation()
	})
	list.AddEventListener("click", func(*Event) { listSecond = true })
	doc.Body().AddEventListener("click", func(*Event) { bodySaw = true })

	e := NewEvent("click")
	assert.False(t, a.DispatchEvent(e))
	assert.True(t, e.DefaultPrevented())
	assert.True(t, e.PropagationStopped())
	assert.True(t, listSecond, "listeners on the current node still run")
	assert.False(t, bodySaw)
}

func TestNonBubblingEvent(t *testing.T) {
	doc := mustParse(t, page)
	a, _ := doc.QuerySelector("#a")

	var bubbled bool
	doc.Body().AddEventListener("pointerenter", func(*Event) { bubbled = true })
	a.DispatchEvent(NewEvent("pointerenter"))
	assert.False(t, bubbled)
}

func TestListenerRemoveAndOnce(t *testing.T) {
	doc := mustParse(t, page)
	a, _ := doc.QuerySelector("#a")

	var n, once int
	l := a.AddEventListener("keydown", func(*Event) { n++ })
	a.AddEventListener("keydown", func(*Event) { once++ }, Once())

	a.DispatchEvent(NewEvent("keydown"))
	l.Remove()
	l.Remove()
	a.DispatchEvent(NewEvent("keydown"))

	assert.Equal(t, 1, n)
	assert.Equal(t, 1, once)
	assert.False(t, a.HasListeners("keydown"))
}

func TestPointerSequence(t *testing.T) {
	doc := mustParse(t, page)
	a, _ := doc.QuerySelector("#a")

	var types []string
	doc.Root().AddEventListener("pointermove", func(e *Event) { types = append(types, e.Type) })
	doc.Root().AddEventListener("mousemove", func(e *Event) { types = append(types, e.Type) })

	events := a.PointerSequence("move", 3, 4)
	require.Len(t, events, 2)
	assert.Equal(t, []string{"pointermove", "mousemove"}, types)
	assert.Equal(t, 3.0, events[1].ClientX)
	assert.Equal(t, 4.0, events[1].ClientY)
}

func TestPointerDownCanceledSkipsMouse(t *testing.T) {
	doc := mustParse(t, page)
	a, _ := doc.QuerySelector("#a")
	a.AddEventListener("pointerdown", func(e *Event) { e.PreventDefault() })

	events := a.PointerSequence("down", 0, 0)
	assert.Len(t, events, 1)
}
