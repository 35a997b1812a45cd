package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html><html><body>
<ul id="list">
  <li id="a" class="item">a</li>
  <li id="b" class="item active">b</li>
</ul>
</body></html>`

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseString(src)
	require.NoError(t, err)
	return doc
}

func TestNodeIdentity(t *testing.T) {
	doc := mustParse(t, page)

	a1, err := doc.QuerySelector("#a")
	require.NoError(t, err)
	a2, err := doc.QuerySelector("li.item")
	require.NoError(t, err)
	assert.Same(t, a1, a2)

	list, err := doc.QuerySelector("#list")
	require.NoError(t, err)
	assert.Same(t, list, a1.Parent())
	assert.Same(t, doc.Body(), list.Parent())
	assert.True(t, doc.Root().IsDocument())
}

func TestNodeAccessors(t *testing.T) {
	doc := mustParse(t, page)
	b, _ := doc.QuerySelector("#b")

	assert.Equal(t, "li", b.Tag())
	assert.Equal(t, "b", b.ID())
	assert.Equal(t, []string{"item", "active"}, b.Classes())
	assert.True(t, b.HasClass("active"))
	assert.Equal(t, "li#b.item.active", b.String())

	b.SetAttr("data-x", "1")
	v, ok := b.Attr("data-x")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Contains(t, b.OuterHTML(), `data-x="1"`)
}

func TestContains(t *testing.T) {
	doc := mustParse(t, page)
	list, _ := doc.QuerySelector("#list")
	a, _ := doc.QuerySelector("#a")

	assert.True(t, list.Contains(a))
	assert.True(t, list.Contains(list))
	assert.False(t, a.Contains(list))
	assert.False(t, a.Contains(nil))
}

func TestDetachReattachKeepsIdentity(t *testing.T) {
	doc := mustParse(t, page)
	list, _ := doc.QuerySelector("#list")
	a, _ := doc.QuerySelector("#a")

	require.NoError(t, doc.RemoveChild(doc.Body(), list))
	assert.False(t, list.Attached())
	assert.False(t, a.Attached())
	assert.Same(t, a, list.Children()[0])

	found, err := doc.QuerySelector("#a")
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, doc.AppendChild(doc.Body(), list))
	found, err = doc.QuerySelector("#a")
	require.NoError(t, err)
	assert.Same(t, a, found)
}

func TestInsertErrors(t *testing.T) {
	doc := mustParse(t, page)
	list, _ := doc.QuerySelector("#list")
	a, _ := doc.QuerySelector("#a")

	assert.ErrorIs(t, doc.AppendChild(a, list), ErrHierarchy)
	assert.ErrorIs(t, doc.RemoveChild(doc.Body(), a), ErrNotChild)

	other := New()
	assert.ErrorIs(t, doc.AppendChild(doc.Body(), other.CreateElement("div")), ErrForeignNode)
}

func TestParseFragment(t *testing.T) {
	doc := New()
	nodes, err := doc.ParseFragment(nil, `text<div class="panel"><p>x</p></div><span></span>`)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "div.panel", nodes[0].String())
	assert.False(t, nodes[0].Attached())

	p := nodes[0].Children()[0]
	require.NoError(t, doc.AppendChild(doc.Body(), nodes[0]))
	found, _ := doc.QuerySelector("p")
	assert.Same(t, p, found)
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 40, Height: 40}

	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{49.9, 49.9, true},
		{50, 20, false},
		{20, 50, false},
		{9.9, 20, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Contains(tt.x, tt.y), "(%v,%v)", tt.x, tt.y)
	}
	assert.True(t, Rect{}.Empty())
}

func TestBoundingClientRect(t *testing.T) {
	doc := mustParse(t, page)
	a, _ := doc.QuerySelector("#a")
	a.SetRect(Rect{X: 10, Y: 200, Width: 40, Height: 40})

	doc.ScrollTo(0, 150)
	assert.Equal(t, Rect{X: 10, Y: 50, Width: 40, Height: 40}, a.BoundingClientRect())
	assert.Equal(t, Rect{X: 10, Y: 200, Width: 40, Height: 40}, a.Rect())
}
