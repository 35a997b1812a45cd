package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Node is an element (or the document node) of a Document.
type Node struct {
	n   *html.Node
	doc *Document

	listeners map[string][]*Listener

	rect Rect

	// orphans holds descendant wrappers while this node roots a detached subtree.
	orphans map[*html.Node]*Node
}

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// HTML returns the underlying html node.
func (n *Node) HTML() *html.Node { return n.n }

// Tag returns the lower-case tag name, or "#document" for the document node.
func (n *Node) Tag() string {
	if n.n.Type == html.DocumentNode {
		return "#document"
	}
	return n.n.Data
}

// IsDocument reports whether n is the document node.
func (n *Node) IsDocument() bool { return n.n.Type == html.DocumentNode }

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute.
func (n *Node) SetAttr(key, val string) {
	for i, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.n.Attr[i].Val = val
			return
		}
	}
	n.n.Attr = append(n.n.Attr, html.Attribute{Key: key, Val: val})
}

// ID returns the id attribute.
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// Classes returns the class list.
func (n *Node) Classes() []string {
	c, _ := n.Attr("class")
	return strings.Fields(c)
}

// HasClass reports whether the class list contains name.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// Parent returns the parent element or document node.
func (n *Node) Parent() *Node {
	return n.doc.wrap(n.n.Parent)
}

// Children returns the element children in document order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, n.doc.wrap(c))
		}
	}
	return out
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	if other == nil {
		return false
	}
	for h := other.n; h != nil; h = h.Parent {
		if h == n.n {
			return true
		}
	}
	return false
}

// Attached reports whether n is connected to its document.
func (n *Node) Attached() bool {
	return n.doc.attached(n.n)
}

// QuerySelector returns the first descendant matching expr, or nil.
func (n *Node) QuerySelector(expr string) (*Node, error) {
	all, err := n.QuerySelectorAll(expr)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

// QuerySelectorAll returns every descendant matching expr in document order.
func (n *Node) QuerySelectorAll(expr string) ([]*Node, error) {
	sel, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	return sel.Select(n), nil
}

// Matches reports whether n matches sel.
func (n *Node) Matches(sel Selector) bool {
	return sel.Match(n)
}

// SetRect sets the layout box of n in document coordinates.
func (n *Node) SetRect(r Rect) { n.rect = r }

// Rect returns the layout box of n in document coordinates.
func (n *Node) Rect() Rect { return n.rect }

// BoundingClientRect returns the layout box relative to the viewport.
func (n *Node) BoundingClientRect() Rect {
	return n.rect.Translate(-n.doc.scrollX, -n.doc.scrollY)
}

// OuterHTML renders n and its subtree.
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	if err := html.Render(&sb, n.n); err != nil {
		return ""
	}
	return sb.String()
}

// String returns a short description such as "li#first.item".
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(n.Tag())
	if id := n.ID(); id != "" {
		sb.WriteByte('#')
		sb.WriteString(id)
	}
	for _, c := range n.Classes() {
		sb.WriteByte('.')
		sb.WriteString(c)
	}
	return sb.String()
}
