package dom

import (
	"errors"
	"io"
	"strings"
	"weak"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Tree manipulation errors.
var (
	ErrNotChild     = errors.New("dom: node is not a child of parent")
	ErrHierarchy    = errors.New("dom: insertion would create a cycle")
	ErrForeignNode  = errors.New("dom: node belongs to another document")
	ErrNotAnElement = errors.New("dom: node is not an element")
)

// Document owns an HTML tree and the element wrappers handed out for it.
type Document struct {
	root *html.Node

	// index holds the wrapper of every element attached to root.
	index map[*html.Node]*Node

	// detached tracks the roots of subtrees that are not attached.
	// Both sides are weak so an abandoned subtree can be collected.
	detached map[weak.Pointer[html.Node]]weak.Pointer[Node]

	scrollX float64
	scrollY float64

	observers []*Observer
}

// Parse parses an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return newDocument(root), nil
}

// ParseString parses an HTML document held in a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// New returns an empty document with html, head and body elements.
func New() *Document {
	doc, _ := ParseString("<!DOCTYPE html><html><head></head><body></body></html>")
	return doc
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:     root,
		index:    make(map[*html.Node]*Node),
		detached: make(map[weak.Pointer[html.Node]]weak.Pointer[Node]),
	}
}

// Root returns the document node. Listeners on it see every bubbling event.
func (d *Document) Root() *Node {
	return d.wrap(d.root)
}

// Body returns the body element, or nil if the tree has none.
func (d *Document) Body() *Node {
	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := find(c); found != nil {
				return found
			}
		}
		return nil
	}
	if b := find(d.root); b != nil {
		return d.wrap(b)
	}
	return nil
}

// QuerySelector returns the first element under the document matching expr.
func (d *Document) QuerySelector(expr string) (*Node, error) {
	return d.Root().QuerySelector(expr)
}

// QuerySelectorAll returns every element under the document matching expr.
func (d *Document) QuerySelectorAll(expr string) ([]*Node, error) {
	return d.Root().QuerySelectorAll(expr)
}

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) *Node {
	h := &html.Node{
		Type:     html.ElementNode,
		Data:     strings.ToLower(tag),
		DataAtom: atom.Lookup([]byte(strings.ToLower(tag))),
	}
	return d.wrap(h)
}

// ParseFragment parses src in the context of parent and returns the
// detached top-level elements it produced. Text at the top level is dropped.
func (d *Document) ParseFragment(parent *Node, src string) ([]*Node, error) {
	if parent == nil {
		parent = d.Body()
	}
	nodes, err := html.ParseFragment(strings.NewReader(src), parent.n)
	if err != nil {
		return nil, err
	}
	out := make([]*Node, 0, len(nodes))
	for _, h := range nodes {
		if h.Type != html.ElementNode {
			continue
		}
		out = append(out, d.wrap(h))
	}
	return out, nil
}

// ScrollTo sets the document scroll offset.
func (d *Document) ScrollTo(x, y float64) {
	d.scrollX = x
	d.scrollY = y
}

// Scroll returns the document scroll offset.
func (d *Document) Scroll() (x, y float64) {
	return d.scrollX, d.scrollY
}

// AppendChild appends child to parent, detaching it from its current
// parent first.
func (d *Document) AppendChild(parent, child *Node) error {
	return d.InsertBefore(parent, child, nil)
}

// InsertBefore inserts child into parent before ref. A nil ref appends.
func (d *Document) InsertBefore(parent, child, ref *Node) error {
	if parent.doc != d || child.doc != d || (ref != nil && ref.doc != d) {
		return ErrForeignNode
	}
	if child.n.Type != html.ElementNode {
		return ErrNotAnElement
	}
	if child.Contains(parent) {
		return ErrHierarchy
	}
	if ref != nil && ref.n.Parent != parent.n {
		return ErrNotChild
	}
	if old := child.n.Parent; old != nil {
		if err := d.RemoveChild(d.wrap(old), child); err != nil {
			return err
		}
	}

	var refNode *html.Node
	if ref != nil {
		refNode = ref.n
	}
	parent.n.InsertBefore(child.n, refNode)
	d.settle(parent, child)
	d.queue(MutationRecord{Target: parent, AddedNodes: []*Node{child}})
	return nil
}

// RemoveChild detaches child from parent.
func (d *Document) RemoveChild(parent, child *Node) error {
	if child.n.Parent != parent.n {
		return ErrNotChild
	}
	var src map[*html.Node]*Node
	if d.attached(parent.n) {
		src = d.index
	} else {
		src = d.detachedRoot(topOf(parent.n)).orphans
	}
	parent.n.RemoveChild(child.n)
	child.orphans = takeSubtree(src, child.n)
	d.pruneDetached()
	d.detached[weak.Make(child.n)] = weak.Make(child)
	d.queue(MutationRecord{Target: parent, RemovedNodes: []*Node{child}})
	return nil
}

// attached reports whether h is connected to the document node.
func (d *Document) attached(h *html.Node) bool {
	for ; h != nil; h = h.Parent {
		if h == d.root {
			return true
		}
	}
	return false
}

// wrap returns the single wrapper for h, creating it on first use.
// Only element and document nodes are wrapped.
func (d *Document) wrap(h *html.Node) *Node {
	if h == nil || (h.Type != html.ElementNode && h.Type != html.DocumentNode) {
		return nil
	}
	if n, ok := d.index[h]; ok {
		return n
	}

	top := topOf(h)
	if top == d.root {
		n := &Node{n: h, doc: d}
		d.index[h] = n
		return n
	}

	root := d.detachedRoot(top)
	if h == top {
		return root
	}
	if n, ok := root.orphans[h]; ok {
		return n
	}
	n := &Node{n: h, doc: d}
	root.orphans[h] = n
	return n
}

// detachedRoot returns the wrapper for the top of a detached subtree.
func (d *Document) detachedRoot(top *html.Node) *Node {
	key := weak.Make(top)
	if wp, ok := d.detached[key]; ok {
		if n := wp.Value(); n != nil {
			return n
		}
	}
	d.pruneDetached()
	n := &Node{n: top, doc: d, orphans: make(map[*html.Node]*Node)}
	d.detached[key] = weak.Make(n)
	return n
}

func (d *Document) pruneDetached() {
	for k, v := range d.detached {
		if k.Value() == nil || v.Value() == nil {
			delete(d.detached, k)
		}
	}
}

// settle files child's subtree wrappers under the owner of parent's tree:
// the index when attached, otherwise the detached root of parent.
func (d *Document) settle(parent, child *Node) {
	delete(d.detached, weak.Make(child.n))
	dst := d.index
	if !d.attached(parent.n) {
		dst = d.detachedRoot(topOf(parent.n)).orphans
	}
	dst[child.n] = child
	for h, n := range child.orphans {
		dst[h] = n
	}
	child.orphans = nil
}

// takeSubtree removes the wrappers of top and its descendants from src and
// returns the descendants' wrappers.
func takeSubtree(src map[*html.Node]*Node, top *html.Node) map[*html.Node]*Node {
	out := make(map[*html.Node]*Node)
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if n, ok := src[c]; ok {
				out[c] = n
				delete(src, c)
			}
			walk(c)
		}
	}
	walk(top)
	delete(src, top)
	return out
}

func topOf(h *html.Node) *html.Node {
	for h.Parent != nil {
		h = h.Parent
	}
	return h
}
