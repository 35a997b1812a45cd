package dom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// Selector is a compiled element selector.
type Selector interface {
	// Select returns the descendants of root that match, in document order.
	Select(root *Node) []*Node

	// Match reports whether n matches, evaluated against its whole document.
	Match(n *Node) bool

	// String returns the source expression.
	String() string
}

// Compile parses expr. Expressions starting with "/", "./" or "(" are
// XPath; everything else is a CSS selector group. Parse errors are returned
// as produced by the underlying parser.
func Compile(expr string) (Selector, error) {
	if IsXPath(expr) {
		x, err := xpath.Compile(expr)
		if err != nil {
			return nil, err
		}
		return &xpathSelector{src: expr, expr: x}, nil
	}
	sel, err := cascadia.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &cssSelector{src: expr, sel: sel}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) Selector {
	sel, err := Compile(expr)
	if err != nil {
		panic("dom: Compile(" + expr + "): " + err.Error())
	}
	return sel
}

// IsXPath reports whether Compile treats expr as XPath.
func IsXPath(expr string) bool {
	expr = strings.TrimSpace(expr)
	return strings.HasPrefix(expr, "/") ||
		strings.HasPrefix(expr, "./") ||
		strings.HasPrefix(expr, "(")
}

type cssSelector struct {
	src string
	sel cascadia.Selector
}

func (s *cssSelector) Select(root *Node) []*Node {
	return root.doc.wrapAll(cascadia.QueryAll(root.n, s.sel))
}

func (s *cssSelector) Match(n *Node) bool {
	return n.n.Type == html.ElementNode && s.sel.Match(n.n)
}

func (s *cssSelector) String() string { return s.src }

type xpathSelector struct {
	src  string
	expr *xpath.Expr
}

func (s *xpathSelector) Select(root *Node) []*Node {
	var out []*html.Node
	for _, h := range htmlquery.QuerySelectorAll(root.n, s.expr) {
		if h == root.n || h.Type != html.ElementNode {
			continue
		}
		if root.Contains(root.doc.wrap(h)) {
			out = append(out, h)
		}
	}
	return root.doc.wrapAll(out)
}

func (s *xpathSelector) Match(n *Node) bool {
	top := n.doc.wrap(topOf(n.n))
	for _, m := range s.Select(top) {
		if m == n {
			return true
		}
	}
	return false
}

func (s *xpathSelector) String() string { return s.src }

func (d *Document) wrapAll(hs []*html.Node) []*Node {
	out := make([]*Node, 0, len(hs))
	for _, h := range hs {
		if n := d.wrap(h); n != nil {
			out = append(out, n)
		}
	}
	return out
}
