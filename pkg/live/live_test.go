package live

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/live/pkg/dom"
)

const page = `<!DOCTYPE html><html><body>
<ul id="list">
  <li id="a" class="item"><span id="inner">a</span></li>
  <li id="b" class="item">b</li>
  <li id="c">c</li>
</ul>
</body></html>`

type fixture struct {
	doc     *dom.Document
	eng     *Engine
	metrics *Metrics
}

func newFixture(t *testing.T, src string) *fixture {
	t.Helper()
	doc, err := dom.ParseString(src)
	require.NoError(t, err)
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	return &fixture{doc: doc, eng: New(doc, WithMetrics(m)), metrics: m}
}

func (f *fixture) node(t *testing.T, expr string) *dom.Node {
	t.Helper()
	n, err := f.doc.QuerySelector(expr)
	require.NoError(t, err)
	require.NotNil(t, n, expr)
	return n
}

// recorder collects labelled invocations in order.
type recorder struct {
	calls []string
}

func (r *recorder) cb(label string) Callback {
	return Func(func(*Event) { r.calls = append(r.calls, label) })
}

func (r *recorder) names() Callback {
	return Func(func(e *Event) { r.calls = append(r.calls, e.Name.String()) })
}

// insert parses src under parent and appends the resulting elements.
func (f *fixture) insert(t *testing.T, parent *dom.Node, src string) []*dom.Node {
	t.Helper()
	nodes, err := f.doc.ParseFragment(parent, src)
	require.NoError(t, err)
	for _, n := range nodes {
		require.NoError(t, f.doc.AppendChild(parent, n))
	}
	return nodes
}
