// Package dom is an in-memory host DOM for the live event engine.
//
// It stands in for the browser: a Document owns a golang.org/x/net/html
// tree and hands out exactly one *Node per element, so pointer equality is
// element identity. On top of the tree it provides what the engine needs
// from a host environment:
//
//   - Event targets with capture, at-target and bubble phases
//   - Layout boxes and scroll offsets for hit testing
//   - CSS (cascadia) and XPath (htmlquery) selector evaluation
//   - A child-list mutation observer whose batches are delivered by Flush
//
// # Usage
//
//	doc, _ := dom.ParseString(`<body><ul><li class="item">one</li></ul></body>`)
//	item, _ := doc.QuerySelector(".item")
//	item.SetRect(dom.Rect{X: 10, Y: 10, Width: 40, Height: 40})
//	doc.Body().AddEventListener("click", func(e *dom.Event) {
//	    fmt.Println("clicked", e.Target)
//	})
//	item.DispatchEvent(dom.NewEvent("click"))
//
// A Document is not safe for concurrent use.
package dom
