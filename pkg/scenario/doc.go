// Package scenario replays scripted interactions against a live engine.
//
// A scenario is a YAML document holding a page, its layout, a set of
// bindings and a list of steps:
//
//	html: |
//	  <ul id="list"><li id="a" class="item">a</li></ul>
//	layout:
//	  "#a": [10, 10, 40, 40]
//	bindings:
//	  - selector: .item
//	    context: "#list"
//	    events: mouseover mouseout click
//	steps:
//	  - pointer: move
//	    target: "#a"
//	    at: [20, 20]
//	  - dispatch: click
//	    target: "#a"
//	expect:
//	  - .item mouseover -> li#a.item
//	  - .item click -> li#a.item
//
// Every binding callback records an Invocation. Mutation records are
// delivered after each step unless the scenario sets batch, in which case
// only flush steps deliver them.
package scenario
