// Package errors provides coded, structured errors for the live tools.
//
// Every error carries a code (e.g. "L003") that maps to a registered
// template with a category, a short message and a longer detail. Errors
// raised while reading a scenario can point at the offending line:
//
//	err := errors.New("L004").
//	    WithLocation("scenarios/hover.yaml", 14, 5).
//	    WithSuggestion("Check that the target selector matches an element")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR L004: Scenario step failed
//	//
//	//   scenarios/hover.yaml:14:5
//	//
//	//     12 │ steps:
//	//     13 │   - pointer: move
//	//   → 14 │     target: "#missing"
//	//        │     ^
//	//     15 │     at: [20, 20]
//	//
//	//   Hint: Check that the target selector matches an element
//
// # Categories
//
//   - selector: selector compile failures
//   - binding: context problems while binding
//   - scenario: scenario documents and replay
//   - config: live.json loading and validation
//   - protocol: bridge frames
package errors
