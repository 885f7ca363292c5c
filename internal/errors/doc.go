// Package errors provides structured, actionable error messages for vnest.
//
// Each error has a unique code (e.g., "E101") that maps to a short message,
// a longer explanation and a documentation URL. Errors wrap their cause so
// errors.Is and errors.As keep working through them.
//
// # Error Categories
//
//   - render: the host document rejected a structural change
//   - style: stylesheet rules and selectors
//   - config: vnest.json / vnest.yaml problems
//   - transport: live server and websocket errors
//   - publish: snapshot upload errors
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail(`selector "..card" is not valid CSS`).
//	    Wrap(cause)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Invalid selector
//	//
//	//   selector "..card" is not valid CSS
//	//
//	//   Learn more: https://vnest.dev/docs/errors/E101
package errors
