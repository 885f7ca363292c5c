// Package reactive provides the signal cell used for live property bindings.
//
// A Signal holds one value and a list of subscribers. Setting a different
// value notifies every subscriber synchronously, in the order they
// subscribed:
//
//	count := reactive.NewSignal(0)
//	stop := count.Subscribe(func(v int) { fmt.Println("count is", v) })
//	count.Set(1) // prints "count is 1"
//	count.Set(1) // no-op, value unchanged
//	stop()
//
// # Property values
//
// Element properties accept either plain literals or a [Value]. A Value is
// an explicit tagged wrapper: [Static] wraps a literal, [Bind] wraps a
// signal. Renderers branch on [Value.Kind] rather than probing the dynamic
// type for accessor methods.
//
// # Re-entrancy
//
// A subscriber may call Set on the signal that is notifying it. The new
// value is stored immediately and its notification is queued; the outer
// notification loop delivers it after the current round finishes. Cycles
// across signals (A sets B sets A) therefore drain through a queue instead
// of growing the stack.
package reactive
