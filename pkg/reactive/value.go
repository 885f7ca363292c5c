package reactive

// Kind discriminates the two shapes a property value can take.
type Kind uint8

const (
	KindStatic Kind = iota // Literal value, read once
	KindSignal             // Live cell, read now and on every change
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "Static"
	case KindSignal:
		return "Signal"
	default:
		return "Unknown"
	}
}

// Source is the type-erased view of a signal that renderers consume.
type Source interface {
	// Current returns the current value.
	Current() any
	// Watch registers fn for future values and returns its disposer.
	Watch(fn func(any)) (unsubscribe func())
}

// Value is a property value tagged with its kind.
// The zero Value is a static nil.
type Value struct {
	kind   Kind
	static any
	source Source
}

// Static wraps a literal property value.
func Static(v any) Value {
	return Value{kind: KindStatic, static: v}
}

// Bind wraps a signal so it can be used as a live property value.
func Bind[T any](s *Signal[T]) Value {
	if s == nil {
		return Value{}
	}
	return Value{kind: KindSignal, source: signalSource[T]{s}}
}

// FromSource wraps any Source as a live property value.
func FromSource(src Source) Value {
	if src == nil {
		return Value{}
	}
	return Value{kind: KindSignal, source: src}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsSignal reports whether the value is live.
func (v Value) IsSignal() bool {
	return v.kind == KindSignal
}

// Current returns the literal, or the signal's current value.
func (v Value) Current() any {
	if v.kind == KindSignal {
		return v.source.Current()
	}
	return v.static
}

// Source returns the underlying source, or nil for static values.
func (v Value) Source() Source {
	return v.source
}

// Watch subscribes fn to the underlying signal. For static values it does
// nothing and returns a no-op disposer.
func (v Value) Watch(fn func(any)) (unsubscribe func()) {
	if v.kind != KindSignal {
		return func() {}
	}
	return v.source.Watch(fn)
}

// Resolve returns the current value of p if it is a Value, otherwise p itself.
func Resolve(p any) any {
	if v, ok := p.(Value); ok {
		return v.Current()
	}
	return p
}

// signalSource adapts Signal[T] to Source.
type signalSource[T any] struct {
	s *Signal[T]
}

func (a signalSource[T]) Current() any {
	return a.s.Get()
}

func (a signalSource[T]) Watch(fn func(any)) func() {
	return a.s.Subscribe(func(v T) { fn(v) })
}
