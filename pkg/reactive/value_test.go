package reactive

import "testing"

func TestValueKinds(t *testing.T) {
	tests := []struct {
		name    string
		value   Value
		kind    Kind
		current any
	}{
		{"zero", Value{}, KindStatic, nil},
		{"static string", Static("red"), KindStatic, "red"},
		{"static int", Static(3), KindStatic, 3},
		{"signal", Bind(NewSignal("live")), KindSignal, "live"},
		{"nil signal", Bind[string](nil), KindStatic, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.value.Kind(), tt.kind)
			}
			if tt.value.Current() != tt.current {
				t.Errorf("Current() = %v, want %v", tt.value.Current(), tt.current)
			}
		})
	}
}

func TestValueWatch(t *testing.T) {
	s := NewSignal(1)
	v := Bind(s)

	var got []any
	stop := v.Watch(func(x any) { got = append(got, x) })
	s.Set(2)
	stop()
	s.Set(3)

	if len(got) != 1 || got[0] != 2 {
		t.Errorf("expected [2], got %v", got)
	}

	// Static values never fire.
	Static("x").Watch(func(any) { t.Error("static value should not notify") })()
}

func TestResolve(t *testing.T) {
	if Resolve("plain") != "plain" {
		t.Error("plain values resolve to themselves")
	}
	if Resolve(Bind(NewSignal(7))) != 7 {
		t.Error("signal values resolve to their current value")
	}
}

func TestKindString(t *testing.T) {
	if KindStatic.String() != "Static" || KindSignal.String() != "Signal" || Kind(9).String() != "Unknown" {
		t.Error("unexpected Kind strings")
	}
}
