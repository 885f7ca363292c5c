package vdom

import (
	"testing"

	"github.com/vnest-dev/vnest/pkg/dom"
	"github.com/vnest-dev/vnest/pkg/reactive"
)

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEl(t *testing.T) {
	node := Div(
		Class("card"),
		ID("main"),
		nil,
		[]Attr{Prop("role", "note"), {}},
		Props{"title": "t"},
		H1("Title"),
		[]*VNode{P("a"), nil, P("b")},
		"tail",
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("unexpected node %+v", node)
	}
	for _, key := range []string{PropClassName, "id", "role", "title"} {
		if _, ok := node.Props[key]; !ok {
			t.Errorf("expected prop %q", key)
		}
	}
	if len(node.Children) != 4 {
		t.Fatalf("expected 4 children, got %d", len(node.Children))
	}
	if node.Children[0].Children[0].Text != "Title" {
		t.Error("expected string argument to become a text child")
	}
	if node.Children[3].Kind != KindText || node.Children[3].Text != "tail" {
		t.Error("expected trailing text child")
	}
}

func TestElPanicsOnUnsupportedArgument(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Div(42)
}

func TestSameShape(t *testing.T) {
	tests := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{"same tag", Div(), Div(Class("x")), true},
		{"different tag", Div(), Span(), false},
		{"text and text", Text("a"), Text("b"), true},
		{"text and element", Text("a"), Div(), false},
		{"nil", nil, Div(), false},
	}
	for _, tt := range tests {
		if got := SameShape(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: SameShape = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAsHandler(t *testing.T) {
	calls := 0
	shapes := []any{
		Handler(func(*dom.Event) { calls++ }),
		func(*dom.Event) { calls++ },
		func() { calls++ },
		reactive.Static(func() { calls++ }),
	}
	for _, s := range shapes {
		h := asHandler(s)
		if h == nil {
			t.Fatalf("expected handler for %T", s)
		}
		h(&dom.Event{})
	}
	if calls != len(shapes) {
		t.Errorf("expected %d calls, got %d", len(shapes), calls)
	}
	if asHandler("nope") != nil {
		t.Error("expected nil handler for a string")
	}
}

func TestRange(t *testing.T) {
	items := Range([]string{"a", "b", "c"}, func(i int, s string) *VNode {
		return If(i != 1, Li(s))
	})
	if len(items) != 2 {
		t.Errorf("expected nil results skipped, got %d items", len(items))
	}
}
