package dom

// ListenerID identifies a registered event listener.
type ListenerID uint64

// Event is dispatched to listeners.
type Event struct {
	Type          string
	Target        *Node
	CurrentTarget *Node

	stopped bool
}

// StopPropagation prevents the event from reaching ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

type listener struct {
	id ListenerID
	fn func(*Event)
}

// AddEventListener registers fn for events of the given type and returns
// an ID for later removal.
func (n *Node) AddEventListener(typ string, fn func(*Event)) ListenerID {
	n.doc.seq++
	id := ListenerID(n.doc.seq)
	if n.listeners == nil {
		n.listeners = make(map[string][]listener)
	}
	n.listeners[typ] = append(n.listeners[typ], listener{id: id, fn: fn})
	return id
}

// RemoveEventListener removes a listener. Unknown IDs are ignored.
func (n *Node) RemoveEventListener(typ string, id ListenerID) {
	ls := n.listeners[typ]
	for i, l := range ls {
		if l.id == id {
			n.listeners[typ] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of listeners registered for typ.
func (n *Node) ListenerCount(typ string) int {
	return len(n.listeners[typ])
}

// Dispatch delivers an event of the given type to n, then bubbles it to
// each ancestor until a listener stops propagation. It returns the number
// of listeners invoked.
func (n *Node) Dispatch(typ string) int {
	ev := &Event{Type: typ, Target: n}
	calls := 0
	for cur := n; cur != nil && !ev.stopped; cur = cur.Parent() {
		ls := cur.listeners[typ]
		if len(ls) == 0 {
			continue
		}
		snapshot := make([]listener, len(ls))
		copy(snapshot, ls)
		ev.CurrentTarget = cur
		for _, l := range snapshot {
			l.fn(ev)
			calls++
		}
	}
	return calls
}

// Click dispatches a click event.
func (n *Node) Click() int {
	return n.Dispatch("click")
}
