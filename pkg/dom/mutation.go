package dom

// MutationOp is the type of a document mutation.
type MutationOp uint8

const (
	MutationAppend     MutationOp = 0x01 // Child appended
	MutationInsert     MutationOp = 0x02 // Child inserted before a reference node
	MutationRemove     MutationOp = 0x03 // Child removed
	MutationReplace    MutationOp = 0x04 // Child replaced
	MutationSetText    MutationOp = 0x05 // Text content written
	MutationSetHTML    MutationOp = 0x06 // Inner HTML written
	MutationSetAttr    MutationOp = 0x07 // Attribute set
	MutationRemoveAttr MutationOp = 0x08 // Attribute removed
	MutationSetStyle   MutationOp = 0x09 // Inline or rule style property written
	MutationInsertRule MutationOp = 0x0A // Stylesheet rule inserted
	MutationDeleteRule MutationOp = 0x0B // Stylesheet rule deleted
	MutationSetTitle   MutationOp = 0x0C // Document title written
)

// String returns the string representation of the MutationOp.
func (op MutationOp) String() string {
	switch op {
	case MutationAppend:
		return "Append"
	case MutationInsert:
		return "Insert"
	case MutationRemove:
		return "Remove"
	case MutationReplace:
		return "Replace"
	case MutationSetText:
		return "SetText"
	case MutationSetHTML:
		return "SetHTML"
	case MutationSetAttr:
		return "SetAttr"
	case MutationRemoveAttr:
		return "RemoveAttr"
	case MutationSetStyle:
		return "SetStyle"
	case MutationInsertRule:
		return "InsertRule"
	case MutationDeleteRule:
		return "DeleteRule"
	case MutationSetTitle:
		return "SetTitle"
	default:
		return "Unknown"
	}
}

// IsStructural reports whether the op changes the node tree shape.
func (op MutationOp) IsStructural() bool {
	switch op {
	case MutationAppend, MutationInsert, MutationRemove, MutationReplace:
		return true
	}
	return false
}

// Mutation describes a single change applied to the document.
type Mutation struct {
	Op     MutationOp // Operation type
	Target *Node      // Node whose state or children changed; nil for rule mutations
	Child  *Node      // Added, removed or replacing child
	Key    string     // Attribute, style property or selector
	Value  string     // New value
}

type observer struct {
	id uint64
	fn func(Mutation)
}

// Observe registers fn to receive every mutation of a connected node and returns a function
// that stops the observation.
func (d *Document) Observe(fn func(Mutation)) (stop func()) {
	d.seq++
	id := d.seq
	d.observers = append(d.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range d.observers {
			if o.id == id {
				d.observers = append(d.observers[:i:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

// record delivers m to every observer. Mutations of detached subtrees are
// not observable.
func (d *Document) record(m Mutation) {
	if len(d.observers) == 0 {
		return
	}
	if m.Target != nil && !m.Target.Connected() {
		return
	}
	obs := make([]observer, len(d.observers))
	copy(obs, d.observers)
	for _, o := range obs {
		o.fn(m)
	}
}

// Recorder collects mutations. It is mostly useful in tests and logs.
type Recorder struct {
	Mutations []Mutation
}

// Record appends m. It has the signature expected by Observe.
func (r *Recorder) Record(m Mutation) {
	r.Mutations = append(r.Mutations, m)
}

// Count returns the number of recorded mutations with the given op.
func (r *Recorder) Count(op MutationOp) int {
	n := 0
	for _, m := range r.Mutations {
		if m.Op == op {
			n++
		}
	}
	return n
}

// Structural returns the number of recorded tree-shape mutations.
func (r *Recorder) Structural() int {
	n := 0
	for _, m := range r.Mutations {
		if m.Op.IsStructural() {
			n++
		}
	}
	return n
}

// Reset clears recorded mutations.
func (r *Recorder) Reset() {
	r.Mutations = nil
}
