package ceactions

// ReactionKind discriminates the lifecycle reaction variants of spec
// §4.8 (Reaction variants in an element's RareData queue).
type ReactionKind int

const (
	Upgrade ReactionKind = iota
	Connected
	Disconnected
	Adopted
	AttributeChanged
)

func (k ReactionKind) String() string {
	switch k {
	case Upgrade:
		return "upgrade"
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	case Adopted:
		return "adopted"
	case AttributeChanged:
		return "attributeChanged"
	default:
		return "unknown"
	}
}

// Reaction is one queued lifecycle callback invocation. Only the fields
// relevant to Kind are populated.
type Reaction struct {
	Kind ReactionKind

	// Adopted
	OldDocument any
	NewDocument any

	// AttributeChanged
	AttrName      string
	AttrNamespace string
	AttrOld       *string // nil means "no previous value"
	AttrNew       *string // nil means "attribute removed"
}

// Queue is the per-element FIFO of pending reactions (spec §4.8).
// The zero value is ready to use.
type Queue struct {
	pending []Reaction
}

// Append adds a reaction to the back of the queue, in tree order as the
// mutation algorithm discovers affected elements (spec §4.3's ordering
// rule).
func (q *Queue) Append(r Reaction) {
	q.pending = append(q.pending, r)
}

// Len reports the number of reactions currently queued.
func (q *Queue) Len() int { return len(q.pending) }

// Drain removes and returns every pending reaction, in FIFO order,
// clearing the queue.
func (q *Queue) Drain() []Reaction {
	pending := q.pending
	q.pending = nil
	return pending
}
