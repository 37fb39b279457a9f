package latency

// Float is the numeric datum type a Filter's Buffers hold. Kept local
// instead of importing golang.org/x/exp/constraints so the module's only
// generics dependency is the language itself.
type Float interface {
	~float32 | ~float64
}

func isNaN[T Float](v T) bool { return v != v }

// slot is one cell of a Buffer's backing array. prev/next thread a sorted
// (ascending) doubly linked list through the same array the ring buffer
// overwrites. References are plain indices, never pointers, so lifetime
// is just the Buffer's lifetime.
type slot[T Float] struct {
	value T
	prev  int
	next  int
}

// buffer is the per-peer sliding window: a ring buffer (oldest-insertion
// order, indexed by cursor) and a sorted doubly-linked list (ascending
// value order, anchored at head) threaded through the same backing array,
// per Ekstrom's running-median algorithm.
type buffer[T Float] struct {
	slots  []slot[T]
	cursor int
	head   int
	median int

	// filled counts live (ever-written) slots, capped at len(slots).
	// Needed during fill-up, before the window holds window samples, so
	// the median walk knows how many slots hold real data rather than
	// NaN placeholders.
	filled int
}

func newBuffer[T Float](window int) *buffer[T] {
	slots := make([]slot[T], window)
	var nan T
	nan = nan / nan // generic NaN without importing math for each instantiation
	for i := range slots {
		slots[i] = slot[T]{
			value: nan,
			prev:  (i + window - 1) % window,
			next:  (i + 1) % window,
		}
	}
	return &buffer[T]{slots: slots, head: 0, median: 0}
}

// push inserts datum, evicting the oldest sample if the window is full,
// and returns the new (lower) median.
func (b *buffer[T]) push(datum T) T {
	window := len(b.slots)
	ins := b.cursor
	b.cursor = (b.cursor + 1) % window

	if window == 1 {
		b.slots[0] = slot[T]{value: datum, prev: 0, next: 0}
		b.head, b.median = 0, 0
		if b.filled < 1 {
			b.filled = 1
		}
		return datum
	}

	// Step 1: expire the slot at ins.
	if ins == b.head {
		b.head = b.slots[b.head].next
	}
	p, n := b.slots[ins].prev, b.slots[ins].next
	b.slots[p].next = n
	b.slots[n].prev = p
	b.slots[ins].prev = window // sentinel
	b.slots[ins].next = window // sentinel

	// Step 2: walk the sorted list from head, looking for the first node
	// that is unallocated (NaN) or whose value is >= datum; insert ins
	// immediately before it. Falls back to inserting before head (i.e.
	// appending at the tail) if every other node is live and smaller.
	scan := b.head
	inserted := false
	for i := 0; i < window-1; i++ {
		if isNaN(b.slots[scan].value) || b.slots[scan].value >= datum {
			insertBefore(b.slots, ins, scan)
			inserted = true
			break
		}
		scan = b.slots[scan].next
	}
	if !inserted {
		insertBefore(b.slots, ins, b.head)
	}
	b.slots[ins].value = datum

	// Step 3: head update.
	if isNaN(b.slots[b.head].value) || datum <= b.slots[b.head].value {
		b.head = ins
	}

	if b.filled < window {
		b.filled++
	}

	// Median: the lower median of the filled <= window live values,
	// found by walking (filled-1)/2 steps forward from head. This gives
	// the same lower-median rank as Ekstrom's tandem insertion/median
	// walk, including its even-window correction.
	steps := (b.filled - 1) / 2
	m := b.head
	for i := 0; i < steps; i++ {
		m = b.slots[m].next
	}
	b.median = m

	return b.slots[b.median].value
}

// insertBefore splices ins immediately before target in the circular
// doubly linked list.
func insertBefore[T Float](slots []slot[T], ins, target int) {
	p := slots[target].prev
	slots[ins].prev = p
	slots[ins].next = target
	slots[p].next = ins
	slots[target].prev = ins
}

// value returns the current median value, NaN if no sample has landed.
func (b *buffer[T]) value() T {
	return b.slots[b.median].value
}

// min returns the smallest live value, NaN if empty.
func (b *buffer[T]) min() T {
	return b.slots[b.head].value
}

// max walks forward from head until it hits a NaN value or wraps back to
// head, then returns the value of the node immediately before that
// terminator.
func (b *buffer[T]) max() T {
	node := b.head
	for {
		next := b.slots[node].next
		if next == b.head || isNaN(b.slots[next].value) {
			return b.slots[node].value
		}
		node = next
	}
}
