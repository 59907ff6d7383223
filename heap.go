package pqbench

// entryHeap: max-heap by priority, laid out as a complete binary tree.
// parent(i) = (i-1)/2, children(i) = 2i+1, 2i+2.
type entryHeap[V any, P Number] []Entry[V, P]

func (h entryHeap[V, P]) Len() int { return len(h) }

// Less reports whether i must sit above j, i.e. has a strictly higher priority.
func (h entryHeap[V, P]) Less(i, j int) bool {
	return h[i].Priority > h[j].Priority
}

func (h entryHeap[V, P]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// up moves the entry at j toward the root until its parent is not lower.
func (h entryHeap[V, P]) up(j int) {
	for j > 0 {
		parent := (j - 1) / 2
		if !h.Less(j, parent) {
			break
		}
		h.Swap(parent, j)
		j = parent
	}
}

// down moves the entry at i toward the leaves until no child is higher.
func (h entryHeap[V, P]) down(i int) {
	n := len(h)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		largest := left
		// the right child wins only when strictly higher
		if right := left + 1; right < n && h.Less(right, left) {
			largest = right
		}
		if !h.Less(largest, i) {
			break
		}
		h.Swap(i, largest)
		i = largest
	}
}

// BinaryHeap is a priority queue backed by an array-based binary max-heap.
// Insert and ExtractMax are O(log n). Ties are broken by heap position, with
// no ordering guarantee between equal priorities.
type BinaryHeap[V any, P Number] struct {
	entries entryHeap[V, P]
}

var _ Queue[string, int] = (*BinaryHeap[string, int])(nil)

// NewBinaryHeap constructs an empty heap. capacity pre-reserves storage and
// may be zero; the heap grows as needed.
func NewBinaryHeap[V any, P Number](capacity int) *BinaryHeap[V, P] {
	if capacity < 0 {
		capacity = 0
	}
	return &BinaryHeap[V, P]{entries: make(entryHeap[V, P], 0, capacity)}
}

// Insert adds value with the given priority and restores the heap upward.
func (h *BinaryHeap[V, P]) Insert(value V, priority P) {
	h.entries = append(h.entries, Entry[V, P]{Value: value, Priority: priority})
	h.entries.up(len(h.entries) - 1)
}

// ExtractMax removes and returns the value at the root.
// Returns ErrEmptyQueue if the heap is empty.
func (h *BinaryHeap[V, P]) ExtractMax() (V, error) {
	n := len(h.entries)
	if n == 0 {
		var zero V
		return zero, ErrEmptyQueue
	}

	top := h.entries[0].Value
	last := n - 1
	h.entries[0] = h.entries[last]
	h.entries[last] = Entry[V, P]{} // avoid holding the payload
	h.entries = h.entries[:last]

	if last > 1 {
		h.entries.down(0)
	}
	return top, nil
}

// Len returns the number of entries in the heap.
func (h *BinaryHeap[V, P]) Len() int { return len(h.entries) }
