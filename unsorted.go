package pqbench

// listNode is a single link in the unsorted queue.
type listNode[V any, P Number] struct {
	entry Entry[V, P]
	next  *listNode[V, P]
}

// UnsortedOption configures an Unsorted queue.
type UnsortedOption func(*unsortedOptions)

type unsortedOptions struct {
	tailScan bool
}

// WithTailScan makes Insert walk the list from the head to find the last
// node instead of using the tail reference. Appends become O(n).
func WithTailScan() UnsortedOption {
	return func(o *unsortedOptions) {
		o.tailScan = true
	}
}

// Unsorted is a priority queue backed by a singly linked list in insertion
// order. Insert appends, ExtractMax scans the whole list.
// Among entries with equal priority, the earliest inserted is extracted first.
type Unsorted[V any, P Number] struct {
	head *listNode[V, P]
	tail *listNode[V, P] // not read in tail scan mode
	size int

	tailScan bool
}

var _ Queue[string, int] = (*Unsorted[string, int])(nil)

// NewUnsorted constructs an empty unsorted queue.
func NewUnsorted[V any, P Number](opts ...UnsortedOption) *Unsorted[V, P] {
	var o unsortedOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Unsorted[V, P]{tailScan: o.tailScan}
}

// Insert appends value at the end of the list.
func (q *Unsorted[V, P]) Insert(value V, priority P) {
	n := &listNode[V, P]{entry: Entry[V, P]{Value: value, Priority: priority}}
	q.size++

	if q.head == nil {
		q.head = n
		q.tail = n
		return
	}

	last := q.tail
	if q.tailScan {
		last = q.head
		for last.next != nil {
			last = last.next
		}
	}
	last.next = n
	q.tail = n
}

// ExtractMax removes and returns the value with the highest priority.
// Returns ErrEmptyQueue if the queue is empty.
func (q *Unsorted[V, P]) ExtractMax() (V, error) {
	if q.head == nil {
		var zero V
		return zero, ErrEmptyQueue
	}

	maxNode := q.head
	var maxPrev, prev *listNode[V, P]
	for cur := q.head; cur != nil; cur = cur.next {
		// strict comparison keeps the first of several equal maxima
		if cur.entry.Priority > maxNode.entry.Priority {
			maxNode = cur
			maxPrev = prev
		}
		prev = cur
	}

	if maxPrev == nil {
		q.head = maxNode.next
	} else {
		maxPrev.next = maxNode.next
	}
	if q.tail == maxNode {
		q.tail = maxPrev
	}
	maxNode.next = nil
	q.size--

	return maxNode.entry.Value, nil
}

// Len returns the number of entries in the queue.
func (q *Unsorted[V, P]) Len() int { return q.size }
