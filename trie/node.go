package trie

// dynamicChild is the single non-static child a node may carry: either a
// parameter or a wildcard, never both and never more than one.
type dynamicChild[T any] struct {
	kind  SegmentKind
	name  string // with sigil, as registered
	child *node[T]
}

type node[T any] struct {
	static  map[string]*node[T]
	dynamic *dynamicChild[T]
	items   map[string]T // method -> registered value, terminal nodes only
}

func newNode[T any]() *node[T] {
	return &node[T]{
		static: make(map[string]*node[T]),
		items:  make(map[string]T),
	}
}

// ensure descends into the child matching seg, creating it if absent. The
// caller must have ruled out conflicts beforehand; ensure never fails.
func (n *node[T]) ensure(seg Segment) *node[T] {
	if seg.Kind == Static {
		child, ok := n.static[seg.Name]
		if !ok {
			child = newNode[T]()
			n.static[seg.Name] = child
		}

		return child
	}

	if n.dynamic == nil {
		n.dynamic = &dynamicChild[T]{
			kind:  seg.Kind,
			name:  seg.Name,
			child: newNode[T](),
		}
	}

	return n.dynamic.child
}

// optimize rebuilds every map in the subtree at exact capacity. Purely a
// memory-footprint compaction; lookup results are unchanged.
func (n *node[T]) optimize() {
	n.static = compact(n.static)
	n.items = compact(n.items)

	for _, child := range n.static {
		child.optimize()
	}

	if n.dynamic != nil {
		n.dynamic.child.optimize()
	}
}

func compact[K comparable, V any](m map[K]V) map[K]V {
	shrunk := make(map[K]V, len(m))
	for k, v := range m {
		shrunk[k] = v
	}

	return shrunk
}
