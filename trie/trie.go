package trie

import "strings"

// Tree indexes registered routes by path segment and HTTP method.
//
// WARNING: Add is not concurrency-safe! Build the tree from a single
// goroutine; once registration is done (ideally after Optimize) any number
// of goroutines may call Lookup concurrently.
type Tree[T any] struct {
	root *node[T]
}

// Match is the result of a successful lookup: the registered value plus the
// parameters captured while walking the tree.
type Match[T any] struct {
	Value  T
	Params Params
}

// New returns an empty tree.
func New[T any]() *Tree[T] {
	return &Tree[T]{root: newNode[T]()}
}

// Add registers value under the given path. It fails with
// AlreadyRegisteredError when the path's method is already present at the
// terminal node, or when a dynamic segment arrives at a node that already
// holds a dynamic child. A failed Add leaves the tree untouched.
func (t *Tree[T]) Add(path Path, value T) error {
	if err := t.conflict(path); err != nil {
		return err
	}

	current := t.root
	for _, seg := range path.Segments() {
		current = current.ensure(seg)
	}

	current.items[path.Method()] = value

	return nil
}

// conflict walks the existing nodes without mutating anything and reports
// the error Add would run into. A conflict can only involve nodes that
// already exist, so stopping at the first missing child is safe.
func (t *Tree[T]) conflict(path Path) error {
	current := t.root

	for _, seg := range path.Segments() {
		if seg.Kind == Static {
			child, ok := current.static[seg.Name]
			if !ok {
				return nil
			}

			current = child
			continue
		}

		if current.dynamic != nil {
			return &AlreadyRegisteredError{Route: path.RenderOriginal()}
		}

		return nil
	}

	if _, ok := current.items[path.Method()]; ok {
		return &AlreadyRegisteredError{Route: path.RenderOriginal()}
	}

	return nil
}

// Lookup resolves a concrete request path. At every node an exact static
// child wins over the dynamic child regardless of registration order, a
// parameter consumes exactly one piece, and a wildcard consumes everything
// that is left and ends the walk. Methods registered as MethodWild match
// any request method not registered exactly.
func (t *Tree[T]) Lookup(method, path string) (*Match[T], error) {
	pieces := split(path)
	params := make(Params)
	current := t.root

walk:
	for i, piece := range pieces {
		if child, ok := current.static[piece]; ok {
			current = child
			continue
		}

		dc := current.dynamic
		if dc == nil {
			return nil, &PathNotFoundError{Path: path}
		}

		current = dc.child

		switch dc.kind {
		case Param:
			params[dc.name[1:]] = piece
		case Wildcard:
			params[dc.name[1:]] = strings.Join(pieces[i:], PathSeparator)
			break walk
		}
	}

	value, ok := current.items[method]
	if !ok {
		value, ok = current.items[MethodWild]
	}
	if !ok {
		return nil, &MethodNotFoundError{Method: method}
	}

	return &Match[T]{Value: value, Params: params}, nil
}

// Optimize compacts the tree's maps after the registration phase. It never
// changes lookup results.
func (t *Tree[T]) Optimize() {
	t.root.optimize()
}

// split cuts a request path into its non-empty pieces.
func split(path string) []string {
	pieces := strings.Split(path, PathSeparator)

	n := 0
	for _, piece := range pieces {
		if piece != "" {
			pieces[n] = piece
			n++
		}
	}

	return pieces[:n]
}
