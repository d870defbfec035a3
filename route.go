package router

import "github.com/starhttp/router/trie"

// Params maps parameter names to the values captured for a request.
type Params = trie.Params

// Route is a named binding of a method and path template to a handler item.
// Immutable once created.
type Route[T any] struct {
	name string
	path trie.Path
	item T
}

// NewRoute parses template for the given method and binds it to item under
// a name unique within the router it is added to.
func NewRoute[T any](name, method, template string, item T) (*Route[T], error) {
	path, err := trie.Parse(method, template)
	if err != nil {
		return nil, err
	}

	return &Route[T]{name: name, path: path, item: item}, nil
}

// Name returns the route's name.
func (r *Route[T]) Name() string {
	return r.name
}

// Path returns the parsed template.
func (r *Route[T]) Path() trie.Path {
	return r.path
}

// Item returns the handler item the route was created with.
func (r *Route[T]) Item() T {
	return r.item
}

// RouteMatch is the result of resolving a request: the matched route's item
// plus the path parameters extracted during the tree walk.
type RouteMatch[T any] struct {
	item   T
	params Params
}

// Item returns the matched handler item.
func (m *RouteMatch[T]) Item() T {
	return m.item
}

// Params returns the extracted path parameters.
func (m *RouteMatch[T]) Params() Params {
	return m.params
}
