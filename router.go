package router

import (
	"fmt"
	"net/url"

	"github.com/starhttp/router/trie"
)

// MethodWild wild HTTP method
const MethodWild = trie.MethodWild

// PathSeparator splits templates and request paths into segments.
const PathSeparator = trie.PathSeparator

// Router resolves incoming (method, path) pairs to registered routes and
// renders concrete URLs from route names and parameters (reverse routing).
// The tree stores route names rather than handler items, which keeps the
// tree structure independent of handler identity.
//
// WARNING: Add is not concurrency-safe! Register everything from a single
// goroutine, call Optimize, and share the router read-only afterwards;
// Resolve and Link never mutate.
type Router[T any] struct {
	routes map[string]*Route[T]
	tree   *trie.Tree[string]
	base   *url.URL
}

// New returns an empty router. The base URL is used only by Link to turn
// rendered relative paths into absolute URLs.
func New[T any](base *url.URL) *Router[T] {
	// An authority-only base must resolve relative paths the same way a
	// "/" base does, so normalize up front.
	b := *base
	if b.Path == "" {
		b.Path = "/"
	}

	return &Router[T]{
		routes: make(map[string]*Route[T]),
		tree:   trie.New[string](),
		base:   &b,
	}
}

// Add registers a route. It fails with RouteExistsError when the name is
// already taken and propagates tree conflicts; a failed Add leaves the
// router untouched.
func (r *Router[T]) Add(route *Route[T]) error {
	name := route.Name()

	if _, exists := r.routes[name]; exists {
		return &RouteExistsError{Name: name}
	}

	if err := r.tree.Add(route.Path(), name); err != nil {
		return fmt.Errorf("add route %q: %w", name, err)
	}

	r.routes[name] = route

	return nil
}

// Resolve matches a request method and concrete path against the
// registered routes.
func (r *Router[T]) Resolve(method, path string) (*RouteMatch[T], error) {
	match, err := r.tree.Lookup(method, path)
	if err != nil {
		return nil, err
	}

	route, ok := r.routes[match.Value]
	if !ok {
		// The tree knows a name the route map does not; surface it the
		// same way as an unknown path.
		return nil, &trie.PathNotFoundError{Path: path}
	}

	return &RouteMatch[T]{item: route.Item(), params: match.Params}, nil
}

// Link renders an absolute URL for the named route with the given
// parameters, resolved against the router's base URL.
func (r *Router[T]) Link(name string, params Params) (*url.URL, error) {
	route, ok := r.routes[name]
	if !ok {
		return nil, &RouteNotFoundError{Name: name}
	}

	rendered, err := route.Path().Render(params)
	if err != nil {
		return nil, fmt.Errorf("link route %q: %w", name, err)
	}

	ref, err := url.Parse(rendered)
	if err != nil {
		return nil, fmt.Errorf("link route %q: %w", name, err)
	}

	return r.base.ResolveReference(ref), nil
}

// Optimize compacts the router's maps. Call it once registration is done;
// it marks the transition to the read-only serving phase by convention and
// never changes resolution results.
func (r *Router[T]) Optimize() *Router[T] {
	routes := make(map[string]*Route[T], len(r.routes))
	for name, route := range r.routes {
		routes[name] = route
	}

	r.routes = routes
	r.tree.Optimize()

	return r
}

// List returns the registered templates grouped by method.
func (r *Router[T]) List() map[string][]string {
	list := make(map[string][]string)

	for _, route := range r.routes {
		path := route.Path()
		list[path.Method()] = append(list[path.Method()], PathSeparator+path.RenderOriginal())
	}

	return list
}
