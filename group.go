package router

import (
	"errors"

	"github.com/valyala/fasthttp"
)

// Group scopes route registration to a shared path prefix. Route names stay
// caller-chosen and must remain unique across the whole router.
type Group struct {
	router     *RequestRouter
	prefix     string
	middleware []func(fasthttp.RequestHandler) fasthttp.RequestHandler
}

// Group returns a new registration scope under the given path prefix.
func (r *RequestRouter) Group(path string) (*Group, error) {
	if err := validatePrefix(path); err != nil {
		return nil, err
	}

	return &Group{router: r, prefix: path}, nil
}

// Group returns a nested scope.
func (g *Group) Group(path string) (*Group, error) {
	if err := validatePrefix(path); err != nil {
		return nil, err
	}

	if len(g.prefix) > 0 && path == "/" {
		return g, nil
	}

	sub := &Group{router: g.router, prefix: g.prefix + path}
	sub.middleware = append(sub.middleware, g.middleware...)

	return sub, nil
}

// GET is a shortcut for group.Handle(fasthttp.MethodGet, name, path, handler)
func (g *Group) GET(name, path string, handler fasthttp.RequestHandler) error {
	return g.Handle(fasthttp.MethodGet, name, path, handler)
}

// HEAD is a shortcut for group.Handle(fasthttp.MethodHead, name, path, handler)
func (g *Group) HEAD(name, path string, handler fasthttp.RequestHandler) error {
	return g.Handle(fasthttp.MethodHead, name, path, handler)
}

// OPTIONS is a shortcut for group.Handle(fasthttp.MethodOptions, name, path, handler)
func (g *Group) OPTIONS(name, path string, handler fasthttp.RequestHandler) error {
	return g.Handle(fasthttp.MethodOptions, name, path, handler)
}

// POST is a shortcut for group.Handle(fasthttp.MethodPost, name, path, handler)
func (g *Group) POST(name, path string, handler fasthttp.RequestHandler) error {
	return g.Handle(fasthttp.MethodPost, name, path, handler)
}

// PUT is a shortcut for group.Handle(fasthttp.MethodPut, name, path, handler)
func (g *Group) PUT(name, path string, handler fasthttp.RequestHandler) error {
	return g.Handle(fasthttp.MethodPut, name, path, handler)
}

// PATCH is a shortcut for group.Handle(fasthttp.MethodPatch, name, path, handler)
func (g *Group) PATCH(name, path string, handler fasthttp.RequestHandler) error {
	return g.Handle(fasthttp.MethodPatch, name, path, handler)
}

// DELETE is a shortcut for group.Handle(fasthttp.MethodDelete, name, path, handler)
func (g *Group) DELETE(name, path string, handler fasthttp.RequestHandler) error {
	return g.Handle(fasthttp.MethodDelete, name, path, handler)
}

// ANY is a shortcut for group.Handle(router.MethodWild, name, path, handler)
//
// WARNING: Use only for routes where the request method is not important
func (g *Group) ANY(name, path string, handler fasthttp.RequestHandler) error {
	return g.Handle(MethodWild, name, path, handler)
}

// Handle registers a new request handler under the group's prefix.
func (g *Group) Handle(method, name, path string, handler fasthttp.RequestHandler) error {
	if err := validatePrefix(path); err != nil {
		return err
	}

	return g.router.Handle(method, name, g.prefix+path, g.applyMiddleware(handler))
}

// AddMiddleware wraps every handler registered through the group from now
// on. The first added middleware ends up outermost.
func (g *Group) AddMiddleware(h func(fasthttp.RequestHandler) fasthttp.RequestHandler) {
	g.middleware = append(g.middleware, h)
}

func (g *Group) applyMiddleware(handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	if len(g.middleware) == 0 {
		return handler
	}

	for i := len(g.middleware) - 1; i >= 0; i-- {
		handler = g.middleware[i](handler)
	}

	return handler
}

func validatePrefix(path string) error {
	if len(path) == 0 || path[0] != '/' {
		return errors.New("path must begin with '/' in path '" + path + "'")
	}

	return nil
}
