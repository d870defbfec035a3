package router

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/savsgio/gotils/bytes"
	"github.com/savsgio/gotils/strconv"
	gstrings "github.com/savsgio/gotils/strings"
	"github.com/valyala/fasthttp"

	"github.com/starhttp/router/trie"
)

// MatchedRoutePathParam is the param name under which the template of the
// matched route is stored, if RequestRouter.SaveMatchedRoutePath is set.
var MatchedRoutePathParam = fmt.Sprintf("__matchedRoutePath::%s__", bytes.Rand(make([]byte, 15)))

// RequestRouter dispatches fasthttp requests through a Router. It owns the
// transport concerns the core router stays out of: 404/405 responses, the
// Allow header, automatic OPTIONS replies, panic recovery and middleware.
type RequestRouter struct {
	router *Router[fasthttp.RequestHandler]

	registeredPaths map[string][]string
	globalAllowed   string

	before []Middleware
	after  []Middleware

	// SaveMatchedRoutePath stores the matched route's template as a ctx
	// user value under MatchedRoutePathParam.
	SaveMatchedRoutePath bool

	// HandleMethodNotAllowed enables 405 responses with an Allow header
	// when the path is registered under other methods.
	HandleMethodNotAllowed bool

	// HandleOPTIONS enables automatic replies to OPTIONS requests.
	HandleOPTIONS bool

	// GlobalOPTIONS is called on automatic OPTIONS replies when set.
	GlobalOPTIONS fasthttp.RequestHandler

	// NotFound is called when no route matches the request path.
	NotFound fasthttp.RequestHandler

	// MethodNotAllowed is called when the path matches but the method
	// does not.
	MethodNotAllowed fasthttp.RequestHandler

	// PanicHandler recovers panics raised by route handlers.
	PanicHandler func(*fasthttp.RequestCtx, interface{})
}

// NewRequestRouter returns a new initialized RequestRouter. The base URL is
// used for reverse links only.
func NewRequestRouter(base *url.URL) *RequestRouter {
	return &RequestRouter{
		router:                 New[fasthttp.RequestHandler](base),
		registeredPaths:        make(map[string][]string),
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
	}
}

// Router returns the underlying generic router.
func (r *RequestRouter) Router() *Router[fasthttp.RequestHandler] {
	return r.router
}

// GET is a shortcut for router.Handle(fasthttp.MethodGet, name, path, handler)
func (r *RequestRouter) GET(name, path string, handler fasthttp.RequestHandler) error {
	return r.Handle(fasthttp.MethodGet, name, path, handler)
}

// HEAD is a shortcut for router.Handle(fasthttp.MethodHead, name, path, handler)
func (r *RequestRouter) HEAD(name, path string, handler fasthttp.RequestHandler) error {
	return r.Handle(fasthttp.MethodHead, name, path, handler)
}

// OPTIONS is a shortcut for router.Handle(fasthttp.MethodOptions, name, path, handler)
func (r *RequestRouter) OPTIONS(name, path string, handler fasthttp.RequestHandler) error {
	return r.Handle(fasthttp.MethodOptions, name, path, handler)
}

// POST is a shortcut for router.Handle(fasthttp.MethodPost, name, path, handler)
func (r *RequestRouter) POST(name, path string, handler fasthttp.RequestHandler) error {
	return r.Handle(fasthttp.MethodPost, name, path, handler)
}

// PUT is a shortcut for router.Handle(fasthttp.MethodPut, name, path, handler)
func (r *RequestRouter) PUT(name, path string, handler fasthttp.RequestHandler) error {
	return r.Handle(fasthttp.MethodPut, name, path, handler)
}

// PATCH is a shortcut for router.Handle(fasthttp.MethodPatch, name, path, handler)
func (r *RequestRouter) PATCH(name, path string, handler fasthttp.RequestHandler) error {
	return r.Handle(fasthttp.MethodPatch, name, path, handler)
}

// DELETE is a shortcut for router.Handle(fasthttp.MethodDelete, name, path, handler)
func (r *RequestRouter) DELETE(name, path string, handler fasthttp.RequestHandler) error {
	return r.Handle(fasthttp.MethodDelete, name, path, handler)
}

// TRACE is a shortcut for router.Handle(fasthttp.MethodTrace, name, path, handler)
func (r *RequestRouter) TRACE(name, path string, handler fasthttp.RequestHandler) error {
	return r.Handle(fasthttp.MethodTrace, name, path, handler)
}

// CONNECT is a shortcut for router.Handle(fasthttp.MethodConnect, name, path, handler)
func (r *RequestRouter) CONNECT(name, path string, handler fasthttp.RequestHandler) error {
	return r.Handle(fasthttp.MethodConnect, name, path, handler)
}

// ANY is a shortcut for router.Handle(router.MethodWild, name, path, handler)
//
// WARNING: Use only for routes where the request method is not important
func (r *RequestRouter) ANY(name, path string, handler fasthttp.RequestHandler) error {
	return r.Handle(MethodWild, name, path, handler)
}

// Handle registers a new request handler under the given name, method and
// path template.
//
// For GET, POST, PUT, PATCH and DELETE requests the respective shortcut
// functions can be used.
//
// This function is intended for bulk loading and to allow the usage of less
// frequently used, non-standardized or custom methods (e.g. for internal
// communication with a proxy).
func (r *RequestRouter) Handle(method, name, path string, handler fasthttp.RequestHandler) error {
	switch {
	case method == "":
		return errors.New("method must not be empty")
	case len(path) < 1 || path[0] != '/':
		return errors.New("path must begin with '/' in path '" + path + "'")
	case handler == nil:
		return errors.New("handler must not be nil")
	}

	if r.SaveMatchedRoutePath {
		handler = r.saveMatchedRoutePath(path, handler)
	}

	route, err := NewRoute(name, method, path, handler)
	if err != nil {
		return err
	}

	if err := r.router.Add(route); err != nil {
		return err
	}

	newMethod := r.registeredPaths[method] == nil
	if !gstrings.Include(r.registeredPaths[method], path) {
		r.registeredPaths[method] = append(r.registeredPaths[method], path)
	}

	if newMethod {
		r.globalAllowed = r.allowed("*", "")
	}

	getDispatchMetrics().routes.Inc()

	return nil
}

// Link renders an absolute URL for the named route.
func (r *RequestRouter) Link(name string, params Params) (*url.URL, error) {
	return r.router.Link(name, params)
}

// Optimize compacts the underlying router once registration is done.
func (r *RequestRouter) Optimize() *RequestRouter {
	r.router.Optimize()

	return r
}

// List returns all registered paths grouped by method.
func (r *RequestRouter) List() map[string][]string {
	return r.registeredPaths
}

// Before registers middleware that runs before the matched handler.
func (r *RequestRouter) Before(middleware ...Middleware) {
	r.before = append(r.before, middleware...)
}

// After registers middleware that runs after the matched handler.
func (r *RequestRouter) After(middleware ...Middleware) {
	r.after = append(r.after, middleware...)
}

func (r *RequestRouter) saveMatchedRoutePath(path string, handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ctx.SetUserValue(MatchedRoutePathParam, path)
		handler(ctx)
	}
}

func (r *RequestRouter) recv(ctx *fasthttp.RequestCtx) {
	if rcv := recover(); rcv != nil {
		r.PanicHandler(ctx, rcv)
	}
}

func (r *RequestRouter) allowed(path, reqMethod string) (allow string) {
	allowed := make([]string, 0, 9)

	if path == "*" || path == "/*" { // server-wide
		// empty method is used for internal calls to refresh the cache
		if reqMethod == "" {
			for method := range r.registeredPaths {
				if method == fasthttp.MethodOptions {
					continue
				}

				allowed = append(allowed, method)
			}
		} else {
			return r.globalAllowed
		}
	} else { // specific path
		for method := range r.registeredPaths {
			// Skip the requested method - we already tried this one
			if method == reqMethod || method == fasthttp.MethodOptions {
				continue
			}

			if _, err := r.router.Resolve(method, path); err == nil {
				allowed = append(allowed, method)
			}
		}
	}

	if len(allowed) > 0 {
		allowed = append(allowed, fasthttp.MethodOptions)

		// Sort allowed methods.
		// sort.Strings(allowed) unfortunately causes unnecessary allocations
		// due to allowed being moved to the heap and interface conversion
		for i, l := 1, len(allowed); i < l; i++ {
			for j := i; j > 0 && allowed[j] < allowed[j-1]; j-- {
				allowed[j], allowed[j-1] = allowed[j-1], allowed[j]
			}
		}

		// return as comma separated list
		return strings.Join(allowed, ", ")
	}

	return
}

// Handler makes the router implement the fasthttp.RequestHandler interface.
func (r *RequestRouter) Handler(ctx *fasthttp.RequestCtx) {
	if r.PanicHandler != nil {
		defer r.recv(ctx)
	}

	path := strconv.B2S(ctx.Path())
	method := strconv.B2S(ctx.Method())

	match, err := r.router.Resolve(method, path)
	if err == nil {
		getDispatchMetrics().resolveHits.Inc()

		for _, m := range r.before {
			m.Handle(ctx)
		}

		for name, value := range match.Params() {
			ctx.SetUserValue(name, value)
		}
		match.Item()(ctx)

		for _, m := range r.after {
			m.Handle(ctx)
		}

		return
	}

	if errors.Is(err, &trie.MethodNotFoundError{}) {
		getDispatchMetrics().methodMisses.Inc()

		if r.HandleOPTIONS && method == fasthttp.MethodOptions {
			// Handle OPTIONS requests
			if allow := r.allowed(path, fasthttp.MethodOptions); allow != "" {
				ctx.Response.Header.Set("Allow", allow)
				if r.GlobalOPTIONS != nil {
					r.GlobalOPTIONS(ctx)
				}

				return
			}
		} else if r.HandleMethodNotAllowed { // Handle 405
			if allow := r.allowed(path, method); allow != "" {
				ctx.Response.Header.Set("Allow", allow)
				if r.MethodNotAllowed != nil {
					r.MethodNotAllowed(ctx)
				} else {
					ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
					ctx.SetBodyString(fasthttp.StatusMessage(fasthttp.StatusMethodNotAllowed))
				}

				return
			}
		}
	} else {
		getDispatchMetrics().pathMisses.Inc()
	}

	// Handle 404
	if r.NotFound != nil {
		r.NotFound(ctx)
	} else {
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusNotFound), fasthttp.StatusNotFound)
	}
}
