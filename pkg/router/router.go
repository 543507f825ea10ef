// Package router is a thin layer over chi that adds named routes and
// prefix groups with shared middleware. Handlers stay plain net/http.
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Middleware is the standard net/http middleware shape.
type Middleware func(http.Handler) http.Handler

// RouteInfo describes one registered named route.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Router registers handlers on a chi mux and records route names for
// reverse lookup (route:list, URL building).
type Router struct {
	mux    chi.Router
	mu     sync.RWMutex
	named  []RouteInfo
	byName map[string]string // name → path pattern
}

// Group scopes registrations under a path prefix with shared middleware.
type Group struct {
	parent *Router
	prefix string
	stack  []Middleware
}

func New() *Router {
	return &Router{
		mux:    chi.NewRouter(),
		byName: map[string]string{},
	}
}

// Handler returns the underlying http.Handler for the server.
func (r *Router) Handler() http.Handler { return r.mux }

// Use appends global middleware. Must be called before any route is mounted.
func (r *Router) Use(mws ...Middleware) {
	for _, mw := range mws {
		r.mux.Use(mw)
	}
}

// Group returns a registration scope under prefix.
func (r *Router) Group(prefix string, mws ...Middleware) *Group {
	return &Group{
		parent: r,
		prefix: cleanPath(prefix),
		stack:  append([]Middleware(nil), mws...),
	}
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodGet, cleanPath(path), name, h, mws)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodPost, cleanPath(path), name, h, mws)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodPut, cleanPath(path), name, h, mws)
}

func (r *Router) Patch(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodPatch, cleanPath(path), name, h, mws)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodDelete, cleanPath(path), name, h, mws)
}

func (g *Group) Group(prefix string, mws ...Middleware) *Group {
	return &Group{
		parent: g.parent,
		prefix: cleanPath(g.prefix + "/" + prefix),
		stack:  append(append([]Middleware(nil), g.stack...), mws...),
	}
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodGet, path, name, h, mws)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodPost, path, name, h, mws)
}

func (g *Group) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodPut, path, name, h, mws)
}

func (g *Group) Patch(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodPatch, path, name, h, mws)
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodDelete, path, name, h, mws)
}

func (g *Group) register(method, path, name string, h http.HandlerFunc, mws []Middleware) {
	full := cleanPath(g.prefix + "/" + path)
	combined := append(append([]Middleware(nil), g.stack...), mws...)
	g.parent.register(method, full, name, h, combined)
}

func (r *Router) register(method, path, name string, h http.HandlerFunc, mws []Middleware) {
	var handler http.Handler = h
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	r.mux.Method(method, path, handler)

	if name == "" {
		return
	}
	r.mu.Lock()
	r.named = append(r.named, RouteInfo{Method: method, Path: path, Name: name})
	r.byName[name] = path
	r.mu.Unlock()
}

// Routes returns every named route in registration order.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]RouteInfo(nil), r.named...)
}

// Path returns the pattern registered under name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.byName[name]
	return path, ok
}

// URL substitutes params into a named route's pattern.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	pattern, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("router: no route named %q", name)
	}
	for key, value := range params {
		pattern = strings.ReplaceAll(pattern, "{"+key+"}", value)
	}
	if strings.Contains(pattern, "{") {
		return "", fmt.Errorf("router: route %q has unfilled parameters", name)
	}
	return pattern, nil
}

// cleanPath collapses separators and guarantees a single leading slash.
func cleanPath(p string) string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return "/" + strings.Join(segs, "/")
}
