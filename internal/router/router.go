package router

import (
	"net/http"
	"strings"
)

type Middleware func(next http.Handler) http.Handler

type Router struct {
	mux        *http.ServeMux
	middleware []Middleware
}

func New() *Router {
	return &Router{
		mux: http.NewServeMux(),
	}
}

func (rt *Router) Use(mw ...Middleware) {
	rt.middleware = append(rt.middleware, mw...)
}

func (rt *Router) Handle(pattern string, handler http.Handler) {
	rt.mux.Handle(normalizePattern(pattern), handler)
}

func (rt *Router) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	rt.mux.HandleFunc(normalizePattern(pattern), handler)
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var h http.Handler = rt.mux
	for i := len(rt.middleware) - 1; i >= 0; i-- {
		h = rt.middleware[i](h)
	}

	h.ServeHTTP(w, r)
}

// normalizePattern keeps "METHOD /path" patterns intact and prefixes bare
// paths with a slash.
func normalizePattern(pattern string) string {
	method, path, found := strings.Cut(pattern, " ")
	if !found {
		if !strings.HasPrefix(pattern, "/") {
			return "/" + pattern
		}
		return pattern
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return method + " " + path
}
