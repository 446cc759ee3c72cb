package providers

import (
	"net/http"
	"recstore/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	urls       []string
	handlers   map[string]map[string]http.Handler
	notAllowed http.Handler
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(http.MethodPost, url, handler)
}

func (rp *RouterProvider) add(method, url string, handler http.Handler) {
	byMethod, ok := rp.handlers[url]
	if !ok {
		byMethod = make(map[string]http.Handler)
		rp.handlers[url] = byMethod
		rp.urls = append(rp.urls, url)
	}
	byMethod[method] = handler
}

// GetRoutes returns one route per url; the handler dispatches on method.
func (rp *RouterProvider) GetRoutes() []structures.Route {
	routes := make([]structures.Route, 0, len(rp.urls))
	for _, url := range rp.urls {
		routes = append(routes, structures.Route{
			Url:     url,
			Handler: methodHandler(rp.handlers[url], rp.notAllowed),
		})
	}
	return routes
}

// NewRouterProvider takes the handler for unsupported methods; nil falls
// back to a plain text 405.
func NewRouterProvider(notAllowed http.Handler) RouterProviderInterface {
	if notAllowed == nil {
		notAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		})
	}
	return &RouterProvider{
		handlers:   make(map[string]map[string]http.Handler),
		notAllowed: notAllowed,
	}
}

func methodHandler(handlers map[string]http.Handler, notAllowed http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := handlers[r.Method]
		if !ok {
			notAllowed.ServeHTTP(w, r)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
