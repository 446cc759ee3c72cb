package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func namedHandler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(name))
	})
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider(nil)
	rp.Get("/test", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/test", routes[0].Url)
}

func TestRouterProvider_PostAddsRoute(t *testing.T) {
	rp := NewRouterProvider(nil)
	rp.Post("/submit", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/submit", routes[0].Url)
}

func TestRouterProvider_SameUrlMergesMethods(t *testing.T) {
	rp := NewRouterProvider(nil)
	rp.Get("/", namedHandler("get"))
	rp.Post("/", namedHandler("post"))
	rp.Get("/other", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/", routes[0].Url)
	assert.Equal(t, "/other", routes[1].Url)

	for method, want := range map[string]string{http.MethodGet: "get", http.MethodPost: "post"} {
		rr := httptest.NewRecorder()
		routes[0].Handler.ServeHTTP(rr, httptest.NewRequest(method, "/", nil))
		assert.Equal(t, want, rr.Body.String())
	}
}

func TestRouterProvider_DefaultNotAllowed(t *testing.T) {
	rp := NewRouterProvider(nil)
	rp.Get("/test", dummyHandler())

	route := rp.GetRoutes()[0]
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rr := httptest.NewRecorder()
	route.Handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouterProvider_CustomNotAllowed(t *testing.T) {
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte("custom"))
	})
	rp := NewRouterProvider(notAllowed)
	rp.Post("/submit", dummyHandler())

	route := rp.GetRoutes()[0]
	req := httptest.NewRequest(http.MethodPut, "/submit", nil)
	rr := httptest.NewRecorder()
	route.Handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "custom", rr.Body.String())
}

func TestMethodHandler_CorrectMethod(t *testing.T) {
	handler := methodHandler(map[string]http.Handler{http.MethodGet: dummyHandler()}, dummyHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}
