// Package api provides the HTTP/WebSocket server for Insight Press.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// HandlerFunc is the signature for route handlers.
type HandlerFunc func(w http.ResponseWriter, r *http.Request)

// route is one registered method and pattern pair. Pattern segments
// are split once at registration, not on every request.
type route struct {
	method   string
	segments []string
	handler  HandlerFunc
}

// Router dispatches requests by method and path. Patterns may contain
// :name segments, which capture the matching path segment as a
// parameter. Routes must be registered before the server starts
// serving; the route table is not guarded for concurrent mutation.
type Router struct {
	routes []route
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{}
}

// GET registers a handler for GET requests on pattern.
func (rt *Router) GET(pattern string, h HandlerFunc) {
	rt.add(http.MethodGet, pattern, h)
}

// POST registers a handler for POST requests on pattern.
func (rt *Router) POST(pattern string, h HandlerFunc) {
	rt.add(http.MethodPost, pattern, h)
}

func (rt *Router) add(method, pattern string, h HandlerFunc) {
	rt.routes = append(rt.routes, route{
		method:   method,
		segments: splitPath(pattern),
		handler:  h,
	})
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

// ServeHTTP implements http.Handler. The first route whose method and
// pattern match wins; no match yields a JSON 404.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	segments := splitPath(r.URL.Path)
	for _, rte := range rt.routes {
		if rte.method != r.Method {
			continue
		}
		params, ok := matchSegments(rte.segments, segments)
		if !ok {
			continue
		}
		if len(params) > 0 {
			r = r.WithContext(context.WithValue(r.Context(), paramsKey{}, params))
		}
		rte.handler(w, r)
		return
	}
	WriteError(w, http.StatusNotFound, "not_found", "No such endpoint")
}

// matchSegments matches path segments against pattern segments,
// collecting :name captures.
func matchSegments(pattern, path []string) (map[string]string, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}
	params := map[string]string{}
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			params[seg[1:]] = path[i]
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	return params, true
}

// matchPath matches a URL path against a :param pattern.
func matchPath(pattern, path string) (map[string]string, bool) {
	return matchSegments(splitPath(pattern), splitPath(path))
}

// paramsKey is the context key for captured path parameters.
type paramsKey struct{}

// PathParam returns the named path parameter captured for this request,
// or "" when the route has no such capture.
func PathParam(r *http.Request, name string) string {
	if params, ok := r.Context().Value(paramsKey{}).(map[string]string); ok {
		return params[name]
	}
	return ""
}

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError carries a machine-readable code and a human message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes data inside a success envelope with the given
// status. Success is derived from the status class.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// WriteError writes a failure envelope with the given status.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	})
}

// ReadJSON decodes the request body into target and closes the body.
func ReadJSON(r *http.Request, target interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
