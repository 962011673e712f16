// Package gateway exposes the search service to outside callers. It forwards the
// caller's query parameters unchanged and re-envelopes the backend's payload.
package gateway

import (
	"context"
	"net/http"
	"net/url"

	"bookgateway/internal/httpx"

	"go.uber.org/zap"
)

type HTTPHandler struct {
	search SearchBackend
	logger *zap.Logger
}

func NewHTTPHandler(search SearchBackend, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{search: search, logger: logger}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /search", h.Search)
	mux.HandleFunc("GET /search/books", h.SearchBooks)
	mux.HandleFunc("GET /search/authors", h.SearchAuthors)
}

// Search handles GET /search
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, h.search.Search)
}

// SearchBooks handles GET /search/books
func (h *HTTPHandler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, h.search.SearchBooks)
}

// SearchAuthors handles GET /search/authors
func (h *HTTPHandler) SearchAuthors(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, h.search.SearchAuthors)
}

func (h *HTTPHandler) forward(w http.ResponseWriter, r *http.Request, call func(context.Context, url.Values) (any, error)) {
	payload, err := call(r.Context(), r.URL.Query())
	if err != nil {
		h.logger.Warn("search backend call failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
		httpx.JSONUpstreamError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, payload)
}
