package search

import (
	"errors"
	"net/http"

	"bookgateway/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Register mounts the search routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /search", h.Search)
	mux.HandleFunc("GET /search/books", h.Books)
	mux.HandleFunc("GET /search/authors", h.Authors)
}

// Search handles GET /search
// @Summary Search books and authors
// @Param q query string false "Case-insensitive text filter"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, ScopeAll)
}

// Books handles GET /search/books
// @Summary Search books
// @Param q query string false "Matches title or description"
// @Param sort query string false "Field to sort ascending by"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /search/books [get]
func (h *HTTPHandler) Books(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, ScopeBooks)
}

// Authors handles GET /search/authors
// @Summary Search authors
// @Param q query string false "Matches name"
// @Param sort query string false "Field to sort ascending by"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /search/authors [get]
func (h *HTTPHandler) Authors(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, ScopeAuthors)
}

func (h *HTTPHandler) serve(w http.ResponseWriter, r *http.Request, scope Scope) {
	query := r.URL.Query()
	q := Query{
		Q:     query.Get("q"),
		Sort:  query.Get("sort"),
		Scope: scope,
	}
	if details := httpx.ValidateStruct(q); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", details)
		return
	}

	data, err := h.svc.Search(r.Context(), q)
	if err != nil {
		var sortErr *SortFieldError
		switch {
		case errors.As(err, &sortErr):
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", []httpx.ErrorDetail{
				{Field: "sort", Message: sortErr.Error()},
			})
		case errors.Is(err, ErrMalformedPayload):
			httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_MALFORMED", "A backend returned an unreadable payload", nil)
		default:
			httpx.JSONUpstreamError(w, r, err)
		}
		return
	}

	httpx.JSONSuccess(w, data)
}
