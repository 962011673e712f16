package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"bookgateway/internal/platform/outbound"
)

// JSONUpstreamError writes the response for a failed backend call. An HTTP error
// keeps the backend's status when it is a client or server error, and a client
// error that already carries this package's error envelope is passed through with
// its code, message and details. An unreachable backend is a 502. Errors that did
// not come from a backend are a 500.
func JSONUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	var oe *outbound.Error
	if !errors.As(err, &oe) {
		JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	switch oe.Kind {
	case outbound.KindHTTP:
		status := oe.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		if body, ok := clientErrorBody(oe); ok {
			JSONError(w, r, status, body.Code, body.Message, body.Details)
			return
		}
		JSONError(w, r, status, "UPSTREAM_ERROR",
			fmt.Sprintf("%s service responded with status %d", oe.Backend, oe.StatusCode), nil)
	default:
		JSONError(w, r, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE",
			fmt.Sprintf("%s service is unavailable", oe.Backend), nil)
	}
}

func clientErrorBody(oe *outbound.Error) (ErrorResponseBody, bool) {
	if oe.StatusCode < 400 || oe.StatusCode > 499 || oe.Body == "" {
		return ErrorResponseBody{}, false
	}
	var resp ErrorResponse
	if err := json.Unmarshal([]byte(oe.Body), &resp); err != nil || resp.Error.Code == "" {
		return ErrorResponseBody{}, false
	}
	return resp.Error, true
}
