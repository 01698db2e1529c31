package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSONResponse(w http.ResponseWriter, logger logr.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error(err, "failed to encode JSON response")
	}
}

// WriteError maps err to a status and error code. Server-side failures are
// logged with the request ID; client errors are not.
func WriteError(w http.ResponseWriter, r *http.Request, logger logr.Logger, err error) {
	resp := ErrorResponse{
		Error:     "unknown_error",
		Message:   "An unknown error occurred",
		RequestID: middleware.GetReqID(r.Context()),
	}
	status := http.StatusInternalServerError
	if err != nil {
		status, resp.Error, resp.Message = httpStatus(err), extractErrorCode(err), err.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error(err, "request failed", "method", r.Method, "path", r.URL.Path, "requestId", resp.RequestID)
	}
	WriteJSONResponse(w, logger, status, resp)
}

// WriteStyleResponse writes an encoded style document.
func WriteStyleResponse(w http.ResponseWriter, logger logr.Logger, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Error(err, "failed to write style response")
	}
}
