package api

import (
	"errors"
	"net/http"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

func httpStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if isBodyTooLarge(err) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, apperrors.ErrDecode) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, apperrors.ErrInvalid) || errors.Is(err, apperrors.ErrEncode) ||
		errors.Is(err, apperrors.ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, apperrors.ErrUnsupported) {
		return http.StatusNotImplemented
	}
	if errors.Is(err, apperrors.ErrEventStore) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, apperrors.ErrStorage) || errors.Is(err, apperrors.ErrKubernetes) {
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}

func extractErrorCode(err error) string {
	if err == nil {
		return "unknown_error"
	}

	if isBodyTooLarge(err) {
		return "payload_too_large"
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return "not_found"
	}
	if errors.Is(err, apperrors.ErrDecode) {
		return "decode_error"
	}
	if errors.Is(err, apperrors.ErrEncode) {
		return "encode_error"
	}
	if errors.Is(err, apperrors.ErrInvalidRequest) {
		return "invalid_request"
	}
	if errors.Is(err, apperrors.ErrInvalid) {
		return "validation_error"
	}
	if errors.Is(err, apperrors.ErrUnsupported) {
		return "unsupported"
	}
	if errors.Is(err, apperrors.ErrEventStore) {
		return "event_store_unavailable"
	}
	if errors.Is(err, apperrors.ErrKubernetes) {
		return "kubernetes_error"
	}
	if errors.Is(err, apperrors.ErrStorage) {
		return "storage_error"
	}

	return "internal_error"
}

// isBodyTooLarge reports whether a request body hit its http.MaxBytesReader limit.
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
