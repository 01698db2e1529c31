package api

import (
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
)

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	if h.eventStore == nil {
		WriteError(w, r, h.logger, fmt.Errorf("%w: event store not available", apperrors.ErrEventStore))
		return
	}

	filters, err := ParseQueryParams(r)
	if err != nil {
		WriteError(w, r, h.logger, fmt.Errorf("%w: invalid query parameters: %w", apperrors.ErrInvalid, err))
		return
	}

	eventList, err := h.eventStore.ListEvents(filters)
	if err != nil {
		h.logger.Error(err, "failed to list events")
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSONResponse(w, h.logger, http.StatusOK, eventList)
}

func (h *Handler) GetRecentErrors(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"), defaultErrorLimit)
	if err != nil {
		WriteError(w, r, h.logger, err)
		return
	}

	if h.eventStore == nil {
		WriteError(w, r, h.logger, fmt.Errorf("%w: event store not available", apperrors.ErrEventStore))
		return
	}

	eventList, err := h.eventStore.GetRecentErrors(limit)
	if err != nil {
		h.logger.Error(err, "failed to get recent errors")
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSONResponse(w, h.logger, http.StatusOK, eventList)
}

func (h *Handler) CleanupEvents(w http.ResponseWriter, r *http.Request) {
	beforeStr := r.URL.Query().Get("before")
	if beforeStr == "" {
		WriteError(w, r, h.logger, fmt.Errorf("%w: before parameter is required", apperrors.ErrInvalidRequest))
		return
	}

	before, err := time.Parse(time.RFC3339, beforeStr)
	if err != nil {
		WriteError(w, r, h.logger, fmt.Errorf("%w: invalid before parameter format (use RFC3339): %w", apperrors.ErrInvalidRequest, err))
		return
	}

	if h.eventStore == nil {
		WriteError(w, r, h.logger, fmt.Errorf("%w: event store not available", apperrors.ErrEventStore))
		return
	}

	if err := h.eventStore.CleanupOldEvents(before); err != nil {
		h.logger.Error(err, "failed to cleanup events")
		WriteError(w, r, h.logger, err)
		return
	}

	WriteJSONResponse(w, h.logger, http.StatusOK, map[string]string{"message": "Events cleaned up successfully"})
}
