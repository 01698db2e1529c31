package api

import (
	"net/http"
	"time"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now(),
	}

	WriteJSONResponse(w, h.logger, http.StatusOK, status)
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:     "healthy",
		Version:    h.version,
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentStatus),
	}

	if h.store != nil {
		if _, err := h.store.HasStyle(readinessProbeTypeName); err != nil {
			status.Components["styleStore"] = ComponentStatus{
				Status:  "unhealthy",
				Message: err.Error(),
			}
			status.Status = "unhealthy"
		} else {
			status.Components["styleStore"] = ComponentStatus{Status: "healthy"}
		}
	} else {
		status.Components["styleStore"] = ComponentStatus{
			Status:  "unhealthy",
			Message: "Style store not initialized",
		}
		status.Status = "unhealthy"
	}

	if h.eventStore != nil {
		_, err := h.eventStore.GetRecentErrors(1)
		if err != nil {
			status.Components["eventStore"] = ComponentStatus{
				Status:  "unavailable",
				Message: err.Error(),
			}
		} else {
			status.Components["eventStore"] = ComponentStatus{Status: "available"}
		}
	} else {
		status.Components["eventStore"] = ComponentStatus{
			Status:  "unavailable",
			Message: "Event store not initialized",
		}
	}

	statusCode := http.StatusOK
	if status.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	WriteJSONResponse(w, h.logger, statusCode, status)
}
