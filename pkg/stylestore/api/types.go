package api

import "time"

type HealthStatus struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentStatus `json:"components,omitempty"`
}

type ComponentStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type StyleListResponse struct {
	Styles []string `json:"styles"`
}
