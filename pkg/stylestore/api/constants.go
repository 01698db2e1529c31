package api

import "time"

// DefaultRequestTimeout is the default timeout for style and event requests
const DefaultRequestTimeout = 30 * time.Second

// DefaultHealthCheckTimeout is the default timeout for health endpoints
const DefaultHealthCheckTimeout = 10 * time.Second

// MaxStyleBodyBytes caps the size of an uploaded style document
const MaxStyleBodyBytes = 4 << 20

const (
	defaultEventLimit = 100
	defaultErrorLimit = 50
	maxEventLimit     = 1000
)

// readinessProbeTypeName is a name every resolver accepts. Probing it has no
// side effects.
const readinessProbeTypeName = "readyz-probe"
