package api

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/garunski/stylestore/pkg/stylestore/events"
	"github.com/garunski/stylestore/pkg/stylestore/store"
	"github.com/garunski/stylestore/pkg/stylestore/style"
)

// StyleService is the style store surface the HTTP API serves.
type StyleService interface {
	store.StyleStore
	ListStyles() ([]string, error)
}

type Handler struct {
	logger         logr.Logger
	version        string
	store          StyleService
	codec          style.Codec
	eventStore     events.EventStorage
	requestTimeout time.Duration
}

type HandlerOption func(*Handler)

func WithEventStore(eventStore events.EventStorage) HandlerOption {
	return func(h *Handler) {
		h.eventStore = eventStore
	}
}

func WithVersion(version string) HandlerOption {
	return func(h *Handler) {
		h.version = version
	}
}

// WithRequestTimeout bounds style and event requests.
func WithRequestTimeout(timeout time.Duration) HandlerOption {
	return func(h *Handler) {
		if timeout > 0 {
			h.requestTimeout = timeout
		}
	}
}

// NewHandler serves st over HTTP. codec is the default wire format for style
// bodies; clients may ask for another with the format query parameter.
func NewHandler(st StyleService, codec style.Codec, logger logr.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		logger:         logger,
		store:          st,
		codec:          codec,
		requestTimeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
