package api

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
	"github.com/garunski/stylestore/pkg/stylestore/events"
	"github.com/garunski/stylestore/pkg/stylestore/location"
	"github.com/garunski/stylestore/pkg/stylestore/medium"
	"github.com/garunski/stylestore/pkg/stylestore/store"
	"github.com/garunski/stylestore/pkg/stylestore/style"
	sstesting "github.com/garunski/stylestore/pkg/stylestore/testing"
)

type testHandlerConfig struct {
	store         StyleService
	eventStore    events.EventStorage
	eventStoreSet bool
}

type testHandlerOption func(*testHandlerConfig)

func WithNilEventStore() testHandlerOption {
	return func(cfg *testHandlerConfig) {
		cfg.eventStore = nil
		cfg.eventStoreSet = true
	}
}

func WithStyleService(s StyleService) testHandlerOption {
	return func(cfg *testHandlerConfig) {
		cfg.store = s
	}
}

// newTestServer returns a router backed by an in-memory style store and, unless
// disabled, a badger event store wired into both the store and the handler.
func newTestServer(t *testing.T, opts ...testHandlerOption) (http.Handler, *events.Storage) {
	t.Helper()

	cfg := testHandlerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var eventStore *events.Storage
	if !cfg.eventStoreSet {
		eventStore = sstesting.NewTestEventStore(t)
		cfg.eventStore = eventStore
	}

	if cfg.store == nil {
		var storeOpts []store.Option
		if cfg.eventStore != nil {
			storeOpts = append(storeOpts, store.WithEventStore(cfg.eventStore))
		}
		cfg.store = store.New(location.NewKey("styles/"), style.SLDCodec{}, medium.NewMemory(), logr.Discard(), storeOpts...)
	}

	handlerOpts := []HandlerOption{WithVersion("test-version")}
	if cfg.eventStore != nil {
		handlerOpts = append(handlerOpts, WithEventStore(cfg.eventStore))
	}

	h := NewHandler(cfg.store, style.SLDCodec{}, logr.Discard(), handlerOpts...)
	return h.SetupRoutes(), eventStore
}

func doRequest(t *testing.T, handler http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// noListStore wraps a store whose medium cannot enumerate records.
type noListStore struct {
	store.StyleStore
}

func (noListStore) ListStyles() ([]string, error) {
	return nil, fmt.Errorf("%w: medium cannot list styles", apperrors.ErrUnsupported)
}
