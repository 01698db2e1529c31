package testing

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"github.com/garunski/stylestore/pkg/stylestore/database"
	"github.com/garunski/stylestore/pkg/stylestore/events"
	"github.com/garunski/stylestore/pkg/stylestore/location"
	"github.com/garunski/stylestore/pkg/stylestore/medium"
	"github.com/garunski/stylestore/pkg/stylestore/store"
	"github.com/garunski/stylestore/pkg/stylestore/style"
)

// NewTestLogger creates a test logger
func NewTestLogger() logr.Logger {
	zapLog, _ := zap.NewDevelopment()
	return zapr.NewLogger(zapLog)
}

// NewTestDB creates a test database
func NewTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewTestDB(t)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}
	return db
}

// NewTestEventStore creates a test event store
func NewTestEventStore(t *testing.T) *events.Storage {
	db := NewTestDB(t)
	return events.NewStorage(db, logr.Discard())
}

// NewTestStore creates an in-memory style store using the SLD codec
func NewTestStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	return store.New(location.NewKey("styles/"), style.SLDCodec{}, medium.NewMemory(), logr.Discard(), opts...)
}

// NewTestFileStore creates a sidecar file store rooted at a temp dir
func NewTestFileStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	codec := style.SLDCodec{}
	m, err := medium.NewFile(dir, codec.Extension())
	if err != nil {
		t.Fatalf("failed to create file medium: %v", err)
	}
	return store.New(location.NewSidecar(dir, codec.Extension()), codec, m, logr.Discard()), dir
}

// NewTestStyle returns a valid single-rule style named name
func NewTestStyle(name string) *style.Style {
	return &style.Style{
		Name:  name,
		Title: name + " style",
		FeatureTypeStyles: []style.FeatureTypeStyle{
			{
				FeatureType: name,
				Rules: []style.Rule{
					{
						Name: "default",
						Symbolizers: []style.Symbolizer{
							{Kind: style.SymbolizerPolygon, Stroke: "#000000", Fill: "#ffcc00", StrokeWidth: 1, Opacity: 1},
						},
					},
				},
			},
		},
	}
}
