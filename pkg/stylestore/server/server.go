package server

import (
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/client-go/kubernetes"

	"github.com/garunski/stylestore/pkg/stylestore/api"
	"github.com/garunski/stylestore/pkg/stylestore/medium"
	"github.com/garunski/stylestore/pkg/stylestore/seed"
)

// Config holds server configuration
type Config struct {
	AppVersion           string
	Backend              string
	DataPath             string
	Extension            string
	Codec                string
	Port                 string
	EventDataPath        string
	EventRetentionDays   int
	EventCleanupInterval time.Duration
	RequestTimeout       time.Duration
	S3                   S3Config
	ConfigMapNamespace   string
	ConfigMapPrefix      string
	SeedFS               fs.FS  // Optional default styles
	SeedRoot             string // Root path for default styles

	// Optional pre-built clients; when nil they are created from the
	// environment.
	KubernetesClient kubernetes.Interface
	S3Client         medium.S3Client
}

type Server struct {
	config     *Config
	logger     logr.Logger
	storage    *StorageComponents
	handler    *api.Handler
	httpServer *http.Server

	mu       sync.Mutex
	addr     string
	cancel   func()
	wg       sync.WaitGroup
	serveErr chan error
}

// NewServer opens storage, seeds default styles and prepares the HTTP server.
func NewServer(cfg *Config, logger logr.Logger) (*Server, error) {
	storage, err := NewStorageComponents(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.SeedFS != nil {
		styles, err := seed.Load(cfg.SeedFS, cfg.SeedRoot, storage.Codec)
		if err != nil {
			storage.Close()
			return nil, fmt.Errorf("failed to load seed styles: %w", err)
		}
		if _, err := seed.Apply(storage.Store, styles, logger.WithName("seed")); err != nil {
			storage.Close()
			return nil, fmt.Errorf("failed to seed styles: %w", err)
		}
	}

	opts := []api.HandlerOption{
		api.WithVersion(cfg.AppVersion),
		api.WithRequestTimeout(cfg.RequestTimeout),
	}
	if storage.EventStore != nil {
		opts = append(opts, api.WithEventStore(storage.EventStore))
	}
	handler := api.NewHandler(storage.Store, storage.Codec, logger.WithName("api"), opts...)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		config:     cfg,
		logger:     logger,
		storage:    storage,
		handler:    handler,
		httpServer: httpServer,
		serveErr:   make(chan error, 1),
	}, nil
}

// Storage exposes the opened storage components.
func (s *Server) Storage() *StorageComponents {
	return s.storage
}

// Addr returns the address the HTTP server listens on once started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

func (s *Server) Close() error {
	if s.storage == nil {
		return nil
	}
	return s.storage.Close()
}
