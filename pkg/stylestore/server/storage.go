package server

import (
	"fmt"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/garunski/stylestore/pkg/stylestore/database"
	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
	"github.com/garunski/stylestore/pkg/stylestore/events"
	"github.com/garunski/stylestore/pkg/stylestore/location"
	"github.com/garunski/stylestore/pkg/stylestore/medium"
	"github.com/garunski/stylestore/pkg/stylestore/store"
	"github.com/garunski/stylestore/pkg/stylestore/style"
)

// StorageComponents holds all storage-related components
type StorageComponents struct {
	// DB is the badger database backing the event log and, for the badger
	// backend, the styles themselves. Nil when neither is configured.
	DB         *database.DB
	EventStore *events.Storage
	Store      *store.Store
	Codec      style.Codec
}

// NewStorageComponents opens the configured style backend and event log.
func NewStorageComponents(cfg *Config, logger logr.Logger) (*StorageComponents, error) {
	codec, err := style.CodecByName(cfg.Codec)
	if err != nil {
		return nil, err
	}
	ext := cfg.Extension
	if ext == "" {
		ext = codec.Extension()
	}

	var (
		sc       = &StorageComponents{Codec: codec}
		resolver location.Resolver
		m        medium.Medium
		done     bool
	)
	defer func() {
		if done {
			return
		}
		if c, ok := m.(medium.Closer); ok {
			c.Close()
		}
		sc.Close()
	}()

	logger.Info("Opening style backend", "backend", cfg.Backend, "path", cfg.DataPath)
	switch cfg.Backend {
	case BackendFile:
		f, err := medium.NewFile(cfg.DataPath, ext)
		if err != nil {
			return nil, err
		}
		resolver, m = location.NewSidecar(cfg.DataPath, ext), f

	case BackendMemory:
		resolver, m = location.NewKey(""), medium.NewMemory()

	case BackendBadger:
		db, err := database.NewDB(cfg.DataPath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
		}
		sc.DB = db
		resolver, m = location.NewKey(badgerStylePrefix), medium.NewBadger(db, badgerStylePrefix)

	case BackendSQLite:
		sqlite, err := medium.NewSQLite(filepath.Join(cfg.DataPath, sqliteFileName))
		if err != nil {
			return nil, err
		}
		resolver, m = location.NewKey(""), sqlite

	case BackendS3:
		client := cfg.S3Client
		if client == nil {
			client = NewS3Client(cfg.S3)
		}
		resolver = location.NewKey(cfg.S3.Prefix)
		m = medium.NewS3(client, cfg.S3.Bucket, cfg.S3.Prefix, codec.ContentType(), cfg.RequestTimeout)

	case BackendConfigMap:
		client := cfg.KubernetesClient
		if client == nil {
			client, err = NewKubernetesClient(logger)
			if err != nil {
				return nil, err
			}
		}
		resolver = location.NewConfigMapName(cfg.ConfigMapPrefix)
		m = medium.NewConfigMap(client, cfg.ConfigMapNamespace, cfg.RequestTimeout)

	default:
		return nil, fmt.Errorf("%w: unknown backend %q", apperrors.ErrInvalid, cfg.Backend)
	}

	if sc.DB == nil && cfg.EventDataPath != "" {
		logger.Info("Opening BadgerDB for events", "path", cfg.EventDataPath)
		db, err := database.NewDB(cfg.EventDataPath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open event BadgerDB: %w", err)
		}
		sc.DB = db
	}

	var opts []store.Option
	if sc.DB != nil {
		sc.EventStore = events.NewStorage(sc.DB, logger.WithName("events"))
		opts = append(opts, store.WithEventStore(sc.EventStore))
		logger.Info("Event storage initialized")
	}

	sc.Store = store.New(resolver, codec, m, logger.WithName("store"), opts...)
	done = true
	return sc, nil
}

// Close releases the style medium and the badger database.
func (sc *StorageComponents) Close() error {
	var firstErr error
	if sc.Store != nil {
		if err := sc.Store.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close style store: %w", err)
		}
		sc.Store = nil
	}
	if sc.DB != nil {
		if err := sc.DB.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close database: %w", err)
		}
		sc.DB = nil
	}
	return firstErr
}
