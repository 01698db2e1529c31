package server

import "time"

// DefaultShutdownTimeout is the default timeout for graceful server shutdown
const DefaultShutdownTimeout = 30 * time.Second

// Style storage backends.
const (
	BackendFile      = "file"
	BackendMemory    = "memory"
	BackendBadger    = "badger"
	BackendSQLite    = "sqlite"
	BackendS3        = "s3"
	BackendConfigMap = "configmap"
)

// Backends lists every supported style storage backend.
var Backends = []string{BackendFile, BackendMemory, BackendBadger, BackendSQLite, BackendS3, BackendConfigMap}

const (
	badgerStylePrefix = "styles/"
	sqliteFileName    = "styles.db"
)
