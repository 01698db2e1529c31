package config

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/garunski/stylestore/pkg/stylestore"
)

// Builder provides a fluent interface for building service configuration.
type Builder struct {
	config stylestore.Config
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		config: stylestore.DefaultConfig(),
	}
}

// WithAppVersion sets the application version.
func (b *Builder) WithAppVersion(version string) *Builder {
	b.config.AppVersion = version
	return b
}

// WithBackend selects the style storage backend.
func (b *Builder) WithBackend(backend string) *Builder {
	b.config.Backend = backend
	return b
}

// WithDataPath sets the style data path.
func (b *Builder) WithDataPath(path string) *Builder {
	b.config.DataPath = path
	return b
}

// WithExtension overrides the sidecar file extension.
func (b *Builder) WithExtension(ext string) *Builder {
	b.config.Extension = ext
	return b
}

// WithCodec selects the style encoding ("sld" or "yaml").
func (b *Builder) WithCodec(codec string) *Builder {
	b.config.Codec = codec
	return b
}

// WithSeedFS sets the filesystem holding default styles.
func (b *Builder) WithSeedFS(fsys fs.FS) *Builder {
	b.config.SeedFS = fsys
	return b
}

// WithSeedRoot sets the root path of default styles within the seed filesystem.
func (b *Builder) WithSeedRoot(root string) *Builder {
	b.config.SeedRoot = root
	return b
}

// WithPort sets the HTTP server port.
func (b *Builder) WithPort(port string) *Builder {
	b.config.Port = port
	return b
}

// WithRequestTimeout sets the per-request timeout.
func (b *Builder) WithRequestTimeout(timeout time.Duration) *Builder {
	b.config.RequestTimeout = timeout
	return b
}

// WithEventDataPath enables the event log in a separate database.
func (b *Builder) WithEventDataPath(path string) *Builder {
	b.config.EventDataPath = path
	return b
}

// WithEventRetentionDays sets the event retention period in days.
func (b *Builder) WithEventRetentionDays(days int) *Builder {
	b.config.EventRetentionDays = days
	return b
}

// WithEventCleanupInterval sets the event cleanup interval.
func (b *Builder) WithEventCleanupInterval(interval time.Duration) *Builder {
	b.config.EventCleanupInterval = interval
	return b
}

// WithS3 sets the S3 bucket location.
func (b *Builder) WithS3(bucket, prefix, region, endpoint string) *Builder {
	b.config.S3.Bucket = bucket
	b.config.S3.Prefix = prefix
	b.config.S3.Region = region
	b.config.S3.Endpoint = endpoint
	return b
}

// WithS3Credentials sets static S3 credentials.
func (b *Builder) WithS3Credentials(accessKeyID, secretAccessKey string) *Builder {
	b.config.S3.AccessKeyID = accessKeyID
	b.config.S3.SecretAccessKey = secretAccessKey
	return b
}

// WithConfigMaps sets the namespace and name prefix of the ConfigMap backend.
func (b *Builder) WithConfigMaps(namespace, prefix string) *Builder {
	b.config.ConfigMapNamespace = namespace
	b.config.ConfigMapPrefix = prefix
	return b
}

// WithLogFormat selects "json" or development logging.
func (b *Builder) WithLogFormat(format string) *Builder {
	b.config.LogFormat = format
	return b
}

// Build returns the configured Config and validates it.
// Returns an error if validation fails.
func (b *Builder) Build() (stylestore.Config, error) {
	if err := b.config.Validate(); err != nil {
		return stylestore.Config{}, err
	}
	return b.config, nil
}

// MustBuild returns the configured Config and panics if validation fails.
func (b *Builder) MustBuild() stylestore.Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}
	return cfg
}
