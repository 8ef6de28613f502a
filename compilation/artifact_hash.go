package compilation

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/single-pyo3/single-pyo3/compilation/types"
	"github.com/single-pyo3/single-pyo3/logging"
	"github.com/single-pyo3/single-pyo3/logging/colors"
	"go.etcd.io/bbolt"
)

// ArtifactHashCacheFileName is the name of the database, inside the ephemeral project, holding artifact hashes.
const ArtifactHashCacheFileName = ".single-pyo3-cache.db"

// artifactBucket is the bbolt bucket records are stored in, keyed by module name.
var artifactBucket = []byte("artifacts")

// ArtifactHashRecord describes a previously installed library.
type ArtifactHashRecord struct {
	// Hash is the SHA-256 digest of the library.
	Hash string `json:"hash"`
	// Timestamp is when the library was installed.
	Timestamp time.Time `json:"timestamp"`
	// Dependencies are the names of the declared dependencies it was built with.
	Dependencies []string `json:"dependencies"`
	// Override is the binding library override it was built with.
	Override string `json:"override,omitempty"`
}

// ArtifactHashCache stores ArtifactHashRecords in a bbolt database.
type ArtifactHashCache struct {
	db *bbolt.DB
}

// OpenArtifactHashCache opens, or creates, the artifact hash database in directory. It waits at most one second for
// another process holding the database.
func OpenArtifactHashCache(directory string) (*ArtifactHashCache, error) {
	db, err := bbolt.Open(filepath.Join(directory, ArtifactHashCacheFileName), 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("could not open artifact hash cache: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(artifactBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.WithStack(err)
	}
	return &ArtifactHashCache{db: db}, nil
}

// Load returns the record stored for module, or nil if there is none.
func (c *ArtifactHashCache) Load(module string) (*ArtifactHashRecord, error) {
	var record *ArtifactHashRecord
	err := c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(artifactBucket).Get([]byte(module))
		if data == nil {
			return nil
		}
		record = &ArtifactHashRecord{}
		return json.Unmarshal(data, record)
	})
	if err != nil {
		return nil, fmt.Errorf("could not read artifact hash for '%s': %w", module, err)
	}
	return record, nil
}

// Save stores record for module, replacing any previous record.
func (c *ArtifactHashCache) Save(module string, record *ArtifactHashRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.WithStack(err)
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(artifactBucket).Put([]byte(module), data)
	})
}

// Close closes the underlying database.
func (c *ArtifactHashCache) Close() error {
	return c.db.Close()
}

// NotifyArtifactHashStatus compares the installed artifact against the record kept in cacheDirectory, logs whether
// the library changed since the last build, and records the new hash. Cache failures are only logged as warnings.
func NotifyArtifactHashStatus(module string, artifact *types.BuildArtifact, record ArtifactHashRecord, cacheDirectory string, logger *logging.Logger) {
	if artifact == nil {
		return
	}

	cache, err := OpenArtifactHashCache(cacheDirectory)
	if err != nil {
		logger.Warn("Failed to open artifact hash cache", err)
		return
	}
	defer cache.Close()

	previous, err := cache.Load(module)
	if err != nil {
		logger.Warn("Failed to load artifact hash cache", err)
	}

	if previous == nil || previous.Hash != artifact.Hash {
		logger.Info(
			colors.Bold, "artifact: ", colors.Reset,
			"built a ", colors.GreenBold, "new", colors.Reset, " library ", artifact.DestinationPath,
		)
	} else {
		timeSince := time.Since(previous.Timestamp)
		logger.Info(
			colors.Bold, "artifact: ", colors.Reset,
			"library is ", colors.YellowBold, "unchanged", colors.Reset,
			" since the previous build (", formatDuration(timeSince), " ago)",
		)
	}

	record.Hash = artifact.Hash
	record.Timestamp = time.Now()
	if err = cache.Save(module, &record); err != nil {
		logger.Warn("Failed to save artifact hash cache", err)
	}
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	days := int(d.Hours() / 24)
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
