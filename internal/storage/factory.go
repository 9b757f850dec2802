// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/waymark/annotate/internal/database"
	"github.com/waymark/annotate/internal/storage/gormstore"
	"github.com/waymark/annotate/internal/storage/memory"
)

// NewRepository creates a storage repository based on configuration.
// kind is the storage.type config value.
func NewRepository(kind string, db *database.Manager) (Repository, error) {
	switch kind {
	case "memory":
		return memory.New(), nil
	case "gorm", "sqlite", "postgres":
		if db == nil || !db.IsValid {
			return nil, fmt.Errorf("gorm storage requested but no valid database connection")
		}
		return gormstore.New(db.DB), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", kind)
	}
}
