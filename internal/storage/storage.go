// internal/storage/storage.go
package storage

import (
	"context"

	"github.com/waymark/annotate/pkg/core"
)

// Repository is the interface all annotation storage implementations
// must satisfy. Operations are asynchronous from the controller's point
// of view; failures map to core.ErrStorageIO and abort the active
// workflow.
type Repository interface {
	// Lifecycle
	Init() error
	Close() error

	// Annotation CRUD. Add assigns StorageID to the passed pointer.
	GetAll(ctx context.Context) ([]core.AnnotationRecord, error)
	Get(ctx context.Context, storageID uint) (core.AnnotationRecord, error)
	Add(ctx context.Context, r *core.AnnotationRecord) error
	Update(ctx context.Context, r core.AnnotationRecord) error
	Delete(ctx context.Context, storageID uint) error

	// Connect-workflow relationships. AddConnection assigns ID.
	AddConnection(ctx context.Context, c *core.Connection) error
	ConnectionsFor(ctx context.Context, storageID uint) ([]core.Connection, error)
}
