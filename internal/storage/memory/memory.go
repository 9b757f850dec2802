// internal/storage/memory/memory.go
package memory

import (
	"context"
	"sync"

	"github.com/waymark/annotate/pkg/core"
)

// Repository stores annotation records in memory. Used by the CLI
// harness and tests; mirrors the behavior of the gorm backend including
// id assignment and not-found semantics.
type Repository struct {
	records     map[uint]core.AnnotationRecord
	connections map[uint]core.Connection

	annotationID uint
	connectionID uint
	mu           sync.RWMutex
}

// New creates a new memory repository.
func New() *Repository {
	return &Repository{
		records:     make(map[uint]core.AnnotationRecord),
		connections: make(map[uint]core.Connection),
	}
}

// Init initializes the repository.
func (r *Repository) Init() error {
	return nil
}

// Close cleans up resources.
func (r *Repository) Close() error {
	return nil
}

// GetAll returns all stored annotation records.
func (r *Repository) GetAll(ctx context.Context) ([]core.AnnotationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]core.AnnotationRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

// Get returns the record with the given storage id.
func (r *Repository) Get(ctx context.Context, storageID uint) (core.AnnotationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[storageID]
	if !ok {
		return core.AnnotationRecord{}, core.ErrRecordNotFound
	}
	return rec, nil
}

// Add stores a new record and assigns its storage id.
// Ids are never reused, even after deletion.
func (r *Repository) Add(ctx context.Context, rec *core.AnnotationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.annotationID++
	rec.StorageID = r.annotationID
	r.records[rec.StorageID] = *rec
	return nil
}

// Update replaces the stored record keyed by its storage id.
func (r *Repository) Update(ctx context.Context, rec core.AnnotationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[rec.StorageID]; !ok {
		return core.ErrRecordNotFound
	}
	r.records[rec.StorageID] = rec
	return nil
}

// Delete removes the record with the given storage id, along with any
// connections touching it so no edge points at a dead annotation.
func (r *Repository) Delete(ctx context.Context, storageID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[storageID]; !ok {
		return core.ErrRecordNotFound
	}
	delete(r.records, storageID)
	for id, c := range r.connections {
		if c.FromID == storageID || c.ToID == storageID {
			delete(r.connections, id)
		}
	}
	return nil
}

// AddConnection stores a connection and assigns its id.
func (r *Repository) AddConnection(ctx context.Context, c *core.Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[c.FromID]; !ok {
		return core.ErrRecordNotFound
	}
	if _, ok := r.records[c.ToID]; !ok {
		return core.ErrRecordNotFound
	}

	r.connectionID++
	c.ID = r.connectionID
	r.connections[c.ID] = *c
	return nil
}

// ConnectionsFor returns all connections touching the given storage id.
func (r *Repository) ConnectionsFor(ctx context.Context, storageID uint) ([]core.Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []core.Connection
	for _, c := range r.connections {
		if c.FromID == storageID || c.ToID == storageID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Len returns the number of stored records. Test helper.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
