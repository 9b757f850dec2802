// Package cache holds the in-memory record cache backing the gorm
// repository. Edit and move workflows re-read the record they operate
// on; latency in those reads sits directly on the gesture path, so
// cache hits skip the database round trip.
package cache

import (
	"sync"

	"github.com/waymark/annotate/pkg/core"
)

// RecordCache caches annotation records by storage id.
type RecordCache struct {
	mu      sync.RWMutex
	records map[uint]core.AnnotationRecord
}

// NewRecordCache creates an empty record cache.
func NewRecordCache() *RecordCache {
	return &RecordCache{
		records: make(map[uint]core.AnnotationRecord),
	}
}

// Get retrieves a record by storage id.
func (c *RecordCache) Get(storageID uint) (core.AnnotationRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[storageID]
	return rec, ok
}

// Put stores a record under its storage id.
func (c *RecordCache) Put(rec core.AnnotationRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[rec.StorageID] = rec
}

// Evict removes a record by storage id.
func (c *RecordCache) Evict(storageID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, storageID)
}

// Reset clears the cache.
func (c *RecordCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = make(map[uint]core.AnnotationRecord)
}

// Len returns the number of cached records.
func (c *RecordCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}
